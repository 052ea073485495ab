package schema

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/now"

	"github.com/ragimov700/irs-test/utils"
)

// DataType is the storage kind of a field. Adding a new kind means declaring
// a tag value here and teaching Set and StorageValue the two conversions;
// nothing outside this file changes.
type DataType string

const (
	Bool   DataType = "bool"
	Int    DataType = "int"
	Uint   DataType = "uint"
	Float  DataType = "float"
	String DataType = "string"
	Time   DataType = "time"
	Bytes  DataType = "bytes"
	UUID   DataType = "uuid"
)

var (
	// TimeReflectType time.Time reflect type
	TimeReflectType = reflect.TypeOf(time.Time{})
	// UUIDReflectType uuid.UUID reflect type
	UUIDReflectType = reflect.TypeOf(uuid.UUID{})
)

// Field describes one column: name, storage kind, constraints, and the
// conversion pair between in-memory and storage-native values.
type Field struct {
	Name                  string
	DBName                string
	BindIndex             []int
	DataType              DataType
	PrimaryKey            bool
	AutoIncrement         bool
	NotNull               bool
	AutoCreateTime        bool
	AutoUpdateTime        bool
	HasDefaultValue       bool
	DefaultValue          string
	DefaultValueInterface interface{}
	FieldType             reflect.Type
	IndirectFieldType     reflect.Type
	StructField           reflect.StructField
	Tag                   reflect.StructTag
	TagSettings           map[string]string
	Schema                *Schema

	// ReflectValueOf returns the addressable struct member for a model value
	ReflectValueOf func(reflect.Value) reflect.Value
	// ValueOf returns the current value and whether it is the zero value
	ValueOf func(reflect.Value) (interface{}, bool)
	// Set writes a storage-native value back onto a model value, coercing it
	// into the field type
	Set func(reflect.Value, interface{}) error
}

// ParseField builds a Field from a struct field. index is the embedding
// chain leading to fieldStruct, empty for top level fields.
func (schema *Schema) ParseField(fieldStruct reflect.StructField, index []int) *Field {
	field := &Field{
		Name:              fieldStruct.Name,
		BindIndex:         append(append([]int{}, index...), fieldStruct.Index...),
		FieldType:         fieldStruct.Type,
		IndirectFieldType: indirectType(fieldStruct.Type),
		StructField:       fieldStruct,
		Tag:               fieldStruct.Tag,
		TagSettings:       ParseTagSetting(fieldStruct.Tag.Get("orm"), ";"),
		Schema:            schema,
	}

	if dbName, ok := field.TagSettings["COLUMN"]; ok {
		field.DBName = dbName
	}

	if val, ok := field.TagSettings["PRIMARYKEY"]; ok && utils.CheckTruth(val) {
		field.PrimaryKey = true
	}

	if val, ok := field.TagSettings["AUTOINCREMENT"]; ok && utils.CheckTruth(val) {
		field.AutoIncrement = true
	}

	if val, ok := field.TagSettings["NOTNULL"]; ok && utils.CheckTruth(val) {
		field.NotNull = true
	}

	if v, ok := field.TagSettings["DEFAULT"]; ok {
		field.HasDefaultValue = true
		field.DefaultValue = v
	}

	switch field.IndirectFieldType.Kind() {
	case reflect.Bool:
		field.DataType = Bool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		field.DataType = Int
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		field.DataType = Uint
	case reflect.Float32, reflect.Float64:
		field.DataType = Float
	case reflect.String:
		field.DataType = String
	case reflect.Struct:
		if field.IndirectFieldType.ConvertibleTo(TimeReflectType) {
			field.DataType = Time
		}
	case reflect.Array:
		if field.IndirectFieldType == UUIDReflectType {
			field.DataType = UUID
		}
	case reflect.Slice:
		if field.IndirectFieldType.Elem().Kind() == reflect.Uint8 {
			field.DataType = Bytes
		}
	}

	if val, ok := field.TagSettings["TYPE"]; ok {
		field.DataType = DataType(strings.ToLower(val))
	}

	if field.DataType == Time {
		if field.Name == "CreatedAt" || utils.CheckTruth(field.TagSettings["AUTOCREATETIME"]) {
			field.AutoCreateTime = true
		}
		if field.Name == "UpdatedAt" || utils.CheckTruth(field.TagSettings["AUTOUPDATETIME"]) {
			field.AutoUpdateTime = true
		}
	}

	if field.HasDefaultValue && field.DefaultValue != "" {
		switch field.DataType {
		case Bool:
			field.DefaultValueInterface, _ = strconv.ParseBool(field.DefaultValue)
		case Int, Uint:
			field.DefaultValueInterface, _ = strconv.ParseInt(field.DefaultValue, 10, 64)
		case Float:
			field.DefaultValueInterface, _ = strconv.ParseFloat(field.DefaultValue, 64)
		case String:
			field.DefaultValueInterface = strings.Trim(field.DefaultValue, "'")
		}
	}

	field.setupValuerAndSetter()
	return field
}

func (field *Field) setupValuerAndSetter() {
	bindIndex := field.BindIndex

	field.ReflectValueOf = func(value reflect.Value) reflect.Value {
		v := reflect.Indirect(value)
		for idx, i := range bindIndex {
			if idx > 0 && v.Kind() == reflect.Ptr {
				if v.IsNil() {
					v.Set(reflect.New(v.Type().Elem()))
				}
				v = v.Elem()
			}
			v = v.Field(i)
		}
		return v
	}

	field.ValueOf = func(value reflect.Value) (interface{}, bool) {
		v := reflect.Indirect(value)
		for idx, i := range bindIndex {
			if idx > 0 && v.Kind() == reflect.Ptr {
				if v.IsNil() {
					return nil, true
				}
				v = v.Elem()
			}
			v = v.Field(i)
		}
		if v.Kind() == reflect.Ptr {
			if v.IsNil() {
				return nil, true
			}
			v = v.Elem()
			return v.Interface(), false
		}
		return v.Interface(), v.IsZero()
	}

	field.Set = func(value reflect.Value, v interface{}) error {
		fv := field.ReflectValueOf(value)

		if v == nil {
			fv.Set(reflect.Zero(fv.Type()))
			return nil
		}

		if valuer, ok := v.(driver.Valuer); ok {
			var err error
			if v, err = valuer.Value(); err != nil {
				return err
			}
			if v == nil {
				fv.Set(reflect.Zero(fv.Type()))
				return nil
			}
		}

		for fv.Kind() == reflect.Ptr {
			if fv.IsNil() {
				fv.Set(reflect.New(fv.Type().Elem()))
			}
			fv = fv.Elem()
		}

		switch field.DataType {
		case Bool:
			switch data := v.(type) {
			case bool:
				fv.SetBool(data)
			case int64:
				fv.SetBool(data != 0)
			case string:
				b, err := strconv.ParseBool(data)
				if err != nil {
					return fmt.Errorf("%w: %q into field %s", ErrInvalidValue, data, field.Name)
				}
				fv.SetBool(b)
			case []byte:
				return field.Set(value, string(data))
			default:
				return field.setFallback(fv, v)
			}
		case Int:
			switch data := v.(type) {
			case int64:
				fv.SetInt(data)
			case int:
				fv.SetInt(int64(data))
			case uint64:
				fv.SetInt(int64(data))
			case float64:
				fv.SetInt(int64(data))
			case string:
				i, err := strconv.ParseInt(data, 10, 64)
				if err != nil {
					return fmt.Errorf("%w: %q into field %s", ErrInvalidValue, data, field.Name)
				}
				fv.SetInt(i)
			case []byte:
				return field.Set(value, string(data))
			default:
				return field.setFallback(fv, v)
			}
		case Uint:
			switch data := v.(type) {
			case uint64:
				fv.SetUint(data)
			case int64:
				fv.SetUint(uint64(data))
			case int:
				fv.SetUint(uint64(data))
			case float64:
				fv.SetUint(uint64(data))
			case string:
				i, err := strconv.ParseUint(data, 10, 64)
				if err != nil {
					return fmt.Errorf("%w: %q into field %s", ErrInvalidValue, data, field.Name)
				}
				fv.SetUint(i)
			case []byte:
				return field.Set(value, string(data))
			default:
				return field.setFallback(fv, v)
			}
		case Float:
			switch data := v.(type) {
			case float64:
				fv.SetFloat(data)
			case float32:
				fv.SetFloat(float64(data))
			case int64:
				fv.SetFloat(float64(data))
			case string:
				f, err := strconv.ParseFloat(data, 64)
				if err != nil {
					return fmt.Errorf("%w: %q into field %s", ErrInvalidValue, data, field.Name)
				}
				fv.SetFloat(f)
			case []byte:
				return field.Set(value, string(data))
			default:
				return field.setFallback(fv, v)
			}
		case String:
			switch data := v.(type) {
			case string:
				fv.SetString(data)
			case []byte:
				fv.SetString(string(data))
			case int64:
				fv.SetString(strconv.FormatInt(data, 10))
			case float64:
				fv.SetString(strconv.FormatFloat(data, 'f', -1, 64))
			default:
				return field.setFallback(fv, v)
			}
		case Time:
			switch data := v.(type) {
			case time.Time:
				return field.setFallback(fv, data)
			case string:
				t, err := now.Parse(data)
				if err != nil {
					return fmt.Errorf("%w: %q into field %s", ErrInvalidValue, data, field.Name)
				}
				return field.setFallback(fv, t)
			case []byte:
				return field.Set(value, string(data))
			case int64:
				return field.setFallback(fv, time.Unix(data, 0))
			default:
				return field.setFallback(fv, v)
			}
		case Bytes:
			switch data := v.(type) {
			case []byte:
				fv.SetBytes(data)
			case string:
				fv.SetBytes([]byte(data))
			default:
				return field.setFallback(fv, v)
			}
		case UUID:
			switch data := v.(type) {
			case uuid.UUID:
				return field.setFallback(fv, data)
			case string:
				id, err := uuid.Parse(data)
				if err != nil {
					return fmt.Errorf("%w: %q into field %s", ErrInvalidValue, data, field.Name)
				}
				return field.setFallback(fv, id)
			case []byte:
				if len(data) == 16 {
					id, err := uuid.FromBytes(data)
					if err != nil {
						return fmt.Errorf("%w: into field %s", ErrInvalidValue, field.Name)
					}
					return field.setFallback(fv, id)
				}
				return field.Set(value, string(data))
			default:
				return field.setFallback(fv, v)
			}
		default:
			return field.setFallback(fv, v)
		}

		return nil
	}
}

// setFallback assigns through reflection for values that already have a
// compatible type.
func (field *Field) setFallback(fv reflect.Value, v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(fv.Type()) {
		fv.Set(rv)
		return nil
	}
	if rv.Type().ConvertibleTo(fv.Type()) {
		fv.Set(rv.Convert(fv.Type()))
		return nil
	}
	return fmt.Errorf("%w: %v (%T) into field %s", ErrInvalidValue, v, v, field.Name)
}

// StorageValue converts an in-memory value into the storage-native
// representation for the field's data type. It is the inverse of Set and
// round-trips with it for every valid value of the kind.
func (field *Field) StorageValue(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}

	if valuer, ok := v.(driver.Valuer); ok {
		var err error
		if v, err = valuer.Value(); err != nil {
			return nil, err
		}
		if v == nil {
			return nil, nil
		}
	}

	rv := reflect.Indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return nil, nil
	}

	switch field.DataType {
	case Bool:
		if rv.Kind() == reflect.Bool {
			return rv.Bool(), nil
		}
	case Int:
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return rv.Int(), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return int64(rv.Uint()), nil
		case reflect.String:
			i, err := strconv.ParseInt(rv.String(), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q as %s for field %s", ErrInvalidValue, rv.String(), field.DataType, field.Name)
			}
			return i, nil
		}
	case Uint:
		switch rv.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return int64(rv.Uint()), nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return rv.Int(), nil
		}
	case Float:
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			return rv.Float(), nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return float64(rv.Int()), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return float64(rv.Uint()), nil
		case reflect.String:
			f, err := strconv.ParseFloat(rv.String(), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q as %s for field %s", ErrInvalidValue, rv.String(), field.DataType, field.Name)
			}
			return f, nil
		}
	case String:
		switch rv.Kind() {
		case reflect.String:
			return rv.String(), nil
		case reflect.Slice:
			if rv.Type().Elem().Kind() == reflect.Uint8 {
				return string(rv.Bytes()), nil
			}
		}
	case Time:
		switch data := rv.Interface().(type) {
		case time.Time:
			return data, nil
		case string:
			t, err := now.Parse(data)
			if err != nil {
				return nil, fmt.Errorf("%w: %q as %s for field %s", ErrInvalidValue, data, field.DataType, field.Name)
			}
			return t, nil
		default:
			if rv.Type().ConvertibleTo(TimeReflectType) {
				return rv.Convert(TimeReflectType).Interface(), nil
			}
		}
	case Bytes:
		switch rv.Kind() {
		case reflect.Slice:
			if rv.Type().Elem().Kind() == reflect.Uint8 {
				return rv.Bytes(), nil
			}
		case reflect.String:
			return []byte(rv.String()), nil
		}
	case UUID:
		switch data := rv.Interface().(type) {
		case uuid.UUID:
			return data.String(), nil
		case string:
			id, err := uuid.Parse(data)
			if err != nil {
				return nil, fmt.Errorf("%w: %q as %s for field %s", ErrInvalidValue, data, field.DataType, field.Name)
			}
			return id.String(), nil
		default:
			if rv.Type().ConvertibleTo(UUIDReflectType) {
				return rv.Convert(UUIDReflectType).Interface().(uuid.UUID).String(), nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %v (%T) as %s for field %s", ErrInvalidValue, v, v, field.DataType, field.Name)
}

// ToStorage reads the field from a model value and applies the nullability
// and default rules before converting. The zero value of a field without a
// default counts as unset.
func (field *Field) ToStorage(model reflect.Value) (interface{}, error) {
	v, zero := field.ValueOf(model)

	if zero || v == nil {
		if field.HasDefaultValue {
			if field.DefaultValueInterface != nil {
				return field.DefaultValueInterface, nil
			}
			return field.DefaultValue, nil
		}
		if field.NotNull && !field.PrimaryKey {
			return nil, fmt.Errorf("%w: field %s", ErrNotNullViolated, field.Name)
		}
		if v == nil {
			return nil, nil
		}
	}

	return field.StorageValue(v)
}
