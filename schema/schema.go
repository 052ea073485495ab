package schema

import (
	"errors"
	"fmt"
	"go/ast"
	"reflect"
	"sync"
)

var (
	// ErrUnsupportedDataType unsupported data type
	ErrUnsupportedDataType = errors.New("unsupported data type")
	// ErrEmptySchema model declares no persistable fields
	ErrEmptySchema = errors.New("model declares no persistable fields")
	// ErrDuplicatePrimaryKey model declares more than one primary key
	ErrDuplicatePrimaryKey = errors.New("model declares more than one primary key")
	// ErrMissingPrimaryKey model declares no primary key and no ID field
	ErrMissingPrimaryKey = errors.New("model declares no primary key")
	// ErrInvalidValue value cannot be converted to the field's data type
	ErrInvalidValue = errors.New("invalid value")
	// ErrNotNullViolated required field left unset
	ErrNotNullViolated = errors.New("not null constraint violated")
)

// Schema is the compiled, immutable description of one table, built from a
// model struct exactly once and shared by every instance of the model.
type Schema struct {
	Name           string
	ModelType      reflect.Type
	Table          string
	PrimaryField   *Field
	Fields         []*Field
	FieldsByName   map[string]*Field
	FieldsByDBName map[string]*Field
	err            error
	namer          Namer
	cacheStore     *sync.Map
}

// Tabler overrides the derived table name for a model.
type Tabler interface {
	TableName() string
}

func (schema Schema) String() string {
	return fmt.Sprintf("%v.%v", schema.ModelType.PkgPath(), schema.ModelType.Name())
}

// LookUpField finds a field by Go name or column name.
func (schema Schema) LookUpField(name string) *Field {
	if field, ok := schema.FieldsByDBName[name]; ok {
		return field
	}
	if field, ok := schema.FieldsByName[name]; ok {
		return field
	}
	return nil
}

// Parse compiles dest's type into a Schema, caching the result per model
// type. All declaration errors surface here, before any statement is built.
func Parse(dest interface{}, cacheStore *sync.Map, namer Namer) (*Schema, error) {
	if dest == nil {
		return nil, fmt.Errorf("%w: %+v", ErrUnsupportedDataType, dest)
	}

	modelType := reflect.ValueOf(dest).Type()
	for modelType.Kind() == reflect.Slice || modelType.Kind() == reflect.Array || modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}

	if modelType.Kind() != reflect.Struct {
		if modelType.PkgPath() == "" {
			return nil, fmt.Errorf("%w: %+v", ErrUnsupportedDataType, dest)
		}
		return nil, fmt.Errorf("%w: %v.%v", ErrUnsupportedDataType, modelType.PkgPath(), modelType.Name())
	}

	if v, ok := cacheStore.Load(modelType); ok {
		return v.(*Schema), nil
	}

	schema := &Schema{
		Name:           modelType.Name(),
		ModelType:      modelType,
		FieldsByName:   map[string]*Field{},
		FieldsByDBName: map[string]*Field{},
		namer:          namer,
		cacheStore:     cacheStore,
	}

	if tabler, ok := reflect.New(modelType).Interface().(Tabler); ok {
		schema.Table = tabler.TableName()
	} else {
		schema.Table = namer.TableName(modelType.Name())
	}

	schema.parseFields(modelType, nil)
	if schema.err != nil {
		return nil, schema.err
	}

	if len(schema.Fields) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySchema, schema.Name)
	}

	for _, field := range schema.Fields {
		if field.DBName == "" {
			field.DBName = namer.ColumnName(schema.Table, field.Name)
		}

		schema.FieldsByDBName[field.DBName] = field
		schema.FieldsByName[field.Name] = field

		if field.PrimaryKey {
			if schema.PrimaryField != nil {
				return nil, fmt.Errorf("%w: %s declares both %s and %s", ErrDuplicatePrimaryKey, schema.Name, schema.PrimaryField.Name, field.Name)
			}
			schema.PrimaryField = field
		}
	}

	if schema.PrimaryField == nil {
		// fall back to an integer ID field as the surrogate key
		if f := schema.LookUpField("id"); f != nil && (f.DataType == Int || f.DataType == Uint) {
			f.PrimaryKey = true
			f.AutoIncrement = true
			schema.PrimaryField = f
		} else {
			return nil, fmt.Errorf("%w: %s (tag a field with `orm:\"primaryKey\"` or embed orm.Record)", ErrMissingPrimaryKey, schema.Name)
		}
	}

	// first Parse to finish wins; concurrent callers all share its Schema
	if v, loaded := cacheStore.LoadOrStore(modelType, schema); loaded {
		return v.(*Schema), nil
	}
	return schema, nil
}

func (schema *Schema) parseFields(modelType reflect.Type, index []int) {
	for i := 0; i < modelType.NumField(); i++ {
		fieldStruct := modelType.Field(i)

		if !ast.IsExported(fieldStruct.Name) && !fieldStruct.Anonymous {
			continue
		}

		if fieldStruct.Tag.Get("orm") == "-" {
			continue
		}

		if fieldStruct.Anonymous {
			embeddedType := indirectType(fieldStruct.Type)
			if embeddedType.Kind() == reflect.Struct && !embeddedType.ConvertibleTo(TimeReflectType) {
				schema.parseFields(embeddedType, append(append([]int{}, index...), i))
				continue
			}
		}

		if !ast.IsExported(fieldStruct.Name) {
			continue
		}

		field := schema.ParseField(fieldStruct, index)
		if field.DataType == "" {
			schema.err = fmt.Errorf("%w: %s.%s (%s)", ErrUnsupportedDataType, schema.Name, fieldStruct.Name, fieldStruct.Type)
			return
		}
		schema.Fields = append(schema.Fields, field)
	}
}
