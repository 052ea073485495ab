package orm

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/ragimov700/irs-test/schema"
)

// Record is the embeddable base model: a surrogate auto-increment key plus
// the persistence state Save switches on.
//
//	type User struct {
//	    orm.Record
//	    Name string `orm:"notNull"`
//	}
type Record struct {
	ID int64 `orm:"primaryKey;autoIncrement"`

	persisted bool
}

// Persisted reports whether the instance came from storage or has been
// written to it.
func (r *Record) Persisted() bool { return r.persisted }

func (r *Record) setPersisted(persisted bool) { r.persisted = persisted }

// persistable is satisfied by any model embedding Record.
type persistable interface {
	Persisted() bool
	setPersisted(bool)
}

func markPersisted(value interface{}, persisted bool) {
	if p, ok := value.(persistable); ok {
		p.setPersisted(persisted)
	}
}

// isPersisted decides insert vs update: the state flag when the model embeds
// Record, otherwise whether the primary key holds a non-zero value.
func (db *DB) isPersisted(value interface{}, rv reflect.Value, s *schema.Schema) bool {
	if p, ok := value.(persistable); ok {
		return p.Persisted()
	}
	if s.PrimaryField != nil {
		_, zero := s.PrimaryField.ValueOf(rv)
		return !zero
	}
	return false
}

// Values is a set of field assignments keyed by declared field name.
type Values map[string]interface{}

func sortedKeys(values Values) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Assign populates dest from attrs the way a keyword constructor would:
// unknown names fail, and required fields still unset afterwards fail
// immediately rather than at save time.
func (db *DB) Assign(dest interface{}, attrs Values) error {
	tx := db.getInstance()

	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return ErrModelValueRequired
	}

	if err := tx.Statement.Parse(dest); err != nil {
		return err
	}
	s := tx.Statement.Schema

	for _, name := range sortedKeys(attrs) {
		field := s.LookUpField(name)
		if field == nil {
			return fmt.Errorf("%w: %s has no field %s", ErrUnknownField, s.Name, name)
		}
		if err := field.Set(rv, attrs[name]); err != nil {
			return err
		}
	}

	for _, field := range s.Fields {
		if field.NotNull && !field.PrimaryKey && !field.HasDefaultValue {
			if _, zero := field.ValueOf(rv); zero {
				return fmt.Errorf("%w: field %s", ErrNotNullViolated, field.Name)
			}
		}
	}

	return nil
}
