package schema_test

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragimov700/irs-test/schema"
	"github.com/ragimov700/irs-test/utils/tests"
)

func userFieldsFixture(t *testing.T) (*schema.Schema, reflect.Value, *tests.User) {
	t.Helper()
	userSchema, err := schema.Parse(&tests.User{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	user := &tests.User{}
	return userSchema, reflect.ValueOf(user), user
}

func TestFieldSetCoercions(t *testing.T) {
	userSchema, rv, user := userFieldsFixture(t)
	token := uuid.MustParse("b9cd4b53-97a5-45fc-8d79-ad17eeddbba5")

	tests := []struct {
		name   string
		column string
		value  interface{}
		check  func(t *testing.T)
	}{
		{"int64 into id", "id", int64(5), func(t *testing.T) {
			assert.Equal(t, int64(5), user.ID)
		}},
		{"bytes into string", "name", []byte("alice"), func(t *testing.T) {
			assert.Equal(t, "alice", user.Name)
		}},
		{"int64 into float", "age", int64(20), func(t *testing.T) {
			assert.Equal(t, 20.0, user.Age)
		}},
		{"string into float", "age", "20.5", func(t *testing.T) {
			assert.Equal(t, 20.5, user.Age)
		}},
		{"int64 into bool", "active", int64(1), func(t *testing.T) {
			assert.True(t, user.Active)
		}},
		{"string into bool", "active", "false", func(t *testing.T) {
			assert.False(t, user.Active)
		}},
		{"string into uuid", "token", token.String(), func(t *testing.T) {
			assert.Equal(t, token, user.Token)
		}},
		{"string into time pointer", "birthday", "2024-03-01 10:30:00", func(t *testing.T) {
			require.NotNil(t, user.Birthday)
			assert.Equal(t, time.Date(2024, 3, 1, 10, 30, 0, 0, time.Local), *user.Birthday)
		}},
		{"nil resets pointer", "birthday", nil, func(t *testing.T) {
			assert.Nil(t, user.Birthday)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := userSchema.LookUpField(tt.column)
			require.NotNil(t, field)
			require.NoError(t, field.Set(rv, tt.value))
			tt.check(t)
		})
	}
}

func TestFieldSetInvalidValue(t *testing.T) {
	userSchema, rv, _ := userFieldsFixture(t)

	tests := []struct {
		name   string
		column string
		value  interface{}
	}{
		{"word into float", "age", "not-a-number"},
		{"word into bool", "active", "maybe"},
		{"word into uuid", "token", "not-a-uuid"},
		{"word into time", "birthday", "not-a-time"},
		{"struct into string", "name", struct{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := userSchema.LookUpField(tt.column).Set(rv, tt.value)
			assert.ErrorIs(t, err, schema.ErrInvalidValue)
		})
	}
}

func TestFieldStorageValueRoundTrip(t *testing.T) {
	userSchema, rv, _ := userFieldsFixture(t)
	token := uuid.MustParse("b9cd4b53-97a5-45fc-8d79-ad17eeddbba5")
	birthday := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	values := map[string]interface{}{
		"id":       int64(3),
		"name":     "alice",
		"age":      30.5,
		"active":   true,
		"token":    token,
		"birthday": birthday,
	}

	for column, value := range values {
		t.Run(column, func(t *testing.T) {
			field := userSchema.LookUpField(column)
			require.NotNil(t, field)

			stored, err := field.StorageValue(value)
			require.NoError(t, err)
			require.NoError(t, field.Set(rv, stored))

			got, zero := field.ValueOf(rv)
			assert.False(t, zero)
			assert.Equal(t, value, got)
		})
	}
}

func TestFieldUintRoundTrip(t *testing.T) {
	type Counter struct {
		ID   int64
		Hits uint64
	}

	counterSchema, err := schema.Parse(&Counter{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	counter := &Counter{}
	rv := reflect.ValueOf(counter)
	hits := counterSchema.LookUpField("hits")
	require.NotNil(t, hits)
	assert.Equal(t, schema.Uint, hits.DataType)

	require.NoError(t, hits.Set(rv, int64(5)))
	assert.Equal(t, uint64(5), counter.Hits)

	stored, err := hits.StorageValue(uint64(12))
	require.NoError(t, err)
	assert.Equal(t, int64(12), stored)

	require.NoError(t, hits.Set(rv, stored))
	assert.Equal(t, uint64(12), counter.Hits)

	require.NoError(t, hits.Set(rv, "34"))
	assert.Equal(t, uint64(34), counter.Hits)

	err = hits.Set(rv, "not-a-number")
	assert.ErrorIs(t, err, schema.ErrInvalidValue)
}

func TestFieldStorageValueUUID(t *testing.T) {
	userSchema, _, _ := userFieldsFixture(t)
	token := uuid.MustParse("b9cd4b53-97a5-45fc-8d79-ad17eeddbba5")

	stored, err := userSchema.LookUpField("token").StorageValue(token)
	require.NoError(t, err)
	assert.Equal(t, token.String(), stored)
}

func TestFieldStorageValueInvalid(t *testing.T) {
	userSchema, _, _ := userFieldsFixture(t)

	_, err := userSchema.LookUpField("age").StorageValue("abc")
	assert.ErrorIs(t, err, schema.ErrInvalidValue)

	_, err = userSchema.LookUpField("active").StorageValue(42)
	assert.ErrorIs(t, err, schema.ErrInvalidValue)
}

func TestFieldToStorageNotNull(t *testing.T) {
	userSchema, rv, user := userFieldsFixture(t)
	name := userSchema.LookUpField("name")

	_, err := name.ToStorage(rv)
	assert.ErrorIs(t, err, schema.ErrNotNullViolated)

	user.Name = "alice"
	v, err := name.ToStorage(rv)
	require.NoError(t, err)
	assert.Equal(t, "alice", v)
}

func TestFieldToStorageNilPointer(t *testing.T) {
	userSchema, rv, _ := userFieldsFixture(t)

	v, err := userSchema.LookUpField("birthday").ToStorage(rv)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestFieldDefaultValue(t *testing.T) {
	type Setting struct {
		ID      int64
		Retries int64  `orm:"default:3"`
		Mode    string `orm:"default:fast"`
	}

	settingSchema, err := schema.Parse(&Setting{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	retries := settingSchema.LookUpField("retries")
	require.True(t, retries.HasDefaultValue)
	assert.Equal(t, int64(3), retries.DefaultValueInterface)

	rv := reflect.ValueOf(&Setting{})
	v, err := retries.ToStorage(rv)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	mode := settingSchema.LookUpField("mode")
	v, err = mode.ToStorage(rv)
	require.NoError(t, err)
	assert.Equal(t, "fast", v)
}
