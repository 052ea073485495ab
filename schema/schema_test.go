package schema_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragimov700/irs-test/schema"
	"github.com/ragimov700/irs-test/utils/tests"
)

func TestParseUserSchema(t *testing.T) {
	user, err := schema.Parse(&tests.User{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	assert.Equal(t, "User", user.Name)
	assert.Equal(t, "users", user.Table)

	wantFields := []string{"ID", "Name", "Email", "Age", "Active", "Token", "Birthday"}
	wantColumns := []string{"id", "name", "email", "age", "active", "token", "birthday"}
	require.Len(t, user.Fields, len(wantFields))
	for idx, field := range user.Fields {
		assert.Equal(t, wantFields[idx], field.Name)
		assert.Equal(t, wantColumns[idx], field.DBName)
	}

	require.NotNil(t, user.PrimaryField)
	assert.Equal(t, "ID", user.PrimaryField.Name)
	assert.True(t, user.PrimaryField.PrimaryKey)
	assert.True(t, user.PrimaryField.AutoIncrement)
	assert.Equal(t, schema.Int, user.PrimaryField.DataType)

	name := user.LookUpField("name")
	require.NotNil(t, name)
	assert.True(t, name.NotNull)
	assert.Equal(t, schema.String, name.DataType)

	assert.Equal(t, schema.Float, user.LookUpField("age").DataType)
	assert.Equal(t, schema.Bool, user.LookUpField("active").DataType)
	assert.Equal(t, schema.UUID, user.LookUpField("token").DataType)
	assert.Equal(t, schema.Time, user.LookUpField("birthday").DataType)
}

func TestParseSchemaCache(t *testing.T) {
	cacheStore := &sync.Map{}

	first, err := schema.Parse(&tests.User{}, cacheStore, schema.NamingStrategy{})
	require.NoError(t, err)

	second, err := schema.Parse(&[]*tests.User{}, cacheStore, schema.NamingStrategy{})
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestParseConcurrentCache(t *testing.T) {
	cacheStore := &sync.Map{}

	var wg sync.WaitGroup
	results := make([]*schema.Schema, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := schema.Parse(&tests.User{}, cacheStore, schema.NamingStrategy{})
			assert.NoError(t, err)
			results[i] = s
		}(i)
	}
	wg.Wait()

	for _, s := range results[1:] {
		assert.Same(t, results[0], s)
	}
}

func TestParseExplicitPrimaryKey(t *testing.T) {
	product, err := schema.Parse(&tests.Product{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	require.NotNil(t, product.PrimaryField)
	assert.Equal(t, "Code", product.PrimaryField.Name)
	assert.False(t, product.PrimaryField.AutoIncrement)
	assert.Equal(t, "products", product.Table)
}

func TestParseImplicitPrimaryKey(t *testing.T) {
	type Visit struct {
		ID   int64
		Page string
	}

	visit, err := schema.Parse(&Visit{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	require.NotNil(t, visit.PrimaryField)
	assert.Equal(t, "ID", visit.PrimaryField.Name)
	assert.True(t, visit.PrimaryField.AutoIncrement)
}

func TestParseTableNameOverride(t *testing.T) {
	event, err := schema.Parse(&tests.Event{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	assert.Equal(t, "event_log", event.Table)
}

func TestParseDuplicatePrimaryKey(t *testing.T) {
	type Broken struct {
		Code string `orm:"primaryKey"`
		Ref  int64  `orm:"primaryKey"`
	}

	_, err := schema.Parse(&Broken{}, &sync.Map{}, schema.NamingStrategy{})
	assert.ErrorIs(t, err, schema.ErrDuplicatePrimaryKey)
}

func TestParseEmptySchema(t *testing.T) {
	type Empty struct{}

	_, err := schema.Parse(&Empty{}, &sync.Map{}, schema.NamingStrategy{})
	assert.ErrorIs(t, err, schema.ErrEmptySchema)
}

func TestParseMissingPrimaryKey(t *testing.T) {
	type Note struct {
		Body string
	}

	_, err := schema.Parse(&Note{}, &sync.Map{}, schema.NamingStrategy{})
	assert.ErrorIs(t, err, schema.ErrMissingPrimaryKey)
}

func TestParseUnsupportedField(t *testing.T) {
	type Odd struct {
		ID   int64
		Tags map[string]string
	}

	_, err := schema.Parse(&Odd{}, &sync.Map{}, schema.NamingStrategy{})
	assert.ErrorIs(t, err, schema.ErrUnsupportedDataType)
}

func TestParseNonStruct(t *testing.T) {
	var n int
	_, err := schema.Parse(&n, &sync.Map{}, schema.NamingStrategy{})
	assert.ErrorIs(t, err, schema.ErrUnsupportedDataType)
}

func TestParseSkippedField(t *testing.T) {
	type Draft struct {
		ID    int64
		Body  string
		cache string
		Tmp   string `orm:"-"`
	}

	draft, err := schema.Parse(&Draft{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	assert.Nil(t, draft.LookUpField("Tmp"))
	assert.Nil(t, draft.LookUpField("cache"))
	assert.Len(t, draft.Fields, 2)
}

func TestParseColumnOverride(t *testing.T) {
	type Invoice struct {
		ID     int64
		Amount float64 `orm:"column:total_amount"`
	}

	invoice, err := schema.Parse(&Invoice{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	require.NotNil(t, invoice.LookUpField("total_amount"))
	assert.Same(t, invoice.LookUpField("total_amount"), invoice.LookUpField("Amount"))
}
