package orm

import (
	"errors"

	"github.com/ragimov700/irs-test/logger"
	"github.com/ragimov700/irs-test/schema"
)

var (
	// ErrRecordNotFound record not found error
	ErrRecordNotFound = logger.ErrRecordNotFound
	// ErrModelValueRequired model value required
	ErrModelValueRequired = errors.New("model value required, should be a non-nil pointer")
	// ErrUnknownField criteria or attribute name not declared on the schema
	ErrUnknownField = errors.New("unknown field")
	// ErrMissingWhereClause update or delete without a primary key value
	ErrMissingWhereClause = errors.New("WHERE conditions required")

	// schema declaration and coercion errors, re-exported so callers can
	// errors.Is against this package alone
	ErrUnsupportedDataType = schema.ErrUnsupportedDataType
	ErrEmptySchema         = schema.ErrEmptySchema
	ErrDuplicatePrimaryKey = schema.ErrDuplicatePrimaryKey
	ErrMissingPrimaryKey   = schema.ErrMissingPrimaryKey
	ErrInvalidValue        = schema.ErrInvalidValue
	ErrNotNullViolated     = schema.ErrNotNullViolated
)
