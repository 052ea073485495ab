package tests

import (
	"time"

	"github.com/google/uuid"

	orm "github.com/ragimov700/irs-test"
)

// User is the model shared across tests. It covers every built-in data kind:
// the embedded surrogate key, strings, floats, bools, uuid and nullable time.
type User struct {
	orm.Record
	Name     string `orm:"notNull"`
	Email    string
	Age      float64
	Active   bool
	Token    uuid.UUID
	Birthday *time.Time
}

// Product declares its own primary key instead of embedding Record.
type Product struct {
	Code  string `orm:"primaryKey"`
	Title string
	Price float64
}

// Event overrides its table name.
type Event struct {
	orm.Record
	Payload []byte
}

func (Event) TableName() string {
	return "event_log"
}
