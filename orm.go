// Package orm is a small declarative object-relational mapper: a struct
// describes a table, field tags describe the columns, and the class-level
// operations All, Filter and Save are translated into statements executed by
// a pluggable dialect. It deliberately stops short of joins, migrations and
// lazy relations.
package orm

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ragimov700/irs-test/clause"
	"github.com/ragimov700/irs-test/logger"
	"github.com/ragimov700/irs-test/schema"
)

// Config ORM config
type Config struct {
	// NamingStrategy tables, columns naming strategy
	NamingStrategy schema.Namer
	// Logger
	Logger logger.Interface
	// NowFunc the function to be used when creating a new timestamp
	NowFunc func() time.Time
	// DryRun generate statements without executing
	DryRun bool

	// ClauseBuilders clause builder
	ClauseBuilders map[string]clause.ClauseBuilder
	// ConnPool db conn pool
	ConnPool ConnPool
	// Dialector database dialector
	Dialector

	cacheStore *sync.Map
}

// DB ORM DB definition
type DB struct {
	*Config
	Error        error
	RowsAffected int64
	Statement    *Statement
	clone        int
}

// Session session config when creating a session with the Session method
type Session struct {
	DryRun  bool
	Context context.Context
	Logger  logger.Interface
	NowFunc func() time.Time
}

// Open initialize db session based on dialector
func Open(dialector Dialector, config *Config) (db *DB, err error) {
	if config == nil {
		config = &Config{}
	}

	if config.NamingStrategy == nil {
		config.NamingStrategy = schema.NamingStrategy{}
	}

	if config.Logger == nil {
		config.Logger = logger.Default
	}

	if config.NowFunc == nil {
		config.NowFunc = func() time.Time { return time.Now().Local() }
	}

	if config.ClauseBuilders == nil {
		config.ClauseBuilders = map[string]clause.ClauseBuilder{}
	}

	if config.cacheStore == nil {
		config.cacheStore = &sync.Map{}
	}

	if dialector != nil {
		config.Dialector = dialector
	}

	db = &DB{Config: config, clone: 1}

	if config.Dialector != nil {
		err = config.Dialector.Initialize(db)
	}
	return
}

// Register parses model schemas up front so declaration errors surface at
// startup rather than at first use.
func (db *DB) Register(models ...interface{}) error {
	for _, model := range models {
		if _, err := schema.Parse(model, db.cacheStore, db.NamingStrategy); err != nil {
			return err
		}
	}
	return nil
}

// Session create new db session
func (db *DB) Session(config *Session) *DB {
	var (
		txConfig = *db.Config
		tx       = &DB{
			Config:    &txConfig,
			Statement: db.Statement,
			clone:     1,
		}
	)

	if config.Context != nil {
		if tx.Statement != nil {
			tx.Statement = tx.Statement.clone()
			tx.Statement.DB = tx
		} else {
			tx.Statement = &Statement{
				DB:       tx,
				Clauses:  map[string]clause.Clause{},
				ConnPool: tx.ConnPool,
			}
		}

		tx.Statement.Context = config.Context
	}

	if config.DryRun {
		tx.Config.DryRun = true
	}

	if config.Logger != nil {
		tx.Config.Logger = config.Logger
	}

	if config.NowFunc != nil {
		tx.Config.NowFunc = config.NowFunc
	}

	return tx
}

// WithContext change current instance db's context to ctx
func (db *DB) WithContext(ctx context.Context) *DB {
	return db.Session(&Session{Context: ctx})
}

// Debug start debug mode
func (db *DB) Debug() (tx *DB) {
	return db.Session(&Session{
		Logger: db.Logger.LogMode(logger.Info),
	})
}

// explain interpolates vars into sql for trace output, honoring the logger's
// parameter filter when it has one.
func (db *DB) explain(sqlStr string, vars []interface{}) string {
	if pf, ok := db.Logger.(logger.ParamsFilter); ok {
		sqlStr, vars = pf.ParamsFilter(db.Statement.Context, sqlStr, vars...)
	}
	return db.Dialector.Explain(sqlStr, vars...)
}

// AddError add error to db
func (db *DB) AddError(err error) error {
	if err == nil {
		return db.Error
	}
	if db.Error == nil {
		db.Error = err
	} else {
		db.Error = fmt.Errorf("%v; %w", db.Error, err)
	}
	return db.Error
}

func (db *DB) getInstance() *DB {
	if db.clone > 0 {
		tx := &DB{Config: db.Config, clone: 0}
		tx.Statement = &Statement{
			DB:      tx,
			Clauses: map[string]clause.Clause{},
		}

		if db.Statement != nil {
			tx.Statement.Context = db.Statement.Context
			tx.Statement.ConnPool = db.Statement.ConnPool
		} else {
			tx.Statement.Context = context.Background()
			tx.Statement.ConnPool = db.ConnPool
		}

		return tx
	}

	return db
}
