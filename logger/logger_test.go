package logger_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragimov700/irs-test/logger"
)

func bufferedZerolog(level logger.LogLevel, config logger.Config) (logger.Interface, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	config.LogLevel = level
	return logger.NewZerologLogger(zerolog.New(buf), config), buf
}

func TestZerologTraceInfo(t *testing.T) {
	l, buf := bufferedZerolog(logger.Info, logger.Config{})

	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM `users`", 3
	}, nil)

	out := buf.String()
	assert.Contains(t, out, "SELECT * FROM `users`")
	assert.Contains(t, out, `"rows":3`)
	assert.Contains(t, out, `"level":"info"`)
}

func TestZerologTraceError(t *testing.T) {
	l, buf := bufferedZerolog(logger.Error, logger.Config{})

	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM `users`", -1
	}, errors.New("disk I/O error"))

	out := buf.String()
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, "disk I/O error")
	assert.NotContains(t, out, `"rows"`)
}

func TestZerologTraceIgnoreRecordNotFound(t *testing.T) {
	l, buf := bufferedZerolog(logger.Error, logger.Config{IgnoreRecordNotFoundError: true})

	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM `users`", 0
	}, logger.ErrRecordNotFound)

	assert.Empty(t, buf.String())
}

func TestZerologTraceSlowQuery(t *testing.T) {
	l, buf := bufferedZerolog(logger.Warn, logger.Config{SlowThreshold: time.Millisecond})

	l.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) {
		return "SELECT * FROM `users`", 1
	}, nil)

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, "slow_threshold")
}

func TestZerologLevelGate(t *testing.T) {
	l, buf := bufferedZerolog(logger.Warn, logger.Config{})

	l.Info(context.Background(), "hidden")
	assert.Empty(t, buf.String())

	l.Warn(context.Background(), "shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestZerologLogMode(t *testing.T) {
	l, buf := bufferedZerolog(logger.Silent, logger.Config{})

	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT 1", 1
	}, nil)
	assert.Empty(t, buf.String())

	verbose := l.LogMode(logger.Info)
	verbose.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT 1", 1
	}, nil)
	assert.Contains(t, buf.String(), "SELECT 1")
}

func TestParamsFilter(t *testing.T) {
	l, _ := bufferedZerolog(logger.Info, logger.Config{ParameterizedQueries: true})
	pf, ok := l.(logger.ParamsFilter)
	require.True(t, ok)

	sql, params := pf.ParamsFilter(context.Background(), "SELECT ?", "x")
	assert.Equal(t, "SELECT ?", sql)
	assert.Nil(t, params)

	l, _ = bufferedZerolog(logger.Info, logger.Config{})
	sql, params = l.(logger.ParamsFilter).ParamsFilter(context.Background(), "SELECT ?", "x")
	assert.Equal(t, "SELECT ?", sql)
	assert.Equal(t, []interface{}{"x"}, params)
}

func TestExplainSQL(t *testing.T) {
	birthday := time.Date(1994, 3, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		sql  string
		vars []interface{}
		want string
	}{
		{
			"strings and numbers",
			"SELECT * FROM `users` WHERE `name` = ? AND `age` > ?",
			[]interface{}{"alice", 18},
			"SELECT * FROM `users` WHERE `name` = 'alice' AND `age` > 18",
		},
		{
			"bool and float",
			"UPDATE `users` SET `active`=?,`age`=?",
			[]interface{}{true, 30.5},
			"UPDATE `users` SET `active`=true,`age`=30.500000",
		},
		{
			"time",
			"UPDATE `users` SET `birthday`=?",
			[]interface{}{birthday},
			"UPDATE `users` SET `birthday`='1994-03-01 10:30:00'",
		},
		{
			"nil",
			"UPDATE `users` SET `birthday`=?",
			[]interface{}{nil},
			"UPDATE `users` SET `birthday`=NULL",
		},
		{
			"escaped quote",
			"SELECT * FROM `users` WHERE `name` = ?",
			[]interface{}{"o'hara"},
			"SELECT * FROM `users` WHERE `name` = 'o\\'hara'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.ExplainSQL(tt.sql, "'", tt.vars...))
		})
	}
}
