package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

func sqlFn() (string, int64) {
	return `SELECT * FROM "listings" WHERE item_id = 'x'`, 2
}

func TestGormLogger_Trace(t *testing.T) {
	tests := []struct {
		name    string
		level   gormlogger.LogLevel
		elapsed time.Duration
		err     error
		wantMsg string
		wantLvl zapcore.Level
	}{
		{"error logged", gormlogger.Error, time.Millisecond, errors.New("connection reset"), "SQL error", zapcore.ErrorLevel},
		{"record not found ignored", gormlogger.Info, time.Millisecond, gormlogger.ErrRecordNotFound, "", 0},
		{"slow query warned", gormlogger.Warn, time.Second, nil, "Slow SQL", zapcore.WarnLevel},
		{"slow query hidden at error level", gormlogger.Error, time.Second, nil, "", 0},
		{"query at info level", gormlogger.Info, time.Millisecond, nil, "SQL query", zapcore.DebugLevel},
		{"fast query hidden at warn level", gormlogger.Warn, time.Millisecond, nil, "", 0},
		{"silent", gormlogger.Silent, time.Second, errors.New("x"), "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, logs := observed()
			gl := NewGormLogger(l, tt.level)
			gl.Trace(context.Background(), time.Now().Add(-tt.elapsed), sqlFn, tt.err)

			if tt.wantMsg == "" {
				assert.Zero(t, logs.Len())
				return
			}
			entries := logs.All()
			if assert.Len(t, entries, 1) {
				assert.Equal(t, tt.wantMsg, entries[0].Message)
				assert.Equal(t, tt.wantLvl, entries[0].Level)
				assert.Equal(t, "gorm", entries[0].LoggerName)
				assert.Equal(t, int64(2), entries[0].ContextMap()["rows"])
			}
		})
	}
}

func TestGormLogger_Options(t *testing.T) {
	l, logs := observed()
	gl := NewGormLogger(l, gormlogger.Warn, WithSlowThreshold(0), WithIgnoreRecordNotFoundError(false))

	gl.Trace(context.Background(), time.Now().Add(-time.Hour), sqlFn, nil)
	assert.Zero(t, logs.Len())

	gl.Trace(context.Background(), time.Now(), sqlFn, gormlogger.ErrRecordNotFound)
	assert.Equal(t, 1, logs.Len())
}

func TestGormLogger_RequestIDAndLogMode(t *testing.T) {
	l, logs := observed()
	gl := NewGormLogger(l, gormlogger.Silent)

	info := gl.LogMode(gormlogger.Info)
	ctx, _ := WithRequestID(context.Background(), l, "req-9")
	info.Info(ctx, "migrated %d tables", 6)
	gl.Info(ctx, "suppressed")

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "migrated 6 tables", entries[0].Message)
	assert.Equal(t, "req-9", entries[0].ContextMap()["request_id"])
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("unknown"))
}
