package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBConfig holds configuration for database instrumentation.
type DBConfig struct {
	TracingEnabled bool
	MetricsEnabled bool
	// LogFullSQL includes query variables in spans. Dev only.
	LogFullSQL         bool
	DBSystem           string
	SlowQueryThreshold time.Duration
	PoolStatsInterval  time.Duration
}

// DefaultDBConfig returns default database instrumentation configuration.
func DefaultDBConfig() DBConfig {
	return DBConfig{
		TracingEnabled:     false,
		MetricsEnabled:     true,
		LogFullSQL:         false,
		DBSystem:           "postgresql",
		SlowQueryThreshold: 200 * time.Millisecond,
		PoolStatsInterval:  15 * time.Second,
	}
}

type dbStartKey struct{}

// DBInstrumentation is a gorm plugin that traces queries through otelgorm,
// annotates query spans (rows, table, slow queries) and records query and
// connection pool metrics.
type DBInstrumentation struct {
	config DBConfig
	logger *zap.Logger

	queryTotal     *Counter
	queryDuration  *Histogram
	slowQueryTotal *Counter
	poolConns      *Gauge
	poolConnsMax   *Gauge

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewDBInstrumentation creates the plugin. A nil meter disables metrics.
func NewDBInstrumentation(cfg DBConfig, meter metric.Meter, logger *zap.Logger) (*DBInstrumentation, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SlowQueryThreshold <= 0 {
		cfg.SlowQueryThreshold = 200 * time.Millisecond
	}
	if cfg.PoolStatsInterval <= 0 {
		cfg.PoolStatsInterval = 15 * time.Second
	}
	if cfg.DBSystem == "" {
		cfg.DBSystem = "postgresql"
	}
	if meter == nil {
		cfg.MetricsEnabled = false
	}

	d := &DBInstrumentation{config: cfg, logger: logger, stopCh: make(chan struct{})}
	if !cfg.MetricsEnabled {
		return d, nil
	}

	var err error
	if d.queryTotal, err = NewCounter(meter, "db_query_total", "Total number of database queries by operation", "{query}"); err != nil {
		return nil, err
	}
	if d.queryDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "db_query_duration_seconds",
		Description: "Database query latency in seconds",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	}); err != nil {
		return nil, err
	}
	if d.slowQueryTotal, err = NewCounter(meter, "db_slow_query_total", "Total number of slow database queries by table", "{query}"); err != nil {
		return nil, err
	}
	if d.poolConns, err = NewGauge(meter, "db_pool_connections", "Connections in the pool by state", "{connection}"); err != nil {
		return nil, err
	}
	if d.poolConnsMax, err = NewGauge(meter, "db_pool_connections_max", "Maximum open connections", "{connection}"); err != nil {
		return nil, err
	}
	return d, nil
}

// Name implements gorm.Plugin.
func (d *DBInstrumentation) Name() string {
	return "stockmesh:db_instrumentation"
}

// Initialize implements gorm.Plugin. The timing callbacks are registered
// before otelgorm's so they see the query span while it is still open.
func (d *DBInstrumentation) Initialize(db *gorm.DB) error {
	if !d.config.TracingEnabled && !d.config.MetricsEnabled {
		d.logger.Debug("Database instrumentation disabled")
		return nil
	}

	if err := d.registerCallbacks(db); err != nil {
		return err
	}

	if d.config.TracingEnabled {
		opts := []otelgorm.Option{otelgorm.WithDBName(d.config.DBSystem)}
		if !d.config.LogFullSQL {
			opts = append(opts, otelgorm.WithoutQueryVariables())
		}
		if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
			return err
		}
	}

	d.logger.Info("Database instrumentation enabled",
		zap.Bool("tracing", d.config.TracingEnabled),
		zap.Bool("metrics", d.config.MetricsEnabled),
		zap.Duration("slow_query_threshold", d.config.SlowQueryThreshold),
	)
	return nil
}

func (d *DBInstrumentation) registerCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register("stockmesh:before_create", d.before); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("stockmesh:before_query", d.before); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("stockmesh:before_update", d.before); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("stockmesh:before_delete", d.before); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register("stockmesh:before_row", d.before); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("stockmesh:before_raw", d.before); err != nil {
		return err
	}

	if err := cb.Create().After("gorm:create").Register("stockmesh:after_create", d.after("INSERT")); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("stockmesh:after_query", d.after("SELECT")); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("stockmesh:after_update", d.after("UPDATE")); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("stockmesh:after_delete", d.after("DELETE")); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register("stockmesh:after_row", d.after("")); err != nil {
		return err
	}
	return cb.Raw().After("gorm:raw").Register("stockmesh:after_raw", d.after(""))
}

func (d *DBInstrumentation) before(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	db.Statement.Context = context.WithValue(ctx, dbStartKey{}, time.Now())
}

// after returns the completion callback; an empty operation is detected from the SQL.
func (d *DBInstrumentation) after(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			return
		}
		op := operation
		if op == "" {
			op = detectOperation(db.Statement.SQL.String())
		}

		var elapsed time.Duration
		if start, ok := ctx.Value(dbStartKey{}).(time.Time); ok {
			elapsed = time.Since(start)
		}
		slow := elapsed > d.config.SlowQueryThreshold

		d.annotateSpan(ctx, db, elapsed, slow)
		d.RecordQuery(ctx, op, db.Statement.Table, elapsed)
	}
}

func (d *DBInstrumentation) annotateSpan(ctx context.Context, db *gorm.DB, elapsed time.Duration, slow bool) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		RecordError(span, db.Error)
	}
	if slow {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		span.AddEvent("slow_query_warning", trace.WithAttributes(
			attribute.Int64("duration_ms", elapsed.Milliseconds()),
			attribute.Int64("threshold_ms", d.config.SlowQueryThreshold.Milliseconds()),
		))
	}
}

// RecordQuery records count and latency of one query; slow queries are
// also counted per table.
func (d *DBInstrumentation) RecordQuery(ctx context.Context, operation, table string, elapsed time.Duration) {
	if !d.config.MetricsEnabled {
		return
	}
	operation = strings.ToUpper(operation)
	if operation == "" {
		operation = "UNKNOWN"
	}
	d.queryTotal.Inc(ctx, AttrDBOperation.String(operation))
	d.queryDuration.RecordDuration(ctx, elapsed, AttrDBOperation.String(operation))
	if elapsed > d.config.SlowQueryThreshold {
		if table == "" {
			table = "unknown"
		}
		d.slowQueryTotal.Inc(ctx, AttrDBTable.String(table))
	}
}

// StartPoolStats samples sqlDB pool statistics every PoolStatsInterval
// until Stop is called or ctx is done.
func (d *DBInstrumentation) StartPoolStats(ctx context.Context, sqlDB *sql.DB) {
	if !d.config.MetricsEnabled || sqlDB == nil {
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ticker := time.NewTicker(d.config.PoolStatsInterval)
		defer ticker.Stop()

		d.recordPoolStats(ctx, sqlDB)
		for {
			select {
			case <-ticker.C:
				d.recordPoolStats(ctx, sqlDB)
			case <-d.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (d *DBInstrumentation) recordPoolStats(ctx context.Context, sqlDB *sql.DB) {
	stats := sqlDB.Stats()
	d.poolConnsMax.Record(ctx, int64(stats.MaxOpenConnections))
	d.poolConns.Record(ctx, int64(stats.Idle), AttrDBState.String("idle"))
	d.poolConns.Record(ctx, int64(stats.InUse), AttrDBState.String("in_use"))
	d.poolConns.Record(ctx, int64(stats.OpenConnections), AttrDBState.String("open"))
}

// Stop ends pool stats sampling. Safe to call more than once.
func (d *DBInstrumentation) Stop() {
	d.stopOnce.Do(func() {
		close(d.stopCh)
		d.wg.Wait()
	})
}

func detectOperation(sql string) string {
	sql = strings.ToUpper(strings.TrimSpace(sql))
	for _, op := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sql, op) {
			return op
		}
	}
	return "OTHER"
}
