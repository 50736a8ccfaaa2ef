package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stockmesh/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Job names
const (
	JobMarketResearch = "market_research"
	JobDailySnapshot  = "daily_snapshot"
)

// Default schedules, six-field cron with seconds
const (
	DefaultMarketResearchSpec = "0 0 */6 * * *"
	DefaultDailySnapshotSpec  = "0 0 1 * * *"
	DefaultJobTimeout         = 10 * time.Minute
)

// Job is a named unit of work run on a cron schedule
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

// EntryInfo describes a registered job and its next activation
type EntryInfo struct {
	Name string    `json:"name"`
	Spec string    `json:"spec"`
	Next time.Time `json:"next"`
	Prev time.Time `json:"prev"`
}

// RunnerConfig holds configuration for the cron runner
type RunnerConfig struct {
	// JobTimeout bounds a single job run
	JobTimeout time.Duration
	// Location is the time zone schedules are evaluated in (UTC if nil)
	Location *time.Location
}

// DefaultRunnerConfig returns default runner configuration
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		JobTimeout: DefaultJobTimeout,
		Location:   time.UTC,
	}
}

// Runner runs registered jobs on their cron schedules.
// A job still running when its next activation fires is skipped, and a
// panicking job is recovered and logged.
type Runner struct {
	cron    *cron.Cron
	config  RunnerConfig
	logger  *zap.Logger
	metrics *telemetry.SyncMetrics

	mu      sync.Mutex
	jobs    map[string]Job
	entries map[string]cron.EntryID
	baseCtx context.Context
	cancel  context.CancelFunc
	running bool
}

// NewRunner creates a new cron runner
func NewRunner(config RunnerConfig, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.JobTimeout <= 0 {
		config.JobTimeout = DefaultJobTimeout
	}
	if config.Location == nil {
		config.Location = time.UTC
	}

	cl := cronLogger{logger: logger.Named("cron")}
	return &Runner{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(config.Location),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		config:  config,
		logger:  logger,
		jobs:    make(map[string]Job),
		entries: make(map[string]cron.EntryID),
	}
}

// SetMetrics sets the metrics collector for job timing
func (r *Runner) SetMetrics(m *telemetry.SyncMetrics) {
	r.metrics = m
}

// Register adds a job. Jobs may be registered before or after Start.
func (r *Runner) Register(job Job) error {
	if job.Name == "" || job.Spec == "" || job.Run == nil {
		return ErrInvalidJob
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[job.Name]; ok {
		return fmt.Errorf("%w: %s", ErrJobExists, job.Name)
	}

	id, err := r.cron.AddFunc(job.Spec, func() {
		_ = r.execute(r.jobContext(), job)
	})
	if err != nil {
		return fmt.Errorf("scheduler: invalid schedule %q for %s: %w", job.Spec, job.Name, err)
	}

	r.jobs[job.Name] = job
	r.entries[job.Name] = id
	r.logger.Info("Job registered",
		zap.String("job", job.Name),
		zap.String("spec", job.Spec))
	return nil
}

// Start begins firing jobs on schedule. Job contexts derive from ctx.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return
	}
	r.baseCtx, r.cancel = context.WithCancel(ctx)
	r.running = true
	r.cron.Start()

	r.logger.Info("Scheduler started", zap.Int("jobs", len(r.jobs)))
}

// Stop stops scheduling and waits for running jobs to finish or ctx to
// expire, in which case running jobs are cancelled.
func (r *Runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = false
	cancel := r.cancel
	r.mu.Unlock()

	done := r.cron.Stop()
	select {
	case <-done.Done():
		cancel()
		r.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		cancel()
		<-done.Done()
		r.logger.Warn("Scheduler stopped before running jobs finished")
		return ctx.Err()
	}
}

// IsRunning reports whether the runner is firing jobs
func (r *Runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// RunNow runs a registered job immediately and returns its error
func (r *Runner) RunNow(ctx context.Context, name string) error {
	r.mu.Lock()
	job, ok := r.jobs[name]
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	return r.execute(ctx, job)
}

// Entries lists registered jobs ordered by name
func (r *Runner) Entries() []EntryInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]EntryInfo, 0, len(r.entries))
	for name, id := range r.entries {
		e := r.cron.Entry(id)
		out = append(out, EntryInfo{
			Name: name,
			Spec: r.jobs[name].Spec,
			Next: e.Next,
			Prev: e.Prev,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Runner) jobContext() context.Context {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.baseCtx == nil {
		return context.Background()
	}
	return r.baseCtx
}

func (r *Runner) execute(ctx context.Context, job Job) (err error) {
	ctx, cancel := context.WithTimeout(ctx, r.config.JobTimeout)
	defer cancel()

	start := time.Now()
	r.logger.Info("Job started", zap.String("job", job.Name))

	// SkipIfStillRunning only frees its slot when the job returns normally,
	// so panics must not escape to cron.Recover.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %s: %v", ErrJobPanicked, job.Name, rec)
			r.logger.Error("Job panicked",
				zap.String("job", job.Name),
				zap.Any("panic", rec),
				zap.Stack("stack"))
		}

		elapsed := time.Since(start)
		r.metrics.RecordJob(ctx, job.Name, err, elapsed)
		if err != nil {
			r.logger.Error("Job failed",
				zap.String("job", job.Name),
				zap.Duration("duration", elapsed),
				zap.Error(err))
			return
		}
		r.logger.Info("Job completed",
			zap.String("job", job.Name),
			zap.Duration("duration", elapsed))
	}()

	return job.Run(ctx)
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, zap.Any("details", keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, zap.Error(err), zap.Any("details", keysAndValues))
}
