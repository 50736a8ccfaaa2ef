package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	analyticsapp "github.com/stockmesh/backend/internal/application/analytics"
	"github.com/stockmesh/backend/internal/domain/analytics"
	"github.com/stockmesh/backend/internal/infrastructure/config"
	"github.com/stockmesh/backend/internal/infrastructure/scheduler"
)

type marketResearcher interface {
	CollectMarketData(ctx context.Context) (*analyticsapp.ResearchSummary, error)
}

type snapshotCapturer interface {
	CaptureDailySnapshot(ctx context.Context, day time.Time) (*analytics.AnalyticsSnapshot, error)
}

// analyticsJobs returns the periodic market research and daily snapshot jobs.
// The snapshot is labelled with the current day in the scheduler time zone.
func analyticsJobs(cfg config.AnalyticsConfig, research marketResearcher, snapshots snapshotCapturer, log *zap.Logger) []scheduler.Job {
	loc := cfg.Location()
	return []scheduler.Job{
		{
			Name: scheduler.JobMarketResearch,
			Spec: cfg.ResearchCron,
			Run: func(ctx context.Context) error {
				summary, err := research.CollectMarketData(ctx)
				if err != nil {
					return err
				}
				log.Info("Market research pass finished",
					zap.Int("processed", summary.Processed),
					zap.Int("succeeded", summary.Succeeded),
					zap.Int("failed", summary.Failed),
				)
				return nil
			},
		},
		{
			Name: scheduler.JobDailySnapshot,
			Spec: cfg.SnapshotCron,
			Run: func(ctx context.Context) error {
				_, err := snapshots.CaptureDailySnapshot(ctx, time.Now().In(loc))
				return err
			},
		},
	}
}
