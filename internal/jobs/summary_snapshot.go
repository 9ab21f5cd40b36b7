package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

const snapshotTimeout = time.Minute

type summarizer interface {
	Summarize(ctx context.Context) (domain.Summary, error)
}

// SummarySnapshot periodically logs per-status ticket counts.
type SummarySnapshot struct {
	logger  *zap.Logger
	summary summarizer
	c       *cron.Cron
}

// NewSummarySnapshot schedules the snapshot with a five-field cron spec.
func NewSummarySnapshot(spec string, summary summarizer, logger *zap.Logger) (*SummarySnapshot, error) {
	c := cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)))
	job := &SummarySnapshot{logger: logger, summary: summary, c: c}
	if _, err := c.AddFunc(spec, job.Run); err != nil {
		return nil, fmt.Errorf("invalid summary snapshot schedule %q: %w", spec, err)
	}
	return job, nil
}

func (j *SummarySnapshot) Start() { j.c.Start() }

// Stop waits for a running snapshot to finish.
func (j *SummarySnapshot) Stop() { <-j.c.Stop().Done() }

// Run takes one snapshot.
func (j *SummarySnapshot) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	s, err := j.summary.Summarize(ctx)
	if err != nil {
		j.logger.Error("summary snapshot failed", zap.Error(err))
		return
	}
	j.logger.Info("summary snapshot",
		zap.Int("new", s.New),
		zap.Int("assigned", s.Assigned),
		zap.Int("resolved", s.Resolved),
		zap.Int("approved", s.Approved),
		zap.Int("disapproved", s.Disapproved),
		zap.Int("closed", s.Closed),
	)
}
