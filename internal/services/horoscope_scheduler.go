package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type HoroscopeRefresher interface {
	Refresh(ctx context.Context, now time.Time) (HoroscopeRefreshResult, error)
}

// HoroscopeRefreshJob is the cron job wrapping one refresh run.
type HoroscopeRefreshJob struct {
	refresher HoroscopeRefresher
	ctx       context.Context
	timeout   time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

func (job *HoroscopeRefreshJob) Run() {
	ctx, cancel := context.WithTimeout(job.ctx, job.timeout)
	defer cancel()

	result, err := job.refresher.Refresh(ctx, job.now())
	if err != nil {
		if errors.Is(err, ErrHoroscopeCredentialMissing) {
			job.logger.Warn("scheduled horoscope refresh skipped", zap.Error(err))
			return
		}
		job.logger.Error("scheduled horoscope refresh failed", zap.Error(err))
		return
	}
	job.logger.Info("scheduled horoscope refresh finished",
		zap.Int("inserted", result.Inserted),
		zap.Strings("skipped", result.Skipped),
	)
}

// HoroscopeScheduler runs the refresh on a cron schedule in UTC. An empty
// schedule yields a scheduler whose Start and Stop do nothing.
type HoroscopeScheduler struct {
	cron     *cron.Cron
	job      *HoroscopeRefreshJob
	schedule string
	cancel   context.CancelFunc
}

func NewHoroscopeScheduler(refresher HoroscopeRefresher, schedule string, logger *zap.Logger) (*HoroscopeScheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	schedule = strings.TrimSpace(schedule)
	scheduler := &HoroscopeScheduler{schedule: schedule}
	if schedule == "" {
		return scheduler, nil
	}
	if refresher == nil {
		return nil, errors.New("horoscope scheduler requires a refresher")
	}

	ctx, cancel := context.WithCancel(context.Background())
	scheduler.cancel = cancel
	scheduler.job = &HoroscopeRefreshJob{
		refresher: refresher,
		ctx:       ctx,
		timeout:   5 * time.Minute,
		now:       time.Now,
		logger:    logger.Named("scheduler"),
	}
	scheduler.cron = cron.New(cron.WithLocation(time.UTC))
	if _, err := scheduler.cron.AddJob(schedule, scheduler.job); err != nil {
		cancel()
		return nil, fmt.Errorf("invalid horoscope refresh schedule %q: %w", schedule, err)
	}
	return scheduler, nil
}

func (scheduler *HoroscopeScheduler) Enabled() bool {
	return scheduler.cron != nil
}

func (scheduler *HoroscopeScheduler) Start() {
	if scheduler.cron != nil {
		scheduler.cron.Start()
	}
}

// Stop cancels an in-flight run and waits for it to return.
func (scheduler *HoroscopeScheduler) Stop() {
	if scheduler.cron == nil {
		return
	}
	scheduler.cancel()
	<-scheduler.cron.Stop().Done()
}
