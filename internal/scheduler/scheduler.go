package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the daily score summary job.
type Scheduler struct {
	cron        *cron.Cron
	ctx         context.Context
	cancel      context.CancelFunc
	summaryFunc func(ctx context.Context) error
}

func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetSummaryFunction sets the job executed on the daily schedule.
func (s *Scheduler) SetSummaryFunction(f func(ctx context.Context) error) {
	s.summaryFunc = f
}

// Start registers the daily 21:00 UTC job and starts the cron loop.
func (s *Scheduler) Start() error {
	if s.summaryFunc == nil {
		log.Println("summary function not set, scheduler will not run")
		return nil
	}

	_, err := s.cron.AddFunc("0 21 * * *", func() {
		if err := s.summaryFunc(s.ctx); err != nil {
			log.Printf("daily score summary failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("scheduler started - daily score summary at 21:00 UTC")
	return nil
}

// Stop drains running jobs and stops the scheduler.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	log.Println("scheduler stopped")
}
