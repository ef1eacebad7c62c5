// Package cron runs the scheduled background jobs: the daily expense
// reminders and the monthly report mailing.
package cron

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// A Job is a named unit of scheduled work. Due decides on every tick
// whether the job runs.
type Job struct {
	Name string
	Due  func(now time.Time) bool
	Run  func(ctx context.Context)
}

// Scheduler ticks at a fixed resolution and runs every job that is due.
type Scheduler struct {
	// Tick is the clock resolution. Schedules are matched to the
	// minute, so anything coarser will miss them.
	Tick time.Duration

	jobs []Job
}

func NewScheduler(jobs ...Job) *Scheduler {
	return &Scheduler{
		Tick: time.Minute,
		jobs: jobs,
	}
}

// Run blocks until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Tick)
	defer ticker.Stop()

	log.Info().Int("jobs", len(s.jobs)).Msg("cron scheduler started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("cron scheduler stopped")
			return
		case now := <-ticker.C:
			for _, job := range s.jobs {
				if !job.Due(now) {
					continue
				}

				log.Info().Str("job", job.Name).Msg("running cron job")
				job.Run(ctx)
			}
		}
	}
}

// DailyAt returns a schedule matching a HH:MM wall clock time once a
// day. The format is validated by the configuration.
func DailyAt(at string) func(time.Time) bool {
	t, _ := time.Parse("15:04", at)
	return func(now time.Time) bool {
		return now.Hour() == t.Hour() && now.Minute() == t.Minute()
	}
}

// MonthlyAt returns a schedule matching a HH:MM wall clock time on the
// first day of every month.
func MonthlyAt(at string) func(time.Time) bool {
	daily := DailyAt(at)
	return func(now time.Time) bool {
		return now.Day() == 1 && daily(now)
	}
}

// Every returns a schedule firing once the interval has passed since
// the previous firing. The first tick only arms it.
func Every(interval time.Duration) func(time.Time) bool {
	var last time.Time
	return func(now time.Time) bool {
		if last.IsZero() {
			last = now
			return false
		}

		if now.Sub(last) >= interval {
			last = now
			return true
		}

		return false
	}
}
