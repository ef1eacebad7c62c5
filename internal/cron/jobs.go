package cron

import (
	"context"
	"time"

	"github.com/budget-buddy/backend/internal/events"
	"github.com/budget-buddy/backend/internal/mail"
	"github.com/budget-buddy/backend/internal/models"
	"github.com/budget-buddy/backend/internal/report"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Jobs holds the collaborators of the scheduled work. Each sweep pages
// through the verified users and fans the per-user work out with a
// bounded concurrency, so a single failing or slow user never stalls
// the batch.
type Jobs struct {
	DB          *gorm.DB
	Bus         *events.Bus
	Renderer    report.Renderer
	Concurrency int
}

func NewJobs(db *gorm.DB, bus *events.Bus, renderer report.Renderer, concurrency int) Jobs {
	return Jobs{
		DB:          db,
		Bus:         bus,
		Renderer:    renderer,
		Concurrency: concurrency,
	}
}

// EveningReminder nudges every verified user who has not recorded an
// expense today.
func (j Jobs) EveningReminder(ctx context.Context) {
	j.sweepReminders(ctx, events.TopicSendReminder, mail.TemplateEveningReminder, time.Now())
}

// MorningReminder nudges every verified user who did not record an
// expense yesterday.
func (j Jobs) MorningReminder(ctx context.Context) {
	j.sweepReminders(ctx, events.TopicSendMorningReminder, mail.TemplateMorningReminder, time.Now().AddDate(0, 0, -1))
}

// sweepReminders publishes a reminder for every verified user without
// an expense recorded on the given day. Per-user failures are logged
// and do not stop the sweep.
func (j Jobs) sweepReminders(ctx context.Context, topic, templateID string, day time.Time) {
	users, err := models.VerifiedUsers(j.DB)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("reminder sweep aborted")
		return
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(j.Concurrency)

	for _, user := range users {
		user := user
		g.Go(func() error {
			expenses, err := models.ExpensesCreatedBetween(j.DB, user.ID, start, end)
			if err != nil {
				log.Error().Err(err).Uint64("user", user.ID).Msg("reminder check failed")
				return nil
			}

			if len(expenses) > 0 {
				return nil
			}

			j.Bus.Publish(topic, events.Message{
				TemplateID: templateID,
				Email:      user.Email,
				TemplateData: map[string]string{
					"name": user.Name,
					"date": start.Format("2006-01-02"),
				},
			})
			return nil
		})
	}

	_ = g.Wait()
}

// MonthlyReport builds, renders and mails the previous month's report
// to every verified user who recorded at least one expense in it.
func (j Jobs) MonthlyReport(ctx context.Context) {
	users, err := models.VerifiedUsers(j.DB)
	if err != nil {
		log.Error().Err(err).Msg("monthly report sweep aborted")
		return
	}

	now := time.Now()
	firstOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	start := firstOfThisMonth.AddDate(0, -1, 0)
	end := firstOfThisMonth.Add(-time.Nanosecond)

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(j.Concurrency)

	for _, user := range users {
		user := user
		g.Go(func() error {
			expenses, err := models.ExpensesCreatedBetween(j.DB, user.ID, start, end)
			if err != nil {
				log.Error().Err(err).Uint64("user", user.ID).Msg("monthly report query failed")
				return nil
			}

			if len(expenses) == 0 {
				return nil
			}

			recurring, err := models.OverlappingActiveRecurring(j.DB, user.ID, start, end)
			if err != nil {
				log.Error().Err(err).Uint64("user", user.ID).Msg("monthly report query failed")
				return nil
			}

			result, err := report.Build(j.DB, user, start, end, recurring)
			if err != nil {
				log.Error().Err(err).Uint64("user", user.ID).Msg("monthly report build failed")
				return nil
			}

			html, err := j.Renderer.Render(result, user.Name)
			if err != nil {
				log.Error().Err(err).Uint64("user", user.ID).Msg("monthly report render failed")
				return nil
			}

			j.Bus.Publish(events.TopicNotification, events.Message{
				TemplateID: mail.TemplateMonthlyReport,
				Email:      user.Email,
				TemplateData: map[string]string{
					"name":   user.Name,
					"report": html,
				},
			})
			return nil
		})
	}

	_ = g.Wait()
}
