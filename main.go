package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/budget-buddy/backend/internal/auth"
	"github.com/budget-buddy/backend/internal/config"
	v1 "github.com/budget-buddy/backend/internal/controllers/v1"
	"github.com/budget-buddy/backend/internal/cron"
	"github.com/budget-buddy/backend/internal/events"
	"github.com/budget-buddy/backend/internal/mail"
	"github.com/budget-buddy/backend/internal/models"
	"github.com/budget-buddy/backend/internal/report"
	"github.com/budget-buddy/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Optional .env file for local development
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Create data directory
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), os.ModePerm); err != nil {
		log.Fatal().Msg(err.Error())
	}

	db, err := models.Connect(cfg.DBPath)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	bus := events.NewBus()
	if cfg.MailConfigured() {
		dispatcher := mail.NewDispatcher(mail.SMTPSender{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
		dispatcher.Register(bus)
	} else {
		log.Warn().Msg("SMTP is not configured, notifications will be dropped")
	}

	co := v1.NewController(db, bus, auth.NewTokens(cfg.JWTSecret))

	r, teardown, err := router.Config()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer teardown()

	router.AttachRoutes(co, r.Group(""))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	monthlyDue := cron.MonthlyAt("09:00")
	if cfg.MonthlyReportInterval > 0 {
		monthlyDue = cron.Every(cfg.MonthlyReportInterval)
	}

	jobs := cron.NewJobs(db, bus, report.NewHTMLRenderer(), cfg.SweepConcurrency)
	scheduler := cron.NewScheduler(
		cron.Job{Name: "evening-reminder", Due: cron.DailyAt(cfg.EveningReminderAt), Run: jobs.EveningReminder},
		cron.Job{Name: "morning-reminder", Due: cron.DailyAt(cfg.MorningReminderAt), Run: jobs.MorningReminder},
		cron.Job{Name: "monthly-report", Due: monthlyDue, Run: jobs.MonthlyReport},
	)
	go scheduler.Run(ctx)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msg(err.Error())
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Msg(err.Error())
	}

	log.Info().Msg("server stopped")
}
