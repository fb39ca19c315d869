package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ledgerline/emi-scheduler/internal/config"
	"github.com/ledgerline/emi-scheduler/internal/repository"
	"github.com/ledgerline/emi-scheduler/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg)
	log.Info().Msg("Starting EMI scheduler...")

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	loanRepo := repository.NewLoanRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	gate := repository.NewRunGateStore(redisClient, cfg.GetRunGateTTL())
	clock := service.NewSystemClock(cfg.GetLocation())

	schedulerService := service.NewSchedulerService(
		loanRepo, ledgerRepo, notificationRepo, gate,
		clock, cfg.Business.ReminderLookaheadDays, log.Logger,
	)

	c := cron.New(cron.WithSeconds(), cron.WithLocation(cfg.GetLocation()))

	_, err = c.AddFunc(cfg.Scheduler.DailySpec, func() {
		runAllUsers(schedulerService)
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule daily EMI job")
	}

	c.Start()
	log.Info().Str("spec", cfg.Scheduler.DailySpec).Msg("Scheduler started")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down scheduler...")
	c.Stop()
	log.Info().Msg("Scheduler stopped")
}

// runAllUsers drives the gated daily check for every user holding an active
// loan. A failing user never blocks the rest, mirroring the per-loan
// isolation inside each run.
func runAllUsers(s *service.SchedulerService) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	userIDs, err := s.ListUserIDs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users for daily run")
		return
	}

	for _, userID := range userIDs {
		result, err := s.Initialize(ctx, userID)
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Daily EMI run failed for user")
			continue
		}
		log.Info().
			Str("user_id", userID).
			Int("processed", result.ProcessedCount).
			Int("skipped", result.SkippedCount).
			Int("failed", result.FailedCount).
			Msg("Daily EMI run finished for user")
	}
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.IsDevelopment() || cfg.Logging.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if level, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}
}
