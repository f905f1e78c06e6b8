package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/rokfinancial/broker-portal/internal/config"
	"github.com/rokfinancial/broker-portal/internal/infra/database"
	"github.com/rokfinancial/broker-portal/internal/infra/http/handlers"
	"github.com/rokfinancial/broker-portal/internal/infra/http/middleware"
	"github.com/rokfinancial/broker-portal/internal/infra/integration/gohighlevel"
	"github.com/rokfinancial/broker-portal/internal/infra/integration/lenderapi"
	"github.com/rokfinancial/broker-portal/internal/infra/mail"
	"github.com/rokfinancial/broker-portal/internal/infra/queue"
	"github.com/rokfinancial/broker-portal/internal/infra/worker"
	"github.com/rokfinancial/broker-portal/internal/logger"
	"github.com/rokfinancial/broker-portal/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	zl := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zl.Sync()
	log := logger.NewZapAdapter(zl).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"env":     cfg.App.Environment,
	})

	if err := run(cfg, log); err != nil {
		log.Error("service stopped with error", map[string]interface{}{"error": err})
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Static tables
	registry, err := cfg.BuildLenderRegistry()
	if err != nil {
		return err
	}
	forms, err := cfg.BuildFormMappings()
	if err != nil {
		return err
	}
	validator, err := usecase.NewFormSchemaValidator(forms)
	if err != nil {
		return err
	}

	// 2. Infrastructure
	db, err := database.NewDBConnection(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.URL)
	if err != nil {
		return err
	}
	defer rabbitMQ.Close()

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
	}

	// 3. Repositories and adapters
	leadRepo := database.NewLeadRepository(db)
	referralRepo := database.NewReferralRepository(db)
	submissionRepo := database.NewSubmissionRepository(db)

	crm, err := gohighlevel.NewClient(cfg.CRM.BaseURL, cfg.CRM.APIKey, cfg.CRM.Timeout)
	if err != nil {
		return err
	}
	producer := queue.NewProducer(rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From)
	lenderAPI := lenderapi.NewClient(cfg.Workers.DispatchTimeout, log)

	// 4. Workers
	dispatcher := queue.NewWorker(rabbitMQ.Ch, registry, mailSender, lenderAPI, referralRepo, log)
	dispatcher.Timeout = cfg.Workers.DispatchTimeout
	go func() {
		if err := dispatcher.Start(ctx, queue.ReferralQueue); err != nil {
			log.Error("referral worker stopped", map[string]interface{}{"error": err})
		}
	}()

	staleWorker := worker.NewStaleReferralWorker(referralRepo, log).
		WithSchedule(cfg.Workers.StaleAfter, cfg.Workers.SweepInterval)
	go staleWorker.Start(ctx)

	// 5. Use cases
	matchUC := usecase.NewMatchLenderUseCase(registry, log)
	submitUC := usecase.NewSubmitFormUseCase(forms, validator, crm, submissionRepo, producer, log)
	routeUC := usecase.NewRouteLeadUseCase(registry, leadRepo, referralRepo, producer, log)

	// 6. Handlers
	var limiter handlers.Limiter
	var redisProbe redis.Cmdable
	if rdb != nil {
		limiter = handlers.NewRedisRateLimiter(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window)
		redisProbe = rdb
	} else {
		memLimiter := handlers.NewRateLimiter(cfg.RateLimit.Limit, cfg.RateLimit.Window)
		defer memLimiter.Stop()
		limiter = memLimiter
	}

	eligibilityHandler := handlers.NewEligibilityHandler(matchUC, log)
	formHandler := handlers.NewFormHandler(submitUC, submissionRepo, log)
	leadHandler := handlers.NewLeadHandler(routeUC, limiter, log)
	referralHandler := handlers.NewReferralHandler(referralRepo, log)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn, redisProbe, cfg.App.Version)

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Submission-ID"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/lenders/match", eligibilityHandler.Match)
	r.Post("/forms/{formId}/submit", formHandler.Submit)
	r.Get("/forms/{formId}/submissions", formHandler.ListSubmissions)
	r.Post("/leads", leadHandler.CaptureLead)
	r.Get("/referrals/{id}", referralHandler.GetReferral)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", map[string]interface{}{
			"port":    cfg.Server.Port,
			"lenders": registry.Len(),
			"forms":   len(forms),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
