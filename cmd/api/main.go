// @title Org Calendar API
// @version 1.0
// @description Events, meetings and members of an organization, gated by role.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orgcalendar/config"
	_ "orgcalendar/docs"
	"orgcalendar/internal/adapters/auth"
	"orgcalendar/internal/adapters/email"
	"orgcalendar/internal/adapters/ical"
	deliveryhttp "orgcalendar/internal/delivery/http"
	"orgcalendar/internal/delivery/http/controllers"
	"orgcalendar/internal/delivery/http/middleware"
	"orgcalendar/internal/repository/postgres"
	"orgcalendar/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	meetingRepo := postgres.NewMeetingRepository(db)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return err
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	authService := services.NewAuthService(userRepo, services.AuthConfig{
		Hasher:      auth.NewBcryptHasher(auth.DefaultCost),
		Issuer:      auth.NewJWTIssuer(cfg.JWTSecret),
		Verifier:    auth.NewJWTVerifier(cfg.JWTSecret),
		TokenExpiry: cfg.TokenExpiry,
	}, emailService, logger, cfg.RequestTimeout)

	if cfg.Bootstrap.Enabled() {
		convenor, err := authService.EnsureConvenor(ctx, cfg.Bootstrap.ConvenorName, cfg.Bootstrap.ConvenorEmail, cfg.Bootstrap.ConvenorPassword)
		if err != nil {
			return err
		}
		logger.Info("bootstrap convenor ready", "user_id", convenor.ID, "email", convenor.Email)
	}

	eventService := services.NewEventService(eventRepo, userRepo, cfg.RequestTimeout)
	meetingService := services.NewMeetingService(meetingRepo, userRepo, emailService, logger, cfg.RequestTimeout)
	userService := services.NewUserService(userRepo, cfg.RequestTimeout)
	calendarService := services.NewCalendarService(eventRepo, meetingRepo,
		ical.NewEncoder(cfg.Calendar.Name, cfg.Calendar.Location), cfg.RequestTimeout)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	mux := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Auth:     controllers.NewAuthController(logger, authService),
		Events:   controllers.NewEventController(logger, eventService),
		Meetings: controllers.NewMeetingController(logger, meetingService),
		Users:    controllers.NewUserController(logger, userService),
		Calendar: controllers.NewCalendarController(logger, calendarService),
	}, authService, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), logger)

	handler := middleware.CORS(cfg.AllowedOrigins,
		middleware.LoggingMiddleware(logger, metrics.Middleware(mux)))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
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

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
