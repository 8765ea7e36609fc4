// Package app wires configuration, storage, upstream gateways and the HTTP router into a running site backend.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/httplog/v2"
	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/ngo-site/internal/adapter/gateway"
	"github.com/vadimbarashkov/ngo-site/internal/adapter/gateway/calendar"
	"github.com/vadimbarashkov/ngo-site/internal/adapter/gateway/github"
	"github.com/vadimbarashkov/ngo-site/internal/adapter/gateway/mailchimp"
	"github.com/vadimbarashkov/ngo-site/internal/adapter/gateway/smtp"
	"github.com/vadimbarashkov/ngo-site/internal/adapter/gateway/web3forms"
	"github.com/vadimbarashkov/ngo-site/internal/adapter/repository/markdown"
	"github.com/vadimbarashkov/ngo-site/internal/adapter/repository/postgres"
	"github.com/vadimbarashkov/ngo-site/internal/config"
	"github.com/vadimbarashkov/ngo-site/internal/entity"
	"github.com/vadimbarashkov/ngo-site/internal/usecase"
	"github.com/vadimbarashkov/ngo-site/pkg/metrics"
	"github.com/vadimbarashkov/ngo-site/pkg/middleware/ratelimit"
	"golang.org/x/sync/errgroup"

	httpdelivery "github.com/vadimbarashkov/ngo-site/internal/adapter/delivery/http"
	pgdb "github.com/vadimbarashkov/ngo-site/pkg/postgres"
)

const (
	serviceName     = "ngo-site"
	shutdownTimeout = 10 * time.Second
)

type contactSender interface {
	SendContact(ctx context.Context, msg entity.ContactMessage) error
}

// NewLogger returns the request logger for the configured environment.
// Development logs are concise text, everything else is JSON.
func NewLogger(cfg *config.Config) *httplog.Logger {
	opts := httplog.Options{
		LogLevel:        slog.LevelInfo,
		JSON:            true,
		RequestHeaders:  false,
		QuietDownRoutes: []string{"/api/v1/ping", "/metrics"},
		QuietDownPeriod: 10 * time.Second,
		Tags: map[string]string{
			"env": cfg.Env,
		},
	}

	if cfg.Env == config.EnvDev {
		opts.LogLevel = slog.LevelDebug
		opts.JSON = false
		opts.Concise = true
	}

	return httplog.NewLogger(serviceName, opts)
}

// OpenDatabase connects to Postgres with the configured pool settings.
func OpenDatabase(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	return pgdb.New(
		ctx,
		cfg.Postgres.DSN(),
		pgdb.WithConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime),
		pgdb.WithConnMaxLifetime(cfg.Postgres.ConnMaxLifetime),
		pgdb.WithMaxIdleConns(cfg.Postgres.MaxIdleConns),
		pgdb.WithMaxOpenConns(cfg.Postgres.MaxOpenConns),
		pgdb.WithConnectRetry(cfg.Postgres.ConnectAttempts, 2*time.Second),
	)
}

func newContactSender(cfg *config.Config, client *http.Client) (contactSender, error) {
	const op = "app.newContactSender"

	switch cfg.Contact.Transport {
	case config.ContactTransportWeb3Forms:
		return web3forms.NewClient(
			cfg.Contact.Web3Forms.AccessKey,
			web3forms.WithHTTPClient(client),
			web3forms.WithBaseURL(cfg.Contact.Web3Forms.BaseURL),
			web3forms.WithFromName(cfg.Contact.Web3Forms.FromName),
		), nil
	case config.ContactTransportSMTP:
		return smtp.NewMailer(
			cfg.Contact.SMTP.Host,
			cfg.Contact.SMTP.Port,
			cfg.Contact.SMTP.Username,
			cfg.Contact.SMTP.Password,
			cfg.Contact.SMTP.From,
			cfg.Contact.SMTP.To,
		), nil
	default:
		return nil, fmt.Errorf("%s: unknown contact transport %q", op, cfg.Contact.Transport)
	}
}

// Run starts the site backend and blocks until ctx is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config) error {
	const op = "app.Run"

	logger := NewLogger(cfg)

	db, err := OpenDatabase(ctx, cfg)
	if err != nil {
		return fmt.Errorf("%s: failed to connect to database: %w", op, err)
	}
	defer db.Close()

	if err := pgdb.RunMigrations(cfg.Postgres.MigrationsPath, cfg.Postgres.DSN()); err != nil {
		return fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}

	contentRepo, err := markdown.NewContentRepository(
		cfg.Content.Dir,
		markdown.WithDrafts(cfg.Content.IncludeDrafts),
		markdown.WithLogger(logger.Logger),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to load content: %w", op, err)
	}

	m := metrics.New()
	httpClient := gateway.NewHTTPClient()

	contact, err := newContactSender(cfg, httpClient)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	boardClient := github.NewProjectClient(
		cfg.Board.Token,
		cfg.Board.Organization,
		cfg.Board.ProjectNumber,
		github.WithHTTPClient(httpClient),
		github.WithBaseURL(cfg.Board.BaseURL),
	)

	calendarClient := calendar.NewClient(
		cfg.Calendar.APIKey,
		cfg.Calendar.CalendarID,
		calendar.WithHTTPClient(httpClient),
		calendar.WithBaseURL(cfg.Calendar.BaseURL),
	)

	newsletterClient := mailchimp.NewClient(
		cfg.Newsletter.MailchimpBaseURL(),
		cfg.Newsletter.APIKey,
		cfg.Newsletter.ListID,
		mailchimp.WithHTTPClient(httpClient),
	)

	board := usecase.NewBoardUseCase(
		boardClient,
		cfg.Board.TTL,
		usecase.WithBoardLogger(logger.Logger),
		usecase.WithRefreshObserver(m.ObserveBoardRefresh),
	)

	router := httpdelivery.NewRouter(httpdelivery.Options{
		Logger:         logger,
		URLs:           usecase.NewURLUseCase(postgres.NewURLRepository(db), cfg.ShortCodeLength),
		Content:        usecase.NewContentUseCase(contentRepo),
		Board:          board,
		Events:         usecase.NewEventsUseCase(calendarClient),
		Outreach:       usecase.NewOutreachUseCase(contact, newsletterClient),
		Metrics:        m,
		Limiter:        ratelimit.New(cfg.RateLimit.Rate, cfg.RateLimit.Burst),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		ContentMaxAge:  cfg.Content.CacheMaxAge,
		PublicBaseURL:  cfg.PublicBaseURL,
		SwaggerFile:    cfg.HTTPServer.SwaggerFile,
	})

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        router,
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Content.Watch {
		g.Go(func() error {
			return contentRepo.Watch(ctx)
		})
	}

	if cfg.Board.WarmSchedule != "" {
		scheduler, err := newBoardScheduler(ctx, cfg.Board.WarmSchedule, board, logger.Logger)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		scheduler.Start()
		g.Go(func() error {
			<-ctx.Done()
			<-scheduler.Stop().Done()
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("starting server", slog.String("addr", server.Addr), slog.String("env", cfg.Env))

		var err error

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	return g.Wait()
}
