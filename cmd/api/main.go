package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pulseinsights.org/internal/app"
	"pulseinsights.org/internal/appconf"
	"pulseinsights.org/internal/logging"
	"pulseinsights.org/internal/restapi"
	"pulseinsights.org/internal/webui"
	"pulseinsights.org/pulsedb"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, logLevel, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	logger := logging.NewStructuredLogger(os.Stdout, logging.ParseLevel(logLevel))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logging.LogError(logger, "server exited", err, slog.String("component", "main"))
		os.Exit(1)
	}
}

// parseFlags reads the command line into an application config and returns
// the requested log level.
func parseFlags(args []string, output io.Writer) (appconf.Config, string, error) {
	var cfg appconf.Config
	var envFlag, apiKeysFlag, logLevel string

	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.IntVar(&cfg.Port, "port", 4000, "API server port")
	fs.StringVar(&envFlag, "env", "development", "Environment (development|test|production)")
	fs.StringVar(&apiKeysFlag, "api-keys", "test", "Comma Separated API Keys (test, etc)")
	fs.IntVar(&cfg.RateLimit, "rate-limit", 100, "Requests per second per API key, 0 disables limiting")
	fs.StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")

	fs.StringVar(&cfg.DBDriver, "db-driver", pulsedb.DriverMySQL, "Database driver (mysql|sqlite)")
	fs.StringVar(&cfg.DBHost, "db-host", "localhost", "MySQL host")
	fs.IntVar(&cfg.DBPort, "db-port", 3306, "MySQL port")
	fs.StringVar(&cfg.DBUser, "db-user", "root", "MySQL user")
	fs.StringVar(&cfg.DBPassword, "db-password", os.Getenv("PULSE_DB_PASSWORD"), "MySQL password (defaults to $PULSE_DB_PASSWORD)")
	fs.StringVar(&cfg.DBName, "db-name", "project_phonepe_pulse", "MySQL database name")
	fs.StringVar(&cfg.DBPath, "db-path", "pulse.db", "SQLite database file, or :memory:")
	fs.BoolVar(&cfg.Migrate, "migrate", false, "Apply the schema on startup (always on for sqlite)")
	fs.BoolVar(&cfg.Sample, "sample", false, "Load the bundled sample data set on startup")

	if err := fs.Parse(args); err != nil {
		return cfg, "", err
	}

	cfg.Env = appconf.EnvFlagToEnvironment(envFlag)
	cfg.ApiKeys = appconf.ParseAPIKeys(apiKeysFlag)
	if cfg.DBDriver != pulsedb.DriverMySQL && cfg.DBDriver != pulsedb.DriverSQLite {
		err := fmt.Errorf("unsupported -db-driver %q", cfg.DBDriver)
		_, _ = fmt.Fprintln(output, err)
		return cfg, "", err
	}
	return cfg, logLevel, nil
}

// buildApplication opens the store and assembles the shared dependencies.
func buildApplication(ctx context.Context, cfg appconf.Config, logger *slog.Logger) (*app.Application, error) {
	client, err := pulsedb.NewClient(pulsedb.FromAppConfig(cfg, logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open pulse store: %w", err)
	}

	if cfg.Sample {
		if err := client.LoadSample(ctx); err != nil {
			_ = client.Close()
			return nil, err
		}
		logging.LogOperation(logger, "sample_data_loaded", slog.String("driver", cfg.DBDriver))
	}

	return &app.Application{
		Config:  cfg,
		Logger:  logger,
		PulseDB: client,
	}, nil
}

// newHandler mounts the REST API and, outside production, the debug pages.
func newHandler(application *app.Application, api *restapi.RestAPI) http.Handler {
	mux := http.NewServeMux()
	api.SetRoutes(mux)
	if application.Config.Env != appconf.Production {
		webui.New(application).SetWebUIRoutes(mux)
	}
	return api.WithMiddleware(mux)
}

func run(ctx context.Context, cfg appconf.Config, logger *slog.Logger) (err error) {
	application, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer logging.HandleDeferredError(&err, application.PulseDB.Close, logger, "close_pulse_store")

	api := restapi.NewRestAPI(application)
	defer api.Shutdown()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      newHandler(application, api),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String())
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server", "timeout", shutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
