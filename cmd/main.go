package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/UnknownOlympus/dispatch/internal/assignment"
	"github.com/UnknownOlympus/dispatch/internal/config"
	"github.com/UnknownOlympus/dispatch/internal/geocoding"
	"github.com/UnknownOlympus/dispatch/internal/metrics"
	"github.com/UnknownOlympus/dispatch/internal/output"
	"github.com/UnknownOlympus/dispatch/internal/parser"
	"github.com/UnknownOlympus/dispatch/internal/repository"
	"github.com/UnknownOlympus/dispatch/internal/service"
	"github.com/UnknownOlympus/dispatch/internal/source"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

const (
	sourcePostgres = "postgres"
	parserRegex    = "regex"
	pushJobName    = "dispatch"
)

// main is the entry point of the application.
func main() {
	// Cancel the run when an interrupt signal is received.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	// Load application configuration.
	cfg := config.MustLoad(os.Args[1:])

	// Logs go to stderr so the result document can be written to stdout.
	logger := setupLogger(cfg.Env)

	if err := run(ctx, cfg, logger); err != nil {
		logger.ErrorContext(ctx, "Assignment run failed", "error", err)
		stop()
		os.Exit(1)
	}

	stop()
}

// run wires the components selected by cfg and executes a single assignment run.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	var repo *repository.Repository
	if cfg.Source == sourcePostgres || cfg.Persist {
		connCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		dtb, err := repository.NewDatabase(
			connCtx, cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
		)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to connect to DB: %w", err)
		}
		defer dtb.Close()

		repo = repository.NewRepository(dtb, logger)
	}

	var src service.Source = source.NewFile(cfg.Drivers, cfg.Addresses)
	if cfg.Source == sourcePostgres {
		src = repo
	}

	var sink service.Sink
	if cfg.Persist {
		sink = repo
	}

	addressParser, err := newAddressParser(cfg, appMetrics, logger)
	if err != nil {
		return err
	}

	strategy, err := assignment.NewStrategy(assignment.StrategyConfig{
		Type:    assignment.StrategyType(cfg.Strategy),
		Workers: cfg.Workers,
	})
	if err != nil {
		return fmt.Errorf("failed to create strategy: %w", err)
	}

	exporter := output.NewExporter(output.Format(cfg.Format), cfg.Output, os.Stdout)

	svc := service.NewAssignmentService(
		logger,
		src,
		addressParser,
		strategy,
		cfg.Strategy, // Strategy name for metrics
		exporter,
		sink,
		appMetrics,
		cfg.Workers,
	)

	logger.InfoContext(ctx, "Assignment run started",
		"source", cfg.Source, "parser", cfg.Parser, "strategy", cfg.Strategy, "workers", cfg.Workers)

	_, runErr := svc.Run(ctx)

	if cfg.Pushgateway != "" {
		if err = push.New(cfg.Pushgateway, pushJobName).Gatherer(reg).PushContext(ctx); err != nil {
			logger.WarnContext(ctx, "Failed to push metrics", "url", cfg.Pushgateway, "error", err)
		}
	}

	return runErr
}

// newAddressParser returns the pattern parser, or a provider backed parser that falls back to it.
func newAddressParser(cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) (parser.AddressParser, error) {
	if cfg.Parser == parserRegex {
		return parser.RegexParser{}, nil
	}

	provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.Parser),
		APIKey:    cfg.ProviderKey,
		RateLimit: cfg.RateLimit,
		Timeout:   cfg.Timeout,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create geocoding provider: %w", err)
	}

	logger.Info("Geocoding provider initialized", "type", cfg.Parser)

	return parser.NewGeocodedParser(provider, cfg.Parser, m, logger), nil
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level:       slog.LevelError,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}
