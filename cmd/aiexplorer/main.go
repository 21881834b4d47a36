package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/batch"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/cli"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/config"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/db"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/httpapi"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/metrics"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger := newLogger(cfg)

	ctx := context.Background()
	store, err := db.Open(ctx, db.Options{
		Driver:      cfg.DB.Driver,
		DSN:         cfg.DB.DSN,
		BusyTimeout: cfg.DB.BusyTimeout,
		LockTimeout: cfg.DB.LockTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	// Batches always reach metrics; the log observers only log failures
	// unless call logging is on.
	collector := metrics.New()
	batchObservers := batch.Observers{collector}
	useCaseObservers := []service.UseCaseObserver{collector}
	if cfg.Log.Calls {
		batchObservers = append(batchObservers, batch.NewLogObserver(logger))
		useCaseObservers = append(useCaseObservers, service.NewLogUseCaseObserver(logger))
	} else {
		batchObservers = append(batchObservers, failuresOnly{batch.NewLogObserver(logger)})
	}

	svcs, err := service.NewServices(store, []batch.Option{
		batch.WithTimeout(cfg.TxTimeout),
		batch.WithObserver(batchObservers),
	}, useCaseObservers...)
	if err != nil {
		return err
	}

	app := &cli.App{
		Plan:         svcs.Plan,
		Stakeholders: svcs.Stakeholders,
		Updates:      svcs.Updates,
		Prioritize:   svcs.Prioritize,
		Modes:        svcs.Modes,
		Import:       svcs.Import,
		Migrate: func(ctx context.Context, manual []string) error {
			return db.Migrate(ctx, store, manual)
		},
		Handler: httpapi.NewHandler(httpapi.Services{
			Plan:         svcs.Plan,
			Stakeholders: svcs.Stakeholders,
			Updates:      svcs.Updates,
			Prioritize:   svcs.Prioritize,
		}, httpapi.Options{Logger: logger, Metrics: collector.Handler()}),
		Config: cfg,
		Logger: logger,
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// newLogger writes text to an interactive terminal and JSON otherwise.
func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

type failuresOnly struct {
	batch.Observer
}

func (f failuresOnly) ObserveBatch(ctx context.Context, ev batch.Event) {
	if ev.Err != nil {
		f.Observer.ObserveBatch(ctx, ev)
	}
}
