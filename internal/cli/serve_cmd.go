package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/cli/formatter"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Handler == nil {
				return fmt.Errorf("no HTTP handler configured")
			}
			cfg := app.Config.HTTP
			if addr != "" {
				cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// A child table without a usable id column stops startup here
			// rather than failing the first write.
			if err := app.Modes.CheckTables(ctx); err != nil {
				return fmt.Errorf("checking schema: %w", err)
			}

			srv := &http.Server{
				Addr:         cfg.Addr,
				Handler:      app.Handler,
				ReadTimeout:  cfg.ReadTimeout,
				WriteTimeout: cfg.WriteTimeout,
			}
			errCh := make(chan error, 1)
			go func() {
				app.Logger.Info("http_listen", "addr", cfg.Addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serving http: %w", err)
			case <-ctx.Done():
			}

			app.Logger.Info("http_shutdown")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutting down http: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	return cmd
}

func newMigrateCmd(app *App) *cobra.Command {
	var manual []string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("manual-id-tables") {
				manual = app.Config.DB.ManualIDTables
			}
			if err := app.Migrate(cmd.Context(), manual); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&manual, "manual-id-tables", nil, "Tables created without store-generated ids")
	return cmd
}

func newModeCmd(app *App, flags *rootFlags) *cobra.Command {
	var tables []string

	cmd := &cobra.Command{
		Use:   "mode",
		Short: "Report how each child table assigns ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(tables) == 0 {
				tables = app.Modes.Tables()
			}
			modes := make(map[string]string, len(tables))
			rows := make([][]string, 0, len(tables))
			for _, t := range tables {
				mode, err := app.Modes.TableMode(cmd.Context(), t)
				if err != nil {
					return err
				}
				modes[t] = mode
				rows = append(rows, []string{t, formatter.ModeLabel(mode)})
			}
			if flags.json {
				return writeJSON(cmd.OutOrStdout(), modes)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"TABLE", "MODE"}, rows))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&tables, "table", nil, "Child table (repeatable; default all child tables)")
	return cmd
}
