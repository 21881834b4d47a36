package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/batch"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/config"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plan         service.PlanService
	Stakeholders service.StakeholderService
	Updates      service.ProgressUpdateService
	Prioritize   service.PrioritizeService
	Modes        service.SchemaModeService
	Import       service.ImportService

	// Migrate creates missing tables; tables in manual get app-assigned ids.
	Migrate func(ctx context.Context, manual []string) error
	// Handler is what serve listens with.
	Handler http.Handler
	Config  config.Config
	Logger  *slog.Logger
}

type rootFlags struct {
	json bool
}

// NewRootCmd creates the top-level "aiexplorer" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "aiexplorer",
		Short:         "Use-case child record service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&flags.json, "json", false, "Print results as JSON")

	root.AddCommand(
		newServeCmd(app),
		newMigrateCmd(app),
		newModeCmd(app, flags),
		newPlanCmd(app, flags),
		newStakeholderCmd(app, flags),
		newUpdateCmd(app, flags),
		newPrioritizeCmd(app, flags),
		newImportCmd(app, flags),
	)
	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Exit codes returned by ExitCode.
const (
	ExitFailure     = 1
	ExitInvalid     = 2
	ExitNotFound    = 3
	ExitForbidden   = 4
	ExitUnavailable = 75
)

// ExitCode maps a command error to a process exit status. Contention gets
// EX_TEMPFAIL so wrappers can retry.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrNotStakeholder):
		return ExitForbidden
	case errors.Is(err, batch.ErrValidation):
		return ExitInvalid
	case errors.Is(err, batch.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, batch.ErrContention):
		return ExitUnavailable
	default:
		return ExitFailure
	}
}

func requireUseCase(id int64) error {
	if id <= 0 {
		return fmt.Errorf("--usecase is required")
	}
	return nil
}
