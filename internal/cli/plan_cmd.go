package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/app"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/cli/formatter"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/contract"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
)

func newPlanCmd(a *App, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage a use case's phase plan",
	}
	cmd.AddCommand(newPlanSetCmd(a, flags), newPlanListCmd(a, flags))
	return cmd
}

// parsePlanEntry reads "PHASE[,START[,END]]".
func parsePlanEntry(s string) (domain.PlanEntry, error) {
	parts := strings.Split(s, ",")
	if len(parts) > 3 {
		return domain.PlanEntry{}, fmt.Errorf("invalid entry %q: want PHASE,START,END", s)
	}
	phase, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return domain.PlanEntry{}, fmt.Errorf("invalid phase in %q: %w", s, err)
	}
	e := domain.PlanEntry{PhaseID: phase}
	if len(parts) > 1 {
		e.StartDate = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		e.EndDate = strings.TrimSpace(parts[2])
	}
	return e, nil
}

func newPlanSetCmd(a *App, flags *rootFlags) *cobra.Command {
	var (
		useCaseID int64
		editor    string
		raw       []string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Upsert plan entries in one batch",
		Example: `  aiexplorer plan set --usecase 42 --editor a@example.com \
    --entry 1,2025-01-01,2025-02-01 --entry 2,2025-02-02,2025-03-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUseCase(useCaseID); err != nil {
				return err
			}
			if len(raw) == 0 {
				return fmt.Errorf("at least one --entry is required")
			}
			entries := make([]domain.PlanEntry, len(raw))
			for i, s := range raw {
				e, err := parsePlanEntry(s)
				if err != nil {
					return err
				}
				entries[i] = e
			}

			res, err := a.Plan.UpsertPlan(cmd.Context(), app.PlanBatchRequest{UseCaseID: useCaseID, Editor: editor, Entries: entries})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if flags.json {
				return writeJSON(out, contract.ListResponse[contract.PlanEntryResponse]{OK: true, Items: contract.Map(res.Entries, contract.FromPlanEntry)})
			}
			fmt.Fprint(out, formatter.FormatBatchSummary("plan", res.BatchCounts))
			fmt.Fprint(out, formatter.FormatPlanTable(res.Entries))
			return nil
		},
	}

	cmd.Flags().Int64Var(&useCaseID, "usecase", 0, "Use case ID")
	cmd.Flags().StringVar(&editor, "editor", "", "Editor email")
	cmd.Flags().StringArrayVar(&raw, "entry", nil, "Plan entry as PHASE,START,END (repeatable)")
	return cmd
}

func newPlanListCmd(a *App, flags *rootFlags) *cobra.Command {
	var useCaseID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List plan entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUseCase(useCaseID); err != nil {
				return err
			}
			entries, err := a.Plan.ListPlan(cmd.Context(), useCaseID)
			if err != nil {
				return err
			}
			if flags.json {
				return writeJSON(cmd.OutOrStdout(), contract.ListResponse[contract.PlanEntryResponse]{OK: true, Items: contract.Map(entries, contract.Deref(contract.FromPlanEntry))})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanTable(values(entries)))
			return nil
		},
	}

	cmd.Flags().Int64Var(&useCaseID, "usecase", 0, "Use case ID")
	return cmd
}

func values[T any](ptrs []*T) []T {
	out := make([]T, len(ptrs))
	for i, p := range ptrs {
		out[i] = *p
	}
	return out
}
