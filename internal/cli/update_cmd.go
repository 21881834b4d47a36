package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/app"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/cli/formatter"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/contract"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
)

func newUpdateCmd(a *App, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Progress updates on a use case",
	}
	cmd.AddCommand(newUpdateAddCmd(a, flags), newUpdateListCmd(a, flags))
	return cmd
}

func newUpdateAddCmd(a *App, flags *rootFlags) *cobra.Command {
	var (
		useCaseID    int64
		editor, text string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a progress update",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUseCase(useCaseID); err != nil {
				return err
			}
			u, err := a.Updates.AddUpdate(cmd.Context(), app.ProgressUpdateRequest{UseCaseID: useCaseID, Editor: editor, Text: text})
			if err != nil {
				return err
			}
			if flags.json {
				return writeJSON(cmd.OutOrStdout(), contract.ItemResponse[contract.UpdateResponse]{OK: true, Item: contract.FromUpdate(*u)})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatUpdateList([]domain.ProgressUpdate{*u}))
			return nil
		},
	}

	cmd.Flags().Int64Var(&useCaseID, "usecase", 0, "Use case ID")
	cmd.Flags().StringVar(&editor, "editor", "", "Editor email; must be a stakeholder")
	cmd.Flags().StringVar(&text, "text", "", "Update text")
	return cmd
}

func newUpdateListCmd(a *App, flags *rootFlags) *cobra.Command {
	var useCaseID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List progress updates, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUseCase(useCaseID); err != nil {
				return err
			}
			list, err := a.Updates.ListUpdates(cmd.Context(), useCaseID)
			if err != nil {
				return err
			}
			if flags.json {
				return writeJSON(cmd.OutOrStdout(), contract.ListResponse[contract.UpdateResponse]{OK: true, Items: contract.Map(list, contract.Deref(contract.FromUpdate))})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatUpdateList(values(list)))
			return nil
		},
	}

	cmd.Flags().Int64Var(&useCaseID, "usecase", 0, "Use case ID")
	return cmd
}
