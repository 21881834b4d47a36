package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/app"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/cli/formatter"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/contract"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
)

func newStakeholderCmd(a *App, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stakeholder",
		Short: "Manage a use case's stakeholders",
	}
	cmd.AddCommand(newStakeholderAddCmd(a, flags), newStakeholderListCmd(a, flags))
	return cmd
}

func newStakeholderAddCmd(a *App, flags *rootFlags) *cobra.Command {
	var (
		useCaseID, roleID, id int64
		email, editor         string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a stakeholder, or update one by --id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUseCase(useCaseID); err != nil {
				return err
			}
			res, err := a.Stakeholders.UpsertStakeholders(cmd.Context(), app.StakeholderBatchRequest{
				UseCaseID:    useCaseID,
				Editor:       editor,
				Stakeholders: []domain.Stakeholder{{ID: id, RoleID: roleID, Email: email}},
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if flags.json {
				return writeJSON(out, contract.ItemResponse[contract.StakeholderResponse]{OK: true, Item: contract.FromStakeholder(res.Stakeholders[0])})
			}
			fmt.Fprint(out, formatter.FormatBatchSummary("stakeholder", res.BatchCounts))
			fmt.Fprint(out, formatter.FormatStakeholderTable(res.Stakeholders))
			return nil
		},
	}

	cmd.Flags().Int64Var(&useCaseID, "usecase", 0, "Use case ID")
	cmd.Flags().Int64Var(&roleID, "role", 0, "Role mapping ID")
	cmd.Flags().StringVar(&email, "email", "", "Stakeholder email")
	cmd.Flags().Int64Var(&id, "id", 0, "Existing stakeholder row to update")
	cmd.Flags().StringVar(&editor, "editor", "", "Editor email (defaults to --email)")
	return cmd
}

func newStakeholderListCmd(a *App, flags *rootFlags) *cobra.Command {
	var useCaseID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stakeholders",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUseCase(useCaseID); err != nil {
				return err
			}
			list, err := a.Stakeholders.ListStakeholders(cmd.Context(), useCaseID)
			if err != nil {
				return err
			}
			if flags.json {
				return writeJSON(cmd.OutOrStdout(), contract.ListResponse[contract.StakeholderResponse]{OK: true, Items: contract.Map(list, contract.Deref(contract.FromStakeholder))})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStakeholderTable(values(list)))
			return nil
		},
	}

	cmd.Flags().Int64Var(&useCaseID, "usecase", 0, "Use case ID")
	return cmd
}
