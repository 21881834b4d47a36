package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/app"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/cli/formatter"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/contract"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
)

func newPrioritizeCmd(a *App, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prioritize",
		Short: "RICE prioritization of a use case",
	}
	cmd.AddCommand(newPrioritizeSetCmd(a, flags), newPrioritizeShowCmd(a, flags))
	return cmd
}

// changedFloat returns the flag's value only when it was set on the
// command line.
func changedFloat(fs *pflag.FlagSet, name string) *float64 {
	if !fs.Changed(name) {
		return nil
	}
	v, err := fs.GetFloat64(name)
	if err != nil {
		return nil
	}
	return &v
}

func changedInt(fs *pflag.FlagSet, name string) *int64 {
	if !fs.Changed(name) {
		return nil
	}
	v, err := fs.GetInt64(name)
	if err != nil {
		return nil
	}
	return &v
}

func changedBool(fs *pflag.FlagSet, name string) *bool {
	if !fs.Changed(name) {
		return nil
	}
	v, err := fs.GetBool(name)
	if err != nil {
		return nil
	}
	return &v
}

func newPrioritizeSetCmd(a *App, flags *rootFlags) *cobra.Command {
	var (
		useCaseID int64
		editor    string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Merge the given fields into the use case's prioritization",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUseCase(useCaseID); err != nil {
				return err
			}
			fs := cmd.Flags()
			patch := domain.PrioritizationPatch{
				Reach:      changedFloat(fs, "reach"),
				Impact:     changedFloat(fs, "impact"),
				Confidence: changedFloat(fs, "confidence"),
				Effort:     changedFloat(fs, "effort"),
				RICEScore:  changedFloat(fs, "score"),
				Priority:   changedInt(fs, "priority"),

				DisplayInGallery:     changedBool(fs, "gallery"),
				SLTReporting:         changedBool(fs, "slt-reporting"),
				TotalUserBase:        changedInt(fs, "user-base"),
				TimespanID:           changedInt(fs, "timespan"),
				ReportingFrequencyID: changedInt(fs, "reporting-frequency"),
			}

			res, err := a.Prioritize.Prioritize(cmd.Context(), app.PrioritizeRequest{UseCaseID: useCaseID, Editor: editor, Patch: patch})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if flags.json {
				return writeJSON(out, contract.ItemResponse[contract.PrioritizationResponse]{OK: true, Item: contract.FromPrioritization(res.Prioritization)})
			}
			verb := "Updated"
			if res.Created {
				verb = "Created"
			}
			fmt.Fprintf(out, "%s prioritization for use case %d\n", verb, useCaseID)
			fmt.Fprint(out, formatter.FormatPrioritization(res.Prioritization))
			return nil
		},
	}

	cmd.Flags().Int64Var(&useCaseID, "usecase", 0, "Use case ID")
	cmd.Flags().StringVar(&editor, "editor", "", "Editor email")
	cmd.Flags().Float64("reach", 0, "Reach")
	cmd.Flags().Float64("impact", 0, "Impact")
	cmd.Flags().Float64("confidence", 0, "Confidence")
	cmd.Flags().Float64("effort", 0, "Effort")
	cmd.Flags().Float64("score", 0, "Explicit RICE score (otherwise derived)")
	cmd.Flags().Int64("priority", 0, "Priority rank")
	cmd.Flags().Bool("gallery", false, "Show in the AI gallery (--gallery=false to hide)")
	cmd.Flags().Bool("slt-reporting", false, "Include in SLT reporting")
	cmd.Flags().Int64("user-base", 0, "Total user base")
	cmd.Flags().Int64("timespan", 0, "Timespan id")
	cmd.Flags().Int64("reporting-frequency", 0, "Reporting frequency id")
	return cmd
}

func newPrioritizeShowCmd(a *App, flags *rootFlags) *cobra.Command {
	var useCaseID int64

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current prioritization",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUseCase(useCaseID); err != nil {
				return err
			}
			p, err := a.Prioritize.CurrentPrioritization(cmd.Context(), useCaseID)
			if err != nil {
				return err
			}
			if flags.json {
				return writeJSON(cmd.OutOrStdout(), contract.ItemResponse[contract.PrioritizationResponse]{OK: true, Item: contract.FromPrioritization(*p)})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPrioritization(*p))
			return nil
		},
	}

	cmd.Flags().Int64Var(&useCaseID, "usecase", 0, "Use case ID")
	return cmd
}
