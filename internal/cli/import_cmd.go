package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/cli/formatter"
)

func newImportCmd(a *App, flags *rootFlags) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Apply a JSON or YAML file of child records to one use case",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			res, err := a.Import.ImportFile(cmd.Context(), file)
			out := cmd.OutOrStdout()
			if res != nil {
				if flags.json {
					if werr := writeJSON(out, res); werr != nil {
						return werr
					}
				} else {
					fmt.Fprint(out, formatter.FormatImportResult(*res))
				}
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Import file (.json, .yaml or .yml)")
	return cmd
}
