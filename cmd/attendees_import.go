package cmd

import (
	"context"

	"github.com/PolarWolf314/rollcall/internal/ui"
	"github.com/PolarWolf314/rollcall/internal/utils"
	"github.com/PolarWolf314/rollcall/internal/workflows"
	"github.com/spf13/cobra"
)

var importDryRun bool

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "check the file without adding anything")
}

func resetImportCommandState() {
	importDryRun = false
}

var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Append attendees from a plaintext CSV file",
	Long: `Appends every attendee in a CSV file with the header Name,Email,Phone,Date,Time,
as written by "rollcall attendees export". Use - to read from stdin.

Every row is validated first; if any row is invalid nothing is added.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting import command")
		spinner, cleanup := startSpinner("Importing attendees...", verbose)
		defer cleanup()

		data, err := utils.ReadInput(args[0])
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + err.Error()
			return nil
		}

		result, err := workflows.Import(context.Background(), workflows.ImportOptions{Data: data, DryRun: importDryRun})
		if err != nil {
			spinner.FinalMSG = formatStoreError(err)
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}

		if result.DryRun {
			spinner.FinalMSG = ui.Warning.Sprint("[dry-run]") + " Would add " + ui.Value.Sprint(result.Added) + " attendees"
			return nil
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Added " + ui.Value.Sprint(result.Added) +
			" attendees " + ui.Dim.Sprintf("%d records total", result.Count)
		return nil
	},
}
