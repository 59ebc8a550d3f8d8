package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/rollcall/internal/ui"
	"github.com/PolarWolf314/rollcall/internal/workflows"
	"github.com/spf13/cobra"
)

var exportOutput string

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "file to write (default: stdout)")
}

func resetExportCommandState() {
	exportOutput = ""
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the attendee list as plaintext CSV",
	Long: `Decrypts the attendee list and writes it as CSV with the header
Name,Email,Phone,Date,Time. The output is NOT encrypted; files are created
with mode 0600.

Examples:
  rollcall attendees export > attendees.csv
  rollcall attendees export --output attendees.csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting export command")

		if exportOutput == "" {
			// The CSV goes to stdout, so no spinner or status line.
			result, err := workflows.Export(context.Background(), workflows.ExportOptions{Writer: os.Stdout})
			if err != nil {
				fmt.Fprintln(os.Stderr, formatStoreError(err))
				if isUnexpectedError(err) {
					return err
				}
				return nil
			}
			Logger.Debugf("Exported %d records to stdout", result.Count)
			return nil
		}

		spinner, cleanup := startSpinner("Exporting attendee list...", verbose)
		defer cleanup()

		result, err := workflows.Export(context.Background(), workflows.ExportOptions{OutputPath: exportOutput})
		if err != nil {
			spinner.FinalMSG = formatStoreError(err)
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Exported " + ui.Value.Sprint(result.Count) +
			" records to " + ui.Path.Sprint(result.OutputPath) + "\n" +
			ui.Warning.Sprint("⚠") + " This file is not encrypted"
		return nil
	},
}
