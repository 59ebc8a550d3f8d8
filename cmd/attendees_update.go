package cmd

import (
	"context"

	"github.com/PolarWolf314/rollcall/internal/records"
	"github.com/PolarWolf314/rollcall/internal/ui"
	"github.com/PolarWolf314/rollcall/internal/workflows"
	"github.com/spf13/cobra"
)

var updateChanges records.Record

func init() {
	addRecordFlags(updateCmd.Flags(), &updateChanges)
}

func resetUpdateCommandState() {
	updateChanges = records.Record{}
}

var updateCmd = &cobra.Command{
	Use:   "update <row>",
	Short: "Change an attendee's details",
	Long: `Changes the attendee at the given row. Fields without a flag keep their
current value. Run "rollcall attendees list" to find row numbers.

Example:
  rollcall attendees update 3 --phone 555-0199`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting update command")
		spinner, cleanup := startSpinner("Updating attendee...", verbose)
		defer cleanup()

		row, err := parseRow(args[0])
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + err.Error()
			return nil
		}

		if updateChanges == (records.Record{}) {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " Nothing to update\n" +
				ui.Hint.Sprint("→") + " Pass at least one of " + ui.Flag.Sprint("--name --email --phone --date --time")
			return nil
		}

		result, err := workflows.Update(context.Background(), workflows.UpdateOptions{Row: row, Changes: updateChanges})
		if err != nil {
			spinner.FinalMSG = formatStoreError(err)
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}

		Logger.Debugf("Updated row %d", result.Row)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Record updated successfully!"
		return nil
	},
}
