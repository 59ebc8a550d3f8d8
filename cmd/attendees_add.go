package cmd

import (
	"context"
	"time"

	"github.com/PolarWolf314/rollcall/internal/records"
	"github.com/PolarWolf314/rollcall/internal/ui"
	"github.com/PolarWolf314/rollcall/internal/workflows"
	"github.com/spf13/cobra"
)

var addRecord records.Record

// now is the clock used for default dates and times. Tests replace it.
var now = time.Now

func init() {
	addRecordFlags(addCmd.Flags(), &addRecord)
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("email")
	_ = addCmd.MarkFlagRequired("phone")
}

func resetAddCommandState() {
	addRecord = records.Record{}
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Register an attendee",
	Long: `Registers an attendee. The date and time default to now.

Examples:
  rollcall attendees add --name "Ann Lee" --email ann@example.com --phone 555-0101
  rollcall attendees add --name Bob --email bob@example.com --phone 555-0102 --date 24-12-2025 --time 18:30`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting add command")
		spinner, cleanup := startSpinner("Adding attendee...", verbose)
		defer cleanup()

		r := addRecord
		t := now()
		if r.Date == "" {
			r.Date = t.Format(records.DateLayout)
		}
		if r.Time == "" {
			r.Time = t.Format(records.TimeLayout)
		}

		result, err := workflows.Add(context.Background(), workflows.AddOptions{Record: r})
		if err != nil {
			spinner.FinalMSG = formatStoreError(err)
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}

		Logger.Debugf("Table now has %d records", result.Count)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Added " + ui.Value.Sprint(result.Record.Name) +
			" as row " + ui.Value.Sprint(result.Row)
		return nil
	},
}
