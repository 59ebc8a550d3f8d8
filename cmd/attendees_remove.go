package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/rollcall/internal/records"
	"github.com/PolarWolf314/rollcall/internal/ui"
	"github.com/PolarWolf314/rollcall/internal/workflows"
	"github.com/spf13/cobra"
)

var removeYes bool

func init() {
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "skip the confirmation prompt")
}

func resetRemoveCommandState() {
	removeYes = false
}

var removeCmd = &cobra.Command{
	Use:   "remove <row>",
	Short: "Remove an attendee",
	Long: `Removes the attendee at the given row. Later rows move up by one.

You are asked to confirm unless --yes is passed. Without a terminal, --yes
is required.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting remove command")
		spinner, cleanup := startSpinner("Removing attendee...", verbose)
		defer cleanup()

		row, err := parseRow(args[0])
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + err.Error()
			return nil
		}

		if !removeYes && !isInteractive() {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Refusing to remove without confirmation\n" +
				ui.Hint.Sprint("→") + " Pass " + ui.Flag.Sprint("--yes") + " when running without a terminal"
			return nil
		}

		opts := workflows.RemoveOptions{Row: row}
		if !removeYes {
			opts.Confirm = func(r records.Record) bool {
				return confirm(spinner, fmt.Sprintf("Remove %s <%s>?", r.Name, r.Email))
			}
		}

		result, err := workflows.Remove(context.Background(), opts)
		if err != nil {
			spinner.FinalMSG = formatStoreError(err)
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}

		if result.Cancelled {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " Nothing removed"
			return nil
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Removed " + ui.Value.Sprint(result.Removed.Name) +
			" " + ui.Dim.Sprintf("%d records left", result.Count)
		return nil
	},
}
