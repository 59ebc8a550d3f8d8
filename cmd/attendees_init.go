package cmd

import (
	"context"

	"github.com/PolarWolf314/rollcall/internal/ui"
	"github.com/PolarWolf314/rollcall/internal/utils"
	"github.com/PolarWolf314/rollcall/internal/workflows"
	"github.com/spf13/cobra"
)

var initStartFresh bool

func init() {
	initCmd.Flags().BoolVar(&initStartFresh, "start-fresh", false, "move an unreadable data file aside and start an empty list")
}

func resetInitCommandState() {
	initStartFresh = false
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the encryption key and an empty attendee list",
	Long: `Creates the encryption key and an empty encrypted attendee list in the
data directory. Running it again on an existing store only checks that the
data file can be decrypted.

If the data file cannot be decrypted, init stops. Pass --start-fresh to move
the unreadable file aside (it is kept as attendees.csv.corrupt-<timestamp>)
and start an empty list.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")
		spinner, cleanup := startSpinner("Initializing attendee store...", verbose)
		defer cleanup()

		opts := workflows.InitOptions{Recovery: workflows.RecoveryAbort}
		if initStartFresh {
			opts.Recovery = workflows.RecoveryStartFresh
		}

		result, err := workflows.Init(context.Background(), opts)
		if err != nil {
			spinner.FinalMSG = formatStoreError(err)
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}

		Logger.Debugf("Store UUID: %s", result.StoreUUID)

		var msg string
		switch {
		case result.MovedTo != "":
			msg = ui.Warning.Sprint("⚠") + " Unreadable data file moved to " + ui.Path.Sprint(result.MovedTo) + "\n" +
				ui.Success.Sprint("✓") + " Started an empty attendee list"
		case result.StoreCreated:
			msg = ui.Success.Sprint("✓") + " Attendee store initialized!" + utils.FormatPaths([]string{result.KeyPath, result.DataPath}) +
				ui.Hint.Sprint("→") + " Keep the key file safe: without it the list cannot be decrypted"
		default:
			msg = ui.Success.Sprint("✓") + " Attendee store already initialized " + ui.Dim.Sprintf("%d records", result.RecordCount)
		}
		if result.KeyMovedTo != "" {
			msg += "\n" + ui.Warning.Sprint("⚠") + " Corrupt key file moved to " + ui.Path.Sprint(result.KeyMovedTo)
		}
		if result.KeyCreated && (result.MovedTo != "" || result.KeyMovedTo != "") {
			msg += "\n" + ui.Hint.Sprint("→") + " A new key was generated at " + ui.Path.Sprint(result.KeyPath)
		}

		spinner.FinalMSG = msg
		return nil
	},
}
