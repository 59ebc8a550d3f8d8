package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/rollcall/internal/audit"
	kerrors "github.com/PolarWolf314/rollcall/internal/errors"
	"github.com/PolarWolf314/rollcall/internal/ui"
	"github.com/PolarWolf314/rollcall/internal/workflows"
	"github.com/spf13/cobra"
)

var logOpts workflows.LogOptions

var logJSON bool

func init() {
	f := logCmd.Flags()
	f.IntVarP(&logOpts.Limit, "number", "n", 0, "show only the N most recent entries")
	f.BoolVar(&logOpts.Reverse, "reverse", false, "show most recent entries first")
	f.StringVar(&logOpts.User, "user", "", "only entries by this OS user")
	f.StringVar(&logOpts.Operations, "operation", "", "only these operations, comma-separated (init,add,update,remove,import,export)")
	f.StringVar(&logOpts.Since, "since", "", "only entries on or after this day (YYYY-MM-DD)")
	f.StringVar(&logOpts.Until, "until", "", "only entries on or before this day (YYYY-MM-DD)")
	f.BoolVar(&logJSON, "json", false, "print entries as a JSON array")
}

func resetLogCommandState() {
	logOpts = workflows.LogOptions{}
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show who changed the attendee list and when",
	Long: `Shows the audit log kept next to the attendee list.

Entries record the operation, the OS user and the affected row number.
Attendee details are never written to the log.

Examples:
  rollcall attendees log -n 10 --reverse
  rollcall attendees log --operation add,remove --since 2025-01-01
  rollcall attendees log --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting log command")

		spinner, cleanup := startSpinner("Reading audit log...", verbose)
		defer cleanup()

		result, err := workflows.Log(context.Background(), logOpts)
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + err.Error()
			if errors.Is(err, kerrors.ErrInvalidDateFormat) {
				return nil
			}
			return err
		}
		Logger.Debugf("%d of %d audit entries match", len(result.Entries), result.Total)
		cleanup()

		switch {
		case logJSON:
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result.Entries)
		case result.Total == 0:
			fmt.Println("The audit log is empty.")
		case len(result.Entries) == 0:
			fmt.Println("No audit entries match the filters.")
		default:
			return renderLog(result.Entries)
		}
		return nil
	},
}

func renderLog(entries []audit.Entry) error {
	table := ui.Table{
		Header: []string{"When (UTC)", "User", "Operation", "Details"},
		Format: func(col int, cell string) string {
			if col == 2 {
				return ui.Hint.Sprint(cell)
			}
			return cell
		},
	}
	for _, e := range entries {
		table.Rows = append(table.Rows, []string{
			workflows.FormatDateTime(e.Timestamp), e.User, e.Operation, workflows.FormatDetails(e),
		})
	}
	return table.Render(os.Stdout)
}
