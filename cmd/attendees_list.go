package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/PolarWolf314/rollcall/internal/records"
	"github.com/PolarWolf314/rollcall/internal/ui"
	"github.com/PolarWolf314/rollcall/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	listSearch string
	listJSON   bool
)

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "only show attendees whose email or phone contains this text")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON array")
}

func resetListCommandState() {
	listSearch = ""
	listJSON = false
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List attendees",
	Long: `Lists attendees with their row numbers, which update and remove take.

Examples:
  rollcall attendees list
  rollcall attendees list --search example.com
  rollcall attendees list --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list command")
		spinner, cleanup := startSpinner("Decrypting attendee list...", verbose)
		defer cleanup()

		result, err := workflows.List(context.Background(), workflows.ListOptions{Search: listSearch})
		if err != nil {
			spinner.FinalMSG = formatStoreError(err)
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}

		Logger.Debugf("%d of %d records match %q", len(result.Rows), result.Total, listSearch)

		// Stop the spinner before printing the table.
		cleanup()

		if listJSON {
			return outputListJSON(result.Rows)
		}

		if len(result.Rows) == 0 {
			if result.Total == 0 {
				fmt.Println("No attendees registered yet.")
			} else {
				fmt.Println("No attendees match " + ui.Value.Sprint(listSearch) + ".")
			}
			return nil
		}

		return outputListTable(result.Rows)
	},
}

func outputListJSON(rows []workflows.Row) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal attendees to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputListTable(rows []workflows.Row) error {
	table := ui.Table{
		Header: append([]string{"#"}, records.Header...),
		Format: func(col int, cell string) string {
			if col == 0 {
				return ui.Hint.Sprint(cell)
			}
			return cell
		},
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, append([]string{strconv.Itoa(row.Index)}, row.Record.Fields()...))
	}
	return table.Render(os.Stdout)
}
