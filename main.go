package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/rollcall/cmd"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rollcall",
	Short: "Rollcall - an encrypted attendee registration list.",
	Long: `Rollcall keeps event attendee registrations in a single encrypted file.

Every change is written to disk immediately. The key lives next to the data
file; without it the list cannot be read.

Usage:
  rollcall <command> [flags]

Available Commands:
  attendees  Manage the attendee list

Run 'rollcall help <command>' for more details on a specific command.
`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		figure.NewColorFigure("rollcall", "", "cyan", true).Print()
		fmt.Println()
		fmt.Println("Welcome to Rollcall! Run 'rollcall --help' to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.AttendeesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
