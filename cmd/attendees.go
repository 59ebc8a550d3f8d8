package cmd

import (
	logger "github.com/PolarWolf314/rollcall/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	AttendeesCmd = &cobra.Command{
		Use:     "attendees",
		Aliases: []string{"a"},
		Short:   "Manage the encrypted attendee list",
		Long:    `Adds, updates, removes, lists and exports attendee registrations kept in an encrypted file.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing attendees command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	AttendeesCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	AttendeesCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	AttendeesCmd.AddCommand(initCmd)
	AttendeesCmd.AddCommand(addCmd)
	AttendeesCmd.AddCommand(updateCmd)
	AttendeesCmd.AddCommand(removeCmd)
	AttendeesCmd.AddCommand(listCmd)
	AttendeesCmd.AddCommand(exportCmd)
	AttendeesCmd.AddCommand(importCmd)
	AttendeesCmd.AddCommand(statusCmd)
	AttendeesCmd.AddCommand(logCmd)
}

// Helper functions for testing

// GetAttendeesCmd returns the AttendeesCmd for testing.
func GetAttendeesCmd() *cobra.Command {
	return AttendeesCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetInitCommandState()
	resetAddCommandState()
	resetUpdateCommandState()
	resetRemoveCommandState()
	resetListCommandState()
	resetExportCommandState()
	resetImportCommandState()
	resetStatusCommandState()
	resetLogCommandState()
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
