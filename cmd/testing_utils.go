// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for setting up test environments,
// capturing output, and running commands through a fresh root command.
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PolarWolf314/rollcall/internal/configs"
	logger "github.com/PolarWolf314/rollcall/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// setupTestEnvironment points settings at a temp directory and restores
// every overridable global afterwards. It returns the temp directory.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()
	t.Setenv(configs.DataDirEnv, "")
	t.Setenv("NO_COLOR", "1")

	tempDir := t.TempDir()

	originalSettings := configs.RollcallSettings
	originalInteractive := isInteractive
	originalInput := confirmInput
	originalNow := now

	t.Cleanup(func() {
		configs.RollcallSettings = originalSettings
		isInteractive = originalInteractive
		confirmInput = originalInput
		now = originalNow
		ResetGlobalState()
	})

	configs.RollcallSettings = configs.NewSettings(
		filepath.Join(tempDir, "config", "config.toml"),
		filepath.Join(tempDir, "data"),
		"testuser",
	)
	isInteractive = func() bool { return false }
	confirmInput = strings.NewReader("")
	now = func() time.Time { return time.Date(2025, time.March, 7, 14, 5, 0, 0, time.UTC) }

	return tempDir
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stdoutChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stderrChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

// createTestCLI creates a complete CLI instance that runs `attendees <args...>`.
func createTestCLI(args []string, verboseFlag, debugFlag bool) *cobra.Command {
	ResetGlobalState()
	verbose = verboseFlag
	debug = debugFlag

	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}

	rootCmd := &cobra.Command{
		Use:          "rollcall",
		Short:        "Rollcall - an encrypted attendee registration list.",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(AttendeesCmd)

	// Flags remember being set across executions; forget that so required
	// flags are checked again.
	for _, sub := range AttendeesCmd.Commands() {
		sub.Flags().VisitAll(func(f *pflag.Flag) {
			f.Changed = false
		})
	}

	rootCmd.SetArgs(append([]string{"attendees"}, args...))

	if err := AttendeesCmd.PersistentFlags().Set("verbose", fmt.Sprintf("%t", verboseFlag)); err != nil {
		log.Fatalf("Failed to set verbose flag for testing: %s", err)
	}
	if err := AttendeesCmd.PersistentFlags().Set("debug", fmt.Sprintf("%t", debugFlag)); err != nil {
		log.Fatalf("Failed to set debug flag for testing: %s", err)
	}

	return rootCmd
}

// runCommand runs `attendees <args...>` and returns its combined output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return captureOutput(func() error {
		return createTestCLI(args, false, false).Execute()
	})
}

// mustRun runs a command and fails the test if it returns an error.
func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	output, err := runCommand(t, args...)
	if err != nil {
		t.Fatalf("Command %v failed: %v\nOutput: %s", args, err, output)
	}
	return output
}

// initializeStore runs init and adds the given attendees.
func initializeStore(t *testing.T, attendees ...[]string) {
	t.Helper()
	mustRun(t, "init")
	for _, a := range attendees {
		mustRun(t, "add", "--name", a[0], "--email", a[1], "--phone", a[2])
	}
}
