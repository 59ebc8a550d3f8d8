package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/rollcall/internal/errors"
	"github.com/PolarWolf314/rollcall/internal/ui"
	"github.com/PolarWolf314/rollcall/internal/utils"
	"github.com/briandowns/spinner"
)

// isInteractive reports whether prompts can be shown. Tests replace it.
var isInteractive = utils.StdinIsTerminal

// confirmInput is where prompt answers are read from. Tests replace it.
var confirmInput io.Reader = os.Stdin

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up. The
// cleanup function may be called early, before printing other output; later
// calls do nothing.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		// Output would be garbled by the spinner, so only animate on a terminal.
		if utils.StdoutIsTerminal() {
			s.Start()
		}
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	done := false
	cleanup := func() {
		if done {
			return
		}
		done = true

		if quiet {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// parseRow parses a row index argument.
func parseRow(arg string) (int, error) {
	row, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("row must be a number, got %q", arg)
	}
	return row, nil
}

// confirm asks a yes/no question and returns true only for an explicit yes.
func confirm(s *spinner.Spinner, prompt string) bool {
	if s.Active() {
		s.Stop()
		defer s.Restart()
	}

	reader := bufio.NewReader(confirmInput)
	fmt.Printf("%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		Logger.Errorf("Failed to read response: %v", err)
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

// formatStoreError formats an error from any workflow that opens the store.
func formatStoreError(err error) string {
	var indexErr *kerrors.IndexError

	switch {
	case errors.Is(err, kerrors.ErrStoreNotInitialized):
		return ui.Error.Sprint("✗") + " The attendee store has not been initialized\n" +
			ui.Hint.Sprint("→") + " Run " + ui.Command.Sprint("rollcall attendees init") + " first"

	case errors.Is(err, kerrors.ErrKeyNotFound):
		return ui.Error.Sprint("✗") + " The encryption key is missing, so the existing data file cannot be read\n" +
			ui.Hint.Sprint("→") + " Restore the key file, or run " + ui.Command.Sprint("rollcall attendees init --start-fresh") +
			" to move the data aside and start over"

	case errors.Is(err, kerrors.ErrInvalidKeyLength):
		return ui.Error.Sprint("✗") + " The key file is corrupt: " + err.Error() + "\n" +
			ui.Hint.Sprint("→") + " Restore the key file, or run " + ui.Command.Sprint("rollcall attendees init --start-fresh") +
			" to move the key and data aside and start over"

	case errors.Is(err, kerrors.ErrDecryptFailed):
		return ui.Error.Sprint("✗") + " The data file could not be decrypted with the current key\n" +
			ui.Hint.Sprint("→") + " It may be corrupted or encrypted with a different key. Run " +
			ui.Command.Sprint("rollcall attendees init --start-fresh") + " to move it aside and start over"

	case errors.Is(err, kerrors.ErrInvalidFormat):
		return ui.Error.Sprint("✗") + " The data file decrypted but is not a valid attendee table: " + err.Error()

	case errors.As(err, &indexErr):
		if indexErr.Len == 0 {
			return ui.Error.Sprint("✗") + " Row " + ui.Value.Sprint(indexErr.Index) + " does not exist, the table is empty"
		}
		return ui.Error.Sprint("✗") + " Row " + ui.Value.Sprint(indexErr.Index) + " does not exist\n" +
			ui.Hint.Sprint("→") + fmt.Sprintf(" Valid rows are 0 to %d. Run ", indexErr.Len-1) +
			ui.Command.Sprint("rollcall attendees list") + " to see them"

	case errors.Is(err, kerrors.ErrOutputIsStoreFile):
		return ui.Error.Sprint("✗") + " Refusing to export over the store's own files: " + err.Error() + "\n" +
			ui.Hint.Sprint("→") + " Choose a different " + ui.Flag.Sprint("--output") + " path"

	case errors.Is(err, kerrors.ErrMissingField), errors.Is(err, kerrors.ErrInvalidField):
		return ui.Error.Sprint("✗") + " Invalid attendee: " + err.Error()

	case errors.Is(err, context.Canceled):
		return ui.Warning.Sprint("⚠") + " Cancelled"

	case errors.Is(err, kerrors.ErrIO):
		return ui.Error.Sprint("✗") + " Could not access the store: " + err.Error()

	default:
		return ui.Error.Sprint("✗") + " " + err.Error()
	}
}

// isUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, kerrors.ErrStoreNotInitialized),
		errors.Is(err, kerrors.ErrIndexOutOfRange),
		errors.Is(err, kerrors.ErrMissingField),
		errors.Is(err, kerrors.ErrInvalidField),
		errors.Is(err, kerrors.ErrInvalidDateFormat),
		errors.Is(err, kerrors.ErrOutputIsStoreFile),
		errors.Is(err, context.Canceled):
		return false
	default:
		return true
	}
}
