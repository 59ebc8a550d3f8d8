// Package utils holds small helpers shared by the commands and workflows:
// the current login name for audit entries, terminal detection for prompts
// and spinners, reading import input from a file or stdin, and path lists
// for status messages.
package utils
