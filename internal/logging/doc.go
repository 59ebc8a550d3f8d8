// Package logger provides leveled diagnostics for rollcall commands.
//
// --verbose enables info and warning lines; --debug adds debug and error
// lines. WarnfAlways ignores both flags. All output goes to stderr by
// default; command results are printed by the commands themselves.
package logger
