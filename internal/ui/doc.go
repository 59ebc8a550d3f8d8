// Package ui formats rollcall's terminal output.
//
// Each Formatter names a role (Command, Path, Value, Hint, ...) rather than a
// color. When NO_COLOR is set or the terminal cannot show color, roles that
// would otherwise be ambiguous fall back to plain decorations: Command gets
// `backticks`, Value gets 'quotes' and Dim gets (parentheses).
//
// Table renders aligned columns for the attendee listing.
package ui
