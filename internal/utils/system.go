package utils

import (
	"os"
	"os/user"
)

// CurrentUser returns the login name recorded in audit entries. It falls back
// to $USER and then "unknown" when the user database is unavailable, as in
// some containers.
func CurrentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "unknown"
}
