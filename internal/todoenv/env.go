// Package todoenv reads the environment overrides mdtodo honours.
package todoenv

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// UserEnvVar names the list owner, overriding config.
	UserEnvVar = "MDTODO_USER"

	// NowEnvVar pins the clock to an RFC 3339 timestamp.
	NowEnvVar = "MDTODO_NOW"
)

// User returns the user named by the environment, or "".
func User() string {
	return strings.TrimSpace(os.Getenv(UserEnvVar))
}

// Now returns the current time in loc, or the pinned time when NowEnvVar is set.
func Now(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	value := strings.TrimSpace(os.Getenv(NowEnvVar))
	if value == "" {
		return time.Now().In(loc), nil
	}
	pinned, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s: %w", NowEnvVar, err)
	}
	return pinned.In(loc), nil
}
