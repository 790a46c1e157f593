package config

import (
	"fmt"
	"time"

	"github.com/vodtools/vodindex/internal/mediator"
)

// ParseDate converts a YYYY-MM-DD string to a time.Time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("wrong date format (want YYYY-MM-DD): %q", s)
	}
	return t, nil
}

// ValidateLanguage checks a language code against the remote index.
// The default code is accepted without a network round trip.
func ValidateLanguage(client *mediator.Client, code string) error {
	if code == "E" {
		return nil
	}
	langs, err := client.Languages()
	if err != nil {
		return fmt.Errorf("fetching language index: %w", err)
	}
	for _, l := range langs {
		if l.Code == code {
			return nil
		}
	}
	return fmt.Errorf("%s: invalid language code", code)
}

// MiB converts mebibytes to bytes, for the --free flag.
func MiB(n int64) int64 {
	return n * 1024 * 1024
}
