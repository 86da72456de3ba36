// Package config provides fail-open environment loading shared by the
// worker and client configuration layers. A value that does not parse
// or validate never aborts startup: the loader returns the default
// alongside a Fallback the caller can log and count.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Fallback describes one applied default: the rejected variable, its
// raw value, and why it was rejected.
type Fallback struct {
	Key     string
	Raw     string
	Default string
	Reason  string
}

// Warning renders the fallback as a log-ready message.
func (f *Fallback) Warning() string {
	return fmt.Sprintf("Invalid %s='%s': %s, falling back to default '%s'",
		f.Key, f.Raw, f.Reason, f.Default)
}

func newFallback(key, raw, def string, err error) *Fallback {
	return &Fallback{Key: key, Raw: raw, Default: def, Reason: err.Error()}
}

// EnvString returns the variable's value, or def when unset or empty.
// No validation is applied.
func EnvString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// EnvStringList splits the variable on commas, trimming whitespace and
// dropping empty entries. An unset variable, or one with no usable
// entries, yields def.
func EnvStringList(key string, def []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}

	var list []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	if len(list) == 0 {
		return def
	}
	return list
}

// EnvValidated returns the variable's value when validate accepts it.
// A rejected value yields def and a non-nil Fallback; an unset variable
// yields def silently. A nil validate accepts any non-empty value.
func EnvValidated(key, def string, validate func(string) error) (string, *Fallback) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	if validate != nil {
		if err := validate(raw); err != nil {
			return def, newFallback(key, raw, def, err)
		}
	}
	return raw, nil
}

// EnvDuration parses the variable with time.ParseDuration and runs the
// result through validate. Parse and validation failures both yield def
// plus a Fallback.
func EnvDuration(key string, def time.Duration, validate func(time.Duration) error) (time.Duration, *Fallback) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return def, newFallback(key, raw, def.String(), err)
	}
	if validate != nil {
		if err := validate(d); err != nil {
			return def, newFallback(key, raw, def.String(), err)
		}
	}
	return d, nil
}

// EnvInt parses the variable as a decimal integer and runs the result
// through validate. Parse and validation failures both yield def plus a
// Fallback.
func EnvInt(key string, def int, validate func(int) error) (int, *Fallback) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return def, newFallback(key, raw, strconv.Itoa(def), fmt.Errorf("not an integer"))
	}
	if validate != nil {
		if err := validate(n); err != nil {
			return def, newFallback(key, raw, strconv.Itoa(def), err)
		}
	}
	return n, nil
}
