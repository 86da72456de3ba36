package config

import (
	"fmt"
	"time"
)

// ValidateDuration checks that d falls within [min, max].
func ValidateDuration(d, min, max time.Duration) error {
	if d < min {
		return fmt.Errorf("duration %v below minimum %v", d, min)
	}
	if d > max {
		return fmt.Errorf("duration %v exceeds maximum %v", d, max)
	}
	return nil
}

// ValidateTimezone checks that tz names a loadable IANA timezone.
func ValidateTimezone(tz string) error {
	if tz == "" {
		return fmt.Errorf("invalid timezone: empty")
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return fmt.Errorf("invalid timezone %q", tz)
	}
	return nil
}

// ValidateIntRange checks that v falls within [min, max].
func ValidateIntRange(v, min, max int) error {
	if v < min {
		return fmt.Errorf("value %d below minimum %d", v, min)
	}
	if v > max {
		return fmt.Errorf("value %d exceeds maximum %d", v, max)
	}
	return nil
}
