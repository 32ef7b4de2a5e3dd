package conf

import (
	"time"
)

// P returns a pointer to a copy of v, for literal config defaults.
func P[T any](v T) *T {
	return &v
}

func StringNotEmpty(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}

func Bool(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func Int(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func IntMin(v *int, min int, def int) int {
	if v == nil || *v < min {
		return def
	}
	return *v
}

// DurationMin parses a Go duration string, falling back to def when the value
// is unset, unparseable or below min.
func DurationMin(v *string, min time.Duration, def string) time.Duration {
	if v != nil {
		if d, err := time.ParseDuration(*v); err == nil && d >= min {
			return d
		}
	}
	d, _ := time.ParseDuration(def)
	return d
}
