// Package layout resolves declarative geometry (percentages and grid cells)
// into absolute pixel values for a given container.
package layout

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidPercent = errors.New("invalid percentage value")
	ErrInvalidGrid    = errors.New("invalid grid")
	ErrCellOutOfRange = errors.New("grid cell out of range")
)

// IsPercent reports whether v is a percentage string such as "50%".
func IsPercent(v any) bool {
	s, ok := v.(string)
	return ok && strings.HasSuffix(strings.TrimSpace(s), "%")
}

// ParsePercent converts a percentage string to its fractional value.
// "50%" returns 0.5.
func ParsePercent(s string) (float64, error) {
	f, err := percentOf(s)
	if err != nil {
		return 0, err
	}
	return f / 100, nil
}

func percentOf(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasSuffix(trimmed, "%") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPercent, s)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(trimmed, "%")), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPercent, s)
	}
	return f, nil
}

// Resolve converts a raw dimension into an absolute pixel value.
//
// Parameters:
//   - v: the raw value, either a number or a percentage string
//   - ref: the reference size the percentage applies to
//
// Returns floor(ref * P / 100) for percentage strings. Any other value is
// returned unchanged.
func Resolve(v any, ref int) (any, error) {
	if !IsPercent(v) {
		return v, nil
	}
	p, err := percentOf(v.(string))
	if err != nil {
		return nil, err
	}
	return int(math.Floor(float64(ref) * p / 100)), nil
}
