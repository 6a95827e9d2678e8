package descriptor

import (
	"fmt"
	"strconv"
	"strings"
)

// Anonymous is the id of components that cannot be looked up by id.
const Anonymous = "_"

// Props gives typed access to a decoded component mapping.
type Props map[string]any

func (p Props) Has(key string) bool {
	_, ok := p[key]
	return ok
}

func (p Props) Type() string    { return p.String("type", "") }
func (p Props) Subtype() string { return p.String("subtype", "") }

// ID returns the component id, or Anonymous when none was declared.
func (p Props) ID() string {
	id := p.String("id", "")
	if id == "" {
		return Anonymous
	}
	return id
}

// String returns the value at key formatted as a string. Scalars of other
// types are formatted with fmt; a missing or nil value yields def.
func (p Props) String(key, def string) string {
	switch v := p[key].(type) {
	case nil:
		return def
	case string:
		return v
	case []any, map[string]any:
		return def
	default:
		return fmt.Sprint(v)
	}
}

func (p Props) Float(key string, def float64) float64 {
	if f, ok := toFloat(p[key]); ok {
		return f
	}
	return def
}

func (p Props) Int(key string, def int) int {
	if f, ok := toFloat(p[key]); ok {
		return int(f)
	}
	return def
}

func (p Props) Bool(key string, def bool) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return def
}

// Strings returns the value at key as a list. A single string becomes a
// one-element list.
func (p Props) Strings(key string) []string {
	switch v := p[key].(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if item != nil {
				out = append(out, fmt.Sprint(item))
			}
		}
		return out
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}
