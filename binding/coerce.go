package binding

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Coerce converts v to the dynamic type of like. Numbers format to their
// shortest decimal form when like is a string ("7", "2.5") and strings
// parse back into numbers or booleans. A nil like returns v unchanged.
func Coerce(v, like any) (any, error) {
	if like == nil {
		return v, nil
	}
	switch like.(type) {
	case string:
		return toString(v), nil
	case int:
		return toInt(v)
	case float64:
		return toFloat64(v)
	case bool:
		return toBool(v)
	}

	want := reflect.TypeOf(like)
	if v == nil {
		return reflect.Zero(want).Interface(), nil
	}
	got := reflect.ValueOf(v)
	if got.Type() == want {
		return v, nil
	}
	if got.Type().ConvertibleTo(want) && got.Kind() != reflect.String {
		return got.Convert(want).Interface(), nil
	}
	return nil, fmt.Errorf("%w: %T to %s", ErrCoerce, v, want)
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}

func toInt(v any) (any, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case int32:
		return int(t), nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, fmt.Errorf("%w: %v to int", ErrCoerce, t)
		}
		return int(t), nil
	case float32:
		return int(t), nil
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.Atoi(s); err == nil {
			return n, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int(f), nil
		}
	}
	return nil, fmt.Errorf("%w: %T %v to int", ErrCoerce, v, v)
}

func toFloat64(v any) (any, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case bool:
		if t {
			return 1.0, nil
		}
		return 0.0, nil
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %T %v to float64", ErrCoerce, v, v)
}

func toBool(v any) (any, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case int:
		return t != 0, nil
	case int64:
		return t != 0, nil
	case float64:
		return t != 0, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return false, nil
		}
		if b, err := strconv.ParseBool(s); err == nil {
			return b, nil
		}
		return true, nil
	case nil:
		return false, nil
	}
	return nil, fmt.Errorf("%w: %T to bool", ErrCoerce, v)
}
