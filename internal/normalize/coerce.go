package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// intField returns the first key that holds something usable as an integer.
func intField(obj map[string]any, keys ...string) *int {
	for _, key := range keys {
		if n, ok := toInt(obj[key]); ok {
			return &n
		}
	}
	return nil
}

func stringField(obj map[string]any, keys ...string) *string {
	for _, key := range keys {
		if s, ok := toString(obj[key]); ok {
			return &s
		}
	}
	return nil
}

// toInt accepts JSON numbers and numeric strings. Fractions are rounded.
func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil && n >= math.MinInt && n <= math.MaxInt {
			return int(n), true
		}
		if f, err := t.Float64(); err == nil {
			return roundInt(f)
		}
	case float64:
		return roundInt(t)
	case int:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.Atoi(s); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return roundInt(f)
		}
	}
	return 0, false
}

// roundInt rejects values that do not fit in an int; converting them would wrap.
func roundInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Round(f)
	if f >= math.MaxInt || f < math.MinInt {
		return 0, false
	}
	return int(f), true
}

func toString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
