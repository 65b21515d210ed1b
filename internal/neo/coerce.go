package neo

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// CoerceFloat converts v to a float64. Nil, non-numeric values and
// non-finite results yield def unchanged.
func CoerceFloat(v any, def *float64) *float64 {
	if v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	switch v.(type) {
	case map[string]any, []any:
		return def
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return &f
}

// CoerceFloatOr is CoerceFloat with a non-nullable default.
func CoerceFloatOr(v any, def float64) float64 {
	if f := CoerceFloat(v, nil); f != nil {
		return *f
	}
	return def
}

// CoerceInt truncates a numeric value toward zero, falling back to def.
func CoerceInt(v any, def int) int {
	f := CoerceFloat(v, nil)
	if f == nil || *f > math.MaxInt32 || *f < math.MinInt32 {
		return def
	}
	return int(*f)
}

func text(m map[string]any, key, def string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	switch v.(type) {
	case map[string]any, []any:
		return def
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return def
	}
	return s
}

func flag(m map[string]any, key string) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		b, err := cast.ToBoolE(strings.TrimSpace(v))
		return err == nil && b
	default:
		return false
	}
}

// object returns the nested object at key, or an empty one.
func object(m map[string]any, key string) map[string]any {
	if o, ok := m[key].(map[string]any); ok {
		return o
	}
	return map[string]any{}
}
