package store

import (
	"reflect"
	"time"

	"github.com/affordablebilliards/billiards_api/internal/utils"
)

// Normalize returns a deep copy of doc with every time.Time value, at any
// depth, converted to an ISO-8601 UTC string with millisecond precision.
func Normalize(doc Document) Document {
	if doc == nil {
		return nil
	}
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case time.Time:
		return utils.FormatISO(val)
	case *time.Time:
		if val == nil {
			return nil
		}
		return utils.FormatISO(*val)
	case Document:
		return map[string]interface{}(Normalize(val))
	case map[string]interface{}:
		return map[string]interface{}(Normalize(val))
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	case []string:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out
	default:
		return v
	}
}

// Matches reports whether doc satisfies every filter.
func Matches(doc Document, filters []Filter) bool {
	for _, f := range filters {
		v, ok := doc[f.Field]
		if !ok || !equalValues(v, f.Value) {
			return false
		}
	}
	return true
}

func equalValues(a, b interface{}) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}
	return reflect.DeepEqual(normalizeValue(a), normalizeValue(b))
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
