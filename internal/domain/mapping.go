package domain

import (
	"strconv"
	"time"
)

// Coercion helpers for the map-shaped serialization boundary. Values come
// from in-process ToMap calls or loosely typed report rows, so numbers may
// arrive as int, int64, or float64.

func stringField(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

func boolField(data map[string]any, key string) bool {
	if v, ok := data[key].(bool); ok {
		return v
	}
	return false
}

func intField(data map[string]any, key string) int64 {
	switch v := data[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

func dateField(data map[string]any, key string) (*time.Time, error) {
	switch v := data[key].(type) {
	case nil:
		return nil, nil
	case time.Time:
		if v.IsZero() {
			return nil, nil
		}
		day := time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, v.Location())
		return &day, nil
	case string:
		if v == "" {
			return nil, nil
		}
		day, err := time.Parse(DateLayout, v)
		if err != nil {
			return nil, invalidf("%s %q is not a YYYY-MM-DD date", key, v)
		}
		return &day, nil
	default:
		return nil, invalidf("%s has unsupported type %T", key, v)
	}
}

func costField(data map[string]any, key string) (float64, error) {
	switch v := data[key].(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		if v == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, invalidf("%s %q is not numeric", key, v)
		}
		return f, nil
	default:
		return 0, invalidf("%s has unsupported type %T", key, v)
	}
}
