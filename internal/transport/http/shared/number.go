package shared

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CoerceFloat accepts the JSON shapes the client actually sends for
// numeric fields: numbers, numeric strings, or nothing. The bool reports
// whether a usable value was present.
func CoerceFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func CoerceInt(value any) (int, bool) {
	parsed, ok := CoerceFloat(value)
	if !ok {
		return 0, false
	}
	return int(parsed), true
}
