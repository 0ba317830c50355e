package collector

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// toFloat coerces a decoded JSON value into a float64. Anything that is not
// a finite number, or a string holding one, becomes NaN.
func toFloat(v interface{}) float64 {
	var f float64
	switch n := v.(type) {
	case nil:
		return math.NaN()
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return math.NaN()
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return math.NaN()
		}
		f = parsed
	default:
		return math.NaN()
	}
	if math.IsInf(f, 0) {
		return math.NaN()
	}
	return f
}

var timeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTime tries unix seconds then the known layouts. Returns the zero time
// if nothing matches.
func parseTime(v interface{}) time.Time {
	switch t := v.(type) {
	case nil:
		return time.Time{}
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}
		}
		if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
			return time.Unix(ts, 0).UTC()
		}
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.UTC()
			}
		}
		return time.Time{}
	default:
		f := toFloat(v)
		if math.IsNaN(f) || f <= 0 {
			return time.Time{}
		}
		return time.Unix(int64(f), 0).UTC()
	}
}
