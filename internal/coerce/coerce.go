// Package coerce converts the loosely typed values found in social-media
// exports into typed Go values. Every function here is total: malformed
// input degrades to nil or a zero value, it never returns an error.
// Exports are known to carry legacy records with stringified numbers,
// naive timestamps and half-filled index arrays.
package coerce

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Timestamp layouts seen across export generations. The verbose layout is
// the classic status format; the rest are ISO-like variants, some naive.
var timeLayouts = []string{
	"Mon Jan 02 15:04:05 -0700 2006",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Int64 parses an integer-like value (number, stringified number or
// json.Number). Returns nil on anything non-numeric.
func Int64(value interface{}) *int64 {
	switch v := value.(type) {
	case nil:
		return nil
	case int64:
		return &v
	case int:
		n := int64(v)
		return &n
	case float64:
		n := int64(v)
		return &n
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return &n
		}
		return nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return &n
		}
		return nil
	default:
		return nil
	}
}

// IndexPair parses a two-element start/end offset array. Anything other
// than exactly two valid integers yields (nil, nil).
func IndexPair(value interface{}) (*int64, *int64) {
	items, ok := value.([]interface{})
	if !ok || len(items) != 2 {
		return nil, nil
	}
	start := Int64(items[0])
	end := Int64(items[1])
	if start == nil || end == nil {
		return nil, nil
	}
	return start, end
}

// Time parses a timestamp in either the verbose locale-bearing format or
// an ISO-like format and normalizes it to UTC. Unparsable or empty values
// yield nil.
func Time(value interface{}) *time.Time {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		t := v.UTC()
		return &t
	case string:
		candidate := strings.TrimSpace(v)
		if candidate == "" {
			return nil
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, candidate); err == nil {
				t = t.UTC()
				return &t
			}
		}
		return nil
	default:
		return nil
	}
}

// String renders a scalar value as a string. Numeric ids show up both
// quoted and unquoted across export generations, so numbers stringify
// rather than degrade to "". Nil and composite values yield "".
func String(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// OptString renders a value as a string pointer, nil for nil input and
// for empty strings.
func OptString(value interface{}) *string {
	s := String(value)
	if s == "" {
		return nil
	}
	return &s
}

// OptFieldString renders a map field as a string pointer. Unlike
// OptString it preserves an explicit empty string; only absent or null
// fields become nil.
func OptFieldString(m map[string]interface{}, key string) *string {
	value, ok := m[key]
	if !ok || value == nil {
		return nil
	}
	s := String(value)
	return &s
}

// Bool renders a value as a bool, false for anything non-boolean.
func Bool(value interface{}) bool {
	b, _ := value.(bool)
	return b
}

// OptBool renders a value as a bool pointer, nil for non-boolean input.
func OptBool(value interface{}) *bool {
	if b, ok := value.(bool); ok {
		return &b
	}
	return nil
}

// FormatTimestamp renders a UTC timestamp as RFC3339 with millisecond
// precision and a Z suffix, or "" for nil.
func FormatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
