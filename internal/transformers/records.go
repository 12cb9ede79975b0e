package transformers

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var numberRe = regexp.MustCompile(`-?\d[\d,]*(?:\.\d+)?|-?\.\d+`)

// lookup walks a dot-separated path through nested objects.
func lookup(m map[string]interface{}, key string) (interface{}, bool) {
	keys := strings.Split(key, ".")
	current := m
	for _, k := range keys[:len(keys)-1] {
		if next, ok := current[k].(map[string]interface{}); ok {
			current = next
		} else {
			return nil, false
		}
	}
	val, ok := current[keys[len(keys)-1]]
	if !ok || val == nil {
		return nil, false
	}
	return val, true
}

// first returns the value of the first key present, trying keys in order.
func first(m map[string]interface{}, keys ...string) (interface{}, bool) {
	for _, k := range keys {
		if v, ok := lookup(m, k); ok {
			if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
				continue
			}
			return v, true
		}
	}
	return nil, false
}

func getString(m map[string]interface{}, keys ...string) string {
	v, ok := first(m, keys...)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool, int, int64:
		return fmt.Sprintf("%v", t)
	default:
		return ""
	}
}

// getFloat64 parses numbers leniently: JSON numbers, numeric strings and
// strings with currency symbols or thousands separators all work. Returns
// NaN when nothing numeric is found.
func getFloat64(m map[string]interface{}, keys ...string) float64 {
	v, ok := first(m, keys...)
	if !ok {
		return math.NaN()
	}
	return parseNumber(v)
}

func parseNumber(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		match := numberRe.FindString(t)
		if match == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// maxCount caps counts and areas read from the feed.
const maxCount = math.MaxInt32

// getCount returns a non-negative integer; missing, unparsable or negative
// values become 0 and huge values are capped at maxCount.
func getCount(m map[string]interface{}, keys ...string) int {
	f := getFloat64(m, keys...)
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	if f > maxCount {
		return maxCount
	}
	return int(f)
}

// getMeasure is getCount for fractional values such as bathrooms.
func getMeasure(m map[string]interface{}, keys ...string) float64 {
	f := getFloat64(m, keys...)
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

func getBool(m map[string]interface{}, keys ...string) bool {
	v, ok := first(m, keys...)
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	default:
		return false
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func getTime(m map[string]interface{}, keys ...string) (time.Time, bool) {
	s := getString(m, keys...)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ExtractRecords accepts the shapes the listing origin has been seen to
// return: a bare array, or an object wrapping the array under data,
// listings, properties or items.
func ExtractRecords(decoded interface{}) ([]map[string]interface{}, error) {
	var items []interface{}
	switch t := decoded.(type) {
	case []interface{}:
		items = t
	case map[string]interface{}:
		for _, key := range []string{"data", "listings", "properties", "items", "results"} {
			if arr, ok := t[key].([]interface{}); ok {
				items = arr
				break
			}
		}
		if items == nil {
			return nil, fmt.Errorf("response object has no listing array")
		}
	default:
		return nil, fmt.Errorf("unexpected response type %T", decoded)
	}

	records := make([]map[string]interface{}, 0, len(items))
	for i, item := range items {
		rec, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("record %d is %T, not an object", i, item)
		}
		records = append(records, rec)
	}
	return records, nil
}

// ExtractRecord accepts a single listing object, optionally wrapped in data.
func ExtractRecord(decoded interface{}) (map[string]interface{}, error) {
	obj, ok := decoded.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", decoded)
	}
	if inner, ok := obj["data"].(map[string]interface{}); ok {
		return inner, nil
	}
	if len(obj) == 0 {
		return nil, fmt.Errorf("empty listing object")
	}
	return obj, nil
}

// ExtractImageItems accepts an image array, bare or wrapped in images/data.
func ExtractImageItems(decoded interface{}) ([]interface{}, error) {
	switch t := decoded.(type) {
	case []interface{}:
		return t, nil
	case map[string]interface{}:
		for _, key := range []string{"images", "data", "photos"} {
			if arr, ok := t[key].([]interface{}); ok {
				return arr, nil
			}
		}
		return nil, fmt.Errorf("response object has no image array")
	default:
		return nil, fmt.Errorf("unexpected response type %T", decoded)
	}
}
