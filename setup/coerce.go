package setup

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// maxSerializedLength bounds which numeral strings are turned into numbers.
// Longer strings are usually identifiers and stay strings.
const maxSerializedLength = 6

var numeralPattern = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?$`)

// stringOptions keep their string form even when they look like a number or
// a boolean.
var stringOptions = map[string]bool{
	"base":       true,
	"skin":       true,
	"playlist":   true,
	"stretching": true,
}

// asMap returns raw as a string keyed mapping. Anything that is not a mapping
// yields nil, which every caller treats as an empty option set.
func asMap(raw interface{}) map[string]interface{} {
	switch m := raw.(type) {
	case map[string]interface{}:
		return m
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, v := range m {
			out[fmt.Sprint(k)] = v
		}
		return out
	}
	return nil
}

// merge shallow-copies layers into a new map, later layers winning.
// Null values never override an earlier layer.
func merge(layers ...map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, layer := range layers {
		for k, v := range layer {
			if v == nil {
				continue
			}
			out[k] = v
		}
	}
	return out
}

// deserialize converts the textual forms of booleans and short numerals that
// arrive through HTML attributes and query strings into their typed values.
func deserialize(v interface{}) interface{} {
	s, ok := v.(string)
	if !ok {
		return v
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if len(s) < maxSerializedLength && numeralPattern.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return v
}

// deserializeOptions applies deserialize to every option in place, except
// options that carry free text or addresses.
func deserializeOptions(opts map[string]interface{}) {
	for k, v := range opts {
		if stringOptions[k] || itemFields[k] {
			continue
		}
		opts[k] = deserialize(v)
	}
}

// toFloat reports the numeric value of any Go number.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, finite(n)
	case float32:
		return float64(n), finite(float64(n))
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// stringValue returns v when it is a non-empty string.
func stringValue(v interface{}) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// clone deep-copies the mappings and slices of a decoded option value so the
// produced configuration never aliases caller memory.
func clone(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = clone(e)
		}
		return out
	case map[interface{}]interface{}:
		return clone(asMap(t))
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = clone(e)
		}
		return out
	case float64:
		if !finite(t) {
			return nil
		}
	case float32:
		if !finite(float64(t)) {
			return nil
		}
	}
	return v
}

// finite reports whether f has a JSON form.
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
