package setup

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	percentPattern = regexp.MustCompile(`^\d*\.?\d+%$`)
	ratioPattern   = regexp.MustCompile(`^(\d*\.?\d+):(\d*\.?\d+)$`)
)

// Dimension is a canonical width or height: a number of pixels, a pixel
// numeral kept as a string, a percentage string ending in "%", or an
// unrecognized value passed through untouched.
type Dimension struct {
	value interface{}
}

// Pixels returns a numeric dimension.
func Pixels(n float64) Dimension {
	return Dimension{value: n}
}

// Text returns a string dimension.
func Text(s string) Dimension {
	return Dimension{value: s}
}

// Value returns the underlying canonical value.
func (d Dimension) Value() interface{} {
	return d.value
}

// Float returns the dimension as a number when it is numeric.
func (d Dimension) Float() (float64, bool) {
	f, ok := d.value.(float64)
	return f, ok
}

// IsPercent reports whether the dimension is a percentage string.
func (d Dimension) IsPercent() bool {
	s, ok := d.value.(string)
	return ok && strings.HasSuffix(s, "%")
}

func (d Dimension) String() string {
	if f, ok := d.Float(); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(d.value)
}

// MarshalJSON emits the canonical value as is.
func (d Dimension) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.value)
}

// resolveDimension canonicalizes a width or height option.
func resolveDimension(v interface{}) Dimension {
	if s, ok := v.(string); ok {
		switch {
		case strings.HasSuffix(s, "px"):
			return Text(strings.TrimSuffix(s, "px"))
		case strings.HasSuffix(s, "%"):
			return Text(s)
		case numeralPattern.MatchString(s):
			if f, err := strconv.ParseFloat(s, 64); err == nil && finite(f) {
				return Pixels(f)
			}
		}
		return Text(s)
	}
	if f, ok := toFloat(v); ok {
		return Pixels(f)
	}
	return Dimension{value: clone(v)}
}

// dimensionOption resolves v, falling back to fallback pixels when v has no
// JSON form.
func dimensionOption(v interface{}, fallback float64) Dimension {
	d := resolveDimension(v)
	if d.value == nil {
		return Pixels(fallback)
	}
	return d
}

// resolveAspectRatio evaluates the aspectratio option against the already
// resolved width. Only a percentage width can carry a ratio; the result is
// "" whenever no ratio applies.
func resolveAspectRatio(v interface{}, width Dimension) string {
	if !width.IsPercent() {
		return ""
	}
	ar, ok := stringValue(v)
	if !ok {
		return ""
	}
	if percentPattern.MatchString(ar) {
		return ar
	}

	m := ratioPattern.FindStringSubmatch(ar)
	if m == nil {
		return ""
	}
	w, err := strconv.ParseFloat(m[1], 64)
	if err != nil || w <= 0 {
		return ""
	}
	h, err := strconv.ParseFloat(m[2], 64)
	if err != nil || h <= 0 {
		return ""
	}
	r := math.Round(100 * h / w)
	if !finite(r) {
		return ""
	}

	return strconv.FormatFloat(r, 'f', -1, 64) + "%"
}
