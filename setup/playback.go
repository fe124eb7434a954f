package setup

import (
	"math"
	"sort"
)

const (
	minPlaybackRate = 0.25
	maxPlaybackRate = 4
)

var stretchingModes = map[string]bool{
	"uniform":  true,
	"exactfit": true,
	"fill":     true,
	"none":     true,
}

// resolvePlaybackRates keeps the supported numeric rates in ascending order.
func resolvePlaybackRates(v interface{}) []float64 {
	list, _ := v.([]interface{})

	seen := make(map[float64]bool, len(list))
	rates := make([]float64, 0, len(list))
	for _, e := range list {
		r, ok := toFloat(deserialize(e))
		if !ok || r < minPlaybackRate || r > maxPlaybackRate || seen[r] {
			continue
		}
		seen[r] = true
		rates = append(rates, r)
	}

	if len(rates) == 0 {
		return append([]float64(nil), defaultPlaybackRates...)
	}
	sort.Float64s(rates)
	return rates
}

func resolvePlaybackRate(v interface{}) float64 {
	r, ok := toFloat(v)
	if !ok || math.IsNaN(r) {
		return DefaultPlaybackRate
	}
	return math.Min(math.Max(r, minPlaybackRate), maxPlaybackRate)
}

// resolveLocalization overlays string translations on the default table.
func resolveLocalization(v interface{}) map[string]string {
	out := make(map[string]string, len(defaultLocalization))
	for k, s := range defaultLocalization {
		out[k] = s
	}
	for k, e := range asMap(v) {
		if s, ok := e.(string); ok {
			out[k] = s
		}
	}
	return out
}

func resolveStretching(v interface{}) string {
	if s, ok := v.(string); ok && stretchingModes[s] {
		return s
	}
	return DefaultStretching
}

func resolveVolume(v interface{}) float64 {
	vol, ok := toFloat(v)
	if !ok || math.IsNaN(vol) {
		return DefaultVolume
	}
	return math.Min(math.Max(vol, 0), 100)
}

func boolOption(v interface{}, def bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}
