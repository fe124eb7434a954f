package setup

// DefaultSkin is the skin used when no usable skin option is supplied.
const DefaultSkin = "seven"

const (
	// DefaultWidth and DefaultHeight are the player dimensions in pixels
	DefaultWidth  = 640
	DefaultHeight = 360

	// DefaultVolume is the initial volume, 0 to 100
	DefaultVolume = 90

	// DefaultStretching controls how media is scaled into the player
	DefaultStretching = "uniform"

	// DefaultPlaybackRate is the rate selected when none is configured
	DefaultPlaybackRate = 1.0

	// basePlaceholder asks the base resolver for the script location
	basePlaceholder = "."
)

var defaultPlaybackRates = []float64{0.5, 1, 1.25, 1.5, 2}

var defaultLocalization = map[string]string{
	"player":        "Video Player",
	"play":          "Play",
	"playback":      "Start Playback",
	"pause":         "Pause",
	"volume":        "Volume",
	"prev":          "Previous",
	"next":          "Next",
	"cast":          "Chromecast",
	"fullscreen":    "Fullscreen",
	"playlist":      "Playlist",
	"hd":            "Quality",
	"cc":            "Closed Captions",
	"audioTracks":   "Audio Tracks",
	"playbackRates": "Playback Rates",
	"replay":        "Replay",
	"buffer":        "Loading",
	"more":          "More",
	"liveBroadcast": "Live",
	"loadingAd":     "Loading ad",
	"rewind":        "Rewind 10 Seconds",
	"nextUp":        "Next Up",
	"related":       "Related",
	"close":         "Close",
}

// Defaults returns a fresh copy of the baseline option set every
// normalization starts from. Callers may modify the returned map.
func Defaults() map[string]interface{} {
	rates := make([]interface{}, len(defaultPlaybackRates))
	for i, r := range defaultPlaybackRates {
		rates[i] = r
	}

	localization := make(map[string]interface{}, len(defaultLocalization))
	for k, v := range defaultLocalization {
		localization[k] = v
	}

	return map[string]interface{}{
		"width":                float64(DefaultWidth),
		"height":               float64(DefaultHeight),
		"base":                 basePlaceholder,
		"skin":                 DefaultSkin,
		"autostart":            false,
		"controls":             true,
		"displaytitle":         true,
		"displaydescription":   true,
		"mute":                 false,
		"repeat":               false,
		"volume":               float64(DefaultVolume),
		"stretching":           DefaultStretching,
		"playbackRateControls": false,
		"playbackRates":        rates,
		"defaultPlaybackRate":  DefaultPlaybackRate,
		"localization":         localization,
	}
}
