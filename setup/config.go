// Package setup turns the loosely typed options handed to the player setup
// API into one canonical, fully defaulted configuration record.
//
// Normalization is total: every input, including values that are not
// mappings at all, yields a configuration. Fields that cannot be resolved
// fall back to their default or are left undefined.
package setup

import (
	"encoding/json"
	"io"

	"github.com/sirupsen/logrus"
)

// recognized lists the options that map onto typed Config fields. Every
// other option is passed through in Config.Extra.
var recognized = map[string]bool{
	"width":                true,
	"height":               true,
	"aspectratio":          true,
	"base":                 true,
	"playlist":             true,
	"feedData":             true,
	"skin":                 true,
	"skinUrl":              true,
	"skinColorInactive":    true,
	"skinColorActive":      true,
	"skinColorBackground":  true,
	"autostart":            true,
	"controls":             true,
	"displaytitle":         true,
	"displaydescription":   true,
	"mute":                 true,
	"repeat":               true,
	"volume":               true,
	"stretching":           true,
	"playbackRateControls": true,
	"playbackRates":        true,
	"defaultPlaybackRate":  true,
	"localization":         true,
	"qualityLabels":        true,
	"plugins":              true,
}

// Config is the canonical player configuration.
type Config struct {
	Width  Dimension
	Height Dimension

	// AspectRatio is a percentage string, "" when no ratio applies.
	AspectRatio string

	Base     string
	Playlist Playlist
	FeedData map[string]interface{}

	Skin                string
	SkinURL             string
	SkinColorInactive   string
	SkinColorActive     string
	SkinColorBackground string

	Autostart            bool
	Controls             bool
	DisplayTitle         bool
	DisplayDescription   bool
	Mute                 bool
	Repeat               bool
	Volume               float64
	Stretching           string
	PlaybackRateControls bool
	PlaybackRates        []float64
	DefaultPlaybackRate  float64
	Localization         map[string]string
	QualityLabels        interface{}
	Plugins              map[string]interface{}

	// Extra carries options the normalizer does not recognize.
	Extra map[string]interface{}
}

// Map returns the configuration as a flat record keyed by option name.
// Undefined fields are omitted.
func (c *Config) Map() map[string]interface{} {
	out := make(map[string]interface{}, len(c.Extra)+len(recognized))
	for k, v := range c.Extra {
		out[k] = v
	}

	out["width"] = c.Width
	out["height"] = c.Height
	out["base"] = c.Base
	out["playlist"] = c.Playlist
	out["skin"] = c.Skin
	out["autostart"] = c.Autostart
	out["controls"] = c.Controls
	out["displaytitle"] = c.DisplayTitle
	out["displaydescription"] = c.DisplayDescription
	out["mute"] = c.Mute
	out["repeat"] = c.Repeat
	out["volume"] = c.Volume
	out["stretching"] = c.Stretching
	out["playbackRateControls"] = c.PlaybackRateControls
	out["playbackRates"] = c.PlaybackRates
	out["defaultPlaybackRate"] = c.DefaultPlaybackRate
	out["localization"] = c.Localization
	out["plugins"] = c.Plugins

	optional := map[string]string{
		"aspectratio":         c.AspectRatio,
		"skinUrl":             c.SkinURL,
		"skinColorInactive":   c.SkinColorInactive,
		"skinColorActive":     c.SkinColorActive,
		"skinColorBackground": c.SkinColorBackground,
	}
	for k, v := range optional {
		if v != "" {
			out[k] = v
		}
	}
	if c.FeedData != nil {
		out["feedData"] = c.FeedData
	}
	if c.QualityLabels != nil {
		out["qualityLabels"] = c.QualityLabels
	}

	return out
}

// MarshalJSON emits the flat record.
func (c *Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Map())
}

// Normalizer produces canonical configurations. It holds no per-call state
// and is safe for concurrent use.
type Normalizer struct {
	location     string
	siteDefaults map[string]interface{}
	logger       logrus.FieldLogger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithLogger sets the logger unresolvable options are reported to.
func WithLogger(l logrus.FieldLogger) Option {
	return func(n *Normalizer) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithSiteDefaults layers site wide options between the built-in defaults
// and the options passed to Normalize.
func WithSiteDefaults(defaults map[string]interface{}) Option {
	return func(n *Normalizer) {
		if defaults != nil {
			n.siteDefaults = clone(defaults).(map[string]interface{})
		}
	}
}

// New returns a Normalizer resolving relative base paths against location,
// the address the player script was loaded from.
func New(location string, opts ...Option) *Normalizer {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	n := &Normalizer{
		location: location,
		logger:   discard,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize is a shorthand for New(location).Normalize(raw).
func Normalize(raw interface{}, location string) *Config {
	return New(location).Normalize(raw)
}

// Normalize resolves raw into a canonical configuration. raw is typically
// the result of decoding JSON or YAML; values that are not mappings are
// treated as an empty option set. raw is never modified.
func (n *Normalizer) Normalize(raw interface{}) *Config {
	return n.NormalizeLayers(nil, raw)
}

// NormalizeLayers is Normalize with an extra layer of persisted user
// preferences applied beneath raw.
func (n *Normalizer) NormalizeLayers(persisted, raw interface{}) *Config {
	opts := merge(Defaults(), n.siteDefaults, asMap(persisted), asMap(raw))
	deserializeOptions(opts)

	cfg := &Config{
		Base:   resolveBase(opts["base"], n.location),
		Width:  dimensionOption(opts["width"], DefaultWidth),
		Height: dimensionOption(opts["height"], DefaultHeight),
		Extra:  make(map[string]interface{}),
	}

	// the ratio depends on the resolved width, never the raw option
	cfg.AspectRatio = resolveAspectRatio(opts["aspectratio"], cfg.Width)
	if ar, ok := opts["aspectratio"]; ok && cfg.AspectRatio == "" {
		n.logger.WithFields(logrus.Fields{
			"aspectratio": ar,
			"width":       cfg.Width.String(),
		}).Debug("Ignoring aspect ratio")
	}

	n.applySkin(cfg, opts)

	cfg.Playlist, cfg.FeedData = resolvePlaylist(opts)

	cfg.Autostart = boolOption(opts["autostart"], false)
	cfg.Controls = boolOption(opts["controls"], true)
	cfg.DisplayTitle = boolOption(opts["displaytitle"], true)
	cfg.DisplayDescription = boolOption(opts["displaydescription"], true)
	cfg.Mute = boolOption(opts["mute"], false)
	cfg.Repeat = boolOption(opts["repeat"], false)
	cfg.PlaybackRateControls = boolOption(opts["playbackRateControls"], false)
	cfg.Volume = resolveVolume(opts["volume"])
	cfg.Stretching = resolveStretching(opts["stretching"])
	cfg.PlaybackRates = resolvePlaybackRates(opts["playbackRates"])
	cfg.DefaultPlaybackRate = resolvePlaybackRate(opts["defaultPlaybackRate"])
	cfg.Localization = resolveLocalization(opts["localization"])

	cfg.Plugins = make(map[string]interface{})
	if plugins := asMap(opts["plugins"]); plugins != nil {
		cfg.Plugins = clone(plugins).(map[string]interface{})
	}

	if labels, ok := opts["qualityLabels"]; ok {
		cfg.QualityLabels = clone(labels)
	} else if labels, ok := opts["hlslabels"]; ok {
		cfg.QualityLabels = clone(labels)
	}

	for k, v := range opts {
		if !recognized[k] {
			cfg.Extra[k] = clone(v)
		}
	}

	return cfg
}

func (n *Normalizer) applySkin(cfg *Config, opts map[string]interface{}) {
	if isLegacySkin(opts["skin"]) {
		n.logger.WithField("skin", opts["skin"]).Warn("XML skins are not supported, using skin name")
	}

	skin, structured := resolveSkin(opts["skin"])
	if !structured {
		// flat skin options given next to a skin name
		skin.URL, _ = stringValue(opts["skinUrl"])
		skin.ColorInactive, _ = stringValue(opts["skinColorInactive"])
		skin.ColorActive, _ = stringValue(opts["skinColorActive"])
		skin.ColorBackground, _ = stringValue(opts["skinColorBackground"])
	}

	cfg.Skin = skin.Name
	cfg.SkinURL = skin.URL
	cfg.SkinColorInactive = skin.ColorInactive
	cfg.SkinColorActive = skin.ColorActive
	cfg.SkinColorBackground = skin.ColorBackground
}
