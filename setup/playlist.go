package setup

import (
	"encoding/json"
)

// itemFields are the top-level options that describe a single playlist item
// when no playlist option is given.
var itemFields = map[string]bool{
	"file":        true,
	"title":       true,
	"description": true,
	"image":       true,
	"mediaid":     true,
	"type":        true,
	"preload":     true,
	"sources":     true,
	"tracks":      true,
}

// PlaylistItem is one canonical playlist entry.
type PlaylistItem struct {
	File        string
	Title       string
	Description string
	Image       string
	MediaID     string
	Type        string
	Preload     string
	Sources     []interface{}
	Tracks      []interface{}

	// Extra holds item fields without a typed counterpart, and typed
	// fields whose value had an unexpected type.
	Extra map[string]interface{}
}

// MarshalJSON flattens the item into a single JSON object.
func (p PlaylistItem) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(p.Extra)+9)
	for k, v := range p.Extra {
		out[k] = v
	}
	for k, v := range map[string]string{
		"file":        p.File,
		"title":       p.Title,
		"description": p.Description,
		"image":       p.Image,
		"mediaid":     p.MediaID,
		"type":        p.Type,
		"preload":     p.Preload,
	} {
		if v != "" {
			out[k] = v
		}
	}
	if p.Sources != nil {
		out["sources"] = p.Sources
	}
	if p.Tracks != nil {
		out["tracks"] = p.Tracks
	}
	return json.Marshal(out)
}

// Playlist is either the address of a playlist an external loader fetches
// later, or an expanded list of items.
type Playlist struct {
	URL   string
	Items []PlaylistItem
}

// IsURL reports whether the playlist still has to be loaded.
func (p Playlist) IsURL() bool {
	return p.URL != ""
}

// MarshalJSON emits the address as a string and items as an array.
func (p Playlist) MarshalJSON() ([]byte, error) {
	if p.IsURL() {
		return json.Marshal(p.URL)
	}
	if p.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p.Items)
}

// newPlaylistItem builds an item from a decoded mapping.
func newPlaylistItem(m map[string]interface{}) PlaylistItem {
	item := PlaylistItem{Extra: make(map[string]interface{})}
	for k, v := range m {
		if v == nil {
			continue
		}
		var dst *string
		switch k {
		case "file":
			dst = &item.File
		case "title":
			dst = &item.Title
		case "description":
			dst = &item.Description
		case "image":
			dst = &item.Image
		case "mediaid":
			dst = &item.MediaID
		case "type":
			dst = &item.Type
		case "preload":
			dst = &item.Preload
		case "sources":
			if list, ok := v.([]interface{}); ok {
				item.Sources = clone(list).([]interface{})
				continue
			}
		case "tracks":
			if list, ok := v.([]interface{}); ok {
				item.Tracks = clone(list).([]interface{})
				continue
			}
		}
		if dst != nil {
			if s, ok := v.(string); ok {
				*dst = s
				continue
			}
		}
		item.Extra[k] = clone(v)
	}
	return item
}

// resolvePlaylist expands the playlist option. It returns the feed object
// when the playlist was given as one.
func resolvePlaylist(opts map[string]interface{}) (Playlist, map[string]interface{}) {
	switch pl := opts["playlist"].(type) {
	case string:
		if pl != "" {
			return Playlist{URL: pl}, nil
		}
	case []interface{}:
		return Playlist{Items: playlistItems(pl)}, nil
	default:
		if feed := asMap(pl); feed != nil {
			if list, ok := feed["playlist"].([]interface{}); ok {
				return Playlist{Items: playlistItems(list)}, clone(feed).(map[string]interface{})
			}
		}
	}

	shorthand := make(map[string]interface{})
	for k := range itemFields {
		if v, ok := opts[k]; ok && v != nil {
			shorthand[k] = v
		}
	}
	if len(shorthand) == 0 {
		return Playlist{Items: []PlaylistItem{}}, nil
	}
	return Playlist{Items: []PlaylistItem{newPlaylistItem(shorthand)}}, nil
}

func playlistItems(list []interface{}) []PlaylistItem {
	items := make([]PlaylistItem, 0, len(list))
	for _, e := range list {
		if m := asMap(e); m != nil {
			items = append(items, newPlaylistItem(m))
		}
	}
	return items
}
