package gallery

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Artwork is one record of the remote catalog. It is never modified after fetch.
type Artwork struct {
	ID       string `json:"id" yaml:"id"`
	ImageURL string `json:"image_url" yaml:"image_url"`
	Theme    string `json:"theme,omitempty" yaml:"theme,omitempty"`
	Artist   string `json:"artist,omitempty" yaml:"artist,omitempty"`
	Tag      string `json:"sns_tag,omitempty" yaml:"sns_tag,omitempty"`
}

// Title returns the theme, or "Untitled" when the record has none.
func (a Artwork) Title() string {
	if a.Theme == "" {
		return "Untitled"
	}
	return a.Theme
}

// ArtistName returns the artist, or "Unknown Artist" when the record has none.
func (a Artwork) ArtistName() string {
	if a.Artist == "" {
		return "Unknown Artist"
	}
	return a.Artist
}

// UnmarshalJSON accepts the id as either a JSON string or a JSON number.
func (a *Artwork) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       json.RawMessage `json:"id"`
		ImageURL string          `json:"image_url"`
		Theme    string          `json:"theme"`
		Artist   string          `json:"artist"`
		Tag      string          `json:"sns_tag"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	id, err := decodeID(raw.ID)
	if err != nil {
		return err
	}
	*a = Artwork{ID: id, ImageURL: raw.ImageURL, Theme: raw.Theme, Artist: raw.Artist, Tag: raw.Tag}
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("decode id: %w", err)
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("decode id %s: %w", raw, err)
	}
	return n.String(), nil
}
