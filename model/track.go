package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Candidate is an unresolved (title, artist) pair suggested by the language
// model, prior to catalog lookup. Ephemeral; discarded after resolution.
type Candidate struct {
	Title  string
	Artist string
}

// UnmarshalJSON accepts both field-name contracts the two prompt variants
// request: "song_name" (intensity mode) and "songName" (free-text mode).
func (c *Candidate) UnmarshalJSON(data []byte) error {
	var raw struct {
		SongName     string `json:"song_name"`
		SongNameText string `json:"songName"`
		Artist       string `json:"artist"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Title = raw.SongName
	if c.Title == "" {
		c.Title = raw.SongNameText
	}
	c.Artist = raw.Artist
	return nil
}

// Track is a candidate resolved to a playable catalog entry. TrackID is the
// canonical Spotify track ID, the join key to playback and favorites.
type Track struct {
	Title        string `json:"title"`
	Artist       string `json:"artist"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
	TrackID      string `json:"trackId"`
	DurationMs   int64  `json:"durationMs"`
}

// URI returns the playback URI for the track, e.g. "spotify:track:abc123".
func (t Track) URI() string {
	return fmt.Sprintf("spotify:track:%s", t.TrackID)
}

// TrackIDFromURI extracts the track ID from a playback URI. Inputs that are
// not track URIs are returned unchanged.
func TrackIDFromURI(uri string) string {
	if strings.HasPrefix(uri, "spotify:track:") {
		return strings.TrimPrefix(uri, "spotify:track:")
	}
	return uri
}
