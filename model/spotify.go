package model

// Spotify search API wire types. The images list is ordered largest-first by
// the API: the first entry is the full-size cover, the last the smallest
// thumbnail. That ordering is load-bearing for ThumbnailURL/LargeImageURL.

// SpotifySearchResponse is the /search response body for type=track.
type SpotifySearchResponse struct {
	Tracks SpotifyTracksPage `json:"tracks"`
}

// SpotifyTracksPage holds the matched track items.
type SpotifyTracksPage struct {
	Items []SpotifyTrack `json:"items"`
}

// SpotifyTrack is a single catalog track.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	Album      SpotifyAlbum    `json:"album"`
	DurationMs int64           `json:"duration_ms"`
}

// SpotifyArtist is a track artist reference.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpotifyAlbum carries the album cover images.
type SpotifyAlbum struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Images []SpotifyImage `json:"images"`
}

// SpotifyImage is one album cover variant.
type SpotifyImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// FirstArtistName returns the primary artist name, or the "Unknown Artist"
// sentinel when the catalog reports none.
func (t SpotifyTrack) FirstArtistName() string {
	if len(t.Artists) > 0 {
		return t.Artists[0].Name
	}
	return "Unknown Artist"
}

// ThumbnailURL returns the smallest cover variant (last image), or "".
func (t SpotifyTrack) ThumbnailURL() string {
	images := t.Album.Images
	if len(images) == 0 {
		return ""
	}
	return images[len(images)-1].URL
}

// LargeImageURL returns the largest cover variant (first image), or "".
func (t SpotifyTrack) LargeImageURL() string {
	images := t.Album.Images
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}
