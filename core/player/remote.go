package player

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"moodfm/model"
)

// Remote is the black-box contract of the playback service: four control
// verbs plus a state read. The access token travels per call.
type Remote interface {
	Play(ctx context.Context, accessToken string, trackURI string) error
	Pause(ctx context.Context, accessToken string) error
	Resume(ctx context.Context, accessToken string) error
	Seek(ctx context.Context, accessToken string, positionMs int64) error
	State(ctx context.Context, accessToken string) (*model.PlayerState, error)
}

// HTTPRemote drives playback through the Spotify Web API player endpoints.
type HTTPRemote struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPRemote constructs an HTTPRemote.
func NewHTTPRemote(baseURL string, timeout time.Duration) *HTTPRemote {
	if timeout <= 0 {
		timeout = 360 * time.Second
	}
	return &HTTPRemote{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

var _ Remote = (*HTTPRemote)(nil)

// Play starts playback of the given track URI.
func (r *HTTPRemote) Play(ctx context.Context, accessToken string, trackURI string) error {
	body, err := json.Marshal(struct {
		URIs []string `json:"uris"`
	}{URIs: []string{trackURI}})
	if err != nil {
		return fmt.Errorf("failed to marshal play request: %w", err)
	}
	return r.put(ctx, accessToken, "/me/player/play", body)
}

// Pause pauses playback.
func (r *HTTPRemote) Pause(ctx context.Context, accessToken string) error {
	return r.put(ctx, accessToken, "/me/player/pause", nil)
}

// Resume resumes the paused playback. An empty play body resumes the
// current context instead of restarting a track.
func (r *HTTPRemote) Resume(ctx context.Context, accessToken string) error {
	return r.put(ctx, accessToken, "/me/player/play", nil)
}

// Seek jumps to the given position in the current track.
func (r *HTTPRemote) Seek(ctx context.Context, accessToken string, positionMs int64) error {
	return r.put(ctx, accessToken, fmt.Sprintf("/me/player/seek?position_ms=%d", positionMs), nil)
}

// playerStateBody is the wire shape of GET /me/player.
type playerStateBody struct {
	ProgressMs int64 `json:"progress_ms"`
	IsPlaying  bool  `json:"is_playing"`
	Item       struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		DurationMs int64  `json:"duration_ms"`
		Artists    []struct {
			Name string `json:"name"`
		} `json:"artists"`
	} `json:"item"`
}

// State reads the current playback state. A 204 means no active playback
// and returns nil without error.
func (r *HTTPRemote) State(ctx context.Context, accessToken string) (*model.PlayerState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/me/player", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create state request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("state request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("state returned status %d", resp.StatusCode)
	}

	var body playerStateBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode state response: %w", err)
	}

	state := &model.PlayerState{
		TrackID:    body.Item.ID,
		Title:      body.Item.Name,
		Paused:     !body.IsPlaying,
		PositionMs: body.ProgressMs,
		DurationMs: body.Item.DurationMs,
	}
	if len(body.Item.Artists) > 0 {
		state.Artist = body.Item.Artists[0].Name
	}
	return state, nil
}

func (r *HTTPRemote) put(ctx context.Context, accessToken string, path string, body []byte) error {
	var reader *bytes.Buffer
	if body != nil {
		reader = bytes.NewBuffer(body)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, r.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// The player endpoints answer 204 on success; 202 shows up when the
	// command is queued against an inactive device.
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("player returned status %d", resp.StatusCode)
	}
	return nil
}
