// Package spotify is the HTTP client for the catalog search service and the
// resolver that turns model candidates into playable tracks.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"moodfm/model"
)

// Client calls the Spotify Web API. The access token is supplied per call
// and never cached here.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a search client. The default timeout mirrors the
// transport ceiling of the rest of the system.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 360 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SearchTrack searches the catalog for the single best match of a candidate
// using field-scoped qualifiers. Returns nil (no error) when the catalog has
// no match.
func (c *Client) SearchTrack(ctx context.Context, accessToken string, title, artist string) (*model.SpotifyTrack, error) {
	searchURL, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("invalid search url: %w", err)
	}

	query := searchURL.Query()
	query.Set("q", fmt.Sprintf("track:%s artist:%s", title, artist))
	query.Set("type", "track")
	query.Set("limit", "1")
	searchURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	var searchResp model.SpotifySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	if len(searchResp.Tracks.Items) == 0 {
		return nil, nil
	}
	track := searchResp.Tracks.Items[0]
	return &track, nil
}
