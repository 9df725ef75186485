package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"moodfm/model"
)

func newTestClient(serverURL string) *Client {
	return NewClient(Config{
		BaseURL: serverURL,
		APIKey:  "test-key",
		Model:   "gemini-2.0-flash",
	})
}

func TestGenerateText(t *testing.T) {
	var gotPath, gotKey string
	var gotReq model.GeminiRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		json.NewEncoder(w).Encode(model.GeminiResponse{
			Candidates: []model.GeminiCandidate{{
				Content: model.GeminiContent{
					Parts: []model.GeminiPart{{Text: "[{\"song_name\":\"Hey Jude\",\"artist\":\"The Beatles\"}]"}},
				},
			}},
		})
	}))
	defer srv.Close()

	text, err := newTestClient(srv.URL).GenerateText(context.Background(), "suggest songs")
	if err != nil {
		t.Fatalf("GenerateText returned error: %v", err)
	}
	if text != "[{\"song_name\":\"Hey Jude\",\"artist\":\"The Beatles\"}]" {
		t.Errorf("text = %q", text)
	}
	if gotPath != "/models/gemini-2.0-flash:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("key = %q", gotKey)
	}
	if len(gotReq.Contents) != 1 || len(gotReq.Contents[0].Parts) != 1 ||
		gotReq.Contents[0].Parts[0].Text != "suggest songs" {
		t.Errorf("request body = %+v", gotReq)
	}
}

func TestGenerateTextRateLimited(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"status 429", http.StatusTooManyRequests, "slow down"},
		{"quota in body", http.StatusInternalServerError, "quota exhausted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).GenerateText(context.Background(), "suggest songs")
			if !errors.Is(err, ErrRateLimited) {
				t.Errorf("error = %v, want ErrRateLimited", err)
			}
		})
	}
}

func TestGenerateTextServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GenerateText(context.Background(), "suggest songs")
	if err == nil {
		t.Fatal("expected error on 500 response")
	}
	if errors.Is(err, ErrRateLimited) {
		t.Errorf("plain 500 misclassified as rate limit: %v", err)
	}
}

func TestGenerateTextEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.GeminiResponse{})
	}))
	defer srv.Close()

	text, err := newTestClient(srv.URL).GenerateText(context.Background(), "suggest songs")
	if err != nil {
		t.Fatalf("GenerateText returned error: %v", err)
	}
	if text != "" {
		t.Errorf("text = %q, want empty", text)
	}
}
