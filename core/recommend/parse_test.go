package recommend

import (
	"errors"
	"testing"
)

func TestParseCandidatesSnakeCase(t *testing.T) {
	text := `[
		{"song_name": "Hey Jude", "artist": "The Beatles"},
		{"song_name": "Clair de Lune", "artist": "Debussy"}
	]`
	candidates, err := ParseCandidates(text)
	if err != nil {
		t.Fatalf("ParseCandidates returned error: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}
	if candidates[0].Title != "Hey Jude" || candidates[0].Artist != "The Beatles" {
		t.Errorf("first candidate = %+v", candidates[0])
	}
	if candidates[1].Title != "Clair de Lune" || candidates[1].Artist != "Debussy" {
		t.Errorf("second candidate = %+v", candidates[1])
	}
}

func TestParseCandidatesCamelCase(t *testing.T) {
	text := `[{"songName": "Weightless", "artist": "Marconi Union"}]`
	candidates, err := ParseCandidates(text)
	if err != nil {
		t.Fatalf("ParseCandidates returned error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}
	if candidates[0].Title != "Weightless" {
		t.Errorf("title = %q, want %q", candidates[0].Title, "Weightless")
	}
}

func TestParseCandidatesMalformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"prose", "Here are some songs you might like."},
		{"truncated array", `[{"song_name": "a", "artist":`},
		{"object not array", `{"song_name": "a", "artist": "b"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCandidates(tt.text)
			if !errors.Is(err, ErrParse) {
				t.Errorf("ParseCandidates(%q) error = %v, want ErrParse", tt.text, err)
			}
		})
	}
}

func TestParseCandidatesEmptyArray(t *testing.T) {
	candidates, err := ParseCandidates("[]")
	if err != nil {
		t.Fatalf("ParseCandidates returned error: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("got %d candidates, want 0", len(candidates))
	}
}
