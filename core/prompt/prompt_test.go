package prompt

import (
	"strconv"
	"strings"
	"testing"

	"moodfm/model"
)

func TestBuildFromEmotions(t *testing.T) {
	profile := model.EmotionProfile{Happy: 80, Sad: 5, Angry: 13, Disgust: 0, Fear: 100}

	got := BuildFromEmotions(profile)

	for _, v := range []int{80, 5, 13, 0, 100} {
		if !strings.Contains(got, strconv.Itoa(v)) {
			t.Errorf("prompt missing intensity %d", v)
		}
	}
	for _, marker := range []string{"song_name", "artist", "15 songs", "JSON array"} {
		if !strings.Contains(got, marker) {
			t.Errorf("prompt missing marker %q", marker)
		}
	}
}

func TestBuildFromEmotionsDeterministic(t *testing.T) {
	profile := model.EmotionProfile{Happy: 50, Sad: 50, Angry: 50, Disgust: 50, Fear: 50}
	if BuildFromEmotions(profile) != BuildFromEmotions(profile) {
		t.Fatal("prompt is not deterministic for identical input")
	}
}

func TestBuildFromText(t *testing.T) {
	got := BuildFromText("tired but hopeful")

	if !strings.Contains(got, `"tired but hopeful"`) {
		t.Error("prompt missing quoted user text")
	}
	for _, marker := range []string{"songName", "artist", "recommend 8 songs"} {
		if !strings.Contains(got, marker) {
			t.Errorf("prompt missing marker %q", marker)
		}
	}
	// The two variants use deliberately different field-name contracts.
	if strings.Contains(got, "song_name") {
		t.Error("text prompt must not use the intensity-mode field name")
	}
}
