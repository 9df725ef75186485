package model

import (
	"fmt"
	"strings"
)

// EmotionProfile holds the five emotion intensities reported by the user,
// each on a 0-100 scale. Immutable once constructed.
type EmotionProfile struct {
	Happy   int `json:"happy"`
	Sad     int `json:"sad"`
	Angry   int `json:"angry"`
	Disgust int `json:"disgust"`
	Fear    int `json:"fear"`
}

// Validate checks that every intensity is within [0, 100].
func (p EmotionProfile) Validate() error {
	for _, v := range []struct {
		name  string
		value int
	}{
		{"happy", p.Happy},
		{"sad", p.Sad},
		{"angry", p.Angry},
		{"disgust", p.Disgust},
		{"fear", p.Fear},
	} {
		if v.value < 0 || v.value > 100 {
			return fmt.Errorf("emotion %s out of range: %d (must be 0-100)", v.name, v.value)
		}
	}
	return nil
}

// MaxEmotionTextLen bounds the free-text emotion description.
const MaxEmotionTextLen = 100

// ValidateEmotionText checks a free-text emotion description: non-empty after
// trimming and within the length bound.
func ValidateEmotionText(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fmt.Errorf("emotion text must not be empty")
	}
	if len([]rune(trimmed)) > MaxEmotionTextLen {
		return fmt.Errorf("emotion text too long: %d runes (max %d)", len([]rune(trimmed)), MaxEmotionTextLen)
	}
	return nil
}
