// Package prompt turns emotion input into the instruction strings sent to
// the language model. Both builders are pure string construction.
package prompt

import (
	"fmt"
	"strings"

	"moodfm/model"
)

// BuildFromEmotions renders the intensity-mode prompt. It demands a pure
// JSON array of 15 songs with "song_name"/"artist" fields and no markdown.
func BuildFromEmotions(profile model.EmotionProfile) string {
	var b strings.Builder
	b.WriteString("Based on the following emotion indices (scale 0-100, higher means stronger emotion), ")
	b.WriteString("recommend 15 songs that match this emotional state.\n\n")
	b.WriteString("Emotion Indices:\n")
	fmt.Fprintf(&b, "- Happy: %d\n", profile.Happy)
	fmt.Fprintf(&b, "- Sad: %d\n", profile.Sad)
	fmt.Fprintf(&b, "- Angry: %d\n", profile.Angry)
	fmt.Fprintf(&b, "- Disgust: %d\n", profile.Disgust)
	fmt.Fprintf(&b, "- Fear: %d\n\n", profile.Fear)
	b.WriteString("IMPORTANT: You MUST respond with ONLY a pure JSON array, no markdown, no explanation, no code blocks. ")
	b.WriteString("The response must start with '[' and end with ']'. ")
	b.WriteString(`Each object must have exactly two fields: "song_name" and "artist". `)
	b.WriteString(`Example format: [{"song_name":"Song Title","artist":"Artist Name"}]`)
	return b.String()
}

// BuildFromText renders the free-text-mode prompt. This variant requests 8
// songs and uses "songName"/"artist" field names; the parser accepts both
// contracts.
func BuildFromText(text string) string {
	var b strings.Builder
	b.WriteString("You are a music recommendation assistant. ")
	fmt.Fprintf(&b, "The user describes their current emotion as: %q. ", text)
	b.WriteString("Based on this emotion, recommend 8 songs that match the user's mood. ")
	b.WriteString("You MUST respond with ONLY a valid JSON array, no other text. ")
	b.WriteString("Each object in the array must have exactly two fields: ")
	b.WriteString(`"songName" (the name of the song) and "artist" (the artist name). `)
	b.WriteString(`Example format: [{"songName":"Song Title","artist":"Artist Name"}] `)
	b.WriteString("Do not include any explanation, markdown, or additional text. Only the JSON array.")
	return b.String()
}
