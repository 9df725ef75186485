package model

// GeminiPart is a single content part in a Gemini request or response.
type GeminiPart struct {
	Text string `json:"text"`
}

// GeminiContent wraps the parts of one content block.
type GeminiContent struct {
	Parts []GeminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

// GeminiRequest is the generateContent request body.
type GeminiRequest struct {
	Contents []GeminiContent `json:"contents"`
}

// NewGeminiRequest wraps a prompt string into the request structure.
func NewGeminiRequest(prompt string) GeminiRequest {
	return GeminiRequest{
		Contents: []GeminiContent{
			{Parts: []GeminiPart{{Text: prompt}}},
		},
	}
}

// GeminiCandidate is one response candidate.
type GeminiCandidate struct {
	Content GeminiContent `json:"content"`
}

// GeminiResponse is the generateContent response body.
type GeminiResponse struct {
	Candidates []GeminiCandidate `json:"candidates"`
}

// FirstText returns the text of the first part of the first candidate, or ""
// when any link in that chain is missing.
func (r GeminiResponse) FirstText() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	parts := r.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}
