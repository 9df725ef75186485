package gemini

import "testing"

func TestIsRateLimitSignal(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   bool
	}{
		{"429 with empty body", 429, "", true},
		{"429 with unrelated body", 429, "server busy", true},
		{"quota marker", 500, `{"error": {"message": "quota exceeded for project"}}`, true},
		{"RATE_LIMIT marker", 400, `{"error": {"status": "RATE_LIMIT_EXCEEDED"}}`, true},
		{"rate limit marker", 503, "rate limit reached, retry later", true},
		{"resource exhausted marker", 500, "Resource has been exhausted (e.g. check quota).", true},
		{"marker is case sensitive", 500, "QUOTA exceeded", false},
		{"plain server error", 500, "internal error", false},
		{"plain bad request", 400, "invalid argument", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRateLimitSignal(tt.status, tt.body); got != tt.want {
				t.Errorf("IsRateLimitSignal(%d, %q) = %v, want %v", tt.status, tt.body, got, tt.want)
			}
		})
	}
}
