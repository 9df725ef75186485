package recommend

import "strings"

// CleanModelResponse strips markdown code-fence wrapping the model sometimes
// adds despite the prompt forbidding it. Only a leading fence marker and a
// trailing one are removed, as fixed-length prefixes/suffixes; the remainder
// is not validated as JSON (that is the parser's job). Idempotent.
func CleanModelResponse(text string) string {
	cleaned := strings.TrimSpace(text)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[len("```json"):]
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = cleaned[len("```"):]
	}

	if strings.HasSuffix(cleaned, "```") {
		cleaned = cleaned[:len(cleaned)-len("```")]
	}

	return strings.TrimSpace(cleaned)
}
