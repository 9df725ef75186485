package recommend

import (
	"encoding/json"
	"fmt"

	"moodfm/model"
)

// ParseCandidates parses sanitized model text as a JSON array of song
// candidates. Entries with missing fields are kept with empty strings (they
// fall out naturally at resolution); a top-level result that is not an array
// fails with ErrParse. Truncation to the candidate cap is the orchestrator's
// job, keeping parsing pure.
func ParseCandidates(text string) ([]model.Candidate, error) {
	var candidates []model.Candidate
	if err := json.Unmarshal([]byte(text), &candidates); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return candidates, nil
}
