package matching

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// MinConfidence is the score floor for stored candidates. The model is asked
// to apply it too, but its output is not trusted.
const MinConfidence = 40

// rawCandidate mirrors the JSON shape the model is asked to produce.
type rawCandidate struct {
	ItemID     string   `json:"itemId"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons"`
}

// ParsedCandidate is a validated model suggestion.
type ParsedCandidate struct {
	ItemID     uuid.UUID `json:"itemId"`
	Confidence float64   `json:"confidence"`
	Reasons    []string  `json:"reasons"`
}

// extractJSONArray finds the first top-level JSON array in the model output.
// Models wrap the array in prose or markdown fences often enough that plain
// unmarshalling is not reliable. Returns an empty string when no balanced
// array is found.
func extractJSONArray(content string) string {
	start := strings.IndexByte(content, '[')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(content); i++ {
		ch := content[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return content[start : i+1]
			}
		}
	}
	return ""
}

// parseCandidates extracts and validates model suggestions. Entries that are
// below the confidence floor, carry an unparsable item ID, or reference an
// item outside the known set are dropped. A content string with no JSON array
// yields zero candidates, not an error; the model declining to answer in the
// requested shape is treated the same as finding nothing.
func parseCandidates(content string, knownItems map[uuid.UUID]struct{}) []ParsedCandidate {
	raw := extractJSONArray(content)
	if raw == "" {
		return nil
	}

	var entries []rawCandidate
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil
	}

	out := make([]ParsedCandidate, 0, len(entries))
	for _, entry := range entries {
		if entry.Confidence < MinConfidence || entry.Confidence > 100 {
			continue
		}
		itemID, err := uuid.Parse(entry.ItemID)
		if err != nil {
			continue
		}
		if _, ok := knownItems[itemID]; !ok {
			continue
		}
		reasons := entry.Reasons
		if reasons == nil {
			reasons = []string{}
		}
		out = append(out, ParsedCandidate{
			ItemID:     itemID,
			Confidence: entry.Confidence,
			Reasons:    reasons,
		})
	}
	return out
}
