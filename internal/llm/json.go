package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON finds and returns the JSON object from text that may be
// wrapped in markdown code fences or surrounded by other text.
func ExtractJSON(s string) (string, error) {
	s = strings.TrimSpace(s)

	// Try to parse as-is first
	if isValidJSON(s) {
		return s, nil
	}

	// Strip markdown code fences
	if idx := strings.Index(s, "```json"); idx != -1 {
		start := idx + len("```json")
		end := strings.Index(s[start:], "```")
		if end != -1 {
			candidate := strings.TrimSpace(s[start : start+end])
			if isValidJSON(candidate) {
				return candidate, nil
			}
		}
	}
	if idx := strings.Index(s, "```"); idx != -1 {
		start := idx + len("```")
		end := strings.Index(s[start:], "```")
		if end != -1 {
			candidate := strings.TrimSpace(s[start : start+end])
			if isValidJSON(candidate) {
				return candidate, nil
			}
		}
	}

	// Find first { and last }
	first := strings.Index(s, "{")
	last := strings.LastIndex(s, "}")
	if first != -1 && last > first {
		candidate := s[first : last+1]
		if isValidJSON(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no valid JSON found in response")
}

func isValidJSON(s string) bool {
	var js json.RawMessage
	return json.Unmarshal([]byte(s), &js) == nil
}
