package minutes

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/johnquangdev/minutesgen/internal/domain/entities"
)

// decodeMinutes parses a completion response into a normalized record.
// Model output is untrusted: it may be wrapped in markdown fences, omit
// fields, or not be JSON at all.
func decodeMinutes(content string) (*entities.MeetingMinutes, error) {
	content = extractJSON(content)

	var m entities.MeetingMinutes
	if err := json.Unmarshal([]byte(content), &m); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	m.Normalize()
	return &m, nil
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}

// truncate bounds a transcript to limit bytes for the simplified tier.
func truncate(s string, limit int) string {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
