// Package curation holds the LLM provider adapters that turn a curation
// prompt into a parsed theme and recommendation list.
package curation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/moodic-labs/moodic/internal/core/domain"
	"github.com/moodic-labs/moodic/internal/core/ports"
)

// extractResult parses a provider response into a CurationResult. Models
// wrap output in markdown fences or chatter around the JSON more often
// than not, so the parser strips fences first, then scans for the
// outermost JSON value. Both shapes are accepted: a full object with
// theme and recommendations, or a bare recommendation array.
func extractResult(raw string) (domain.CurationResult, error) {
	payload, err := extractJSON(raw)
	if err != nil {
		return domain.CurationResult{}, ports.CurationParseError{Raw: raw, Cause: err}
	}

	if strings.HasPrefix(payload, "[") {
		var recs []domain.Recommendation
		if err := json.Unmarshal([]byte(payload), &recs); err != nil {
			return domain.CurationResult{}, ports.CurationParseError{Raw: raw, Cause: fmt.Errorf("decode recommendation array: %w", err)}
		}
		return domain.CurationResult{Recommendations: recs}, nil
	}

	var result domain.CurationResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return domain.CurationResult{}, ports.CurationParseError{Raw: raw, Cause: fmt.Errorf("decode curation object: %w", err)}
	}
	return result, nil
}

// extractJSON isolates the first JSON object or array in text.
func extractJSON(raw string) (string, error) {
	text := stripFences(raw)

	objStart := strings.IndexByte(text, '{')
	arrStart := strings.IndexByte(text, '[')

	start := objStart
	open, close := byte('{'), byte('}')
	if start == -1 || (arrStart != -1 && arrStart < start) {
		start = arrStart
		open, close = '[', ']'
	}
	if start == -1 {
		return "", fmt.Errorf("no JSON value in response")
	}

	end := matchingBoundary(text, start, open, close)
	if end == -1 {
		return "", fmt.Errorf("unterminated JSON value in response")
	}
	return text[start : end+1], nil
}

// stripFences removes markdown code fences, with or without a language
// marker, keeping whatever sits inside.
func stripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.Contains(text, "```") {
		return text
	}
	text = strings.ReplaceAll(text, "```json", "```")
	if idx := strings.Index(text, "```"); idx != -1 {
		text = text[idx+3:]
		if end := strings.Index(text, "```"); end != -1 {
			text = text[:end]
		}
	}
	return strings.TrimSpace(text)
}

// matchingBoundary finds the index of the bracket closing the value that
// opens at start, skipping brackets inside string literals.
func matchingBoundary(text string, start int, open, close byte) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
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
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
