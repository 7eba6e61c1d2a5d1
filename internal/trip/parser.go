package trip

import (
	"encoding/json"
	"strings"
)

// ExtractJSON pulls the first usable JSON object or array out of raw model
// output. Models wrap their payload in prose or markdown fences often enough
// that a strict json.Unmarshal on the whole text is not sufficient.
//
// Candidates are tried in order, first success wins:
//  1. the full trimmed text,
//  2. the text with a markdown fence (and optional language tag) stripped,
//  3. the first '{' .. last '}' span,
//  4. the first '[' .. last ']' span.
//
// Failed candidates are skipped silently; only full exhaustion returns a
// ParseError.
func ExtractJSON(raw string) (any, error) {
	trimmed := strings.TrimSpace(raw)

	if v, ok := tryParse(trimmed); ok {
		return v, nil
	}

	if fenced, ok := stripFence(trimmed); ok {
		if v, ok := tryParse(fenced); ok {
			return v, nil
		}
	}

	if span, ok := spanBetween(trimmed, '{', '}'); ok {
		if v, ok := tryParse(span); ok {
			return v, nil
		}
	}

	if span, ok := spanBetween(trimmed, '[', ']'); ok {
		if v, ok := tryParse(span); ok {
			return v, nil
		}
	}

	return nil, &ParseError{Raw: raw}
}

// tryParse accepts only JSON objects and arrays; bare scalars are not a
// usable plan payload.
func tryParse(candidate string) (any, bool) {
	if candidate == "" {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(candidate), &v); err != nil {
		return nil, false
	}
	switch v.(type) {
	case map[string]any, []any:
		return v, true
	default:
		return nil, false
	}
}

// stripFence removes a surrounding ``` fence and a leading language tag
// (e.g. ```json).
func stripFence(s string) (string, bool) {
	if !strings.HasPrefix(s, "```") && !strings.Contains(s, "```") {
		return "", false
	}
	start := strings.Index(s, "```")
	rest := s[start+3:]
	// Drop a language tag up to the first newline.
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		firstLine := strings.TrimSpace(rest[:nl])
		if firstLine != "" && !strings.ContainsAny(firstLine, "{}[]") {
			rest = rest[nl+1:]
		}
	}
	if end := strings.LastIndex(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest), true
}

func spanBetween(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
