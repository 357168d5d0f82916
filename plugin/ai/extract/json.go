// Package extract pulls structured payloads out of free-text model
// completions. Models wrap their JSON in prose, markdown fences and
// commentary, and sometimes truncate mid-object; every function here
// degrades to an explicit miss value instead of returning an error.
package extract

import (
	"encoding/json"
	"strings"
)

// Object carves a JSON object out of text using the first `{` and the last
// `}` as delimiters and returns nil when the span does not parse.
//
// The heuristic is deliberately greedy: when the text contains more than one
// brace-delimited object the span covers all of them and usually fails to
// parse, which callers must treat as a miss, not an error. BalancedObject is
// the stricter alternative for callers that opt in.
func Object(text string) map[string]any {
	var obj map[string]any
	if !Decode(text, &obj) {
		return nil
	}
	return obj
}

// Decode carves the same first-`{`/last-`}` span as Object but unmarshals it
// into v, so callers with a known payload shape get typed fields directly.
// It reports whether a parseable object was found; on false, v is untouched
// or partially filled and must not be used.
func Decode(text string, v any) bool {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return false
	}
	return json.Unmarshal([]byte(text[start:end+1]), v) == nil
}

// BalancedObject scans for the first brace-balanced span and parses it,
// ignoring braces inside JSON strings. Unlike Object it does not swallow a
// second trailing object or trailing prose into the candidate span. It is
// opt-in because some prompts rely on Object's lenient span selection.
func BalancedObject(text string) map[string]any {
	start := strings.Index(text, "{")
	if start < 0 {
		return nil
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				var obj map[string]any
				if json.Unmarshal([]byte(text[start:i+1]), &obj) == nil {
					return obj
				}
				return nil
			}
		}
	}
	// Never balanced; the payload was truncated.
	return nil
}
