package extract

import (
	"regexp"
	"strings"
)

var (
	pythonFenceRe  = regexp.MustCompile("```python\\s*((?s:.*?))```")
	genericFenceRe = regexp.MustCompile("```\\s*((?s:.*?))```")
	manimImportRe  = regexp.MustCompile(`(?s)(from manim import.*?)(?:\n\n[A-Z]|\n\n---|$)`)

	summaryRe  = regexp.MustCompile(`(?is)(?:A\.\s*(?:Short )?)?Teaching Intent Summary[:\s]*(.*?)(?:B\.|Manim Code|` + "```" + `)`)
	guidanceRe = regexp.MustCompile(`(?is)(?:C\.\s*)?Teacher Voice Guidance[:\s]*(.*?)(?:\n\n---|$)`)
)

// PythonCode extracts a Python source block from a lesson answer. It prefers
// a fenced ```python block, then any fenced block, then a bare block opening
// with a manim import. Returns "" when no code is present.
func PythonCode(text string) string {
	if m := pythonFenceRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := genericFenceRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := manimImportRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// TeachingSummary extracts the lesson's intent summary section. When the
// answer carries no labeled summary the opening lines stand in for one,
// capped so a rambling preamble stays presentable.
func TeachingSummary(text string) string {
	if m := summaryRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	lines := strings.Split(text, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}
	head := strings.Join(lines, "\n")
	if runes := []rune(head); len(runes) > 500 {
		head = string(runes[:500])
	}
	return head
}

// VoiceGuidance extracts the spoken-delivery guidance section, or "" when
// the answer has none.
func VoiceGuidance(text string) string {
	if m := guidanceRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
