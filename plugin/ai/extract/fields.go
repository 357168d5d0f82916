package extract

import (
	"regexp"
	"strings"
)

// Defaults used when a labeled field is absent or unrecognized. Every field
// of an analytics report extracts independently, so one malformed section
// never blanks the others.
const (
	DefaultPerformanceStatus = "Stagnation"
	DefaultRiskLevel         = "Medium"
	defaultRecommendedAction = "Continue practice and review weak areas."

	maxRecommendedActionLen = 1500
)

var (
	performanceRe = regexp.MustCompile(`(?i)Performance Status:\s*\*?\*?([^*\n-]+)`)
	riskRe        = regexp.MustCompile(`(?i)Risk Level:\s*\*?\*?(HIGH|MEDIUM|LOW)`)
	weakSectionRe = regexp.MustCompile(`(?is)Identified Weak Concepts:(.*?)(?:Risk Level:|---|\n\n##)`)
	actionRe      = regexp.MustCompile(`(?is)Recommended Next Action:(.*?)(?:If you can share|$)`)

	boldRe      = regexp.MustCompile(`\*\*`)
	bulletRe    = regexp.MustCompile(`(?m)^\s*-+\s*`)
	blankRunsRe = regexp.MustCompile(`\n{3,}`)
)

// ConceptMatcher maps a pattern observed in model prose to the canonical
// concept label the caller tracks. Pattern is a case-insensitive regular
// expression fragment, typically just the concept's name.
type ConceptMatcher struct {
	Pattern string
	Label   string
}

// Report is the structured view of a free-text analytics answer.
type Report struct {
	PerformanceStatus string
	RiskLevel         string
	WeakConcepts      []string
	RecommendedAction string
}

// Analytics extracts the four labeled analytics fields from a model answer.
// concepts supplies the curriculum vocabulary for weak-concept matching;
// the extractor itself knows no subject names.
func Analytics(text string, concepts []ConceptMatcher) Report {
	return Report{
		PerformanceStatus: performanceStatus(text),
		RiskLevel:         riskLevel(text),
		WeakConcepts:      weakConcepts(text, concepts),
		RecommendedAction: recommendedAction(text),
	}
}

func performanceStatus(text string) string {
	m := performanceRe.FindStringSubmatch(text)
	if m == nil {
		return DefaultPerformanceStatus
	}
	label := strings.ToLower(m[1])
	switch {
	case strings.Contains(label, "improvement"):
		return "Improvement"
	case strings.Contains(label, "decline"):
		return "Decline"
	default:
		return DefaultPerformanceStatus
	}
}

func riskLevel(text string) string {
	m := riskRe.FindStringSubmatch(text)
	if m == nil {
		return DefaultRiskLevel
	}
	switch strings.ToUpper(m[1]) {
	case "HIGH":
		return "High"
	case "LOW":
		return "Low"
	default:
		return DefaultRiskLevel
	}
}

// weakConcepts runs a strict pass looking for concepts explicitly tagged
// WEAK inside the weak-concepts section, then falls back to bare mentions
// if no explicit tag matched. Tagged concepts are the model following
// instructions; bare mentions are a weaker signal, used only when the model
// skipped the tags.
func weakConcepts(text string, concepts []ConceptMatcher) []string {
	section := weakSectionRe.FindStringSubmatch(text)
	if section == nil {
		return nil
	}
	body := section[1]

	var found []string
	for _, c := range concepts {
		re, err := regexp.Compile(`(?is)` + c.Pattern + `.*WEAK`)
		if err != nil {
			continue
		}
		if re.MatchString(body) {
			found = append(found, c.Label)
		}
	}
	if len(found) > 0 {
		return found
	}

	for _, c := range concepts {
		re, err := regexp.Compile(`(?is)` + c.Pattern)
		if err != nil {
			continue
		}
		if re.MatchString(body) {
			found = append(found, c.Label)
		}
	}
	return found
}

func recommendedAction(text string) string {
	m := actionRe.FindStringSubmatch(text)
	if m == nil {
		return defaultRecommendedAction
	}
	action := m[1]
	action = boldRe.ReplaceAllString(action, "")
	action = bulletRe.ReplaceAllString(action, "")
	action = blankRunsRe.ReplaceAllString(action, "\n\n")
	action = strings.TrimSpace(action)
	if action == "" {
		return defaultRecommendedAction
	}
	if runes := []rune(action); len(runes) > maxRecommendedActionLen {
		action = string(runes[:maxRecommendedActionLen])
	}
	return action
}
