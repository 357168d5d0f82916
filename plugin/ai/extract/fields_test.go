package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var mathConcepts = []ConceptMatcher{
	{Pattern: "Polynomial", Label: "Polynomials"},
	{Pattern: "Number System", Label: "Number System"},
	{Pattern: "Algebra", Label: "Algebraic Expressions"},
}

func TestAnalyticsFullReport(t *testing.T) {
	answer := `## Student Analysis

Performance Status: **Improvement**

Identified Weak Concepts:
- Polynomials (WEAK)
- Number System looks fine

Risk Level: **HIGH**

Recommended Next Action:
- **Revise factoring of polynomials** daily.


Practice 10 problems per session.
If you can share more quiz data I can refine this.`

	report := Analytics(answer, mathConcepts)
	assert.Equal(t, "Improvement", report.PerformanceStatus)
	assert.Equal(t, "High", report.RiskLevel)
	assert.Equal(t, []string{"Polynomials"}, report.WeakConcepts)
	assert.Equal(t, "Revise factoring of polynomials daily.\n\nPractice 10 problems per session.", report.RecommendedAction)
}

func TestAnalyticsDefaults(t *testing.T) {
	report := Analytics("the model rambled about something unrelated", mathConcepts)
	assert.Equal(t, "Stagnation", report.PerformanceStatus)
	assert.Equal(t, "Medium", report.RiskLevel)
	assert.Empty(t, report.WeakConcepts)
	assert.Equal(t, "Continue practice and review weak areas.", report.RecommendedAction)
}

func TestAnalyticsRiskWithoutPerformance(t *testing.T) {
	report := Analytics("Risk Level: **HIGH**", mathConcepts)
	assert.Equal(t, "High", report.RiskLevel)
	assert.Equal(t, "Stagnation", report.PerformanceStatus)
}

func TestAnalyticsPerformanceVariants(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Performance Status: steady improvement over weeks", "Improvement"},
		{"Performance Status: **Decline**", "Decline"},
		{"Performance Status: Stagnation", "Stagnation"},
		{"Performance Status: plateauing", "Stagnation"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Analytics(tt.text, nil).PerformanceStatus, tt.text)
	}
}

func TestAnalyticsWeakConceptsLoosePass(t *testing.T) {
	// No WEAK tags in the section, so bare mentions count.
	answer := `Identified Weak Concepts:
The student struggles with polynomial division and basic algebra.

Risk Level: Low`

	report := Analytics(answer, mathConcepts)
	assert.Equal(t, []string{"Polynomials", "Algebraic Expressions"}, report.WeakConcepts)
	assert.Equal(t, "Low", report.RiskLevel)
}

func TestAnalyticsWeakConceptsSectionMissing(t *testing.T) {
	report := Analytics("Performance Status: Decline\nRisk Level: LOW", mathConcepts)
	assert.Empty(t, report.WeakConcepts)
}

func TestAnalyticsActionTruncation(t *testing.T) {
	long := "Recommended Next Action: " + strings.Repeat("practice ", 400)
	report := Analytics(long, nil)
	assert.LessOrEqual(t, len([]rune(report.RecommendedAction)), 1500)
	assert.True(t, strings.HasPrefix(report.RecommendedAction, "practice"))
}
