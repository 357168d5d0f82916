package agent

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/extract"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/ondemand"
	aierr "github.com/Asmit-ctrl/DTU-BrAInware-2.0/internal/errors"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/internal/observability"
)

// DefaultConceptMatchers is the class 9 mathematics vocabulary used for
// weak-concept matching when the caller has no curriculum of its own.
var DefaultConceptMatchers = []extract.ConceptMatcher{
	{Pattern: "Polynomial", Label: "Polynomials"},
	{Pattern: "Number System", Label: "Number System"},
	{Pattern: "Algebra", Label: "Algebraic Expressions"},
}

// AnalyticsAgent interprets quiz history into a performance report. Its
// answer is free prose with labeled sections, so it uses the field
// extractor rather than JSON carving.
type AnalyticsAgent struct {
	client   *ondemand.Client
	concepts []extract.ConceptMatcher
	logger   *slog.Logger
}

// NewAnalyticsAgent creates the analytics agent. concepts is the curriculum
// vocabulary used for weak-concept matching in the model's answer.
func NewAnalyticsAgent(client *ondemand.Client, concepts []extract.ConceptMatcher) (*AnalyticsAgent, error) {
	if client == nil {
		return nil, fmt.Errorf("client cannot be nil")
	}
	return &AnalyticsAgent{
		client:   client,
		concepts: concepts,
		logger:   slog.Default(),
	}, nil
}

// AnalyticsResult is the structured report plus the model's full prose
// analysis for display.
type AnalyticsResult struct {
	SessionID         string
	PerformanceStatus string
	RiskLevel         string
	WeakConcepts      []string
	RecommendedAction string
	FullAnalysis      string
	Metrics           map[string]any
}

// Analyze submits the student's quiz history and extracts the four labeled
// report fields from the model's answer. Every field has a default, so an
// off-format answer still yields a complete report.
func (a *AnalyticsAgent) Analyze(ctx context.Context, studentID, studentName string, attempts []QuizAttempt) (*AnalyticsResult, error) {
	rc := observability.NewRequestContext(a.logger, "analytics", studentID)
	observability.GlobalMetrics().RecordRequest("analytics")

	rc.Info("AnalyticsAgent: starting analysis",
		slog.Int("attempt_count", len(attempts)))

	session, err := a.client.OpenSession(ctx, analyticsAgentIDs, studentID, []ondemand.Metadata{
		{Key: "userId", Value: studentID},
		{Key: "name", Value: studentName},
	})
	if err != nil {
		observability.GlobalMetrics().RecordFailure("analytics")
		rc.Error("AnalyticsAgent: session open failed", err)
		return nil, aierr.Wrap(aierr.ErrCodeSessionOpenFailed, "failed to open analytics session", err)
	}

	result, err := a.client.RunQuery(ctx, session.ID, ondemand.Query{
		EndpointID:    endpointGPT,
		ReasoningMode: reasoningMode,
		AgentIDs:      analyticsAgentIDs,
		Text:          buildAnalyticsQuery(attempts),
		Model:         analyticsModelConfig(),
	})
	if err != nil {
		observability.GlobalMetrics().RecordFailure("analytics")
		rc.Error("AnalyticsAgent: query failed", err,
			slog.String(observability.LogFieldSessionID, session.ID))
		return nil, aierr.Wrap(aierr.ErrCodeQueryFailed, "analytics query failed", err)
	}

	report := extract.Analytics(result.Answer, a.concepts)
	observability.GlobalMetrics().RecordDuration("analytics", rc.Duration())
	rc.Info("AnalyticsAgent: analysis complete",
		slog.String(observability.LogFieldSessionID, session.ID),
		slog.String("performance_status", report.PerformanceStatus),
		slog.String("risk_level", report.RiskLevel),
		slog.Int64(observability.LogFieldDuration, rc.DurationMs()))

	return &AnalyticsResult{
		SessionID:         session.ID,
		PerformanceStatus: report.PerformanceStatus,
		RiskLevel:         report.RiskLevel,
		WeakConcepts:      report.WeakConcepts,
		RecommendedAction: report.RecommendedAction,
		FullAnalysis:      formatAnalysis(result.Answer),
		Metrics:           result.Metrics,
	}, nil
}

// buildAnalyticsQuery aggregates quiz history into the metric summary the
// analytics prompt expects.
func buildAnalyticsQuery(attempts []QuizAttempt) string {
	if len(attempts) == 0 {
		return "No quiz attempts available for analysis."
	}

	sorted := make([]QuizAttempt, len(attempts))
	copy(sorted, attempts)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CompletedAt.Before(sorted[j].CompletedAt)
	})

	total := len(sorted)
	var sumAccuracy, sumMistakes, sumHints, sumPostRevision, sumTime float64
	maxConsecutiveWrong := 0
	postRevisionCount := 0
	for _, a := range sorted {
		sumAccuracy += a.Accuracy
		sumMistakes += float64(a.MistakeRepetitionCount)
		sumHints += float64(a.HintUsageCount)
		if a.ConsecutiveWrongAnswers > maxConsecutiveWrong {
			maxConsecutiveWrong = a.ConsecutiveWrongAnswers
		}
		if a.PostRevisionAccuracy > 0 {
			sumPostRevision += a.PostRevisionAccuracy
			postRevisionCount++
		}
		if len(a.TimePerQuestion) > 0 {
			var t float64
			for _, s := range a.TimePerQuestion {
				t += s
			}
			sumTime += t / float64(len(a.TimePerQuestion))
		}
	}
	avgPostRevision := 0.0
	if postRevisionCount > 0 {
		avgPostRevision = sumPostRevision / float64(postRevisionCount)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nAnalyze this student's learning performance:\n\n")
	fmt.Fprintf(&b, "**Performance Metrics:**\n")
	fmt.Fprintf(&b, "- Total Quiz Attempts: %d\n", total)
	fmt.Fprintf(&b, "- Average Accuracy: %.2f%%\n", sumAccuracy/float64(total))
	fmt.Fprintf(&b, "- Accuracy Trend: %s\n", accuracyTrend(sorted))
	fmt.Fprintf(&b, "- Mistake Repetition Count: %.2f per quiz\n", sumMistakes/float64(total))
	fmt.Fprintf(&b, "- Average Hint Usage: %.2f per quiz\n", sumHints/float64(total))
	fmt.Fprintf(&b, "- Max Consecutive Wrong Answers: %d\n", maxConsecutiveWrong)
	fmt.Fprintf(&b, "- Post-Revision Accuracy: %.2f%%\n", avgPostRevision)
	fmt.Fprintf(&b, "- Average Time per Question: %.2f seconds\n\n", sumTime/float64(total))

	fmt.Fprintf(&b, "**Recent Quiz Results:**\n")
	recent := sorted
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	for i, a := range recent {
		fmt.Fprintf(&b, "\nQuiz %d: %s\n", i+1, a.QuizTitle)
		fmt.Fprintf(&b, "- Date: %s\n", a.CompletedAt.Format("2006-01-02"))
		fmt.Fprintf(&b, "- Score: %d/%d (%.1f%%)\n", a.Score, a.TotalQuestions, a.Accuracy)
		fmt.Fprintf(&b, "- Hints Used: %d\n", a.HintUsageCount)
		fmt.Fprintf(&b, "- Consecutive Wrong: %d\n", a.ConsecutiveWrongAnswers)
		fmt.Fprintf(&b, "- Mistake Repetitions: %d\n", a.MistakeRepetitionCount)
	}

	last := sorted[len(sorted)-1]
	if len(last.Answers) > 0 {
		fmt.Fprintf(&b, "\n**Question-Level Details (Last Quiz):**\n")
		for i, ans := range last.Answers {
			mark := "wrong"
			if ans.IsCorrect {
				mark = "correct"
			}
			seconds := 0.0
			if i < len(last.TimePerQuestion) {
				seconds = last.TimePerQuestion[i]
			}
			hints := "No"
			if ans.HintsUsed {
				hints = "Yes"
			}
			fmt.Fprintf(&b, "Q%d: %s | Time: %.0fs | Hints: %s\n", i+1, mark, seconds, hints)
		}
	}

	fmt.Fprintf(&b, `
Please provide:
1. Performance Status (Improvement/Stagnation/Decline)
2. Identified Weak Concepts
3. Risk Level (Low/Medium/High)
4. Recommended Next Action
`)
	return b.String()
}

// accuracyTrend compares first-half and second-half average accuracy.
func accuracyTrend(sorted []QuizAttempt) string {
	if len(sorted) < 2 {
		return "STABLE"
	}
	mid := len(sorted) / 2
	var first, second float64
	for _, a := range sorted[:mid] {
		first += a.Accuracy
	}
	for _, a := range sorted[mid:] {
		second += a.Accuracy
	}
	first /= float64(mid)
	second /= float64(len(sorted) - mid)
	switch {
	case second > first+5:
		return "IMPROVING"
	case second < first-5:
		return "DECLINING"
	default:
		return "STABLE"
	}
}

// formatAnalysis normalizes section dividers for display.
func formatAnalysis(answer string) string {
	parts := strings.Split(answer, "---")
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.Trim(p, "-"))
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n---\n\n")
}
