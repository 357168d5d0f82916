package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/extract"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/ondemand"
	aierr "github.com/Asmit-ctrl/DTU-BrAInware-2.0/internal/errors"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/internal/observability"
)

// AssignmentAgent generates a personalized 10-question daily assignment
// from a topic and the student's analytics summary.
type AssignmentAgent struct {
	client *ondemand.Client
	logger *slog.Logger
}

func NewAssignmentAgent(client *ondemand.Client) (*AssignmentAgent, error) {
	if client == nil {
		return nil, fmt.Errorf("client cannot be nil")
	}
	return &AssignmentAgent{client: client, logger: slog.Default()}, nil
}

// DifficultyBreakdown is the count of questions per difficulty tier.
type DifficultyBreakdown struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

// PredictedOutcome is the model's forecast for the next attempt.
type PredictedOutcome struct {
	ExpectedPerformance string   `json:"expectedPerformance"`
	FocusConcepts       []string `json:"focusConcepts"`
	RiskLevel           string   `json:"riskLevel"`
	NextRecommendation  string   `json:"nextRecommendation"`
}

// Assignment is the model's structured assignment payload.
type Assignment struct {
	AssignmentTitle        string              `json:"assignmentTitle"`
	TotalQuestions         int                 `json:"totalQuestions"`
	TotalMarks             int                 `json:"totalMarks"`
	EstimatedTime          string              `json:"estimatedTime"`
	DifficultyBreakdown    DifficultyBreakdown `json:"difficultyBreakdown"`
	Questions              []Question          `json:"questions"`
	AnalyticsBasedFeedback string              `json:"analyticsBasedFeedback"`
	PredictedOutcome       PredictedOutcome    `json:"predictedOutcome"`
}

// AssignmentResult carries the assignment plus the raw answer. Extracted
// reports whether the structured payload came from the model or was
// synthesized around an unparseable answer.
type AssignmentResult struct {
	AssignmentID string
	SessionID    string
	Topic        string
	Assignment   Assignment
	RawAnswer    string
	Extracted    bool
}

// Generate builds an assignment for the topic. An unparseable answer is
// not an error: the result carries a default-shaped assignment with the
// raw text as feedback so the caller can still show something.
func (a *AssignmentAgent) Generate(ctx context.Context, studentID, studentName, topic string, analytics AnalyticsSummary) (*AssignmentResult, error) {
	rc := observability.NewRequestContext(a.logger, "assignment", studentID)
	observability.GlobalMetrics().RecordRequest("assignment")

	externalUserID := studentID
	if externalUserID == "" {
		externalUserID = uuid.New().String()
	}
	session, err := a.client.OpenSession(ctx, assignmentAgentIDs, externalUserID, []ondemand.Metadata{
		{Key: "userId", Value: studentID},
		{Key: "name", Value: orDefault(studentName, "Student")},
		{Key: "purpose", Value: "assignment_generation"},
	})
	if err != nil {
		observability.GlobalMetrics().RecordFailure("assignment")
		rc.Error("AssignmentAgent: session open failed", err)
		return nil, aierr.Wrap(aierr.ErrCodeSessionOpenFailed, "failed to open assignment session", err)
	}

	result, err := a.client.RunQuery(ctx, session.ID, ondemand.Query{
		EndpointID:    endpointGrok,
		ReasoningMode: reasoningMode,
		AgentIDs:      assignmentAgentIDs,
		Text:          buildAssignmentQuery(topic, analytics),
		Model:         assignmentModelConfig(),
	})
	if err != nil {
		observability.GlobalMetrics().RecordFailure("assignment")
		rc.Error("AssignmentAgent: query failed", err,
			slog.String(observability.LogFieldSessionID, session.ID))
		return nil, aierr.Wrap(aierr.ErrCodeQueryFailed, "assignment query failed", err)
	}

	out := &AssignmentResult{
		AssignmentID: uuid.New().String(),
		SessionID:    session.ID,
		Topic:        topic,
		RawAnswer:    result.Answer,
	}
	if extract.Decode(result.Answer, &out.Assignment) {
		out.Extracted = true
		if out.Assignment.Questions != nil && len(out.Assignment.Questions) < 10 {
			rc.Warn("AssignmentAgent: short question set",
				slog.Int("question_count", len(out.Assignment.Questions)))
		}
	} else {
		rc.Warn("AssignmentAgent: no structured payload in answer",
			slog.Int(observability.LogFieldAnswerLen, len(result.Answer)))
		out.Assignment = Assignment{
			AssignmentTitle:        "Daily Practice: " + topic,
			TotalQuestions:         0,
			AnalyticsBasedFeedback: result.Answer,
		}
	}
	// A 6/3/1 split is the safe default when the model omitted it.
	if out.Assignment.DifficultyBreakdown == (DifficultyBreakdown{}) {
		out.Assignment.DifficultyBreakdown = DifficultyBreakdown{Easy: 6, Medium: 3, Hard: 1}
	}

	observability.GlobalMetrics().RecordDuration("assignment", rc.Duration())
	rc.Info("AssignmentAgent: assignment generated",
		slog.String(observability.LogFieldSessionID, session.ID),
		slog.Bool("extracted", out.Extracted),
		slog.Int("question_count", len(out.Assignment.Questions)),
		slog.Int64(observability.LogFieldDuration, rc.DurationMs()))
	return out, nil
}

func buildAssignmentQuery(topic string, analytics AnalyticsSummary) string {
	scores := "No data"
	if len(analytics.RecentScores) > 0 {
		parts := make([]string, len(analytics.RecentScores))
		for i, s := range analytics.RecentScores {
			parts[i] = fmt.Sprintf("%.0f", s)
		}
		scores = strings.Join(parts, ", ")
	}
	return fmt.Sprintf(`Generate a personalized 10-question daily assignment on the topic: "%s"

Student Analytics Data:
- Performance Status: %s
- Identified Weak Concepts: %s
- Risk Level: %s
- Recent Quiz Scores: %s
- Average Score: %.0f%%
- Recommended Focus: %s
- Topics Needing Improvement: %s

Based on the above analytics, create an adaptive assignment that:
1. Focuses on the student's weak concepts
2. Uses appropriate difficulty distribution based on their performance status
3. Includes questions that will help improve their understanding

Return ONLY valid JSON in the exact format specified.`,
		topic,
		orDefault(analytics.PerformanceStatus, "Unknown"),
		joinOrDefault(analytics.WeakConcepts, "None identified"),
		orDefault(analytics.RiskLevel, "Medium"),
		scores,
		analytics.AverageScore,
		orDefault(analytics.RecommendedAction, "General practice"),
		joinOrDefault(analytics.TopicsToImprove, topic),
	)
}

// DeriveAnalytics computes an analytics summary locally from quiz history,
// for callers that have attempts on hand but no fresh analytics-agent
// report.
func DeriveAnalytics(attempts []QuizAttempt) AnalyticsSummary {
	if len(attempts) == 0 {
		return AnalyticsSummary{
			PerformanceStatus: "Unknown",
			RiskLevel:         "Medium",
			RecommendedAction: "Start with foundational concepts",
		}
	}

	recent := attempts
	if len(recent) > 5 {
		recent = recent[:5]
	}
	scores := make([]float64, len(recent))
	var sum float64
	for i, a := range recent {
		scores[i] = a.Percentage
		sum += a.Percentage
	}
	average := sum / float64(len(scores))

	status := "Stable"
	if len(scores) >= 2 {
		newest := (scores[0] + scores[1]) / 2
		oldest := (scores[len(scores)-1] + scores[len(scores)-2]) / 2
		switch {
		case newest > oldest+10:
			status = "Improvement"
		case newest < oldest-10:
			status = "Decline"
		default:
			status = "Stagnation"
		}
	}

	risk := "Low"
	if average < 40 {
		risk = "High"
	} else if average < 60 {
		risk = "Medium"
	}

	// A concept is weak when the student answers it correctly less than
	// half the time across all attempts.
	type tally struct{ correct, total int }
	conceptScores := map[string]*tally{}
	conceptOrder := []string{}
	for _, a := range attempts {
		for _, ans := range a.Answers {
			concept := orDefault(ans.Concept, "General")
			t, ok := conceptScores[concept]
			if !ok {
				t = &tally{}
				conceptScores[concept] = t
				conceptOrder = append(conceptOrder, concept)
			}
			t.total++
			if ans.IsCorrect {
				t.correct++
			}
		}
	}
	var weak []string
	for _, concept := range conceptOrder {
		t := conceptScores[concept]
		if float64(t.correct)/float64(t.total)*100 < 50 {
			weak = append(weak, concept)
		}
	}

	action := "Continue regular practice"
	switch {
	case risk == "High":
		action = "Focus on foundational concepts and basic formulas"
	case status == "Decline":
		action = "Review weak concepts and practice more easy questions"
	case status == "Improvement" && risk == "Low":
		action = "Challenge yourself with harder problems"
	}

	improve := weak
	if len(improve) > 3 {
		improve = improve[:3]
	}
	return AnalyticsSummary{
		PerformanceStatus: status,
		WeakConcepts:      weak,
		RiskLevel:         risk,
		RecentScores:      scores,
		AverageScore:      average,
		RecommendedAction: action,
		TopicsToImprove:   improve,
	}
}
