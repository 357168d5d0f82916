package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/extract"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/ondemand"
	aierr "github.com/Asmit-ctrl/DTU-BrAInware-2.0/internal/errors"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/internal/observability"
)

// LessonAgent generates visual teaching lessons: a Manim animation script
// plus teaching summary and spoken-delivery guidance, all sectioned inside
// one free-text answer.
type LessonAgent struct {
	client *ondemand.Client
	logger *slog.Logger
}

func NewLessonAgent(client *ondemand.Client) (*LessonAgent, error) {
	if client == nil {
		return nil, fmt.Errorf("client cannot be nil")
	}
	return &LessonAgent{client: client, logger: slog.Default()}, nil
}

// Lesson render statuses. Rendering happens outside this process; the agent
// only reports whether a script was recovered from the answer.
const (
	RenderStatusPending = "pending"
	RenderStatusNoCode  = "no_code"
)

// LessonResult is one generated lesson.
type LessonResult struct {
	LessonID        string
	SessionID       string
	Topic           string
	MasteryLevel    string
	TeachingSummary string
	TeacherGuidance string
	ManimCode       string
	FullResponse    string
	RenderStatus    string
}

// Generate creates a lesson for the topic, adapted to the student's
// analytics. An empty topic falls back to the student's weakest concept.
func (l *LessonAgent) Generate(ctx context.Context, studentID, studentName string, analytics AnalyticsSummary, attempts []QuizAttempt, topic string) (*LessonResult, error) {
	rc := observability.NewRequestContext(l.logger, "lesson", studentID)
	observability.GlobalMetrics().RecordRequest("lesson")

	session, err := l.client.OpenSession(ctx, lessonAgentIDs, studentID, []ondemand.Metadata{
		{Key: "userId", Value: studentID},
		{Key: "name", Value: studentName},
		{Key: "role", Value: "student"},
	})
	if err != nil {
		observability.GlobalMetrics().RecordFailure("lesson")
		rc.Error("LessonAgent: session open failed", err)
		return nil, aierr.Wrap(aierr.ErrCodeSessionOpenFailed, "failed to open lesson session", err)
	}

	mastery := MasteryLevel(analytics)
	if topic == "" {
		if len(analytics.WeakConcepts) > 0 {
			topic = analytics.WeakConcepts[0]
		} else {
			topic = "General Mathematics"
		}
	}
	rc.Info("LessonAgent: generating lesson",
		slog.String("topic", topic),
		slog.String("mastery_level", mastery))

	result, err := l.client.RunQuery(ctx, session.ID, ondemand.Query{
		EndpointID:    endpointClaude,
		ReasoningMode: reasoningMode,
		AgentIDs:      lessonAgentIDs,
		Text:          buildLessonQuery(analytics, attempts, mastery, topic),
		Model:         lessonModelConfig(),
	})
	if err != nil {
		observability.GlobalMetrics().RecordFailure("lesson")
		rc.Error("LessonAgent: query failed", err,
			slog.String(observability.LogFieldSessionID, session.ID))
		return nil, aierr.Wrap(aierr.ErrCodeQueryFailed, "lesson query failed", err)
	}

	code := extract.PythonCode(result.Answer)
	status := RenderStatusPending
	if code == "" {
		status = RenderStatusNoCode
		rc.Warn("LessonAgent: no animation code in answer",
			slog.Int(observability.LogFieldAnswerLen, len(result.Answer)))
	}

	observability.GlobalMetrics().RecordDuration("lesson", rc.Duration())
	rc.Info("LessonAgent: lesson generated",
		slog.String(observability.LogFieldSessionID, session.ID),
		slog.Int("code_length", len(code)),
		slog.Int64(observability.LogFieldDuration, rc.DurationMs()))

	return &LessonResult{
		LessonID:        fmt.Sprintf("lesson_%d", time.Now().UnixMilli()),
		SessionID:       session.ID,
		Topic:           topic,
		MasteryLevel:    mastery,
		TeachingSummary: extract.TeachingSummary(result.Answer),
		TeacherGuidance: extract.VoiceGuidance(result.Answer),
		ManimCode:       code,
		FullResponse:    result.Answer,
		RenderStatus:    status,
	}, nil
}

// GenerateChapterContent generates one lesson per weak concept, capped at
// three chapters. Individual lesson failures skip that chapter rather than
// aborting the batch.
func (l *LessonAgent) GenerateChapterContent(ctx context.Context, studentID, studentName string, analytics AnalyticsSummary) ([]*LessonResult, error) {
	concepts := analytics.WeakConcepts
	if len(concepts) > 3 {
		concepts = concepts[:3]
	}
	if len(concepts) == 0 {
		return nil, aierr.New(aierr.ErrCodeInvalidArgument, "no weak concepts to build chapters for")
	}

	// Lessons are independent sessions, so generate them concurrently.
	// Two at a time keeps provider rate limits comfortable.
	results := make([]*LessonResult, len(concepts))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(2)
	for i, concept := range concepts {
		group.Go(func() error {
			lesson, err := l.Generate(groupCtx, studentID, studentName, analytics, nil, concept)
			if err != nil {
				l.logger.Warn("LessonAgent: chapter lesson failed",
					slog.String("concept", concept),
					slog.String("error", err.Error()))
				return nil
			}
			results[i] = lesson
			return nil
		})
	}
	_ = group.Wait()

	var lessons []*LessonResult
	for _, lesson := range results {
		if lesson != nil {
			lessons = append(lessons, lesson)
		}
	}
	return lessons, nil
}

// MasteryLevel classifies the student from the analytics summary: high risk
// or decline means WEAK, low risk with improvement means STRONG, everything
// else MEDIUM.
func MasteryLevel(analytics AnalyticsSummary) string {
	risk := strings.ToLower(orDefault(analytics.RiskLevel, "medium"))
	status := strings.ToLower(orDefault(analytics.PerformanceStatus, "stagnation"))
	switch {
	case risk == "high" || status == "decline":
		return MasteryWeak
	case risk == "low" && status == "improvement":
		return MasteryStrong
	default:
		return MasteryMedium
	}
}

func buildLessonQuery(analytics AnalyticsSummary, attempts []QuizAttempt, mastery, topic string) string {
	avgTimePerQuestion := 30.0
	attemptCount := 1
	firstAttemptRate := 50.0
	if len(attempts) > 0 {
		var sumTime float64
		confident := 0
		for _, a := range attempts {
			if len(a.TimePerQuestion) > 0 {
				var t float64
				for _, s := range a.TimePerQuestion {
					t += s
				}
				sumTime += t / float64(len(a.TimePerQuestion))
			}
			if a.Accuracy >= 70 {
				confident++
			}
		}
		avgTimePerQuestion = sumTime / float64(len(attempts))
		attemptCount = len(attempts)
		firstAttemptRate = float64(confident) / float64(len(attempts)) * 100
	}

	return fmt.Sprintf(`
Create a teaching lesson with Manim animation for this student:

**Student Analytics:**
- Chapter Mastery Level: %s
- Concept Accuracy: %.1f%%
- Time per Question: %.1f seconds
- Number of Attempts: %d
- First-Attempt Correct Rate: %.1f%%
- Weak Concepts: %s

**Topic to Teach:** %s

**Requirements:**
1. Create a complete Manim Python script that teaches "%s"
2. Adapt the teaching style for a %s level student
3. Use NCERT-aligned examples for Indian students (Classes 6-12)
4. Include clear visual explanations with text, diagrams, and transformations
5. The animation should be educational and engaging

Please provide:
A. Teaching Intent Summary
B. Complete Manim Python Code (inside %s code block)
C. Teacher Voice Guidance
`,
		mastery,
		nonZero(analytics.AverageScore, 50),
		avgTimePerQuestion,
		attemptCount,
		firstAttemptRate,
		joinOrDefault(analytics.WeakConcepts, "General Mathematics"),
		topic, topic, mastery, "```python")
}
