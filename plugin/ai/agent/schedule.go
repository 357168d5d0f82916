package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/extract"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/ondemand"
	aierr "github.com/Asmit-ctrl/DTU-BrAInware-2.0/internal/errors"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/internal/observability"
)

// ScheduleAgent plans a week of chapter study adapted to the student's
// mastery level, and can generate the practice questions for a scheduled
// day on the same session.
type ScheduleAgent struct {
	client *ondemand.Client
	logger *slog.Logger
}

func NewScheduleAgent(client *ondemand.Client) (*ScheduleAgent, error) {
	if client == nil {
		return nil, fmt.Errorf("client cannot be nil")
	}
	return &ScheduleAgent{client: client, logger: slog.Default()}, nil
}

// ScheduledTopic is one topic slot inside a scheduled day.
type ScheduledTopic struct {
	TopicName  string   `json:"topicName"`
	Duration   string   `json:"duration"`
	Difficulty string   `json:"difficulty"`
	Objectives []string `json:"objectives"`
	Activities []string `json:"activities"`
}

// QuestionDistribution is the per-day practice question split.
type QuestionDistribution struct {
	Easy     int `json:"easy"`
	Moderate int `json:"moderate"`
	Hard     int `json:"hard"`
}

// DaySchedule is one day of the weekly plan.
type DaySchedule struct {
	Day                  int                  `json:"day"`
	Date                 string               `json:"date"`
	DayType              string               `json:"dayType"`
	Topics               []ScheduledTopic     `json:"topics"`
	DailyGoal            string               `json:"dailyGoal"`
	QuestionsCount       int                  `json:"questionsCount"`
	QuestionDistribution QuestionDistribution `json:"questionDistribution"`
	EstimatedTime        string               `json:"estimatedTime"`
	BreakReminder        string               `json:"breakReminder"`
}

// WeeklySchedule is the model's structured schedule payload.
type WeeklySchedule struct {
	ScheduleID          string        `json:"scheduleId"`
	StudentLevel        string        `json:"studentLevel"`
	ChapterName         string        `json:"chapterName"`
	Subject             string        `json:"subject"`
	TotalDays           int           `json:"totalDays"`
	StartDate           string        `json:"startDate"`
	EndDate             string        `json:"endDate"`
	DailySchedule       []DaySchedule `json:"dailySchedule"`
	WeeklyGoals         []string      `json:"weeklyGoals"`
	AssessmentDay       int           `json:"assessmentDay"`
	RevisionTopics      []string      `json:"revisionTopics"`
	ParentTips          []string      `json:"parentTips"`
	MotivationalMessage string        `json:"motivationalMessage"`
}

// ScheduleResult carries the weekly plan. Extracted reports whether the
// structured payload parsed; when false the raw answer is returned so the
// caller can show the model's plan as prose.
type ScheduleResult struct {
	SessionID      string
	ExternalUserID string
	Schedule       WeeklySchedule
	RawAnswer      string
	Extracted      bool
}

// Generate builds the weekly study schedule for a chapter.
func (s *ScheduleAgent) Generate(ctx context.Context, studentID, studentName string, profile StudentProfile, chapter ChapterInfo) (*ScheduleResult, error) {
	rc := observability.NewRequestContext(s.logger, "schedule", studentID)
	observability.GlobalMetrics().RecordRequest("schedule")

	externalUserID := fmt.Sprintf("schedule_%s_%d", studentID, time.Now().UnixMilli())
	session, err := s.client.OpenSession(ctx, scheduleAgentIDs, externalUserID, []ondemand.Metadata{
		{Key: "studentId", Value: studentID},
		{Key: "studentName", Value: studentName},
		{Key: "purpose", Value: "schedule_generation"},
	})
	if err != nil {
		observability.GlobalMetrics().RecordFailure("schedule")
		rc.Error("ScheduleAgent: session open failed", err)
		return nil, aierr.Wrap(aierr.ErrCodeSessionOpenFailed, "failed to open schedule session", err)
	}

	rc.Info("ScheduleAgent: generating weekly schedule",
		slog.String("chapter", chapter.ChapterName),
		slog.String("mastery_level", orDefault(profile.MasteryLevel, "MODERATE")))

	result, err := s.client.RunQuery(ctx, session.ID, ondemand.Query{
		EndpointID:    endpointGrok,
		ReasoningMode: reasoningMode,
		AgentIDs:      scheduleAgentIDs,
		Text:          buildScheduleQuery(profile, chapter),
		Model:         scheduleModelConfig(profile, chapter),
	})
	if err != nil {
		observability.GlobalMetrics().RecordFailure("schedule")
		rc.Error("ScheduleAgent: query failed", err,
			slog.String(observability.LogFieldSessionID, session.ID))
		return nil, aierr.Wrap(aierr.ErrCodeQueryFailed, "schedule query failed", err)
	}

	out := &ScheduleResult{
		SessionID:      session.ID,
		ExternalUserID: externalUserID,
		RawAnswer:      result.Answer,
	}
	// A parsed plan counts as extracted even with an empty day list; the
	// fallback is only for answers with no decodable payload at all.
	if extract.Decode(result.Answer, &out.Schedule) {
		out.Extracted = true
	} else {
		rc.Warn("ScheduleAgent: no structured payload in answer",
			slog.Int(observability.LogFieldAnswerLen, len(result.Answer)))
		out.Schedule = WeeklySchedule{
			ChapterName:  chapter.ChapterName,
			Subject:      orDefault(chapter.Subject, profile.Subject),
			StudentLevel: orDefault(profile.MasteryLevel, "MODERATE"),
		}
	}

	observability.GlobalMetrics().RecordDuration("schedule", rc.Duration())
	rc.Info("ScheduleAgent: schedule generated",
		slog.String(observability.LogFieldSessionID, session.ID),
		slog.Bool("extracted", out.Extracted),
		slog.Int("day_count", len(out.Schedule.DailySchedule)),
		slog.Int64(observability.LogFieldDuration, rc.DurationMs()))
	return out, nil
}

// DailyQuestions generates the practice questions for one scheduled day on
// the schedule's session. history lists previously asked question texts so
// the model avoids repeats; only the most recent twenty are sent.
func (s *ScheduleAgent) DailyQuestions(ctx context.Context, sessionID string, profile StudentProfile, day DaySchedule, history []string) ([]Question, error) {
	result, err := s.client.RunQuery(ctx, sessionID, ondemand.Query{
		EndpointID:    endpointGrok,
		ReasoningMode: reasoningMode,
		AgentIDs:      scheduleAgentIDs,
		Text:          buildDailyQuestionsQuery(profile, day, history),
		Model:         dailyQuestionsModelConfig(profile),
	})
	if err != nil {
		return nil, aierr.Wrap(aierr.ErrCodeQueryFailed, "daily questions query failed", err)
	}

	var payload struct {
		Questions []Question `json:"questions"`
	}
	if !extract.Decode(result.Answer, &payload) {
		return nil, aierr.New(aierr.ErrCodeAgentExecutionFailed, "no question payload in answer")
	}
	return payload.Questions, nil
}

func buildScheduleQuery(profile StudentProfile, chapter ChapterInfo) string {
	topicsLine := "Determine topics from NCERT syllabus"
	if len(chapter.Topics) > 0 {
		topicsLine = "Topics to cover: " + strings.Join(chapter.Topics, ", ")
	}
	return fmt.Sprintf(`Generate a personalized weekly study schedule for:

Chapter: "%s"
Subject: %s
%s

Student Performance:
- Mastery Level: %s
- Accuracy: %.0f%%
- Risk Level: %s
- Performance Trend: %s

Create a detailed day-by-day schedule for one week with:
1. Topics to cover each day (based on student's level)
2. Daily questions (10 questions with easy/moderate/hard distribution)
3. Time allocation for each topic
4. Learning activities and objectives
5. Assessment plan

Return ONLY valid JSON in the specified format.`,
		chapter.ChapterName,
		orDefault(chapter.Subject, orDefault(profile.Subject, "Mathematics")),
		topicsLine,
		orDefault(profile.MasteryLevel, "MODERATE"),
		nonZero(profile.ConceptAccuracy, 50),
		orDefault(profile.RiskLevel, "Medium"),
		orDefault(profile.PerformanceStatus, "Stable"),
	)
}

func buildDailyQuestionsQuery(profile StudentProfile, day DaySchedule, history []string) string {
	names := make([]string, 0, len(day.Topics))
	for _, t := range day.Topics {
		names = append(names, t.TopicName)
	}
	dist := day.QuestionDistribution
	if dist == (QuestionDistribution{}) {
		dist = QuestionDistribution{Easy: 6, Moderate: 3, Hard: 1}
	}

	var historySection string
	if len(history) > 0 {
		recent := history
		if len(recent) > 20 {
			recent = recent[len(recent)-20:]
		}
		historySection = fmt.Sprintf("\nPreviously Asked Questions (EXCLUDE these):\n%s\n", strings.Join(recent, "\n"))
	}

	return fmt.Sprintf(`Generate %d practice questions for today's study session.

Today's Topics: %s
Difficulty Distribution: Easy: %d, Moderate: %d, Hard: %d

Student Info:
- Class: %s
- Subject: %s
- Weak Concepts: %s
%s
Generate questions in this JSON format:
{
  "questions": [
    {
      "id": 1,
      "question": "Question text",
      "difficulty": "Easy/Moderate/Hard",
      "topic": "Topic name",
      "options": ["A", "B", "C", "D"],
      "correctAnswer": "A",
      "explanation": "Why this is correct",
      "hint": "Helpful hint"
    }
  ]
}

Return ONLY valid JSON.`,
		nonZeroInt(day.QuestionsCount, 10),
		strings.Join(names, ", "),
		dist.Easy, dist.Moderate, dist.Hard,
		orDefault(profile.Class, "9"),
		orDefault(profile.Subject, "Mathematics"),
		joinOrDefault(profile.WeakConcepts, "None"),
		historySection,
	)
}
