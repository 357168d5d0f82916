package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/extract"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/ondemand"
)

// fakeProvider emulates the chat and media APIs: it opens sessions, pops a
// canned answer per query, and records every query text it receives.
type fakeProvider struct {
	mu           sync.Mutex
	answers      []string
	queries      []string
	mediaContext string
	server       *httptest.Server
}

func newFakeProvider(t *testing.T, answers ...string) *fakeProvider {
	t.Helper()
	p := &fakeProvider{answers: answers}

	mux := http.NewServeMux()
	mux.HandleFunc("/sessions", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"data":{"id":"sess-test"}}`)
	})
	mux.HandleFunc("/sessions/", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query string `json:"query"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		p.mu.Lock()
		p.queries = append(p.queries, req.Query)
		var answer string
		if len(p.answers) > 0 {
			answer = p.answers[0]
			p.answers = p.answers[1:]
		}
		p.mu.Unlock()

		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		payload, err := json.Marshal(map[string]any{
			"eventType": "fulfillment",
			"answer":    answer,
			"sessionId": "sess-test",
			"messageId": "msg-test",
		})
		require.NoError(t, err)
		fmt.Fprintf(w, "data: %s\n", payload)
		fmt.Fprint(w, "data: [DONE]\n")
	})
	mux.HandleFunc("/public/file/raw", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		resp, _ := json.Marshal(map[string]any{
			"data": map[string]any{"id": "file-1", "url": "https://cdn/file-1", "context": p.mediaContext},
		})
		w.Write(resp)
	})

	p.server = httptest.NewServer(mux)
	t.Cleanup(p.server.Close)
	return p
}

func (p *fakeProvider) client(t *testing.T) *ondemand.Client {
	t.Helper()
	c, err := ondemand.NewClient(&ondemand.Config{
		APIKey:       "test-key",
		ChatBaseURL:  p.server.URL,
		MediaBaseURL: p.server.URL,
	})
	require.NoError(t, err)
	return c
}

func (p *fakeProvider) recordedQueries() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.queries...)
}

func TestAnalyticsAgentExtractsReport(t *testing.T) {
	answer := `Performance Status: **Improvement**

Identified Weak Concepts:
- Polynomials (WEAK)

Risk Level: **LOW**

Recommended Next Action:
Keep up daily practice.`
	provider := newFakeProvider(t, answer)
	agent, err := NewAnalyticsAgent(provider.client(t), []extract.ConceptMatcher{
		{Pattern: "Polynomial", Label: "Polynomials"},
	})
	require.NoError(t, err)

	result, err := agent.Analyze(context.Background(), "stu-1", "Asha", []QuizAttempt{
		{QuizTitle: "Quiz 1", CompletedAt: time.Now(), Score: 6, TotalQuestions: 10, Accuracy: 60},
	})
	require.NoError(t, err)

	assert.Equal(t, "sess-test", result.SessionID)
	assert.Equal(t, "Improvement", result.PerformanceStatus)
	assert.Equal(t, "Low", result.RiskLevel)
	assert.Equal(t, []string{"Polynomials"}, result.WeakConcepts)
	assert.Equal(t, "Keep up daily practice.", result.RecommendedAction)

	queries := provider.recordedQueries()
	require.Len(t, queries, 1)
	assert.Contains(t, queries[0], "Total Quiz Attempts: 1")
	assert.Contains(t, queries[0], "Quiz 1")
}

func TestAnalyticsAgentDefaultsOnOffFormatAnswer(t *testing.T) {
	provider := newFakeProvider(t, "the model wrote a poem instead")
	agent, err := NewAnalyticsAgent(provider.client(t), nil)
	require.NoError(t, err)

	result, err := agent.Analyze(context.Background(), "stu-1", "Asha", nil)
	require.NoError(t, err)
	assert.Equal(t, "Stagnation", result.PerformanceStatus)
	assert.Equal(t, "Medium", result.RiskLevel)
	assert.Equal(t, "Continue practice and review weak areas.", result.RecommendedAction)
}

func TestAssignmentAgentParsesPayload(t *testing.T) {
	answer := `Here is your assignment:
{"assignmentTitle":"Daily Practice: Polynomials","totalQuestions":10,"totalMarks":30,
"difficultyBreakdown":{"easy":2,"medium":4,"hard":4},
"questions":[{"id":1,"question":"What is a monomial?","options":["A) x","B) x+y","C) x+y+z","D) 0"],"correctAnswer":"A","difficulty":"easy","marks":2,"concept":"Polynomials","explanation":"One term."}],
"analyticsBasedFeedback":"Challenging mix for an improving student."}`
	provider := newFakeProvider(t, answer)
	agent, err := NewAssignmentAgent(provider.client(t))
	require.NoError(t, err)

	result, err := agent.Generate(context.Background(), "stu-1", "Asha", "Polynomials", AnalyticsSummary{
		PerformanceStatus: "Improvement",
		RiskLevel:         "Low",
	})
	require.NoError(t, err)

	assert.True(t, result.Extracted)
	assert.Equal(t, "Daily Practice: Polynomials", result.Assignment.AssignmentTitle)
	assert.Equal(t, DifficultyBreakdown{Easy: 2, Medium: 4, Hard: 4}, result.Assignment.DifficultyBreakdown)
	require.Len(t, result.Assignment.Questions, 1)
	assert.Equal(t, "A", result.Assignment.Questions[0].CorrectAnswer)
}

func TestAssignmentAgentFallbackOnExtractionMiss(t *testing.T) {
	provider := newFakeProvider(t, "no braces here")
	agent, err := NewAssignmentAgent(provider.client(t))
	require.NoError(t, err)

	result, err := agent.Generate(context.Background(), "stu-1", "Asha", "Algebra", AnalyticsSummary{})
	require.NoError(t, err)

	assert.False(t, result.Extracted)
	assert.Equal(t, "Daily Practice: Algebra", result.Assignment.AssignmentTitle)
	assert.Equal(t, "no braces here", result.Assignment.AnalyticsBasedFeedback)
	assert.Equal(t, DifficultyBreakdown{Easy: 6, Medium: 3, Hard: 1}, result.Assignment.DifficultyBreakdown)
}

func TestExamScore(t *testing.T) {
	exam := Exam{
		Questions: []Question{
			{ID: 1, CorrectAnswer: "A", Difficulty: "easy", Marks: 2},
			{ID: 2, CorrectAnswer: "B", Difficulty: "medium", Marks: 4},
			{ID: 3, CorrectAnswer: "C", Difficulty: "hard", Marks: 6},
		},
	}

	report := Score(exam, map[int]string{1: "A", 2: "D"})
	assert.Equal(t, 2.0, report.TotalScore)
	assert.Equal(t, 12.0, report.MaxScore)
	assert.Equal(t, 1, report.Correct)
	assert.Equal(t, 1, report.Incorrect)
	assert.Equal(t, 1, report.Unanswered)
	assert.Equal(t, MasteryWeak, report.PerformanceLevel)
	assert.Equal(t, 2.0, report.DifficultyScores["easy"].Scored)
	assert.Equal(t, 6.0, report.DifficultyScores["hard"].Total)

	perfect := Score(exam, map[int]string{1: "A", 2: "B", 3: "C"})
	assert.Equal(t, MasteryStrong, perfect.PerformanceLevel)
	assert.Equal(t, 100.0, perfect.Percentage)

	half := Score(exam, map[int]string{3: "C"})
	assert.Equal(t, 50.0, half.Percentage)
	assert.Equal(t, MasteryMedium, half.PerformanceLevel)
}

func TestDoubtAgentSplicesImageTextVerbatim(t *testing.T) {
	extracted := "triangle with sides 3,4,5"
	solution := `{"doubtClarification":"You are asked about a right triangle.","guidedExplanation":{"hints":["Check the squares"],"visualConcepts":["right triangle"]},"manimCode":"from manim import *","narration":["step one"],"reflectiveQuestion":"Why 5?","encouragement":"Well done!"}`
	provider := newFakeProvider(t, extracted, solution)
	agent, err := NewDoubtAgent(provider.client(t))
	require.NoError(t, err)

	result, err := agent.Resolve(context.Background(), "stu-1", "Asha", "Is this a right triangle?", []byte{0x89, 0x50}, StudentProfile{})
	require.NoError(t, err)

	assert.True(t, result.Extracted)
	assert.Equal(t, extracted, result.ExtractedImageData)
	assert.Equal(t, "You are asked about a right triangle.", result.Resolution.DoubtClarification)

	queries := provider.recordedQueries()
	require.Len(t, queries, 2)
	// The second query must carry the extraction output unchanged.
	assert.Contains(t, queries[1], "EXTRACTED FROM IMAGE:\n"+extracted)
	assert.Contains(t, queries[1], `STUDENT'S QUESTION: "Is this a right triangle?"`)
}

func TestDoubtAgentMediaContextShortCircuit(t *testing.T) {
	solution := `{"doubtClarification":"done","guidedExplanation":{"hints":[],"visualConcepts":[]}}`
	provider := newFakeProvider(t, solution)
	provider.mediaContext = "x + 2 = 5"
	agent, err := NewDoubtAgent(provider.client(t))
	require.NoError(t, err)

	result, err := agent.Resolve(context.Background(), "stu-1", "Asha", "solve it", []byte{0x01}, StudentProfile{})
	require.NoError(t, err)

	// Upload already produced context, so only the solution query ran.
	assert.Equal(t, "x + 2 = 5", result.ExtractedImageData)
	queries := provider.recordedQueries()
	require.Len(t, queries, 1)
	assert.Contains(t, queries[0], "EXTRACTED FROM IMAGE:\nx + 2 = 5")
}

func TestDoubtAgentFallbackPresentsRawText(t *testing.T) {
	provider := newFakeProvider(t, "just a plain explanation without JSON")
	agent, err := NewDoubtAgent(provider.client(t))
	require.NoError(t, err)

	result, err := agent.Resolve(context.Background(), "stu-1", "Asha", "what is x?", nil, StudentProfile{})
	require.NoError(t, err)

	assert.False(t, result.Extracted)
	assert.Equal(t, "just a plain explanation without JSON", result.Resolution.DoubtClarification)
	assert.NotNil(t, result.Resolution.GuidedExplanation.Hints)
	assert.Empty(t, result.Resolution.ManimCode)
}

func TestDoubtAgentFollowUpReusesSession(t *testing.T) {
	solution := `{"doubtClarification":"continued","guidedExplanation":{"hints":[],"visualConcepts":[]}}`
	provider := newFakeProvider(t, solution)
	agent, err := NewDoubtAgent(provider.client(t))
	require.NoError(t, err)

	result, err := agent.FollowUp(context.Background(), "sess-test", "but why?", StudentProfile{})
	require.NoError(t, err)
	assert.Equal(t, "sess-test", result.SessionID)
	assert.Equal(t, "continued", result.Resolution.DoubtClarification)

	queries := provider.recordedQueries()
	require.Len(t, queries, 1)
	assert.Contains(t, queries[0], `"but why?"`)
}

func TestLessonAgentExtractsSections(t *testing.T) {
	answer := "A. Teaching Intent Summary:\nVisual intro to fractions.\n\nB. Manim Code\n```python\nfrom manim import *\n\nclass FractionScene(Scene):\n    pass\n```\n\nC. Teacher Voice Guidance:\nPause after the pizza diagram.\n\n---"
	provider := newFakeProvider(t, answer)
	agent, err := NewLessonAgent(provider.client(t))
	require.NoError(t, err)

	result, err := agent.Generate(context.Background(), "stu-1", "Asha", AnalyticsSummary{
		RiskLevel:         "High",
		PerformanceStatus: "Decline",
		WeakConcepts:      []string{"Fractions"},
	}, nil, "")
	require.NoError(t, err)

	assert.Equal(t, "Fractions", result.Topic)
	assert.Equal(t, MasteryWeak, result.MasteryLevel)
	assert.Equal(t, "Visual intro to fractions.", result.TeachingSummary)
	assert.Equal(t, "Pause after the pizza diagram.", result.TeacherGuidance)
	assert.Contains(t, result.ManimCode, "class FractionScene(Scene)")
	assert.Equal(t, RenderStatusPending, result.RenderStatus)
}

func TestLessonAgentNoCodeStatus(t *testing.T) {
	provider := newFakeProvider(t, "sorry, I can only describe the lesson in words")
	agent, err := NewLessonAgent(provider.client(t))
	require.NoError(t, err)

	result, err := agent.Generate(context.Background(), "stu-1", "Asha", AnalyticsSummary{}, nil, "Polynomials")
	require.NoError(t, err)
	assert.Empty(t, result.ManimCode)
	assert.Equal(t, RenderStatusNoCode, result.RenderStatus)
}

func TestScheduleAgentParsesPlan(t *testing.T) {
	answer := `{"scheduleId":"sch-1","studentLevel":"MODERATE","chapterName":"Polynomials","subject":"Mathematics","totalDays":7,
"dailySchedule":[{"day":1,"dayType":"Learning","topics":[{"topicName":"Introduction","duration":"45 mins","difficulty":"Easy"}],"questionsCount":10,"questionDistribution":{"easy":6,"moderate":3,"hard":1}}],
"weeklyGoals":["Finish basics"],"assessmentDay":7}`
	provider := newFakeProvider(t, answer)
	agent, err := NewScheduleAgent(provider.client(t))
	require.NoError(t, err)

	result, err := agent.Generate(context.Background(), "stu-1", "Asha", StudentProfile{Subject: "Mathematics"}, ChapterInfo{ChapterName: "Polynomials"})
	require.NoError(t, err)

	assert.True(t, result.Extracted)
	assert.Equal(t, "Polynomials", result.Schedule.ChapterName)
	require.Len(t, result.Schedule.DailySchedule, 1)
	assert.Equal(t, 1, result.Schedule.DailySchedule[0].Day)
	assert.True(t, strings.HasPrefix(result.ExternalUserID, "schedule_stu-1_"))
}

func TestTruncateStringKeepsRunesWhole(t *testing.T) {
	devanagari := strings.Repeat("त्रिभुज", 10)
	got := truncateString(devanagari, 12)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, string([]rune(devanagari)[:12])+"...", got)

	assert.Equal(t, "short", truncateString("short", 12))
}

func TestScheduleAgentEmptyDayListStillExtracted(t *testing.T) {
	answer := `{"scheduleId":"sch-2","studentLevel":"MODERATE","chapterName":"Probability","subject":"Mathematics","totalDays":0,"dailySchedule":[]}`
	provider := newFakeProvider(t, answer)
	agent, err := NewScheduleAgent(provider.client(t))
	require.NoError(t, err)

	result, err := agent.Generate(context.Background(), "stu-1", "Asha", StudentProfile{Subject: "Mathematics"}, ChapterInfo{ChapterName: "Probability"})
	require.NoError(t, err)

	assert.True(t, result.Extracted)
	assert.Equal(t, "Probability", result.Schedule.ChapterName)
	assert.Empty(t, result.Schedule.DailySchedule)
}

func TestScheduleAgentDailyQuestions(t *testing.T) {
	answer := `{"questions":[{"id":1,"question":"2+2?","difficulty":"Easy","topic":"Addition","options":["A","B","C","D"],"correctAnswer":"A","explanation":"Basic sum","hint":"Count"}]}`
	provider := newFakeProvider(t, answer)
	agent, err := NewScheduleAgent(provider.client(t))
	require.NoError(t, err)

	questions, err := agent.DailyQuestions(context.Background(), "sess-test", StudentProfile{}, DaySchedule{
		Topics: []ScheduledTopic{{TopicName: "Addition"}},
	}, []string{"old question"})
	require.NoError(t, err)

	require.Len(t, questions, 1)
	assert.Equal(t, "2+2?", questions[0].Question)

	queries := provider.recordedQueries()
	require.Len(t, queries, 1)
	assert.Contains(t, queries[0], "EXCLUDE these")
	assert.Contains(t, queries[0], "old question")
}

func TestMasteryLevel(t *testing.T) {
	tests := []struct {
		name      string
		analytics AnalyticsSummary
		want      string
	}{
		{"high risk is weak", AnalyticsSummary{RiskLevel: "High", PerformanceStatus: "Stagnation"}, MasteryWeak},
		{"decline is weak", AnalyticsSummary{RiskLevel: "Low", PerformanceStatus: "Decline"}, MasteryWeak},
		{"low risk improvement is strong", AnalyticsSummary{RiskLevel: "Low", PerformanceStatus: "Improvement"}, MasteryStrong},
		{"middle ground is medium", AnalyticsSummary{RiskLevel: "Medium", PerformanceStatus: "Stagnation"}, MasteryMedium},
		{"empty defaults to medium", AnalyticsSummary{}, MasteryMedium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MasteryLevel(tt.analytics))
		})
	}
}

func TestDeriveAnalytics(t *testing.T) {
	empty := DeriveAnalytics(nil)
	assert.Equal(t, "Unknown", empty.PerformanceStatus)
	assert.Equal(t, "Medium", empty.RiskLevel)

	attempts := []QuizAttempt{
		{Percentage: 80, Answers: []AnswerRecord{{IsCorrect: true, Concept: "Algebra"}}},
		{Percentage: 75, Answers: []AnswerRecord{{IsCorrect: false, Concept: "Geometry"}}},
		{Percentage: 50},
		{Percentage: 45},
	}
	derived := DeriveAnalytics(attempts)
	assert.Equal(t, "Improvement", derived.PerformanceStatus)
	assert.Equal(t, "Low", derived.RiskLevel)
	assert.Equal(t, []string{"Geometry"}, derived.WeakConcepts)
	assert.InDelta(t, 62.5, derived.AverageScore, 0.01)
}
