package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/internal/profile"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/store"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/store/db/sqlite"
)

// fakeProvider emulates the chat API for handler tests: one canned answer
// per query, in order.
type fakeProvider struct {
	mu      sync.Mutex
	answers []string
	server  *httptest.Server
}

func newFakeProvider(t *testing.T, answers ...string) *fakeProvider {
	t.Helper()
	p := &fakeProvider{answers: answers}

	mux := http.NewServeMux()
	mux.HandleFunc("/sessions", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"data":{"id":"sess-api"}}`)
	})
	mux.HandleFunc("/sessions/", func(w http.ResponseWriter, _ *http.Request) {
		p.mu.Lock()
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
			"sessionId": "sess-api",
			"messageId": "msg-api",
		})
		require.NoError(t, err)
		fmt.Fprintf(w, "data: %s\n", payload)
		fmt.Fprint(w, "data: [DONE]\n")
	})

	p.server = httptest.NewServer(mux)
	t.Cleanup(p.server.Close)
	return p
}

func newTestService(t *testing.T, provider *fakeProvider) *APIV1Service {
	t.Helper()

	testProfile := &profile.Profile{
		Mode:           "dev",
		Driver:         "sqlite",
		DSN:            ":memory:",
		AIAPIKey:       "test-key",
		AIChatBaseURL:  provider.server.URL,
		AIMediaBaseURL: provider.server.URL,
	}

	driver, err := sqlite.NewDB(testProfile)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = driver.Close()
	})
	storeInstance := store.New(driver, testProfile)
	require.NoError(t, storeInstance.Migrate(context.Background()))

	service, err := NewAPIV1Service(testProfile, storeInstance)
	require.NoError(t, err)
	return service
}

func doRequest(t *testing.T, service *APIV1Service, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	echoServer := echo.New()
	service.Register(echoServer)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	echoServer.ServeHTTP(rec, req)
	return rec
}

func TestGenerateAnalyticsHandler(t *testing.T) {
	answer := "Performance Status: Improvement\n" +
		"Identified Weak Concepts:\n- Polynomial Division - WEAK\n" +
		"Risk Level: LOW\n" +
		"Recommended Next Action: Revise polynomial division daily.\n"
	provider := newFakeProvider(t, answer)
	service := newTestService(t, provider)

	body := `{
		"studentId": "student-1",
		"studentName": "Asha",
		"quizAttempts": [{"quizTitle": "Quiz 1", "score": 6, "totalQuestions": 10, "accuracy": 60}]
	}`
	rec := doRequest(t, service, http.MethodPost, "/api/analytics/generate", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var response generateAnalyticsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Equal(t, "Improvement", response.PerformanceStatus)
	require.Equal(t, "Low", response.RiskLevel)
	require.Equal(t, []string{"Polynomials"}, response.WeakConcepts)
	require.NotEmpty(t, response.ReportID)

	// The report is persisted under the returned id.
	report, err := service.Store.ListAnalyticsReports(context.Background(), &store.FindAnalyticsReport{UID: &response.ReportID})
	require.NoError(t, err)
	require.Len(t, report, 1)
	require.Equal(t, "student-1", report[0].StudentID)
}

func TestGenerateAnalyticsRequiresAttempts(t *testing.T) {
	provider := newFakeProvider(t)
	service := newTestService(t, provider)

	rec := doRequest(t, service, http.MethodPost, "/api/analytics/generate", `{"studentId": "student-1"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateAnalyticsProviderDown(t *testing.T) {
	provider := newFakeProvider(t)
	service := newTestService(t, provider)
	provider.server.Close()

	body := `{"studentId": "student-1", "quizAttempts": [{"quizTitle": "Quiz 1"}]}`
	rec := doRequest(t, service, http.MethodPost, "/api/analytics/generate", body)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var response errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Equal(t, aiUnavailableMessage, response.Message)
}

func TestExamGenerateAndSubmit(t *testing.T) {
	examAnswer := `Here is the exam: {
		"examTitle": "Algebra Exam",
		"totalQuestions": 2,
		"totalMarks": 5,
		"duration": "20 minutes",
		"questions": [
			{"id": 1, "question": "Q1", "options": ["A) 1", "B) 2"], "correctAnswer": "A", "difficulty": "easy", "marks": 2},
			{"id": 2, "question": "Q2", "options": ["A) 3", "B) 4"], "correctAnswer": "B", "difficulty": "medium", "marks": 3}
		]
	}`
	provider := newFakeProvider(t, examAnswer)
	service := newTestService(t, provider)

	rec := doRequest(t, service, http.MethodPost, "/api/exams/generate", `{"studentId": "student-1", "topic": "Algebra"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var generated generateExamResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &generated))
	require.True(t, generated.Extracted)
	require.Equal(t, "Algebra Exam", generated.Exam.ExamTitle)

	submitBody := fmt.Sprintf(`{"examId": %q, "answers": {"1": "A", "2": "A"}}`, generated.ExamID)
	rec = doRequest(t, service, http.MethodPost, "/api/exams/submit", submitBody)
	require.Equal(t, http.StatusOK, rec.Code)

	var submitted submitExamResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &submitted))
	require.Equal(t, 2.0, submitted.TotalScore)
	require.Equal(t, 5.0, submitted.MaxScore)
	require.Equal(t, 40.0, submitted.Percentage)
	require.Equal(t, "WEAK", submitted.Performance)

	status := store.ExamStatusSubmitted
	exam, err := service.Store.GetExam(context.Background(), &store.FindExam{UID: &generated.ExamID, Status: &status})
	require.NoError(t, err)
	require.NotNil(t, exam)
	require.NotEmpty(t, exam.ScoreReport)
}

func TestSubmitExamNotFound(t *testing.T) {
	provider := newFakeProvider(t)
	service := newTestService(t, provider)

	rec := doRequest(t, service, http.MethodPost, "/api/exams/submit", `{"examId": "EXAM-missing", "answers": {}}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDoubtResolveAndFollowUp(t *testing.T) {
	resolution := `{"doubtClarification": "The hypotenuse follows from the Pythagorean theorem.",
		"guidedExplanation": {"hints": ["Square both legs."], "visualConcepts": []},
		"manimCode": "", "narration": [], "reflectiveQuestion": "What changes if a leg doubles?",
		"encouragement": "Great question!"}`
	followUp := `{"doubtClarification": "Doubling one leg changes the square root.",
		"guidedExplanation": {"hints": [], "visualConcepts": []},
		"manimCode": "", "narration": [], "reflectiveQuestion": "", "encouragement": ""}`
	provider := newFakeProvider(t, resolution, followUp)
	service := newTestService(t, provider)

	body := `{"studentId": "student-1", "studentName": "Asha", "doubtText": "Why is the hypotenuse 5?"}`
	rec := doRequest(t, service, http.MethodPost, "/api/doubts", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resolved doubtResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resolved))
	require.True(t, resolved.Extracted)
	require.NotEmpty(t, resolved.DoubtID)
	require.Equal(t, "sess-api", resolved.SessionID)

	followUpBody := `{"followUpText": "What if one leg doubles?"}`
	rec = doRequest(t, service, http.MethodPost, "/api/doubts/"+resolved.DoubtID+"/followup", followUpBody)
	require.Equal(t, http.StatusOK, rec.Code)

	var followed doubtResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &followed))
	require.Equal(t, resolved.DoubtID, followed.DoubtID)
	require.Equal(t, "sess-api", followed.SessionID)

	doubt, err := service.Store.GetDoubt(context.Background(), &store.FindDoubt{UID: &resolved.DoubtID})
	require.NoError(t, err)
	require.NotNil(t, doubt)
	require.Equal(t, 2, doubt.Turns)
}

func TestGenerateScheduleHandler(t *testing.T) {
	schedule := `{"scheduleId": "SCHED-1", "studentLevel": "MEDIUM", "chapterName": "Probability",
		"subject": "Mathematics", "totalDays": 7, "startDate": "2026-08-24", "endDate": "2026-08-30",
		"dailySchedule": [], "weeklyGoals": [], "assessmentDay": 7, "revisionTopics": [],
		"parentTips": [], "motivationalMessage": "Keep going!"}`
	provider := newFakeProvider(t, schedule)
	service := newTestService(t, provider)

	body := `{"studentId": "student-1", "chapter": {"chapterName": "Probability", "subject": "Mathematics"}}`
	rec := doRequest(t, service, http.MethodPost, "/api/schedules/generate", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var response generateScheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.True(t, response.Extracted)
	require.Equal(t, "Probability", response.Schedule.ChapterName)
	require.NotEmpty(t, response.ScheduleID)
}

func TestDailyQuestionsExtractionMissPresentsRetry(t *testing.T) {
	schedule := `{"scheduleId": "SCHED-2", "chapterName": "Probability", "subject": "Mathematics", "dailySchedule": []}`
	provider := newFakeProvider(t, schedule, "I could not produce questions today, sorry.")
	service := newTestService(t, provider)

	body := `{"studentId": "student-1", "chapter": {"chapterName": "Probability"}}`
	rec := doRequest(t, service, http.MethodPost, "/api/schedules/generate", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var generated generateScheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &generated))

	dayBody := `{"day": {"day": 1, "dayType": "Learning", "questionsCount": 10}}`
	rec = doRequest(t, service, http.MethodPost, "/api/schedules/"+generated.ScheduleID+"/daily-questions", dayBody)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var response errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Equal(t, aiUnavailableMessage, response.Message)
}

func TestGetMetricsHandler(t *testing.T) {
	provider := newFakeProvider(t)
	service := newTestService(t, provider)

	rec := doRequest(t, service, http.MethodGet, "/api/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var response metricsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.GreaterOrEqual(t, response.RequestTotal, int64(0))
}
