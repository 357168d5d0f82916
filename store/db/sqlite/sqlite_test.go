package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/internal/profile"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/store"
)

func newTestDriver(t *testing.T) store.Driver {
	t.Helper()

	driver, err := NewDB(&profile.Profile{
		Mode:   "dev",
		Driver: "sqlite",
		DSN:    ":memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = driver.Close()
	})

	require.NoError(t, driver.Migrate(context.Background()))
	return driver
}

func TestQuizAttemptCRUD(t *testing.T) {
	ctx := context.Background()
	driver := newTestDriver(t)

	created, err := driver.CreateQuizAttempt(ctx, &store.QuizAttempt{
		UID:             "qa-1",
		StudentID:       "student-1",
		QuizTitle:       "Algebra Basics",
		Score:           7,
		TotalQuestions:  10,
		Accuracy:        70,
		TimePerQuestion: "[12.5, 30.1]",
		Answers:         `[{"isCorrect":true,"concept":"Linear Equations"}]`,
		CompletedTs:     1700000000,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.NotZero(t, created.CreatedTs)

	studentID := "student-1"
	list, err := driver.ListQuizAttempts(ctx, &store.FindQuizAttempt{StudentID: &studentID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Algebra Basics", list[0].QuizTitle)
	require.Equal(t, 70.0, list[0].Accuracy)

	other := "student-2"
	list, err = driver.ListQuizAttempts(ctx, &store.FindQuizAttempt{StudentID: &other})
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestAnalyticsReportCRUD(t *testing.T) {
	ctx := context.Background()
	driver := newTestDriver(t)

	created, err := driver.CreateAnalyticsReport(ctx, &store.AnalyticsReport{
		UID:               "rep-1",
		StudentID:         "student-1",
		StudentName:       "Asha",
		SessionID:         "sess-1",
		PerformanceStatus: "Improvement",
		RiskLevel:         "Low",
		WeakConcepts:      `["Quadratic Equations"]`,
		RecommendedAction: "Practice factoring.",
		FullAnalysis:      "## Report",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	uid := "rep-1"
	list, err := driver.ListAnalyticsReports(ctx, &store.FindAnalyticsReport{UID: &uid})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Low", list[0].RiskLevel)

	require.NoError(t, driver.DeleteAnalyticsReport(ctx, &store.DeleteAnalyticsReport{ID: created.ID}))
	list, err = driver.ListAnalyticsReports(ctx, &store.FindAnalyticsReport{UID: &uid})
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestExamUpdate(t *testing.T) {
	ctx := context.Background()
	driver := newTestDriver(t)

	created, err := driver.CreateExam(ctx, &store.Exam{
		UID:       "EXAM-1",
		StudentID: "student-1",
		Topic:     "Trigonometry",
		SessionID: "sess-1",
		Status:    store.ExamStatusGenerated,
		Payload:   `{"examTitle":"Trigonometry Exam"}`,
	})
	require.NoError(t, err)

	status := store.ExamStatusSubmitted
	report := `{"percentage":50}`
	updated, err := driver.UpdateExam(ctx, &store.UpdateExam{
		ID:          created.ID,
		UpdatedTs:   created.CreatedTs + 60,
		Status:      &status,
		ScoreReport: &report,
	})
	require.NoError(t, err)
	require.Equal(t, store.ExamStatusSubmitted, updated.Status)
	require.Equal(t, report, updated.ScoreReport)
	require.Equal(t, created.CreatedTs+60, updated.UpdatedTs)
	require.Equal(t, `{"examTitle":"Trigonometry Exam"}`, updated.Payload)
}

func TestDoubtFollowUpUpdate(t *testing.T) {
	ctx := context.Background()
	driver := newTestDriver(t)

	created, err := driver.CreateDoubt(ctx, &store.Doubt{
		UID:            "doubt-1",
		StudentID:      "student-1",
		SessionID:      "sess-1",
		ExternalUserID: "doubt_student-1_1700000000000",
		Question:       "Why is the hypotenuse 5?",
		Payload:        `{"doubtClarification":"..."}`,
		Turns:          1,
	})
	require.NoError(t, err)

	payload := `{"doubtClarification":"follow-up"}`
	turns := 2
	updated, err := driver.UpdateDoubt(ctx, &store.UpdateDoubt{
		ID:        created.ID,
		UpdatedTs: created.CreatedTs + 30,
		Payload:   &payload,
		Turns:     &turns,
	})
	require.NoError(t, err)
	require.Equal(t, 2, updated.Turns)
	require.Equal(t, payload, updated.Payload)
	require.Equal(t, "sess-1", updated.SessionID)
}

func TestLessonRenderStatusUpdate(t *testing.T) {
	ctx := context.Background()
	driver := newTestDriver(t)

	created, err := driver.CreateLesson(ctx, &store.Lesson{
		UID:          "lesson-1",
		StudentID:    "student-1",
		Topic:        "Circles",
		MasteryLevel: "MEDIUM",
		Summary:      "Intro to circles.",
		ManimCode:    "from manim import *",
		RenderStatus: "pending",
	})
	require.NoError(t, err)

	status := "rendered"
	updated, err := driver.UpdateLesson(ctx, &store.UpdateLesson{ID: created.ID, RenderStatus: &status})
	require.NoError(t, err)
	require.Equal(t, "rendered", updated.RenderStatus)
	require.Equal(t, "Circles", updated.Topic)
}

func TestStudyScheduleCRUD(t *testing.T) {
	ctx := context.Background()
	driver := newTestDriver(t)

	_, err := driver.CreateStudySchedule(ctx, &store.StudySchedule{
		UID:       "sched-1",
		StudentID: "student-1",
		Chapter:   "Probability",
		SessionID: "sess-1",
		Payload:   `{"weekStartDate":"2026-08-24"}`,
	})
	require.NoError(t, err)

	studentID := "student-1"
	limit := 1
	list, err := driver.ListStudySchedules(ctx, &store.FindStudySchedule{StudentID: &studentID, Limit: &limit})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Probability", list[0].Chapter)
}

func TestAssignmentCRUD(t *testing.T) {
	ctx := context.Background()
	driver := newTestDriver(t)

	created, err := driver.CreateAssignment(ctx, &store.Assignment{
		UID:       "asg-1",
		StudentID: "student-1",
		Topic:     "Linear Equations",
		SessionID: "sess-1",
		Payload:   `{"assignmentTitle":"Daily Practice: Linear Equations"}`,
	})
	require.NoError(t, err)

	require.NoError(t, driver.DeleteAssignment(ctx, &store.DeleteAssignment{ID: created.ID}))
	uid := "asg-1"
	list, err := driver.ListAssignments(ctx, &store.FindAssignment{UID: &uid})
	require.NoError(t, err)
	require.Empty(t, list)
}
