package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/agent"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/store"
)

type generateLessonRequest struct {
	StudentID    string                   `json:"studentId"`
	StudentName  string                   `json:"studentName"`
	Topic        string                   `json:"topic"`
	Analytics    *analyticsSummaryPayload `json:"analytics"`
	QuizAttempts []quizAttemptPayload     `json:"quizAttempts"`
}

type lessonPayload struct {
	LessonID        string `json:"lessonId"`
	SessionID       string `json:"sessionId"`
	Topic           string `json:"topic"`
	MasteryLevel    string `json:"masteryLevel"`
	TeachingSummary string `json:"teachingSummary"`
	TeacherGuidance string `json:"teacherGuidance"`
	ManimCode       string `json:"manimCode"`
	RenderStatus    string `json:"renderStatus"`
}

func lessonToPayload(result *agent.LessonResult) lessonPayload {
	return lessonPayload{
		LessonID:        result.LessonID,
		SessionID:       result.SessionID,
		Topic:           result.Topic,
		MasteryLevel:    result.MasteryLevel,
		TeachingSummary: result.TeachingSummary,
		TeacherGuidance: result.TeacherGuidance,
		ManimCode:       result.ManimCode,
		RenderStatus:    result.RenderStatus,
	}
}

type generateLessonResponse struct {
	Lesson lessonPayload `json:"lesson"`
}

func (s *APIV1Service) GenerateLesson(c echo.Context) error {
	var request generateLessonRequest
	if err := c.Bind(&request); err != nil {
		return badRequest(c, "malformed request body")
	}
	if request.StudentID == "" {
		return badRequest(c, "studentId is required")
	}

	var analytics agent.AnalyticsSummary
	if request.Analytics != nil {
		analytics = request.Analytics.toAgent()
	} else {
		analytics = agent.DeriveAnalytics(toAgentAttempts(request.QuizAttempts))
	}

	ctx := c.Request().Context()
	result, err := s.LessonAgent.Generate(ctx, request.StudentID, request.StudentName, analytics, toAgentAttempts(request.QuizAttempts), request.Topic)
	if err != nil {
		return presentError(c, err)
	}

	if _, err := s.Store.CreateLesson(ctx, &store.Lesson{
		UID:          result.LessonID,
		StudentID:    request.StudentID,
		Topic:        result.Topic,
		MasteryLevel: result.MasteryLevel,
		Summary:      result.TeachingSummary,
		Guidance:     result.TeacherGuidance,
		ManimCode:    result.ManimCode,
		RenderStatus: result.RenderStatus,
	}); err != nil {
		return presentError(c, err)
	}

	return c.JSON(http.StatusOK, generateLessonResponse{Lesson: lessonToPayload(result)})
}
