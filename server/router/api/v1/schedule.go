package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/agent"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/store"
)

type chapterInfoPayload struct {
	ChapterName string   `json:"chapterName"`
	Subject     string   `json:"subject"`
	Topics      []string `json:"topics"`
}

type generateScheduleRequest struct {
	StudentID   string                 `json:"studentId"`
	StudentName string                 `json:"studentName"`
	Profile     *studentProfilePayload `json:"profile"`
	Chapter     chapterInfoPayload     `json:"chapter"`
}

type generateScheduleResponse struct {
	ScheduleID string               `json:"scheduleId"`
	SessionID  string               `json:"sessionId"`
	Schedule   agent.WeeklySchedule `json:"schedule"`
	Extracted  bool                 `json:"extracted"`
	RawAnswer  string               `json:"rawAnswer,omitempty"`
}

func (s *APIV1Service) GenerateSchedule(c echo.Context) error {
	var request generateScheduleRequest
	if err := c.Bind(&request); err != nil {
		return badRequest(c, "malformed request body")
	}
	if request.StudentID == "" {
		return badRequest(c, "studentId is required")
	}
	if request.Chapter.ChapterName == "" {
		return badRequest(c, "chapter.chapterName is required")
	}

	var studentProfile agent.StudentProfile
	if request.Profile != nil {
		studentProfile = request.Profile.toAgent()
	}

	ctx := c.Request().Context()
	result, err := s.ScheduleAgent.Generate(ctx, request.StudentID, request.StudentName, studentProfile, agent.ChapterInfo{
		ChapterName: request.Chapter.ChapterName,
		Subject:     request.Chapter.Subject,
		Topics:      request.Chapter.Topics,
	})
	if err != nil {
		return presentError(c, err)
	}

	schedule, err := s.Store.CreateStudySchedule(ctx, &store.StudySchedule{
		UID:       shortuuid.New(),
		StudentID: request.StudentID,
		Chapter:   request.Chapter.ChapterName,
		SessionID: result.SessionID,
		Payload:   mustJSON(result.Schedule),
	})
	if err != nil {
		return presentError(c, err)
	}

	response := generateScheduleResponse{
		ScheduleID: schedule.UID,
		SessionID:  result.SessionID,
		Schedule:   result.Schedule,
		Extracted:  result.Extracted,
	}
	if !result.Extracted {
		response.RawAnswer = result.RawAnswer
	}
	return c.JSON(http.StatusOK, response)
}

type dailyQuestionsRequest struct {
	Profile         *studentProfilePayload `json:"profile"`
	Day             agent.DaySchedule      `json:"day"`
	QuestionHistory []string               `json:"questionHistory"`
}

type dailyQuestionsResponse struct {
	ScheduleID string           `json:"scheduleId"`
	Questions  []agent.Question `json:"questions"`
}

// GenerateDailyQuestions builds a question set for one day of a stored
// schedule, reusing the schedule's provider session.
func (s *APIV1Service) GenerateDailyQuestions(c echo.Context) error {
	scheduleID := c.Param("id")
	var request dailyQuestionsRequest
	if err := c.Bind(&request); err != nil {
		return badRequest(c, "malformed request body")
	}

	ctx := c.Request().Context()
	schedule, err := s.Store.ListStudySchedules(ctx, &store.FindStudySchedule{UID: &scheduleID})
	if err != nil {
		return presentError(c, err)
	}
	if len(schedule) == 0 {
		return c.JSON(http.StatusNotFound, errorResponse{Message: "schedule not found"})
	}

	var studentProfile agent.StudentProfile
	if request.Profile != nil {
		studentProfile = request.Profile.toAgent()
	}

	questions, err := s.ScheduleAgent.DailyQuestions(ctx, schedule[0].SessionID, studentProfile, request.Day, request.QuestionHistory)
	if err != nil {
		return presentError(c, err)
	}

	return c.JSON(http.StatusOK, dailyQuestionsResponse{
		ScheduleID: schedule[0].UID,
		Questions:  questions,
	})
}
