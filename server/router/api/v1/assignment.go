package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/agent"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/store"
)

type generateAssignmentRequest struct {
	StudentID    string                   `json:"studentId"`
	StudentName  string                   `json:"studentName"`
	Topic        string                   `json:"topic"`
	Analytics    *analyticsSummaryPayload `json:"analytics"`
	QuizAttempts []quizAttemptPayload     `json:"quizAttempts"`
}

type generateAssignmentResponse struct {
	AssignmentID string           `json:"assignmentId"`
	SessionID    string           `json:"sessionId"`
	Topic        string           `json:"topic"`
	Assignment   agent.Assignment `json:"assignment"`
	Extracted    bool             `json:"extracted"`
	RawAnswer    string           `json:"rawAnswer,omitempty"`
}

func (s *APIV1Service) GenerateAssignment(c echo.Context) error {
	var request generateAssignmentRequest
	if err := c.Bind(&request); err != nil {
		return badRequest(c, "malformed request body")
	}
	if request.StudentID == "" {
		return badRequest(c, "studentId is required")
	}
	if request.Topic == "" {
		return badRequest(c, "topic is required")
	}

	// Analytics can be given directly or derived from quiz history.
	var analytics agent.AnalyticsSummary
	if request.Analytics != nil {
		analytics = request.Analytics.toAgent()
	} else {
		analytics = agent.DeriveAnalytics(toAgentAttempts(request.QuizAttempts))
	}

	ctx := c.Request().Context()
	result, err := s.AssignmentAgent.Generate(ctx, request.StudentID, request.StudentName, request.Topic, analytics)
	if err != nil {
		return presentError(c, err)
	}

	if _, err := s.Store.CreateAssignment(ctx, &store.Assignment{
		UID:       shortuuid.New(),
		StudentID: request.StudentID,
		Topic:     request.Topic,
		SessionID: result.SessionID,
		Payload:   mustJSON(result.Assignment),
	}); err != nil {
		return presentError(c, err)
	}

	response := generateAssignmentResponse{
		AssignmentID: result.AssignmentID,
		SessionID:    result.SessionID,
		Topic:        result.Topic,
		Assignment:   result.Assignment,
		Extracted:    result.Extracted,
	}
	if !result.Extracted {
		response.RawAnswer = result.RawAnswer
	}
	return c.JSON(http.StatusOK, response)
}
