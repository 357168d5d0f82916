package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/store"
)

type generateAnalyticsRequest struct {
	StudentID    string               `json:"studentId"`
	StudentName  string               `json:"studentName"`
	QuizAttempts []quizAttemptPayload `json:"quizAttempts"`
}

type generateAnalyticsResponse struct {
	ReportID          string   `json:"reportId"`
	SessionID         string   `json:"sessionId"`
	PerformanceStatus string   `json:"performanceStatus"`
	RiskLevel         string   `json:"riskLevel"`
	WeakConcepts      []string `json:"weakConcepts"`
	RecommendedAction string   `json:"recommendedAction"`
	FullAnalysis      string   `json:"fullAnalysis"`
}

func (s *APIV1Service) GenerateAnalytics(c echo.Context) error {
	var request generateAnalyticsRequest
	if err := c.Bind(&request); err != nil {
		return badRequest(c, "malformed request body")
	}
	if request.StudentID == "" {
		return badRequest(c, "studentId is required")
	}
	if len(request.QuizAttempts) == 0 {
		return badRequest(c, "quizAttempts is required")
	}

	ctx := c.Request().Context()
	result, err := s.AnalyticsAgent.Analyze(ctx, request.StudentID, request.StudentName, toAgentAttempts(request.QuizAttempts))
	if err != nil {
		return presentError(c, err)
	}

	report, err := s.Store.CreateAnalyticsReport(ctx, &store.AnalyticsReport{
		UID:               shortuuid.New(),
		StudentID:         request.StudentID,
		StudentName:       request.StudentName,
		SessionID:         result.SessionID,
		PerformanceStatus: result.PerformanceStatus,
		RiskLevel:         result.RiskLevel,
		WeakConcepts:      mustJSON(result.WeakConcepts),
		RecommendedAction: result.RecommendedAction,
		FullAnalysis:      result.FullAnalysis,
	})
	if err != nil {
		return presentError(c, err)
	}

	return c.JSON(http.StatusOK, generateAnalyticsResponse{
		ReportID:          report.UID,
		SessionID:         result.SessionID,
		PerformanceStatus: result.PerformanceStatus,
		RiskLevel:         result.RiskLevel,
		WeakConcepts:      result.WeakConcepts,
		RecommendedAction: result.RecommendedAction,
		FullAnalysis:      result.FullAnalysis,
	})
}
