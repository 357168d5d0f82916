// Package v1 exposes the tutoring agents over a JSON HTTP API.
package v1

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/internal/profile"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/agent"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/ondemand"
	aierr "github.com/Asmit-ctrl/DTU-BrAInware-2.0/internal/errors"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/store"
)

// aiUnavailableMessage is what every transport or stream failure presents
// as. The underlying error is logged, never surfaced.
const aiUnavailableMessage = "could not reach the AI service, please retry"

type APIV1Service struct {
	Profile *profile.Profile
	Store   *store.Store

	AnalyticsAgent  *agent.AnalyticsAgent
	AssignmentAgent *agent.AssignmentAgent
	ExamAgent       *agent.ExamAgent
	DoubtAgent      *agent.DoubtAgent
	LessonAgent     *agent.LessonAgent
	ScheduleAgent   *agent.ScheduleAgent
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store) (*APIV1Service, error) {
	client, err := ondemand.NewClient(&ondemand.Config{
		APIKey:       profile.AIAPIKey,
		ChatBaseURL:  profile.AIChatBaseURL,
		MediaBaseURL: profile.AIMediaBaseURL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create AI provider client")
	}

	analyticsAgent, err := agent.NewAnalyticsAgent(client, agent.DefaultConceptMatchers)
	if err != nil {
		return nil, err
	}
	assignmentAgent, err := agent.NewAssignmentAgent(client)
	if err != nil {
		return nil, err
	}
	examAgent, err := agent.NewExamAgent(client)
	if err != nil {
		return nil, err
	}
	doubtAgent, err := agent.NewDoubtAgent(client)
	if err != nil {
		return nil, err
	}
	lessonAgent, err := agent.NewLessonAgent(client)
	if err != nil {
		return nil, err
	}
	scheduleAgent, err := agent.NewScheduleAgent(client)
	if err != nil {
		return nil, err
	}

	return &APIV1Service{
		Profile:         profile,
		Store:           store,
		AnalyticsAgent:  analyticsAgent,
		AssignmentAgent: assignmentAgent,
		ExamAgent:       examAgent,
		DoubtAgent:      doubtAgent,
		LessonAgent:     lessonAgent,
		ScheduleAgent:   scheduleAgent,
	}, nil
}

// Register attaches all API routes to the given Echo instance.
func (s *APIV1Service) Register(echoServer *echo.Echo) {
	g := echoServer.Group("/api")
	g.POST("/analytics/generate", s.GenerateAnalytics)
	g.POST("/assignments/generate", s.GenerateAssignment)
	g.POST("/exams/generate", s.GenerateExam)
	g.POST("/exams/submit", s.SubmitExam)
	g.POST("/doubts", s.ResolveDoubt)
	g.POST("/doubts/:id/followup", s.FollowUpDoubt)
	g.POST("/lessons/generate", s.GenerateLesson)
	g.POST("/schedules/generate", s.GenerateSchedule)
	g.POST("/schedules/:id/daily-questions", s.GenerateDailyQuestions)
	g.GET("/metrics", s.GetMetrics)
}

type errorResponse struct {
	Message string `json:"message"`
}

// presentError maps an agent failure to an HTTP response. Provider
// failures all present the same retryable message; the caller never sees
// provider details.
func presentError(c echo.Context, err error) error {
	var aiErr *aierr.AIError
	if errors.As(err, &aiErr) {
		switch aiErr.Code {
		case aierr.ErrCodeInvalidArgument:
			return c.JSON(http.StatusBadRequest, errorResponse{Message: aiErr.Message})
		case aierr.ErrCodeUnauthorized:
			return c.JSON(http.StatusUnauthorized, errorResponse{Message: aiErr.Message})
		case aierr.ErrCodeSessionOpenFailed, aierr.ErrCodeQueryFailed, aierr.ErrCodeStreamFailed, aierr.ErrCodeMediaUploadFailed, aierr.ErrCodeAgentExecutionFailed:
			return c.JSON(http.StatusBadGateway, errorResponse{Message: aiUnavailableMessage})
		case aierr.ErrCodeTimeout, aierr.ErrCodeContextCanceled:
			return c.JSON(http.StatusGatewayTimeout, errorResponse{Message: aiUnavailableMessage})
		}
	}
	return c.JSON(http.StatusInternalServerError, errorResponse{Message: "internal server error"})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Message: message})
}

// mustJSON marshals v for storage. The payload types are all
// marshalable, so a failure here is a programming error and stores "{}".
func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}
