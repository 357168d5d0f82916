package v1

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/agent"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/store"
)

type generateExamRequest struct {
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
	Topic       string `json:"topic"`
}

type generateExamResponse struct {
	ExamID    string     `json:"examId"`
	SessionID string     `json:"sessionId"`
	Topic     string     `json:"topic"`
	Exam      agent.Exam `json:"exam"`
	Extracted bool       `json:"extracted"`
	RawAnswer string     `json:"rawAnswer,omitempty"`
}

func (s *APIV1Service) GenerateExam(c echo.Context) error {
	var request generateExamRequest
	if err := c.Bind(&request); err != nil {
		return badRequest(c, "malformed request body")
	}
	if request.StudentID == "" {
		return badRequest(c, "studentId is required")
	}
	if request.Topic == "" {
		return badRequest(c, "topic is required")
	}

	ctx := c.Request().Context()
	result, err := s.ExamAgent.Generate(ctx, request.StudentID, request.StudentName, request.Topic)
	if err != nil {
		return presentError(c, err)
	}

	if _, err := s.Store.CreateExam(ctx, &store.Exam{
		UID:       result.ExamID,
		StudentID: request.StudentID,
		Topic:     request.Topic,
		SessionID: result.SessionID,
		Status:    store.ExamStatusGenerated,
		Payload:   mustJSON(result.Exam),
	}); err != nil {
		return presentError(c, err)
	}

	response := generateExamResponse{
		ExamID:    result.ExamID,
		SessionID: result.SessionID,
		Topic:     result.Topic,
		Exam:      result.Exam,
		Extracted: result.Extracted,
	}
	if !result.Extracted {
		response.RawAnswer = result.RawAnswer
	}
	return c.JSON(http.StatusOK, response)
}

type submitExamRequest struct {
	ExamID  string            `json:"examId"`
	Answers map[string]string `json:"answers"`
}

type submitExamResponse struct {
	ExamID      string             `json:"examId"`
	TotalScore  float64            `json:"totalScore"`
	MaxScore    float64            `json:"maxScore"`
	Percentage  float64            `json:"percentage"`
	Performance string             `json:"performanceLevel"`
	ScoreReport *agent.ScoreReport `json:"scoreReport"`
}

func (s *APIV1Service) SubmitExam(c echo.Context) error {
	var request submitExamRequest
	if err := c.Bind(&request); err != nil {
		return badRequest(c, "malformed request body")
	}
	if request.ExamID == "" {
		return badRequest(c, "examId is required")
	}

	ctx := c.Request().Context()
	exam, err := s.Store.GetExam(ctx, &store.FindExam{UID: &request.ExamID})
	if err != nil {
		return presentError(c, err)
	}
	if exam == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Message: "exam not found"})
	}

	var paper agent.Exam
	if err := json.Unmarshal([]byte(exam.Payload), &paper); err != nil {
		return presentError(c, err)
	}

	// JSON object keys are strings; scoring keys by question ID.
	answers := make(map[int]string, len(request.Answers))
	for key, value := range request.Answers {
		id, err := strconv.Atoi(key)
		if err != nil {
			return badRequest(c, "answers keys must be question ids")
		}
		answers[id] = value
	}

	report := agent.Score(paper, answers)

	status := store.ExamStatusSubmitted
	reportJSON := mustJSON(report)
	if _, err := s.Store.UpdateExam(ctx, &store.UpdateExam{
		ID:          exam.ID,
		UpdatedTs:   time.Now().Unix(),
		Status:      &status,
		ScoreReport: &reportJSON,
	}); err != nil {
		return presentError(c, err)
	}

	return c.JSON(http.StatusOK, submitExamResponse{
		ExamID:      exam.UID,
		TotalScore:  report.TotalScore,
		MaxScore:    report.MaxScore,
		Percentage:  report.Percentage,
		Performance: report.PerformanceLevel,
		ScoreReport: report,
	})
}
