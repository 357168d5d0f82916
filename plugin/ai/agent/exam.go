package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/extract"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/ondemand"
	aierr "github.com/Asmit-ctrl/DTU-BrAInware-2.0/internal/errors"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/internal/observability"
)

// ExamAgent generates a 15-question tiered examination and scores submitted
// answers locally.
type ExamAgent struct {
	client *ondemand.Client
	logger *slog.Logger
}

func NewExamAgent(client *ondemand.Client) (*ExamAgent, error) {
	if client == nil {
		return nil, fmt.Errorf("client cannot be nil")
	}
	return &ExamAgent{client: client, logger: slog.Default()}, nil
}

// Exam is the model's structured exam payload.
type Exam struct {
	ExamTitle      string     `json:"examTitle"`
	TotalQuestions int        `json:"totalQuestions"`
	TotalMarks     int        `json:"totalMarks"`
	Duration       string     `json:"duration"`
	Questions      []Question `json:"questions"`
}

// ExamResult carries the generated exam. Extracted reports whether the
// structured payload parsed; when false the raw answer is all there is.
type ExamResult struct {
	ExamID    string
	SessionID string
	StudentID string
	Topic     string
	Exam      Exam
	RawAnswer string
	Extracted bool
	CreatedAt time.Time
}

// Generate builds a full exam paper on the topic.
func (e *ExamAgent) Generate(ctx context.Context, studentID, studentName, topic string) (*ExamResult, error) {
	rc := observability.NewRequestContext(e.logger, "exam", studentID)
	observability.GlobalMetrics().RecordRequest("exam")

	externalUserID := fmt.Sprintf("exam_%s_%d", studentID, time.Now().UnixMilli())
	session, err := e.client.OpenSession(ctx, examAgentIDs, externalUserID, []ondemand.Metadata{
		{Key: "studentId", Value: studentID},
		{Key: "studentName", Value: studentName},
		{Key: "examType", Value: "adaptive_assessment"},
	})
	if err != nil {
		observability.GlobalMetrics().RecordFailure("exam")
		rc.Error("ExamAgent: session open failed", err)
		return nil, aierr.Wrap(aierr.ErrCodeSessionOpenFailed, "failed to open exam session", err)
	}

	result, err := e.client.RunQuery(ctx, session.ID, ondemand.Query{
		EndpointID:    endpointGrok,
		ReasoningMode: reasoningMode,
		AgentIDs:      examAgentIDs,
		Text:          buildExamQuery(topic),
		Model:         examModelConfig(),
	})
	if err != nil {
		observability.GlobalMetrics().RecordFailure("exam")
		rc.Error("ExamAgent: query failed", err,
			slog.String(observability.LogFieldSessionID, session.ID))
		return nil, aierr.Wrap(aierr.ErrCodeQueryFailed, "exam query failed", err)
	}

	out := &ExamResult{
		ExamID:    fmt.Sprintf("EXAM-%d", time.Now().UnixMilli()),
		SessionID: session.ID,
		StudentID: studentID,
		Topic:     topic,
		RawAnswer: result.Answer,
		CreatedAt: time.Now(),
	}
	if extract.Decode(result.Answer, &out.Exam) && len(out.Exam.Questions) > 0 {
		out.Extracted = true
		if len(out.Exam.Questions) < 15 {
			rc.Warn("ExamAgent: short question set",
				slog.Int("question_count", len(out.Exam.Questions)))
		}
	} else {
		rc.Warn("ExamAgent: no structured payload in answer",
			slog.Int(observability.LogFieldAnswerLen, len(result.Answer)))
		out.Exam = Exam{ExamTitle: topic + " Examination"}
	}

	observability.GlobalMetrics().RecordDuration("exam", rc.Duration())
	rc.Info("ExamAgent: exam generated",
		slog.String(observability.LogFieldSessionID, session.ID),
		slog.Bool("extracted", out.Extracted),
		slog.Int("question_count", len(out.Exam.Questions)),
		slog.Int64(observability.LogFieldDuration, rc.DurationMs()))
	return out, nil
}

func buildExamQuery(topic string) string {
	return fmt.Sprintf(`Generate a 15-question examination paper on the topic: "%s"

The exam should include:
- 5 Easy questions (basic definitions, direct recall) - 2 marks each
- 6 Medium questions (application, multi-step problems) - 4 marks each
- 4 Hard questions (analysis, synthesis, complex problems) - 6 marks each

Total: 15 questions worth 60 marks

Make sure questions cover all aspects of %s as per NCERT syllabus.
Include proper mathematical notation using LaTeX where needed.

Return ONLY valid JSON in the exact format specified.`, topic, topic)
}

// QuestionResult is the per-question outcome after scoring.
type QuestionResult struct {
	QuestionID    int     `json:"questionId"`
	Question      string  `json:"question"`
	StudentAnswer string  `json:"studentAnswer"`
	CorrectAnswer string  `json:"correctAnswer"`
	IsCorrect     bool    `json:"isCorrect"`
	Marks         float64 `json:"marks"`
	Scored        float64 `json:"scored"`
	Explanation   string  `json:"explanation"`
	Difficulty    string  `json:"difficulty"`
}

// DifficultyScore aggregates marks within one difficulty tier.
type DifficultyScore struct {
	Total  float64 `json:"total"`
	Scored float64 `json:"scored"`
	Count  int     `json:"count"`
}

// ScoreReport is the scored outcome of a submitted exam.
type ScoreReport struct {
	TotalScore       float64                    `json:"totalScore"`
	MaxScore         float64                    `json:"maxScore"`
	Percentage       float64                    `json:"percentage"`
	PerformanceLevel string                     `json:"performanceLevel"`
	DifficultyScores map[string]DifficultyScore `json:"difficultyScores"`
	Results          []QuestionResult           `json:"results"`
	Correct          int                        `json:"correct"`
	Incorrect        int                        `json:"incorrect"`
	Unanswered       int                        `json:"unanswered"`
}

const notAnswered = "Not answered"

// Score grades answers against the exam key. answers maps question ID to
// the chosen option letter. Scoring is local; no provider call is made.
func Score(exam Exam, answers map[int]string) *ScoreReport {
	report := &ScoreReport{
		DifficultyScores: map[string]DifficultyScore{
			"easy":   {},
			"medium": {},
			"hard":   {},
		},
	}

	for _, q := range exam.Questions {
		answer, ok := answers[q.ID]
		if !ok || answer == "" {
			answer = notAnswered
		}
		correct := answer == q.CorrectAnswer
		marks := q.Marks
		if marks == 0 {
			marks = defaultMarks(q.Difficulty)
		}

		report.MaxScore += marks
		scored := 0.0
		if correct {
			scored = marks
			report.TotalScore += marks
			report.Correct++
		} else if answer == notAnswered {
			report.Unanswered++
		} else {
			report.Incorrect++
		}

		report.Results = append(report.Results, QuestionResult{
			QuestionID:    q.ID,
			Question:      q.Question,
			StudentAnswer: answer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     correct,
			Marks:         marks,
			Scored:        scored,
			Explanation:   q.Explanation,
			Difficulty:    q.Difficulty,
		})

		tier := orDefault(q.Difficulty, "medium")
		if ds, ok := report.DifficultyScores[tier]; ok {
			ds.Total += marks
			ds.Scored += scored
			ds.Count++
			report.DifficultyScores[tier] = ds
		}
	}

	if report.MaxScore > 0 {
		report.Percentage = report.TotalScore / report.MaxScore * 100
	}
	switch {
	case report.Percentage >= 80:
		report.PerformanceLevel = MasteryStrong
	case report.Percentage >= 50:
		report.PerformanceLevel = MasteryMedium
	default:
		report.PerformanceLevel = MasteryWeak
	}
	return report
}

func defaultMarks(difficulty string) float64 {
	switch difficulty {
	case "easy":
		return 2
	case "medium":
		return 3
	default:
		return 5.5
	}
}
