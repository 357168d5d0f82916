package v1

import (
	"time"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/agent"
)

type answerRecordPayload struct {
	IsCorrect bool   `json:"isCorrect"`
	HintsUsed bool   `json:"hintsUsed"`
	Concept   string `json:"concept"`
}

type quizAttemptPayload struct {
	QuizTitle               string                `json:"quizTitle"`
	CompletedAt             time.Time             `json:"completedAt"`
	Score                   int                   `json:"score"`
	TotalQuestions          int                   `json:"totalQuestions"`
	Accuracy                float64               `json:"accuracy"`
	Percentage              float64               `json:"percentage"`
	HintUsageCount          int                   `json:"hintUsageCount"`
	ConsecutiveWrongAnswers int                   `json:"consecutiveWrongAnswers"`
	MistakeRepetitionCount  int                   `json:"mistakeRepetitionCount"`
	PostRevisionAccuracy    float64               `json:"postRevisionAccuracy"`
	TimePerQuestion         []float64             `json:"timePerQuestion"`
	Answers                 []answerRecordPayload `json:"answers"`
}

func (p quizAttemptPayload) toAgent() agent.QuizAttempt {
	answers := make([]agent.AnswerRecord, 0, len(p.Answers))
	for _, a := range p.Answers {
		answers = append(answers, agent.AnswerRecord{
			IsCorrect: a.IsCorrect,
			HintsUsed: a.HintsUsed,
			Concept:   a.Concept,
		})
	}
	return agent.QuizAttempt{
		QuizTitle:               p.QuizTitle,
		CompletedAt:             p.CompletedAt,
		Score:                   p.Score,
		TotalQuestions:          p.TotalQuestions,
		Accuracy:                p.Accuracy,
		Percentage:              p.Percentage,
		HintUsageCount:          p.HintUsageCount,
		ConsecutiveWrongAnswers: p.ConsecutiveWrongAnswers,
		MistakeRepetitionCount:  p.MistakeRepetitionCount,
		PostRevisionAccuracy:    p.PostRevisionAccuracy,
		TimePerQuestion:         p.TimePerQuestion,
		Answers:                 answers,
	}
}

func toAgentAttempts(payloads []quizAttemptPayload) []agent.QuizAttempt {
	attempts := make([]agent.QuizAttempt, 0, len(payloads))
	for _, p := range payloads {
		attempts = append(attempts, p.toAgent())
	}
	return attempts
}

type analyticsSummaryPayload struct {
	PerformanceStatus string    `json:"performanceStatus"`
	WeakConcepts      []string  `json:"weakConcepts"`
	RiskLevel         string    `json:"riskLevel"`
	RecommendedAction string    `json:"recommendedAction"`
	RecentScores      []float64 `json:"recentScores"`
	AverageScore      float64   `json:"averageScore"`
	TopicsToImprove   []string  `json:"topicsToImprove"`
}

func (p analyticsSummaryPayload) toAgent() agent.AnalyticsSummary {
	return agent.AnalyticsSummary{
		PerformanceStatus: p.PerformanceStatus,
		WeakConcepts:      p.WeakConcepts,
		RiskLevel:         p.RiskLevel,
		RecommendedAction: p.RecommendedAction,
		RecentScores:      p.RecentScores,
		AverageScore:      p.AverageScore,
		TopicsToImprove:   p.TopicsToImprove,
	}
}

type studentProfilePayload struct {
	Name                    string   `json:"name"`
	Class                   string   `json:"class"`
	Subject                 string   `json:"subject"`
	Chapter                 string   `json:"chapter"`
	Topic                   string   `json:"topic"`
	MasteryLevel            string   `json:"masteryLevel"`
	ConceptAccuracy         float64  `json:"conceptAccuracy"`
	RiskLevel               string   `json:"riskLevel"`
	PerformanceStatus       string   `json:"performanceStatus"`
	WeakConcepts            []string `json:"weakConcepts"`
	Strengths               []string `json:"strengths"`
	TimePerQuestion         float64  `json:"timePerQuestion"`
	NumberOfAttempts        int      `json:"numberOfAttempts"`
	FirstAttemptCorrectRate float64  `json:"firstAttemptCorrectRate"`
}

func (p studentProfilePayload) toAgent() agent.StudentProfile {
	return agent.StudentProfile{
		Name:                    p.Name,
		Class:                   p.Class,
		Subject:                 p.Subject,
		Chapter:                 p.Chapter,
		Topic:                   p.Topic,
		MasteryLevel:            p.MasteryLevel,
		ConceptAccuracy:         p.ConceptAccuracy,
		RiskLevel:               p.RiskLevel,
		PerformanceStatus:       p.PerformanceStatus,
		WeakConcepts:            p.WeakConcepts,
		Strengths:               p.Strengths,
		TimePerQuestion:         p.TimePerQuestion,
		NumberOfAttempts:        p.NumberOfAttempts,
		FirstAttemptCorrectRate: p.FirstAttemptCorrectRate,
	}
}
