// Package agent implements the six domain agents of the tutoring
// platform: analytics, assignment, exam, doubt, lesson and schedule. Each
// agent opens a provider session, runs one or more streaming queries and
// extracts a structured payload from the model's free-text answer.
//
// Error policy at this boundary: a transport or stream failure returns an
// error; a structured-extraction miss does not. On a miss the agent
// synthesizes a well-shaped payload around the raw answer so the caller
// always gets something presentable.
package agent

import "time"

// Mastery levels used to parameterize prompt text.
const (
	MasteryWeak   = "WEAK"
	MasteryMedium = "MEDIUM"
	MasteryStrong = "STRONG"
)

// AnswerRecord is one question outcome inside a quiz attempt.
type AnswerRecord struct {
	IsCorrect bool
	HintsUsed bool
	Concept   string
}

// QuizAttempt is the per-quiz performance record the analytics and lesson
// agents consume. TimePerQuestion is seconds per question, index-aligned
// with Answers.
type QuizAttempt struct {
	QuizTitle               string
	CompletedAt             time.Time
	Score                   int
	TotalQuestions          int
	Accuracy                float64
	Percentage              float64
	HintUsageCount          int
	ConsecutiveWrongAnswers int
	MistakeRepetitionCount  int
	PostRevisionAccuracy    float64
	TimePerQuestion         []float64
	Answers                 []AnswerRecord
}

// AnalyticsSummary is the distilled analytics view handed to downstream
// agents (assignment, lesson, schedule). It is produced either by the
// analytics agent or derived locally from quiz history.
type AnalyticsSummary struct {
	PerformanceStatus string
	WeakConcepts      []string
	RiskLevel         string
	RecommendedAction string
	RecentScores      []float64
	AverageScore      float64
	TopicsToImprove   []string
}

// StudentProfile parameterizes prompt text for the doubt, lesson and
// schedule agents. The protocol never interprets these values; they only
// shape what the model is asked.
type StudentProfile struct {
	Name                    string
	Class                   string
	Subject                 string
	Chapter                 string
	Topic                   string
	MasteryLevel            string
	ConceptAccuracy         float64
	RiskLevel               string
	PerformanceStatus       string
	WeakConcepts            []string
	Strengths               []string
	TimePerQuestion         float64
	NumberOfAttempts        int
	FirstAttemptCorrectRate float64
}

// ChapterInfo names the chapter a schedule is built for.
type ChapterInfo struct {
	ChapterName string
	Subject     string
	Topics      []string
}

// Question is the shared multiple-choice question shape the assignment and
// exam agents request from the model.
type Question struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Difficulty    string   `json:"difficulty"`
	Marks         float64  `json:"marks"`
	Concept       string   `json:"concept"`
	Explanation   string   `json:"explanation"`
	Hint          string   `json:"hint,omitempty"`
	Topic         string   `json:"topic,omitempty"`
}
