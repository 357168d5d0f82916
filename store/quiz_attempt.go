package store

// QuizAttempt is one stored quiz outcome. TimePerQuestion and Answers hold
// JSON arrays; the agent layer owns their shapes.
type QuizAttempt struct {
	ID                   int32
	UID                  string
	StudentID            string
	QuizTitle            string
	Score                int
	TotalQuestions       int
	Accuracy             float64
	HintUsageCount       int
	ConsecutiveWrong     int
	MistakeRepetitions   int
	PostRevisionAccuracy float64
	TimePerQuestion      string
	Answers              string
	CompletedTs          int64
	CreatedTs            int64
}

type FindQuizAttempt struct {
	ID        *int32
	UID       *string
	StudentID *string
	Limit     *int
}
