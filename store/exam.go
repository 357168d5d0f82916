package store

// Exam status values.
const (
	ExamStatusGenerated = "GENERATED"
	ExamStatusSubmitted = "SUBMITTED"
)

// Exam stores a generated exam paper and, after submission, its score
// report. Payload is the exam JSON; ScoreReport stays empty until the
// student submits answers.
type Exam struct {
	ID          int32
	UID         string
	StudentID   string
	Topic       string
	SessionID   string
	Status      string
	Payload     string
	ScoreReport string
	CreatedTs   int64
	UpdatedTs   int64
}

type FindExam struct {
	ID        *int32
	UID       *string
	StudentID *string
	Status    *string
	Limit     *int
}

type UpdateExam struct {
	ID          int32
	UpdatedTs   int64
	Status      *string
	ScoreReport *string
}
