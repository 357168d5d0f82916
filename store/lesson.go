package store

// Lesson stores a generated lesson with its animation source. RenderStatus
// tracks the downstream video pipeline and starts at "pending", or
// "no_code" when the model produced no runnable code.
type Lesson struct {
	ID           int32
	UID          string
	StudentID    string
	Topic        string
	MasteryLevel string
	Summary      string
	Guidance     string
	ManimCode    string
	RenderStatus string
	CreatedTs    int64
}

type FindLesson struct {
	ID        *int32
	UID       *string
	StudentID *string
	Topic     *string
	Limit     *int
}

type UpdateLesson struct {
	ID           int32
	RenderStatus *string
}
