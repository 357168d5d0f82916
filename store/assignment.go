package store

// Assignment stores a generated practice assignment. Payload holds the full
// assignment JSON as returned by the agent layer.
type Assignment struct {
	ID        int32
	UID       string
	StudentID string
	Topic     string
	SessionID string
	Payload   string
	CreatedTs int64
}

type FindAssignment struct {
	ID        *int32
	UID       *string
	StudentID *string
	Limit     *int
}

type DeleteAssignment struct {
	ID int32
}
