package store

// StudySchedule stores a weekly plan. Payload holds the schedule JSON and
// SessionID keeps the provider session so daily question sets can be
// generated against the same conversation.
type StudySchedule struct {
	ID        int32
	UID       string
	StudentID string
	Chapter   string
	SessionID string
	Payload   string
	CreatedTs int64
}

type FindStudySchedule struct {
	ID        *int32
	UID       *string
	StudentID *string
	Limit     *int
}

type DeleteStudySchedule struct {
	ID int32
}
