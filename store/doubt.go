package store

// Doubt stores one doubt-resolution conversation. SessionID and
// ExternalUserID pin the provider session so follow-up questions reuse it.
// Payload holds the latest resolution JSON; Turns counts questions asked on
// this session including follow-ups.
type Doubt struct {
	ID                 int32
	UID                string
	StudentID          string
	SessionID          string
	ExternalUserID     string
	Question           string
	ExtractedImageData string
	Payload            string
	Turns              int
	CreatedTs          int64
	UpdatedTs          int64
}

type FindDoubt struct {
	ID        *int32
	UID       *string
	StudentID *string
	Limit     *int
}

type UpdateDoubt struct {
	ID        int32
	UpdatedTs int64
	Payload   *string
	Turns     *int
}

type DeleteDoubt struct {
	ID int32
}
