package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store domain object can call.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	Migrate(ctx context.Context) error

	// QuizAttempt model related methods.
	CreateQuizAttempt(ctx context.Context, create *QuizAttempt) (*QuizAttempt, error)
	ListQuizAttempts(ctx context.Context, find *FindQuizAttempt) ([]*QuizAttempt, error)

	// AnalyticsReport model related methods.
	CreateAnalyticsReport(ctx context.Context, create *AnalyticsReport) (*AnalyticsReport, error)
	ListAnalyticsReports(ctx context.Context, find *FindAnalyticsReport) ([]*AnalyticsReport, error)
	DeleteAnalyticsReport(ctx context.Context, delete *DeleteAnalyticsReport) error

	// Assignment model related methods.
	CreateAssignment(ctx context.Context, create *Assignment) (*Assignment, error)
	ListAssignments(ctx context.Context, find *FindAssignment) ([]*Assignment, error)
	DeleteAssignment(ctx context.Context, delete *DeleteAssignment) error

	// Exam model related methods.
	CreateExam(ctx context.Context, create *Exam) (*Exam, error)
	ListExams(ctx context.Context, find *FindExam) ([]*Exam, error)
	UpdateExam(ctx context.Context, update *UpdateExam) (*Exam, error)

	// Doubt model related methods.
	CreateDoubt(ctx context.Context, create *Doubt) (*Doubt, error)
	ListDoubts(ctx context.Context, find *FindDoubt) ([]*Doubt, error)
	UpdateDoubt(ctx context.Context, update *UpdateDoubt) (*Doubt, error)
	DeleteDoubt(ctx context.Context, delete *DeleteDoubt) error

	// Lesson model related methods.
	CreateLesson(ctx context.Context, create *Lesson) (*Lesson, error)
	ListLessons(ctx context.Context, find *FindLesson) ([]*Lesson, error)
	UpdateLesson(ctx context.Context, update *UpdateLesson) (*Lesson, error)

	// StudySchedule model related methods.
	CreateStudySchedule(ctx context.Context, create *StudySchedule) (*StudySchedule, error)
	ListStudySchedules(ctx context.Context, find *FindStudySchedule) ([]*StudySchedule, error)
	DeleteStudySchedule(ctx context.Context, delete *DeleteStudySchedule) error
}
