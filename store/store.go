package store

import (
	"context"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/internal/profile"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		profile: profile,
		driver:  driver,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Migrate(ctx context.Context) error {
	return s.driver.Migrate(ctx)
}

func (s *Store) Close() error {
	return s.driver.Close()
}

func (s *Store) CreateQuizAttempt(ctx context.Context, create *QuizAttempt) (*QuizAttempt, error) {
	return s.driver.CreateQuizAttempt(ctx, create)
}

func (s *Store) ListQuizAttempts(ctx context.Context, find *FindQuizAttempt) ([]*QuizAttempt, error) {
	return s.driver.ListQuizAttempts(ctx, find)
}

func (s *Store) CreateAnalyticsReport(ctx context.Context, create *AnalyticsReport) (*AnalyticsReport, error) {
	return s.driver.CreateAnalyticsReport(ctx, create)
}

func (s *Store) ListAnalyticsReports(ctx context.Context, find *FindAnalyticsReport) ([]*AnalyticsReport, error) {
	return s.driver.ListAnalyticsReports(ctx, find)
}

func (s *Store) DeleteAnalyticsReport(ctx context.Context, delete *DeleteAnalyticsReport) error {
	return s.driver.DeleteAnalyticsReport(ctx, delete)
}

func (s *Store) CreateAssignment(ctx context.Context, create *Assignment) (*Assignment, error) {
	return s.driver.CreateAssignment(ctx, create)
}

func (s *Store) ListAssignments(ctx context.Context, find *FindAssignment) ([]*Assignment, error) {
	return s.driver.ListAssignments(ctx, find)
}

func (s *Store) DeleteAssignment(ctx context.Context, delete *DeleteAssignment) error {
	return s.driver.DeleteAssignment(ctx, delete)
}

func (s *Store) CreateExam(ctx context.Context, create *Exam) (*Exam, error) {
	return s.driver.CreateExam(ctx, create)
}

func (s *Store) ListExams(ctx context.Context, find *FindExam) ([]*Exam, error) {
	return s.driver.ListExams(ctx, find)
}

// GetExam returns the first exam matching find, or nil when none matches.
func (s *Store) GetExam(ctx context.Context, find *FindExam) (*Exam, error) {
	list, err := s.ListExams(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) UpdateExam(ctx context.Context, update *UpdateExam) (*Exam, error) {
	return s.driver.UpdateExam(ctx, update)
}

func (s *Store) CreateDoubt(ctx context.Context, create *Doubt) (*Doubt, error) {
	return s.driver.CreateDoubt(ctx, create)
}

func (s *Store) ListDoubts(ctx context.Context, find *FindDoubt) ([]*Doubt, error) {
	return s.driver.ListDoubts(ctx, find)
}

// GetDoubt returns the first doubt matching find, or nil when none matches.
func (s *Store) GetDoubt(ctx context.Context, find *FindDoubt) (*Doubt, error) {
	list, err := s.ListDoubts(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) UpdateDoubt(ctx context.Context, update *UpdateDoubt) (*Doubt, error) {
	return s.driver.UpdateDoubt(ctx, update)
}

func (s *Store) DeleteDoubt(ctx context.Context, delete *DeleteDoubt) error {
	return s.driver.DeleteDoubt(ctx, delete)
}

func (s *Store) CreateLesson(ctx context.Context, create *Lesson) (*Lesson, error) {
	return s.driver.CreateLesson(ctx, create)
}

func (s *Store) ListLessons(ctx context.Context, find *FindLesson) ([]*Lesson, error) {
	return s.driver.ListLessons(ctx, find)
}

func (s *Store) UpdateLesson(ctx context.Context, update *UpdateLesson) (*Lesson, error) {
	return s.driver.UpdateLesson(ctx, update)
}

func (s *Store) CreateStudySchedule(ctx context.Context, create *StudySchedule) (*StudySchedule, error) {
	return s.driver.CreateStudySchedule(ctx, create)
}

func (s *Store) ListStudySchedules(ctx context.Context, find *FindStudySchedule) ([]*StudySchedule, error) {
	return s.driver.ListStudySchedules(ctx, find)
}

func (s *Store) DeleteStudySchedule(ctx context.Context, delete *DeleteStudySchedule) error {
	return s.driver.DeleteStudySchedule(ctx, delete)
}
