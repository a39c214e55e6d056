package learning

import (
	"context"

	"LearnTrack/internal/models"

	"github.com/google/uuid"
)

// learningAPI is the slice of the platform API a session needs. Implemented
// by client/rest; faked in tests. FetchEnrollment returns (nil, nil) when
// the viewer is not enrolled — that is a normal state, not a failure.
type learningAPI interface {
	FetchCourse(ctx context.Context, courseID uuid.UUID) (*models.Course, error)
	FetchEnrollment(ctx context.Context, courseID uuid.UUID) (*models.Enrollment, error)
	FetchProgress(ctx context.Context, courseID uuid.UUID) (*models.ProgressSnapshot, error)
	Enroll(ctx context.Context, courseID uuid.UUID) (*models.Enrollment, error)
	Unenroll(ctx context.Context, courseID uuid.UUID) error
	CompleteLesson(ctx context.Context, courseID, lessonID uuid.UUID) (*models.ProgressSnapshot, error)
	UncompleteLesson(ctx context.Context, courseID, lessonID uuid.UUID) (*models.ProgressSnapshot, error)
	TouchLastAccessed(ctx context.Context, courseID uuid.UUID) error
}

type catalogAPI interface {
	ListCourses(ctx context.Context) ([]models.CoursePreview, error)
	ListMyCourses(ctx context.Context) ([]models.EnrolledCourse, error)
}

// ProgressCache holds the latest known dashboard rows so "my courses" keeps
// working without the API. It is a cache of derived values only and is
// overwritten on every successful recompute.
type ProgressCache interface {
	Upsert(ctx context.Context, row models.EnrolledCourse) error
	List(ctx context.Context) ([]models.EnrolledCourse, error)
	Delete(ctx context.Context, courseID uuid.UUID) error
}
