package models

import (
	"time"

	"github.com/google/uuid"
)

// ProgressSnapshot is a projection over a course and an enrollment. It is
// recomputed on demand and never stored as a source of truth; the field
// names mirror the learning API's progress payload.
type ProgressSnapshot struct {
	EnrollmentID     uuid.UUID        `json:"enrollment_id"`
	CourseID         uuid.UUID        `json:"course_id"`
	Percent          int              `json:"progress"`
	Status           EnrollmentStatus `json:"status"`
	CompletedLessons []uuid.UUID      `json:"completedLessons"`
	CompletedModules []uuid.UUID      `json:"completedModules"`
	CompletedCount   int              `json:"-"`
	TotalCount       int              `json:"-"`
	LastAccessedAt   *time.Time       `json:"last_accessed_at"`
	CompletedAt      *time.Time       `json:"completed_at"`
}

func (s ProgressSnapshot) IsLessonCompleted(lessonID uuid.UUID) bool {
	for _, id := range s.CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}

func (s ProgressSnapshot) IsModuleCompleted(moduleID uuid.UUID) bool {
	for _, id := range s.CompletedModules {
		if id == moduleID {
			return true
		}
	}
	return false
}
