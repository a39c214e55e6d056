package models

import (
	"time"

	"github.com/google/uuid"
)

type EnrollmentStatus string

const (
	StatusStarted    EnrollmentStatus = "started"
	StatusInProgress EnrollmentStatus = "in_progress"
	StatusCompleted  EnrollmentStatus = "completed"
)

// Enrollment links one learner to one course. One record per pair;
// re-enrolling after an unenroll starts from a fresh record, prior
// completion history is gone.
type Enrollment struct {
	ID               uuid.UUID        `json:"id"`
	CourseID         uuid.UUID        `json:"course_id"`
	Status           EnrollmentStatus `json:"status"`
	CompletedLessons []uuid.UUID      `json:"completed_lessons"`
	EnrolledAt       time.Time        `json:"enrolled_at"`
	LastAccessedAt   *time.Time       `json:"last_accessed_at"`
	CompletedAt      *time.Time       `json:"completed_at"`
}

// CompletedSet returns the completed lessons as a set. Duplicates on the
// wire collapse here; the slice stays as received.
func (e *Enrollment) CompletedSet() map[uuid.UUID]struct{} {
	if e == nil {
		return nil
	}
	set := make(map[uuid.UUID]struct{}, len(e.CompletedLessons))
	for _, id := range e.CompletedLessons {
		set[id] = struct{}{}
	}
	return set
}

func (e *Enrollment) IsLessonCompleted(lessonID uuid.UUID) bool {
	if e == nil {
		return false
	}
	for _, id := range e.CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}
