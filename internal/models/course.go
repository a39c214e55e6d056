package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
	DifficultyExpert       = "expert"
)

type Course struct {
	ID             uuid.UUID `json:"id" validate:"required"`
	Title          string    `json:"title" validate:"required"`
	Description    string    `json:"description"`
	InstructorName string    `json:"instructor_name"`
	CoverImage     string    `json:"cover_image,omitempty"`
	EstDuration    int       `json:"est_duration"`
	Difficulty     string    `json:"difficulty_level"`
	Category       string    `json:"category"`
	Rating         float64   `json:"rating"`
	StudentsCount  int       `json:"students_count"`
	Modules        []Module  `json:"modules" validate:"dive"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CoursePreview struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	InstructorName string    `json:"instructor_name"`
	Category       string    `json:"category"`
	Rating         float64   `json:"rating"`
	StudentsCount  int       `json:"students_count"`
	TotalLessons   int       `json:"total_lessons"`
}

// EnrolledCourse is the dashboard row: course preview fields joined with the
// viewer's enrollment state, as served by the learning API.
type EnrolledCourse struct {
	CourseID       uuid.UUID        `json:"id"`
	Title          string           `json:"title"`
	Category       string           `json:"category"`
	InstructorName string           `json:"instructor_name"`
	TotalLessons   int              `json:"total_lessons"`
	EnrollmentID   uuid.UUID        `json:"enrollment_id"`
	Percent        int              `json:"progress"`
	Status         EnrollmentStatus `json:"enrollment_status"`
	EnrolledAt     time.Time        `json:"enrolled_at"`
	LastAccessedAt *time.Time       `json:"last_accessed_at"`
	CompletedAt    *time.Time       `json:"completed_at"`
}
