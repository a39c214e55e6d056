package models

import (
	"github.com/google/uuid"
)

type Module struct {
	ID          uuid.UUID `json:"id" validate:"required"`
	CourseID    uuid.UUID `json:"course_id"`
	Title       string    `json:"title" validate:"required"`
	Order       int       `json:"order" validate:"min=0"`
	EstDuration int       `json:"estimated_duration"`
	Lessons     []Lesson  `json:"lessons" validate:"dive"`
}
