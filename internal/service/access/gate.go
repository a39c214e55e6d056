// Package access decides what a viewer may do with each lesson: open it,
// see it marked complete, or see it locked behind enrollment.
package access

import (
	"LearnTrack/internal/content"
	"LearnTrack/internal/models"

	"github.com/google/uuid"
)

type State string

const (
	Locked     State = "locked"
	Incomplete State = "unlocked_incomplete"
	Complete   State = "unlocked_complete"
)

// CanOpen reports whether the lesson may be opened in this state.
func (s State) CanOpen() bool { return s != Locked }

// ForLesson returns the render state of one lesson for a viewer. A nil
// enrollment means not enrolled: every lesson is locked. There is no path
// from locked straight to complete — completion state only exists behind an
// enrollment.
func ForLesson(enrollment *models.Enrollment, lessonID uuid.UUID) State {
	if enrollment == nil {
		return Locked
	}
	if enrollment.IsLessonCompleted(lessonID) {
		return Complete
	}
	return Incomplete
}

// ForCourse maps every lesson of the course to its state in one pass.
func ForCourse(course *models.Course, enrollment *models.Enrollment) map[uuid.UUID]State {
	states := make(map[uuid.UUID]State, content.TotalLessons(course))
	done := enrollment.CompletedSet()
	for _, l := range content.Flatten(course) {
		switch {
		case enrollment == nil:
			states[l.ID] = Locked
		case hasLesson(done, l.ID):
			states[l.ID] = Complete
		default:
			states[l.ID] = Incomplete
		}
	}
	return states
}

func hasLesson(done map[uuid.UUID]struct{}, id uuid.UUID) bool {
	_, ok := done[id]
	return ok
}
