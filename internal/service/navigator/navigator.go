// Package navigator answers adjacency questions over a course's flattened
// lesson sequence: previous/next around a lesson, the first incomplete
// lesson, and where "continue" should land.
package navigator

import (
	"LearnTrack/internal/content"
	"LearnTrack/internal/models"

	"github.com/google/uuid"
)

// Previous returns the lesson immediately before the given one in flattened
// order. Nil when the lesson is first or the id is not in the course —
// stale deep links degrade to "no neighbors" instead of failing.
func Previous(course *models.Course, lessonID uuid.UUID) *models.Lesson {
	var prev *models.Lesson
	for _, l := range content.Flatten(course) {
		if l.ID == lessonID {
			return prev
		}
		prev = l
	}
	return nil
}

// Next returns the lesson immediately after the given one, nil at the end
// or for an unknown id.
func Next(course *models.Course, lessonID uuid.UUID) *models.Lesson {
	found := false
	for _, l := range content.Flatten(course) {
		if found {
			return l
		}
		found = l.ID == lessonID
	}
	return nil
}

// First returns the first lesson of the course, nil when it has none.
func First(course *models.Course) *models.Lesson {
	for _, l := range content.Flatten(course) {
		return l
	}
	return nil
}

// FirstIncomplete returns the first lesson not in the snapshot's completed
// set. Nil when everything is complete; the caller routes to a "finished"
// affordance, not an error.
func FirstIncomplete(course *models.Course, snap models.ProgressSnapshot) *models.Lesson {
	for _, l := range content.Flatten(course) {
		if !snap.IsLessonCompleted(l.ID) {
			return l
		}
	}
	return nil
}

// Resume is where "continue learning" lands: the first lesson when nothing
// is done yet, the first incomplete lesson otherwise, and the first lesson
// again when the course is fully complete — always somewhere playable.
func Resume(course *models.Course, snap models.ProgressSnapshot) *models.Lesson {
	if snap.CompletedCount == 0 {
		return First(course)
	}
	if l := FirstIncomplete(course, snap); l != nil {
		return l
	}
	return First(course)
}

// Position returns the 1-based index of a lesson in the flattened sequence
// and the sequence length, for "Lesson 3 of 12" affordances.
func Position(course *models.Course, lessonID uuid.UUID) (index, total int, ok bool) {
	i := 0
	for _, l := range content.Flatten(course) {
		i++
		if l.ID == lessonID {
			index, ok = i, true
		}
	}
	return index, i, ok
}
