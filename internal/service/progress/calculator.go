// Package progress derives a ProgressSnapshot from a course and an
// enrollment. Pure: no I/O, no ambient session, same inputs same output.
package progress

import (
	"math"
	"time"

	"LearnTrack/internal/content"
	"LearnTrack/internal/models"

	"github.com/google/uuid"
)

// Calculate builds the snapshot for an enrollment in a course.
//
// Completed-lesson ids that no longer exist in the course are excluded from
// every figure: content edits must not leave progress above 100% or count
// ghosts. A course with zero lessons is 0% complete, not NaN. The completion
// timestamp is set at most once — a recompute over an already-completed
// enrollment keeps the original timestamp.
func Calculate(course *models.Course, enrollment *models.Enrollment, now time.Time) models.ProgressSnapshot {
	snap := models.ProgressSnapshot{
		Status:           models.StatusStarted,
		CompletedLessons: []uuid.UUID{},
		CompletedModules: []uuid.UUID{},
	}
	if course != nil {
		snap.CourseID = course.ID
		snap.TotalCount = content.TotalLessons(course)
	}
	if enrollment == nil {
		return snap
	}

	snap.EnrollmentID = enrollment.ID
	snap.LastAccessedAt = enrollment.LastAccessedAt

	done := enrollment.CompletedSet()
	for _, l := range content.Flatten(course) {
		if _, ok := done[l.ID]; ok {
			snap.CompletedLessons = append(snap.CompletedLessons, l.ID)
		}
	}
	snap.CompletedCount = len(snap.CompletedLessons)
	snap.Percent = Percent(snap.CompletedCount, snap.TotalCount)

	if course != nil {
		for mi := range course.Modules {
			m := &course.Modules[mi]
			if ModuleCompleted(m, done) {
				snap.CompletedModules = append(snap.CompletedModules, m.ID)
			}
		}
	}

	switch {
	case snap.TotalCount > 0 && snap.CompletedCount == snap.TotalCount:
		snap.Status = models.StatusCompleted
		if enrollment.CompletedAt != nil {
			snap.CompletedAt = enrollment.CompletedAt
		} else {
			t := now
			snap.CompletedAt = &t
		}
	case snap.CompletedCount > 0:
		snap.Status = models.StatusInProgress
	default:
		snap.Status = models.StatusStarted
	}
	return snap
}

// Percent rounds half-up to an integer in [0,100]. Zero total is 0%.
func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// ModuleCompleted reports whether every lesson of the module is in the
// completed set. An empty module is vacuously complete; that is a content
// authoring problem, not a progress one.
func ModuleCompleted(m *models.Module, done map[uuid.UUID]struct{}) bool {
	for i := range m.Lessons {
		if _, ok := done[m.Lessons[i].ID]; !ok {
			return false
		}
	}
	return true
}

// Reconcile compares a server-computed snapshot with the locally derived
// one. The lesson-derived local value is the source of truth; the server
// figure is a cache. Returns true when the two agree on the fields that
// drive the UI.
func Reconcile(local, server models.ProgressSnapshot) bool {
	return local.Percent == server.Percent &&
		local.Status == server.Status &&
		local.CompletedCount == len(server.CompletedLessons)
}
