package learning

import (
	"context"
	"time"

	"LearnTrack/internal/models"
	"LearnTrack/internal/service/progress"

	"github.com/google/uuid"
)

type writeState int

const (
	writePending writeState = iota
	writeCommitted
	writeRolledBack
)

// write tracks one speculative enrollment mutation through its three
// states: pending (applied locally, request in flight), committed (server
// confirmed, its snapshot adopted) or rolled back (request failed, prior
// state restored). A failed request is not retried here; the error goes
// back to the caller.
type write struct {
	session         *Session
	state           writeState
	prevCompleted   []uuid.UUID
	prevStatus      models.EnrollmentStatus
	prevCompletedAt *time.Time
}

// beginWrite snapshots the enrollment fields a completion write may touch.
// The caller applies its pending change right after.
func (s *Session) beginWrite() *write {
	return &write{
		session:         s,
		state:           writePending,
		prevCompleted:   append([]uuid.UUID(nil), s.enrollment.CompletedLessons...),
		prevStatus:      s.enrollment.Status,
		prevCompletedAt: s.enrollment.CompletedAt,
	}
}

// rollback restores the pre-write enrollment state.
func (w *write) rollback() {
	if w.state != writePending {
		return
	}
	e := w.session.enrollment
	e.CompletedLessons = w.prevCompleted
	e.Status = w.prevStatus
	e.CompletedAt = w.prevCompletedAt
	w.state = writeRolledBack
}

// commit adopts the server's authoritative snapshot into the enrollment and
// refreshes the cache. If the server figure disagrees with the local
// lesson-derived one the local value still wins for display; the mismatch
// is logged.
func (w *write) commit(ctx context.Context, server *models.ProgressSnapshot) {
	if w.state != writePending {
		return
	}
	s := w.session
	if server != nil {
		e := s.enrollment
		e.CompletedLessons = append([]uuid.UUID(nil), server.CompletedLessons...)
		e.Status = server.Status
		e.CompletedAt = server.CompletedAt
		e.LastAccessedAt = server.LastAccessedAt

		if local := s.snapshot(); !progress.Reconcile(local, *server) {
			s.log.Warn("server snapshot disagrees after write, keeping lesson-derived value",
				"course_id", s.courseID.String(),
				"local_percent", local.Percent,
				"server_percent", server.Percent)
		}
	}
	w.state = writeCommitted
	s.cachePut(ctx)
}
