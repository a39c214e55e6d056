// Package learning coordinates the external collaborators around the pure
// core: it loads course content and enrollment state, exposes a loading
// representation until both have resolved, and applies enrollment mutations
// optimistically with rollback on failure.
package learning

import (
	"context"
	"fmt"
	"sync"
	"time"

	"LearnTrack/internal/app_errors"
	"LearnTrack/internal/content"
	"LearnTrack/internal/models"
	"LearnTrack/internal/service/access"
	"LearnTrack/internal/service/navigator"
	"LearnTrack/internal/service/progress"
	"LearnTrack/pkg/logger"

	"github.com/google/uuid"
)

// Session is one learner looking at one course. It is owned by a single
// goroutine after Load returns; the course/enrollment mutation discipline
// is single-owner, so there is no lock around the write operations.
type Session struct {
	log      logger.Log
	api      learningAPI
	cache    ProgressCache // optional
	courseID uuid.UUID
	now      func() time.Time

	course     *models.Course
	enrollment *models.Enrollment
	loaded     bool
}

func NewSession(log logger.Log, api learningAPI, cache ProgressCache, courseID uuid.UUID) *Session {
	return &Session{
		log:      log,
		api:      api,
		cache:    cache,
		courseID: courseID,
		now:      time.Now,
	}
}

// Load fetches course content and enrollment state concurrently; neither is
// assumed to arrive first. Until Load succeeds every read degrades to
// ErrCourseNotLoaded — a loading state, never a fake 0%.
func (s *Session) Load(ctx context.Context) error {
	var (
		wg         sync.WaitGroup
		course     *models.Course
		enrollment *models.Enrollment
		courseErr  error
		enrollErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		course, courseErr = s.api.FetchCourse(ctx, s.courseID)
	}()
	go func() {
		defer wg.Done()
		enrollment, enrollErr = s.api.FetchEnrollment(ctx, s.courseID)
	}()
	wg.Wait()

	if courseErr != nil {
		return fmt.Errorf("loading course %s: %w", s.courseID, courseErr)
	}
	if enrollErr != nil {
		return fmt.Errorf("loading enrollment for course %s: %w", s.courseID, enrollErr)
	}
	if err := content.Validate(course); err != nil {
		return fmt.Errorf("course %s failed validation: %w", s.courseID, err)
	}

	s.course = course
	s.enrollment = enrollment
	s.loaded = true

	if enrollment != nil {
		s.verifyServerProgress(ctx)
		s.cachePut(ctx)
	}
	return nil
}

// verifyServerProgress recomputes progress locally and compares it with the
// server's figure. The lesson-derived local value wins; a mismatch is a
// server-side cache gone stale and is only logged.
func (s *Session) verifyServerProgress(ctx context.Context) {
	server, err := s.api.FetchProgress(ctx, s.courseID)
	if err != nil || server == nil {
		if err != nil {
			s.log.Warn("could not fetch server progress", "course_id", s.courseID.String(), "error", err.Error())
		}
		return
	}
	local := s.snapshot()
	if !progress.Reconcile(local, *server) {
		s.log.Warn("server progress disagrees with lesson-derived value, keeping local",
			"course_id", s.courseID.String(),
			"local_percent", local.Percent,
			"server_percent", server.Percent)
	}
}

func (s *Session) Ready() bool { return s.loaded }

func (s *Session) Enrolled() bool { return s.loaded && s.enrollment != nil }

func (s *Session) Course() (*models.Course, error) {
	if !s.loaded {
		return nil, app_errors.ErrCourseNotLoaded
	}
	return s.course, nil
}

// Progress returns the current snapshot, recomputed from the loaded inputs.
func (s *Session) Progress() (models.ProgressSnapshot, error) {
	if !s.loaded {
		return models.ProgressSnapshot{}, app_errors.ErrCourseNotLoaded
	}
	return s.snapshot(), nil
}

// LessonStates returns the access gate state for every lesson.
func (s *Session) LessonStates() (map[uuid.UUID]access.State, error) {
	if !s.loaded {
		return nil, app_errors.ErrCourseNotLoaded
	}
	return access.ForCourse(s.course, s.enrollment), nil
}

// Resume returns the lesson "continue learning" should open, nil for an
// empty course.
func (s *Session) Resume() (*models.Lesson, error) {
	if !s.loaded {
		return nil, app_errors.ErrCourseNotLoaded
	}
	return navigator.Resume(s.course, s.snapshot()), nil
}

// Enroll creates the enrollment. Every lesson moves locked ->
// unlocked-incomplete; nothing arrives pre-completed.
func (s *Session) Enroll(ctx context.Context) error {
	if !s.loaded {
		return app_errors.ErrCourseNotLoaded
	}
	if s.enrollment != nil {
		return app_errors.ErrAlreadyEnrolled
	}
	enrollment, err := s.api.Enroll(ctx, s.courseID)
	if err != nil {
		return fmt.Errorf("enrolling in course %s: %w", s.courseID, err)
	}
	s.enrollment = enrollment
	s.cachePut(ctx)
	return nil
}

// Unenroll drops the enrollment and with it the completed set. Re-enrolling
// later starts from a fresh record.
func (s *Session) Unenroll(ctx context.Context) error {
	if !s.loaded {
		return app_errors.ErrCourseNotLoaded
	}
	if s.enrollment == nil {
		return app_errors.ErrNotEnrolled
	}
	if err := s.api.Unenroll(ctx, s.courseID); err != nil {
		return fmt.Errorf("unenrolling from course %s: %w", s.courseID, err)
	}
	s.enrollment = nil
	s.cacheDelete(ctx)
	return nil
}

// CompleteLesson marks one lesson complete: applied locally as pending,
// then committed against the server's snapshot or rolled back if the write
// fails. Completing an already-completed lesson is a no-op.
func (s *Session) CompleteLesson(ctx context.Context, lessonID uuid.UUID) (models.ProgressSnapshot, error) {
	if err := s.writeGuard(lessonID); err != nil {
		return models.ProgressSnapshot{}, err
	}
	if s.enrollment.IsLessonCompleted(lessonID) {
		return s.snapshot(), nil
	}

	w := s.beginWrite()
	s.enrollment.CompletedLessons = append(s.enrollment.CompletedLessons, lessonID)

	server, err := s.api.CompleteLesson(ctx, s.courseID, lessonID)
	if err != nil {
		w.rollback()
		return models.ProgressSnapshot{}, fmt.Errorf("completing lesson %s: %w", lessonID, err)
	}
	w.commit(ctx, server)
	return s.snapshot(), nil
}

// UncompleteLesson is the exact inverse of CompleteLesson and idempotent:
// uncompleting an incomplete lesson does nothing, including no API call.
func (s *Session) UncompleteLesson(ctx context.Context, lessonID uuid.UUID) (models.ProgressSnapshot, error) {
	if err := s.writeGuard(lessonID); err != nil {
		return models.ProgressSnapshot{}, err
	}
	if !s.enrollment.IsLessonCompleted(lessonID) {
		return s.snapshot(), nil
	}

	w := s.beginWrite()
	kept := s.enrollment.CompletedLessons[:0:0]
	for _, id := range s.enrollment.CompletedLessons {
		if id != lessonID {
			kept = append(kept, id)
		}
	}
	s.enrollment.CompletedLessons = kept
	// completion is no longer total, so the record's completion mark goes too
	s.enrollment.CompletedAt = nil

	server, err := s.api.UncompleteLesson(ctx, s.courseID, lessonID)
	if err != nil {
		w.rollback()
		return models.ProgressSnapshot{}, fmt.Errorf("uncompleting lesson %s: %w", lessonID, err)
	}
	w.commit(ctx, server)
	return s.snapshot(), nil
}

// TouchLastAccessed pings the server that the learner opened the course.
func (s *Session) TouchLastAccessed(ctx context.Context) error {
	if !s.loaded {
		return app_errors.ErrCourseNotLoaded
	}
	if s.enrollment == nil {
		return app_errors.ErrNotEnrolled
	}
	if err := s.api.TouchLastAccessed(ctx, s.courseID); err != nil {
		return fmt.Errorf("updating last accessed for course %s: %w", s.courseID, err)
	}
	t := s.now()
	s.enrollment.LastAccessedAt = &t
	return nil
}

func (s *Session) writeGuard(lessonID uuid.UUID) error {
	if !s.loaded {
		return app_errors.ErrCourseNotLoaded
	}
	if s.enrollment == nil {
		return app_errors.ErrNotEnrolled
	}
	if _, _, ok := content.FindLesson(s.course, lessonID); !ok {
		return app_errors.ErrLessonNotFound
	}
	return nil
}

func (s *Session) snapshot() models.ProgressSnapshot {
	return progress.Calculate(s.course, s.enrollment, s.now())
}

func (s *Session) cachePut(ctx context.Context) {
	if s.cache == nil || s.enrollment == nil {
		return
	}
	snap := s.snapshot()
	row := models.EnrolledCourse{
		CourseID:       s.course.ID,
		Title:          s.course.Title,
		Category:       s.course.Category,
		InstructorName: s.course.InstructorName,
		TotalLessons:   snap.TotalCount,
		EnrollmentID:   s.enrollment.ID,
		Percent:        snap.Percent,
		Status:         snap.Status,
		EnrolledAt:     s.enrollment.EnrolledAt,
		LastAccessedAt: snap.LastAccessedAt,
		CompletedAt:    snap.CompletedAt,
	}
	if err := s.cache.Upsert(ctx, row); err != nil {
		s.log.Warn("progress cache write failed", "course_id", s.courseID.String(), "error", err.Error())
	}
}

func (s *Session) cacheDelete(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, s.courseID); err != nil {
		s.log.Warn("progress cache delete failed", "course_id", s.courseID.String(), "error", err.Error())
	}
}
