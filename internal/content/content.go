// Package content owns the static course structure: fail-fast validation on
// construction and the canonical flattened traversal order every other
// component (progress, navigation, access) is defined against.
package content

import (
	"fmt"
	"iter"
	"sort"

	"LearnTrack/internal/app_errors"
	"LearnTrack/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// Validate checks the structural invariants of a course and normalizes it:
// modules and lessons are sorted by their order values in place. Order
// values must be unique within their parent; a lesson's payload must match
// its declared content type. Violations are construction errors, never
// silently defaulted — defaulting is how ordering drift starts.
func Validate(course *models.Course) error {
	if course == nil {
		return app_errors.ErrCourseNotFound
	}
	if err := validate.Struct(course); err != nil {
		return fmt.Errorf("course %s: %w", course.ID, err)
	}

	moduleOrders := make(map[int]uuid.UUID, len(course.Modules))
	for mi := range course.Modules {
		m := &course.Modules[mi]
		if prev, ok := moduleOrders[m.Order]; ok {
			return fmt.Errorf("course %s: modules %s and %s share order %d: %w",
				course.ID, prev, m.ID, m.Order, app_errors.ErrDuplicateModule)
		}
		moduleOrders[m.Order] = m.ID

		lessonOrders := make(map[int]uuid.UUID, len(m.Lessons))
		for li := range m.Lessons {
			l := &m.Lessons[li]
			if prev, ok := lessonOrders[l.Order]; ok {
				return fmt.Errorf("module %s: lessons %s and %s share order %d: %w",
					m.ID, prev, l.ID, l.Order, app_errors.ErrDuplicateLesson)
			}
			lessonOrders[l.Order] = l.ID

			if err := validateLessonContent(l); err != nil {
				return err
			}
		}
		sort.Slice(m.Lessons, func(a, b int) bool { return m.Lessons[a].Order < m.Lessons[b].Order })
	}
	sort.Slice(course.Modules, func(a, b int) bool { return course.Modules[a].Order < course.Modules[b].Order })
	return nil
}

func validateLessonContent(l *models.Lesson) error {
	switch l.Type {
	case models.ContentTypeVideo, models.ContentTypeText, models.ContentTypeDocument:
	default:
		return fmt.Errorf("lesson %s type %q: %w", l.ID, l.Type, app_errors.ErrUnknownContentType)
	}
	if l.Content == nil {
		return fmt.Errorf("lesson %s (%s): %w", l.ID, l.Type, app_errors.ErrMissingContent)
	}
	if l.Content.ContentType() != l.Type {
		return fmt.Errorf("lesson %s declares %s but carries %s: %w",
			l.ID, l.Type, l.Content.ContentType(), app_errors.ErrContentMismatch)
	}
	return nil
}

// TotalLessons counts lessons across all modules. Zero for an empty course.
func TotalLessons(course *models.Course) int {
	if course == nil {
		return 0
	}
	total := 0
	for i := range course.Modules {
		total += len(course.Modules[i].Lessons)
	}
	return total
}

// Flatten yields (module, lesson) pairs in module order then lesson order,
// assuming the course passed Validate. The sequence is lazy and restartable;
// it is the single ordering "next", "resume" and "locked" are defined on.
func Flatten(course *models.Course) iter.Seq2[*models.Module, *models.Lesson] {
	return func(yield func(*models.Module, *models.Lesson) bool) {
		if course == nil {
			return
		}
		for mi := range course.Modules {
			m := &course.Modules[mi]
			for li := range m.Lessons {
				if !yield(m, &m.Lessons[li]) {
					return
				}
			}
		}
	}
}

// LessonIDs returns the set of lesson ids present in the course, used to
// drop stale completion references.
func LessonIDs(course *models.Course) map[uuid.UUID]struct{} {
	ids := make(map[uuid.UUID]struct{}, TotalLessons(course))
	for _, l := range Flatten(course) {
		ids[l.ID] = struct{}{}
	}
	return ids
}

// FindLesson locates a lesson and its module by id, in flattened order.
func FindLesson(course *models.Course, lessonID uuid.UUID) (*models.Module, *models.Lesson, bool) {
	for m, l := range Flatten(course) {
		if l.ID == lessonID {
			return m, l, true
		}
	}
	return nil, nil, false
}
