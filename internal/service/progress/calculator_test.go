package progress

import (
	"testing"
	"time"

	"LearnTrack/internal/content"
	"LearnTrack/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func lesson(order int) models.Lesson {
	return models.Lesson{
		ID:      uuid.New(),
		Title:   "lesson",
		Type:    models.ContentTypeText,
		Order:   order,
		Content: models.TextContent{Body: "body"},
	}
}

// threeLessonCourse matches the reference scenario: two modules, three
// lessons total.
func threeLessonCourse(t *testing.T) (*models.Course, []uuid.UUID) {
	t.Helper()
	c := &models.Course{
		ID:    uuid.New(),
		Title: "course",
		Modules: []models.Module{
			{ID: uuid.New(), Title: "m1", Order: 1, Lessons: []models.Lesson{lesson(1), lesson(2)}},
			{ID: uuid.New(), Title: "m2", Order: 2, Lessons: []models.Lesson{lesson(1)}},
		},
	}
	require.NoError(t, content.Validate(c))

	var ids []uuid.UUID
	for _, l := range content.Flatten(c) {
		ids = append(ids, l.ID)
	}
	return c, ids
}

func enrollment(courseID uuid.UUID, completed ...uuid.UUID) *models.Enrollment {
	return &models.Enrollment{
		ID:               uuid.New(),
		CourseID:         courseID,
		Status:           models.StatusStarted,
		CompletedLessons: completed,
		EnrolledAt:       now.Add(-24 * time.Hour),
	}
}

func TestCalculate_EmptyCourse(t *testing.T) {
	c := &models.Course{ID: uuid.New(), Title: "empty"}
	require.NoError(t, content.Validate(c))

	snap := Calculate(c, enrollment(c.ID), now)

	assert.Equal(t, 0, snap.Percent)
	assert.Equal(t, models.StatusStarted, snap.Status)
	assert.Nil(t, snap.CompletedAt)
}

func TestCalculate_NilInputs(t *testing.T) {
	snap := Calculate(nil, nil, now)

	assert.Equal(t, 0, snap.Percent)
	assert.Equal(t, models.StatusStarted, snap.Status)
	assert.Empty(t, snap.CompletedLessons)
}

func TestCalculate_PartialProgress(t *testing.T) {
	c, ids := threeLessonCourse(t)

	snap := Calculate(c, enrollment(c.ID, ids[0]), now)

	assert.Equal(t, 33, snap.Percent)
	assert.Equal(t, models.StatusInProgress, snap.Status)
	assert.Equal(t, 1, snap.CompletedCount)
	assert.Equal(t, 3, snap.TotalCount)
	assert.Nil(t, snap.CompletedAt)
}

func TestCalculate_Completed(t *testing.T) {
	c, ids := threeLessonCourse(t)

	snap := Calculate(c, enrollment(c.ID, ids...), now)

	assert.Equal(t, 100, snap.Percent)
	assert.Equal(t, models.StatusCompleted, snap.Status)
	require.NotNil(t, snap.CompletedAt)
	assert.Equal(t, now, *snap.CompletedAt)
	// both modules derived complete
	assert.Len(t, snap.CompletedModules, 2)
}

func TestCalculate_CompletionTimestampSetOnce(t *testing.T) {
	c, ids := threeLessonCourse(t)
	e := enrollment(c.ID, ids...)
	first := now.Add(-time.Hour)
	e.CompletedAt = &first

	snap := Calculate(c, e, now)

	require.NotNil(t, snap.CompletedAt)
	assert.Equal(t, first, *snap.CompletedAt)
}

func TestCalculate_StaleReferenceExcluded(t *testing.T) {
	c, ids := threeLessonCourse(t)
	stale := uuid.New()

	snap := Calculate(c, enrollment(c.ID, ids[0], stale), now)

	assert.Equal(t, 1, snap.CompletedCount)
	assert.Equal(t, 33, snap.Percent)
	assert.NotContains(t, snap.CompletedLessons, stale)
}

func TestCalculate_ModuleCompletionDerived(t *testing.T) {
	c, ids := threeLessonCourse(t)

	// all of module 1 (first two flattened lessons) done, module 2 not
	snap := Calculate(c, enrollment(c.ID, ids[0], ids[1]), now)

	assert.Equal(t, []uuid.UUID{c.Modules[0].ID}, snap.CompletedModules)
	assert.False(t, snap.IsModuleCompleted(c.Modules[1].ID))
}

func TestPercent(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
		{1, 2, 50},
		{1, 8, 13}, // 12.5 rounds half-up
		{5, 3, 100},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Percent(tc.completed, tc.total), "%d/%d", tc.completed, tc.total)
	}
}

func TestPercent_Bounds(t *testing.T) {
	for completed := 0; completed <= 7; completed++ {
		for total := 0; total <= 7; total++ {
			p := Percent(completed, total)
			assert.GreaterOrEqual(t, p, 0)
			assert.LessOrEqual(t, p, 100)
			if total > 0 {
				assert.Equal(t, completed >= total, p == 100, "%d/%d", completed, total)
			}
		}
	}
}

func TestModuleCompleted_EmptyModuleVacuouslyTrue(t *testing.T) {
	m := &models.Module{ID: uuid.New(), Title: "empty", Order: 1}
	assert.True(t, ModuleCompleted(m, nil))
}

func TestReconcile(t *testing.T) {
	c, ids := threeLessonCourse(t)
	local := Calculate(c, enrollment(c.ID, ids[0]), now)

	server := local
	assert.True(t, Reconcile(local, server))

	server.Percent = 50
	assert.False(t, Reconcile(local, server))
}
