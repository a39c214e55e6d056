package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"LearnTrack/internal/app_errors"
	"LearnTrack/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{})           {}
func (nopLogger) Info(string, ...interface{})            {}
func (nopLogger) Warn(string, ...interface{})            {}
func (nopLogger) Error(string, ...interface{})           {}
func (nopLogger) ErrorErr(string, error, ...interface{}) {}
func (nopLogger) FatalErr(string, error, ...interface{}) {}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(nopLogger{}, srv.URL, "test-token", 2*time.Second)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestFetchCourse_DecodesContentVariants(t *testing.T) {
	courseID := uuid.New()
	lessonID := uuid.New()
	payload := map[string]any{
		"id":    courseID,
		"title": "Go course",
		"modules": []map[string]any{
			{
				"id":    uuid.New(),
				"title": "m1",
				"order": 1,
				"lessons": []map[string]any{
					{
						"id":           lessonID,
						"title":        "intro",
						"content_type": "video",
						"order":        1,
						"content_data": map[string]any{
							"video_url":  "https://cdn.example.com/intro.mp4",
							"transcript": "hello",
							"timestamps": []map[string]any{{"time": 30, "label": "setup"}},
						},
					},
				},
			},
		},
	}

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/courses/"+courseID.String()+"/", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, payload)
	}))

	course, err := c.FetchCourse(context.Background(), courseID)
	require.NoError(t, err)
	require.Len(t, course.Modules, 1)
	require.Len(t, course.Modules[0].Lessons, 1)

	l := course.Modules[0].Lessons[0]
	assert.Equal(t, models.ContentTypeVideo, l.Type)
	video, ok := l.Content.(models.VideoContent)
	require.True(t, ok, "content must decode into the video variant")
	assert.Equal(t, "https://cdn.example.com/intro.mp4", video.SourceURL)
	require.Len(t, video.Timestamps, 1)
	assert.Equal(t, 30, video.Timestamps[0].Seconds)
}

func TestFetchCourse_UnknownContentTypeRejected(t *testing.T) {
	courseID := uuid.New()
	payload := map[string]any{
		"id":    courseID,
		"title": "bad",
		"modules": []map[string]any{
			{"id": uuid.New(), "title": "m", "order": 1, "lessons": []map[string]any{
				{"id": uuid.New(), "title": "x", "content_type": "podcast", "order": 1,
					"content_data": map[string]any{"audio_url": "x"}},
			}},
		},
	}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, payload)
	}))

	_, err := c.FetchCourse(context.Background(), courseID)
	require.Error(t, err)
}

func TestFetchCourse_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]string{"error": "Course not found"})
	}))

	_, err := c.FetchCourse(context.Background(), uuid.New())
	assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)
}

func TestFetchEnrollment_NotEnrolled(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"is_enrolled": false})
	}))

	enrollment, err := c.FetchEnrollment(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, enrollment)
}

func TestFetchEnrollment_Enrolled(t *testing.T) {
	enrollmentID := uuid.New()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"is_enrolled": true,
			"enrollment": map[string]any{
				"id":          enrollmentID,
				"status":      "in_progress",
				"enrolled_at": time.Now().UTC(),
			},
		})
	}))

	enrollment, err := c.FetchEnrollment(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, enrollment)
	assert.Equal(t, enrollmentID, enrollment.ID)
	assert.Equal(t, models.StatusInProgress, enrollment.Status)
}

func TestFetchProgress_RoundsPercent(t *testing.T) {
	lessons := []uuid.UUID{uuid.New()}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"enrollment_id":    uuid.New(),
			"course_id":        uuid.New(),
			"progress":         33.333333,
			"status":           "in_progress",
			"completedLessons": lessons,
			"completedModules": []uuid.UUID{},
		})
	}))

	snap, err := c.FetchProgress(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 33, snap.Percent)
	assert.Equal(t, 1, snap.CompletedCount)
}

func TestCompleteLesson_Paths(t *testing.T) {
	courseID, lessonID := uuid.New(), uuid.New()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		want := fmt.Sprintf("/learning/courses/%s/lessons/%s/complete/", courseID, lessonID)
		assert.Equal(t, want, r.URL.Path)
		switch r.Method {
		case http.MethodPost, http.MethodDelete:
			writeJSON(t, w, http.StatusOK, map[string]any{"progress": 50.0, "status": "in_progress"})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	snap, err := c.CompleteLesson(context.Background(), courseID, lessonID)
	require.NoError(t, err)
	assert.Equal(t, 50, snap.Percent)

	snap, err = c.UncompleteLesson(context.Background(), courseID, lessonID)
	require.NoError(t, err)
	assert.Equal(t, 50, snap.Percent)
}

func TestUnenroll_NotEnrolled(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, map[string]string{"error": "Not enrolled in this course"})
	}))

	err := c.Unenroll(context.Background(), uuid.New())
	assert.ErrorIs(t, err, app_errors.ErrNotEnrolled)
}

func TestUnauthorized(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := c.ListMyCourses(context.Background())
	assert.ErrorIs(t, err, app_errors.ErrUnauthorized)
}

func TestListCourses_Paginated(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"count": 2,
			"results": []map[string]any{
				{"id": uuid.New(), "title": "Go"},
				{"id": uuid.New(), "title": "SQL"},
			},
		})
	}))

	previews, err := c.ListCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, previews, 2)
	assert.Equal(t, "Go", previews[0].Title)
}
