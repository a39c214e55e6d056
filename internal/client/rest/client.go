// Package rest is the HTTP implementation of the learning platform API the
// services consume. It maps HTTP outcomes onto the app's typed errors; it
// never retries on its own.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"LearnTrack/internal/app_errors"
	"LearnTrack/internal/models"
	"LearnTrack/pkg/logger"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

type Client struct {
	log  logger.Log
	http *resty.Client
}

func New(log logger.Log, baseURL, token string, timeout time.Duration) *Client {
	r := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if token != "" {
		r.SetAuthToken(token)
	}
	return &Client{log: log, http: r}
}

// paginated mirrors the platform's list envelope.
type paginated[T any] struct {
	Count   int    `json:"count"`
	Next    string `json:"next"`
	Results []T    `json:"results"`
}

type enrollmentStatus struct {
	IsEnrolled bool               `json:"is_enrolled"`
	Enrollment *models.Enrollment `json:"enrollment"`
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) FetchCourse(ctx context.Context, courseID uuid.UUID) (*models.Course, error) {
	var course models.Course
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&course).
		Get(fmt.Sprintf("/courses/%s/", courseID))
	if err := c.check(resp, err, "fetch course"); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *Client) ListCourses(ctx context.Context) ([]models.CoursePreview, error) {
	var page paginated[models.CoursePreview]
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&page).
		Get("/courses/")
	if err := c.check(resp, err, "list courses"); err != nil {
		return nil, err
	}
	return page.Results, nil
}

func (c *Client) ListMyCourses(ctx context.Context) ([]models.EnrolledCourse, error) {
	var rows []models.EnrolledCourse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&rows).
		Get("/learning/my-courses/")
	if err := c.check(resp, err, "list my courses"); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) FetchEnrollment(ctx context.Context, courseID uuid.UUID) (*models.Enrollment, error) {
	var status enrollmentStatus
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&status).
		Get(fmt.Sprintf("/learning/courses/%s/enrollment-status/", courseID))
	if err := c.check(resp, err, "fetch enrollment status"); err != nil {
		return nil, err
	}
	if !status.IsEnrolled {
		return nil, nil
	}
	return status.Enrollment, nil
}

func (c *Client) FetchProgress(ctx context.Context, courseID uuid.UUID) (*models.ProgressSnapshot, error) {
	var wire progressWire
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&wire).
		Get(fmt.Sprintf("/learning/courses/%s/progress/", courseID))
	if err := c.check(resp, err, "fetch progress"); err != nil {
		return nil, err
	}
	snap := wire.snapshot()
	return &snap, nil
}

func (c *Client) Enroll(ctx context.Context, courseID uuid.UUID) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&enrollment).
		Post(fmt.Sprintf("/learning/courses/%s/enroll/", courseID))
	if err := c.check(resp, err, "enroll"); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (c *Client) Unenroll(ctx context.Context, courseID uuid.UUID) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Post(fmt.Sprintf("/learning/courses/%s/unenroll/", courseID))
	return c.check(resp, err, "unenroll")
}

func (c *Client) CompleteLesson(ctx context.Context, courseID, lessonID uuid.UUID) (*models.ProgressSnapshot, error) {
	var wire progressWire
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&wire).
		Post(fmt.Sprintf("/learning/courses/%s/lessons/%s/complete/", courseID, lessonID))
	if err := c.check(resp, err, "complete lesson"); err != nil {
		return nil, err
	}
	snap := wire.snapshot()
	return &snap, nil
}

func (c *Client) UncompleteLesson(ctx context.Context, courseID, lessonID uuid.UUID) (*models.ProgressSnapshot, error) {
	var wire progressWire
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&wire).
		Delete(fmt.Sprintf("/learning/courses/%s/lessons/%s/complete/", courseID, lessonID))
	if err := c.check(resp, err, "uncomplete lesson"); err != nil {
		return nil, err
	}
	snap := wire.snapshot()
	return &snap, nil
}

func (c *Client) TouchLastAccessed(ctx context.Context, courseID uuid.UUID) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Post(fmt.Sprintf("/learning/courses/%s/last-accessed/", courseID))
	return c.check(resp, err, "touch last accessed")
}

// check folds transport errors and HTTP status codes into the app's error
// taxonomy. Write conflicts surface as typed errors the caller may retry;
// they are never retried here.
func (c *Client) check(resp *resty.Response, err error, op string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if resp.IsSuccess() {
		return nil
	}
	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%s: %w", op, app_errors.ErrUnauthorized)
	case http.StatusNotFound:
		if op == "complete lesson" || op == "uncomplete lesson" {
			return fmt.Errorf("%s: %w", op, app_errors.ErrLessonNotFound)
		}
		return fmt.Errorf("%s: %w", op, app_errors.ErrCourseNotFound)
	case http.StatusConflict:
		return fmt.Errorf("%s: %w", op, app_errors.ErrAlreadyEnrolled)
	case http.StatusBadRequest:
		if msg := decodeAPIError(resp); msg == "Not enrolled in this course" {
			return fmt.Errorf("%s: %w", op, app_errors.ErrNotEnrolled)
		}
	}
	c.log.Debug("unexpected API response", "op", op, "status", resp.StatusCode(), "body", resp.String())
	return fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode())
}

func decodeAPIError(resp *resty.Response) string {
	var e apiError
	if err := json.Unmarshal(resp.Body(), &e); err != nil {
		return ""
	}
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// progressWire decodes the server's progress payload; the percent arrives
// as a float and is rounded into the 0..100 integer the model carries.
type progressWire struct {
	EnrollmentID     uuid.UUID               `json:"enrollment_id"`
	CourseID         uuid.UUID               `json:"course_id"`
	Progress         float64                 `json:"progress"`
	Status           models.EnrollmentStatus `json:"status"`
	CompletedLessons []uuid.UUID             `json:"completedLessons"`
	CompletedModules []uuid.UUID             `json:"completedModules"`
	LastAccessedAt   *time.Time              `json:"last_accessed_at"`
	CompletedAt      *time.Time              `json:"completed_at"`
}

func (w progressWire) snapshot() models.ProgressSnapshot {
	return models.ProgressSnapshot{
		EnrollmentID:     w.EnrollmentID,
		CourseID:         w.CourseID,
		Percent:          int(math.Round(w.Progress)),
		Status:           w.Status,
		CompletedLessons: w.CompletedLessons,
		CompletedModules: w.CompletedModules,
		CompletedCount:   len(w.CompletedLessons),
		LastAccessedAt:   w.LastAccessedAt,
		CompletedAt:      w.CompletedAt,
	}
}
