// Package sqlite keeps the last known dashboard rows on disk so "my
// courses" renders without the API. The rows are derived values; anything
// here is overwritten by the next successful recompute and is never treated
// as a source of truth.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"LearnTrack/internal/models"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS enrolled_courses (
	course_id       TEXT PRIMARY KEY,
	enrollment_id   TEXT NOT NULL,
	title           TEXT NOT NULL,
	category        TEXT NOT NULL DEFAULT '',
	instructor_name TEXT NOT NULL DEFAULT '',
	total_lessons   INTEGER NOT NULL DEFAULT 0,
	percent         INTEGER NOT NULL DEFAULT 0,
	status          TEXT NOT NULL,
	enrolled_at     TIMESTAMP NOT NULL,
	last_accessed_at TIMESTAMP,
	completed_at    TIMESTAMP,
	cached_at       TIMESTAMP NOT NULL
);`

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return db, nil
}

type ProgressCache struct {
	db *sql.DB
}

func NewProgressCache(db *sql.DB) *ProgressCache {
	return &ProgressCache{db: db}
}

func (c *ProgressCache) Upsert(ctx context.Context, row models.EnrolledCourse) error {
	query := `INSERT OR REPLACE INTO enrolled_courses
		(course_id, enrollment_id, title, category, instructor_name, total_lessons,
		 percent, status, enrolled_at, last_accessed_at, completed_at, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := c.db.ExecContext(ctx, query,
		row.CourseID.String(),
		row.EnrollmentID.String(),
		row.Title,
		row.Category,
		row.InstructorName,
		row.TotalLessons,
		row.Percent,
		string(row.Status),
		row.EnrolledAt,
		row.LastAccessedAt,
		row.CompletedAt,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("caching course %s: %w", row.CourseID, err)
	}
	return nil
}

func (c *ProgressCache) List(ctx context.Context) ([]models.EnrolledCourse, error) {
	query := `SELECT course_id, enrollment_id, title, category, instructor_name,
		total_lessons, percent, status, enrolled_at, last_accessed_at, completed_at
		FROM enrolled_courses`
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing cached courses: %w", err)
	}
	defer rows.Close()

	var out []models.EnrolledCourse
	for rows.Next() {
		var (
			r                      models.EnrolledCourse
			courseID, enrollmentID string
			status                 string
			lastAccessed           sql.NullTime
			completed              sql.NullTime
		)
		err := rows.Scan(&courseID, &enrollmentID, &r.Title, &r.Category,
			&r.InstructorName, &r.TotalLessons, &r.Percent, &status,
			&r.EnrolledAt, &lastAccessed, &completed)
		if err != nil {
			return nil, fmt.Errorf("scanning cached course: %w", err)
		}
		if r.CourseID, err = uuid.Parse(courseID); err != nil {
			return nil, fmt.Errorf("cached course id %q: %w", courseID, err)
		}
		if r.EnrollmentID, err = uuid.Parse(enrollmentID); err != nil {
			return nil, fmt.Errorf("cached enrollment id %q: %w", enrollmentID, err)
		}
		r.Status = models.EnrollmentStatus(status)
		if lastAccessed.Valid {
			t := lastAccessed.Time
			r.LastAccessedAt = &t
		}
		if completed.Valid {
			t := completed.Time
			r.CompletedAt = &t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (c *ProgressCache) Delete(ctx context.Context, courseID uuid.UUID) error {
	_, err := c.db.ExecContext(ctx,
		`DELETE FROM enrolled_courses WHERE course_id = ?`, courseID.String())
	if err != nil {
		return fmt.Errorf("evicting cached course %s: %w", courseID, err)
	}
	return nil
}
