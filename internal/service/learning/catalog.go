package learning

import (
	"context"
	"fmt"
	"sort"

	"LearnTrack/internal/models"
	"LearnTrack/pkg/logger"
)

// CatalogService serves catalog browsing and the learner dashboard. The
// dashboard falls back to the local progress cache when the API is
// unreachable, so "my courses" still renders offline.
type CatalogService struct {
	log   logger.Log
	api   catalogAPI
	cache ProgressCache // optional
}

func NewCatalogService(log logger.Log, api catalogAPI, cache ProgressCache) *CatalogService {
	return &CatalogService{log: log, api: api, cache: cache}
}

func (c *CatalogService) Courses(ctx context.Context) ([]models.CoursePreview, error) {
	previews, err := c.api.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	return previews, nil
}

// MyCourses returns the viewer's enrolled courses ordered by most recent
// access. The second return value reports whether the rows came from the
// offline cache instead of the API.
func (c *CatalogService) MyCourses(ctx context.Context) ([]models.EnrolledCourse, bool, error) {
	rows, err := c.api.ListMyCourses(ctx)
	if err == nil {
		sortByLastAccess(rows)
		c.refreshCache(ctx, rows)
		return rows, false, nil
	}

	if c.cache == nil {
		return nil, false, fmt.Errorf("listing enrolled courses: %w", err)
	}
	c.log.Warn("learning API unreachable, serving dashboard from cache", "error", err.Error())

	cached, cacheErr := c.cache.List(ctx)
	if cacheErr != nil {
		return nil, false, fmt.Errorf("listing enrolled courses: %w", err)
	}
	sortByLastAccess(cached)
	return cached, true, nil
}

func (c *CatalogService) refreshCache(ctx context.Context, rows []models.EnrolledCourse) {
	if c.cache == nil {
		return
	}
	for _, row := range rows {
		if err := c.cache.Upsert(ctx, row); err != nil {
			c.log.Warn("progress cache write failed", "course_id", row.CourseID.String(), "error", err.Error())
			return
		}
	}
}

func sortByLastAccess(rows []models.EnrolledCourse) {
	sort.SliceStable(rows, func(a, b int) bool {
		ta, tb := rows[a].LastAccessedAt, rows[b].LastAccessedAt
		switch {
		case ta == nil:
			return false
		case tb == nil:
			return true
		default:
			return ta.After(*tb)
		}
	})
}
