// Package cli is the terminal front-end: catalog browsing, the learner
// dashboard, and per-course enrollment and lesson operations.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"LearnTrack/internal/client/rest"
	"LearnTrack/internal/content"
	"LearnTrack/internal/models"
	"LearnTrack/internal/service/access"
	"LearnTrack/internal/service/learning"
	"LearnTrack/internal/service/navigator"
	"LearnTrack/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type App struct {
	log   logger.Log
	api   *rest.Client
	cache learning.ProgressCache
	out   io.Writer
}

func New(log logger.Log, api *rest.Client, cache learning.ProgressCache) *App {
	return &App{log: log, api: api, cache: cache, out: os.Stdout}
}

func (a *App) Root() *cobra.Command {
	root := &cobra.Command{
		Use:           "learntrack",
		Short:         "Track your course progress from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		a.coursesCmd(),
		a.dashboardCmd(),
		a.showCmd(),
		a.enrollCmd(),
		a.unenrollCmd(),
		a.completeCmd(),
		a.uncompleteCmd(),
		a.openCmd(),
	)
	return root
}

func (a *App) coursesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "courses",
		Short: "List the course catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := learning.NewCatalogService(a.log, a.api, a.cache)
			previews, err := catalog.Courses(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tRATING\tSTUDENTS")
			for _, p := range previews {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%d\n", p.ID, p.Title, p.Category, p.Rating, p.StudentsCount)
			}
			return w.Flush()
		},
	}
}

func (a *App) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show your enrolled courses and progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := learning.NewCatalogService(a.log, a.api, a.cache)
			rows, fromCache, err := catalog.MyCourses(cmd.Context())
			if err != nil {
				return err
			}
			if fromCache {
				fmt.Fprintln(a.out, "(offline: showing cached progress)")
			}
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPROGRESS\tSTATUS")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\t%d%%\t%s\n", r.CourseID, r.Title, r.Percent, r.Status)
			}
			return w.Flush()
		},
	}
}

func (a *App) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <course-id>",
		Short: "Show a course outline with your progress and lesson states",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			course, _ := s.Course()
			fmt.Fprintf(a.out, "%s — %s\n", course.Title, course.InstructorName)

			if s.Enrolled() {
				snap, err := s.Progress()
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Progress: %d%% (%d/%d lessons, %s)\n",
					snap.Percent, snap.CompletedCount, snap.TotalCount, snap.Status)
				if resume, _ := s.Resume(); resume != nil {
					fmt.Fprintf(a.out, "Continue with: %s (%s)\n", resume.Title, resume.ID)
				}
			} else {
				fmt.Fprintln(a.out, "Not enrolled — lessons are locked.")
			}

			states, err := s.LessonStates()
			if err != nil {
				return err
			}
			a.printOutline(course, states)
			return nil
		},
	}
}

func (a *App) printOutline(course *models.Course, states map[uuid.UUID]access.State) {
	for mi := range course.Modules {
		m := &course.Modules[mi]
		fmt.Fprintf(a.out, "\n%d. %s\n", m.Order, m.Title)
		for li := range m.Lessons {
			l := &m.Lessons[li]
			fmt.Fprintf(a.out, "   %s %s (%s, %d min)  %s\n",
				marker(states[l.ID]), l.Title, l.Type, l.EstDuration, l.ID)
		}
	}
}

func marker(s access.State) string {
	switch s {
	case access.Complete:
		return "[x]"
	case access.Incomplete:
		return "[ ]"
	default:
		return "[#]"
	}
}

func (a *App) enrollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enroll <course-id>",
		Short: "Enroll in a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := s.Enroll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Enrolled. All lessons are now unlocked.")
			return nil
		},
	}
}

func (a *App) unenrollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unenroll <course-id>",
		Short: "Unenroll from a course (your completion history is discarded)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := s.Unenroll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Unenrolled.")
			return nil
		},
	}
}

func (a *App) completeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <course-id> <lesson-id>",
		Short: "Mark a lesson complete",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.setCompletion(cmd.Context(), args[0], args[1], true)
		},
	}
}

func (a *App) uncompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uncomplete <course-id> <lesson-id>",
		Short: "Mark a lesson incomplete again",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.setCompletion(cmd.Context(), args[0], args[1], false)
		},
	}
}

func (a *App) setCompletion(ctx context.Context, courseArg, lessonArg string, complete bool) error {
	lessonID, err := uuid.Parse(lessonArg)
	if err != nil {
		return fmt.Errorf("invalid lesson id %q: %w", lessonArg, err)
	}
	s, err := a.loadSession(ctx, courseArg)
	if err != nil {
		return err
	}

	var snap models.ProgressSnapshot
	if complete {
		snap, err = s.CompleteLesson(ctx, lessonID)
	} else {
		snap, err = s.UncompleteLesson(ctx, lessonID)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Progress: %d%% (%d/%d lessons)\n", snap.Percent, snap.CompletedCount, snap.TotalCount)
	if snap.Status == models.StatusCompleted {
		fmt.Fprintln(a.out, "Course complete!")
	}
	return nil
}

func (a *App) openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <course-id> <lesson-id>",
		Short: "Open a lesson and show its content and neighbors",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lessonID, err := uuid.Parse(args[1])
			if err != nil {
				return fmt.Errorf("invalid lesson id %q: %w", args[1], err)
			}
			s, err := a.loadSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			course, _ := s.Course()

			states, err := s.LessonStates()
			if err != nil {
				return err
			}
			if !states[lessonID].CanOpen() {
				return fmt.Errorf("lesson is locked: enroll first")
			}

			idx, total, ok := navigator.Position(course, lessonID)
			if !ok {
				return fmt.Errorf("lesson %s is not part of this course", lessonID)
			}
			_, lesson, _ := content.FindLesson(course, lessonID)
			fmt.Fprintf(a.out, "%s (lesson %d of %d)\n\n", lesson.Title, idx, total)
			a.printContent(lesson)

			if prev := navigator.Previous(course, lessonID); prev != nil {
				fmt.Fprintf(a.out, "\nPrevious: %s (%s)\n", prev.Title, prev.ID)
			}
			if next := navigator.Next(course, lessonID); next != nil {
				fmt.Fprintf(a.out, "Next: %s (%s)\n", next.Title, next.ID)
			}

			if s.Enrolled() {
				if err := s.TouchLastAccessed(cmd.Context()); err != nil {
					a.log.Warn("could not update last accessed", "error", err.Error())
				}
			}
			return nil
		},
	}
}

func (a *App) printContent(l *models.Lesson) {
	switch c := l.Content.(type) {
	case models.VideoContent:
		fmt.Fprintf(a.out, "Video: %s\n", c.SourceURL)
		for _, ts := range c.Timestamps {
			fmt.Fprintf(a.out, "  %4ds  %s\n", ts.Seconds, ts.Label)
		}
	case models.TextContent:
		fmt.Fprintln(a.out, strings.TrimSpace(c.Body))
	case models.DocumentContent:
		fmt.Fprintf(a.out, "Document (%s): %s\n", c.FileType, c.FileURL)
	}
}

func (a *App) loadSession(ctx context.Context, courseArg string) (*learning.Session, error) {
	courseID, err := uuid.Parse(courseArg)
	if err != nil {
		return nil, fmt.Errorf("invalid course id %q: %w", courseArg, err)
	}
	s := learning.NewSession(a.log, a.api, a.cache, courseID)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}
