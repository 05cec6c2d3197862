package domain

import (
	"context"
	"time"
)

// Course statuses
const (
	CourseStatusNotStarted = "not_started"
	CourseStatusInProgress = "in_progress"
	CourseStatusCompleted  = "completed"
)

// Milestone is a named checkpoint in a course schedule. Deadline is an ISO
// calendar date (YYYY-MM-DD).
type Milestone struct {
	Name      string `json:"name"`
	Deadline  string `json:"deadline"`
	Completed bool   `json:"completed"`
}

// CourseInfo is the structured record produced from a course-extraction
// model response.
type CourseInfo struct {
	Name          string      `json:"name"`
	Provider      string      `json:"provider"`
	Duration      string      `json:"duration"`
	Pace          string      `json:"pace"`
	Objectives    []string    `json:"objectives"`
	Prerequisites []string    `json:"prerequisites"`
	MainSkills    []string    `json:"mainSkills"`
	Milestones    []Milestone `json:"milestones"`
}

// Course is a course saved in a user's catalog
type Course struct {
	ID            string
	UserID        string
	URL           string
	HoursPerWeek  int
	Name          string
	Provider      string
	Duration      string
	Pace          string
	Objectives    []string
	Prerequisites []string
	MainSkills    []string
	Milestones    []Milestone
	Progress      int // percent of completed milestones
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RecomputeProgress derives Progress and Status from the milestone flags.
func (c *Course) RecomputeProgress() {
	if len(c.Milestones) == 0 {
		c.Progress = 0
		if c.Status == "" {
			c.Status = CourseStatusNotStarted
		}
		return
	}
	done := 0
	for _, m := range c.Milestones {
		if m.Completed {
			done++
		}
	}
	c.Progress = done * 100 / len(c.Milestones)
	switch {
	case c.Progress == 100:
		c.Status = CourseStatusCompleted
	case done > 0:
		c.Status = CourseStatusInProgress
	default:
		c.Status = CourseStatusNotStarted
	}
}

// CourseRepository defines the interface for course persistence
type CourseRepository interface {
	CreateCourse(ctx context.Context, course *Course) error
	GetCourseByID(ctx context.Context, userID, courseID string) (*Course, error)
	ListCoursesByUser(ctx context.Context, userID string) ([]*Course, error)
	UpdateCourse(ctx context.Context, course *Course) error
	DeleteCourse(ctx context.Context, userID, courseID string) error
}
