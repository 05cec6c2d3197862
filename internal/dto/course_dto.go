package dto

import (
	"time"

	"course-compass/internal/domain"
)

// ExtractCourseRequest asks the model to describe a course page.
// @Description Request body for course extraction
type ExtractCourseRequest struct {
	URL          string `json:"url" validate:"required,url,max=2000"`
	HoursPerWeek int    `json:"hours_per_week" validate:"omitempty,min=1,max=80"`
}

// MilestoneRequest is a milestone supplied by the client.
type MilestoneRequest struct {
	Name      string `json:"name" validate:"required,notblank"`
	Deadline  string `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
	Completed bool   `json:"completed"`
}

// CourseRequest creates or replaces a course.
// @Description Request body for creating or updating a course
type CourseRequest struct {
	URL           string             `json:"url" validate:"omitempty,url,max=2000"`
	HoursPerWeek  int                `json:"hours_per_week" validate:"omitempty,min=1,max=80"`
	Name          string             `json:"name" validate:"required,notblank,max=500"`
	Provider      string             `json:"provider" validate:"max=255"`
	Duration      string             `json:"duration" validate:"max=100"`
	Pace          string             `json:"pace" validate:"max=255"`
	Objectives    []string           `json:"objectives"`
	Prerequisites []string           `json:"prerequisites"`
	MainSkills    []string           `json:"mainSkills"`
	Milestones    []MilestoneRequest `json:"milestones" validate:"dive"`
}

// UpdateMilestoneRequest toggles a milestone.
type UpdateMilestoneRequest struct {
	Completed bool `json:"completed"`
}

// CourseResponse is a saved course.
type CourseResponse struct {
	ID            string             `json:"id"`
	URL           string             `json:"url,omitempty"`
	HoursPerWeek  int                `json:"hours_per_week,omitempty"`
	Name          string             `json:"name"`
	Provider      string             `json:"provider"`
	Duration      string             `json:"duration"`
	Pace          string             `json:"pace"`
	Objectives    []string           `json:"objectives"`
	Prerequisites []string           `json:"prerequisites"`
	MainSkills    []string           `json:"mainSkills"`
	Milestones    []domain.Milestone `json:"milestones"`
	Progress      int                `json:"progress"`
	Status        string             `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// ToCourseResponse maps a domain course onto its API shape.
func ToCourseResponse(c *domain.Course) CourseResponse {
	return CourseResponse{
		ID:            c.ID,
		URL:           c.URL,
		HoursPerWeek:  c.HoursPerWeek,
		Name:          c.Name,
		Provider:      c.Provider,
		Duration:      c.Duration,
		Pace:          c.Pace,
		Objectives:    nonNil(c.Objectives),
		Prerequisites: nonNil(c.Prerequisites),
		MainSkills:    nonNil(c.MainSkills),
		Milestones:    nonNilMilestones(c.Milestones),
		Progress:      c.Progress,
		Status:        c.Status,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ToDomainCourse builds the course a request describes, without ID or owner.
func (r CourseRequest) ToDomainCourse() *domain.Course {
	milestones := make([]domain.Milestone, 0, len(r.Milestones))
	for _, m := range r.Milestones {
		milestones = append(milestones, domain.Milestone{Name: m.Name, Deadline: m.Deadline, Completed: m.Completed})
	}
	return &domain.Course{
		URL:           r.URL,
		HoursPerWeek:  r.HoursPerWeek,
		Name:          r.Name,
		Provider:      r.Provider,
		Duration:      r.Duration,
		Pace:          r.Pace,
		Objectives:    nonNil(r.Objectives),
		Prerequisites: nonNil(r.Prerequisites),
		MainSkills:    nonNil(r.MainSkills),
		Milestones:    milestones,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilMilestones(m []domain.Milestone) []domain.Milestone {
	if m == nil {
		return []domain.Milestone{}
	}
	return m
}
