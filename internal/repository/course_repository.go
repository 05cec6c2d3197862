package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"course-compass/internal/domain"
	"course-compass/internal/repository/models"
	"course-compass/internal/util"
)

const courseColumns = `ID, USER_ID, URL, HOURS_PER_WEEK, NAME, PROVIDER, DURATION, PACE,
	OBJECTIVES, PREREQUISITES, MAIN_SKILLS, MILESTONES, PROGRESS, STATUS, CREATED_AT, UPDATED_AT`

// CourseRepositoryImpl implements domain.CourseRepository
type CourseRepositoryImpl struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) *CourseRepositoryImpl {
	return &CourseRepositoryImpl{db: db}
}

func toDomainCourse(m *models.Course) *domain.Course {
	return &domain.Course{
		ID:            m.ID,
		UserID:        m.UserID,
		URL:           util.NullStringToString(m.URL),
		HoursPerWeek:  m.HoursPerWeek,
		Name:          m.Name,
		Provider:      util.NullStringToString(m.Provider),
		Duration:      util.NullStringToString(m.Duration),
		Pace:          util.NullStringToString(m.Pace),
		Objectives:    []string(m.Objectives),
		Prerequisites: []string(m.Prerequisites),
		MainSkills:    []string(m.MainSkills),
		Milestones:    []domain.Milestone(m.Milestones),
		Progress:      m.Progress,
		Status:        m.Status,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toModelCourse(c *domain.Course) *models.Course {
	return &models.Course{
		ID:            c.ID,
		UserID:        c.UserID,
		URL:           util.StringToNullString(c.URL),
		HoursPerWeek:  c.HoursPerWeek,
		Name:          c.Name,
		Provider:      util.StringToNullString(c.Provider),
		Duration:      util.StringToNullString(c.Duration),
		Pace:          util.StringToNullString(c.Pace),
		Objectives:    models.StringSlice(c.Objectives),
		Prerequisites: models.StringSlice(c.Prerequisites),
		MainSkills:    models.StringSlice(c.MainSkills),
		Milestones:    models.MilestoneList(c.Milestones),
		Progress:      c.Progress,
		Status:        c.Status,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (r *CourseRepositoryImpl) CreateCourse(ctx context.Context, course *domain.Course) error {
	if course.ID == "" {
		course.ID = util.NewULID()
	}
	now := time.Now()
	course.CreatedAt, course.UpdatedAt = now, now
	m := toModelCourse(course)

	query := `INSERT INTO COURSES (` + courseColumns + `)
	VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12, :13, :14, :15, :16)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		m.ID, m.UserID, m.URL, m.HoursPerWeek, m.Name, m.Provider, m.Duration, m.Pace,
		m.Objectives, m.Prerequisites, m.MainSkills, m.Milestones, m.Progress, m.Status,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

// GetCourseByID returns nil, nil when the course does not exist or belongs to
// another user.
func (r *CourseRepositoryImpl) GetCourseByID(ctx context.Context, userID, courseID string) (*domain.Course, error) {
	var m models.Course
	query := `SELECT ` + courseColumns + ` FROM COURSES WHERE ID = :1 AND USER_ID = :2`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, courseID, userID); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get course %s: %w", courseID, err)
	}
	return toDomainCourse(&m), nil
}

// ListCoursesByUser returns the user's courses, newest first.
func (r *CourseRepositoryImpl) ListCoursesByUser(ctx context.Context, userID string) ([]*domain.Course, error) {
	var rows []models.Course
	query := `SELECT ` + courseColumns + ` FROM COURSES WHERE USER_ID = :1 ORDER BY CREATED_AT DESC`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	courses := make([]*domain.Course, 0, len(rows))
	for i := range rows {
		courses = append(courses, toDomainCourse(&rows[i]))
	}
	return courses, nil
}

func (r *CourseRepositoryImpl) UpdateCourse(ctx context.Context, course *domain.Course) error {
	course.UpdatedAt = time.Now()
	m := toModelCourse(course)

	query := `UPDATE COURSES SET URL = :1, HOURS_PER_WEEK = :2, NAME = :3, PROVIDER = :4, DURATION = :5, PACE = :6,
	OBJECTIVES = :7, PREREQUISITES = :8, MAIN_SKILLS = :9, MILESTONES = :10, PROGRESS = :11, STATUS = :12, UPDATED_AT = :13
	WHERE ID = :14 AND USER_ID = :15`
	res, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		m.URL, m.HoursPerWeek, m.Name, m.Provider, m.Duration, m.Pace,
		m.Objectives, m.Prerequisites, m.MainSkills, m.Milestones, m.Progress, m.Status, m.UpdatedAt,
		m.ID, m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update course %s: %w", course.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewCourseNotFoundError(course.ID)
	}
	return nil
}

func (r *CourseRepositoryImpl) DeleteCourse(ctx context.Context, userID, courseID string) error {
	res, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM COURSES WHERE ID = :1 AND USER_ID = :2`, courseID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete course %s: %w", courseID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewCourseNotFoundError(courseID)
	}
	return nil
}
