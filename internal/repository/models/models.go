package models

import (
	"database/sql"
	"time"
)

// User maps the USERS table
type User struct {
	ID           string         `db:"ID"`
	Name         string         `db:"NAME"`
	Email        string         `db:"EMAIL"`
	PasswordHash sql.NullString `db:"PASSWORD_HASH"`
	GoogleID     sql.NullString `db:"GOOGLE_ID"`
	CreatedAt    time.Time      `db:"CREATED_AT"`
	UpdatedAt    time.Time      `db:"UPDATED_AT"`
}

// Course maps the COURSES table
type Course struct {
	ID            string         `db:"ID"`
	UserID        string         `db:"USER_ID"`
	URL           sql.NullString `db:"URL"`
	HoursPerWeek  int            `db:"HOURS_PER_WEEK"`
	Name          string         `db:"NAME"`
	Provider      sql.NullString `db:"PROVIDER"`
	Duration      sql.NullString `db:"DURATION"`
	Pace          sql.NullString `db:"PACE"`
	Objectives    StringSlice    `db:"OBJECTIVES"`
	Prerequisites StringSlice    `db:"PREREQUISITES"`
	MainSkills    StringSlice    `db:"MAIN_SKILLS"`
	Milestones    MilestoneList  `db:"MILESTONES"`
	Progress      int            `db:"PROGRESS"`
	Status        string         `db:"STATUS"`
	CreatedAt     time.Time      `db:"CREATED_AT"`
	UpdatedAt     time.Time      `db:"UPDATED_AT"`
}

// QuizResult maps the QUIZ_RESULTS table
type QuizResult struct {
	ID             string         `db:"ID"`
	UserID         string         `db:"USER_ID"`
	CourseID       sql.NullString `db:"COURSE_ID"`
	CourseName     string         `db:"COURSE_NAME"`
	Difficulty     string         `db:"DIFFICULTY"`
	TotalQuestions int            `db:"TOTAL_QUESTIONS"`
	CorrectAnswers int            `db:"CORRECT_ANSWERS"`
	Score          float64        `db:"SCORE"`
	TimeTaken      int            `db:"TIME_TAKEN"`
	CompletedAt    time.Time      `db:"COMPLETED_AT"`
}

// ChatMessage maps the CHAT_MESSAGES table
type ChatMessage struct {
	ID        string    `db:"ID"`
	UserID    string    `db:"USER_ID"`
	Role      string    `db:"ROLE"`
	Content   string    `db:"CONTENT"`
	CreatedAt time.Time `db:"CREATED_AT"`
}

// QuizStats is the aggregate row for a user's results
type QuizStats struct {
	TotalQuizzes int             `db:"TOTAL_QUIZZES"`
	AverageScore sql.NullFloat64 `db:"AVERAGE_SCORE"`
	BestScore    sql.NullFloat64 `db:"BEST_SCORE"`
}
