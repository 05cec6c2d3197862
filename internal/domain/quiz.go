package domain

import (
	"context"
	"strings"
	"time"
)

// Difficulty levels accepted for quiz generation
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// IsValidDifficulty reports whether d is one of easy, medium or hard.
func IsValidDifficulty(d string) bool {
	switch strings.ToLower(d) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// QuizQuestion is one normalized multiple-choice question.
//
// CorrectAnswer is always one of A-D. When the model answer could not be read
// it falls back to "A" and AnswerConfident is false; consumers must not treat
// such an answer as ground truth.
type QuizQuestion struct {
	ID              int       `json:"id"`
	Question        string    `json:"question"`
	Options         [4]string `json:"options"`
	CorrectAnswer   string    `json:"correctAnswer"`
	AnswerConfident bool      `json:"answerConfident"`
	TimePerQuestion int       `json:"timePerQuestion"`
}

// QuizResult is a completed quiz attempt recorded for a user
type QuizResult struct {
	ID             string
	UserID         string
	CourseID       string
	CourseName     string
	Difficulty     string
	TotalQuestions int
	CorrectAnswers int
	Score          float64 // percent, 0-100
	TimeTaken      int     // seconds
	CompletedAt    time.Time
}

// ComputeScore sets Score from the answer counts.
func (r *QuizResult) ComputeScore() {
	if r.TotalQuestions <= 0 {
		r.Score = 0
		return
	}
	r.Score = float64(r.CorrectAnswers) * 100 / float64(r.TotalQuestions)
}

// QuizResultRepository defines the interface for quiz result persistence
type QuizResultRepository interface {
	CreateResult(ctx context.Context, result *QuizResult) error
	ListResultsByUser(ctx context.Context, userID string, limit int) ([]*QuizResult, error)
	GetResultStats(ctx context.Context, userID string) (*QuizStats, error)
}

// QuizStats aggregates a user's quiz history
type QuizStats struct {
	TotalQuizzes int
	AverageScore float64
	BestScore    float64
}
