package dto

import (
	"time"

	"course-compass/internal/domain"
)

// GenerateQuizRequest asks for a multiple-choice quiz.
// @Description Request body for quiz generation
type GenerateQuizRequest struct {
	CourseName      string `json:"course_name" validate:"required,notblank,max=500"`
	Difficulty      string `json:"difficulty" validate:"required,oneof=easy medium hard"`
	NumQuestions    int    `json:"num_questions" validate:"required,min=1"`
	TimePerQuestion int    `json:"time_per_question" validate:"omitempty,min=5,max=600"`
}

// GenerateQuizResponse carries the questions and how many were asked for.
// Returned may be below Requested when the model produced fewer items.
type GenerateQuizResponse struct {
	Questions       []domain.QuizQuestion `json:"questions"`
	Requested       int                   `json:"requested"`
	Returned        int                   `json:"returned"`
	TimePerQuestion int                   `json:"time_per_question"`
}

// SaveQuizResultRequest records a finished quiz.
// @Description Request body for saving a quiz result
type SaveQuizResultRequest struct {
	CourseID       string `json:"course_id" validate:"omitempty,max=26"`
	CourseName     string `json:"course_name" validate:"required,notblank,max=500"`
	Difficulty     string `json:"difficulty" validate:"required,oneof=easy medium hard"`
	TotalQuestions int    `json:"total_questions" validate:"required,min=1,max=30"`
	CorrectAnswers int    `json:"correct_answers" validate:"min=0,ltefield=TotalQuestions"`
	TimeTaken      int    `json:"time_taken" validate:"min=0"`
}

// QuizResultResponse is a stored quiz result.
type QuizResultResponse struct {
	ID             string    `json:"id"`
	CourseID       string    `json:"course_id,omitempty"`
	CourseName     string    `json:"course_name"`
	Difficulty     string    `json:"difficulty"`
	TotalQuestions int       `json:"total_questions"`
	CorrectAnswers int       `json:"correct_answers"`
	Score          float64   `json:"score"`
	TimeTaken      int       `json:"time_taken"`
	CompletedAt    time.Time `json:"completed_at"`
}

func ToQuizResultResponse(r *domain.QuizResult) QuizResultResponse {
	return QuizResultResponse{
		ID:             r.ID,
		CourseID:       r.CourseID,
		CourseName:     r.CourseName,
		Difficulty:     r.Difficulty,
		TotalQuestions: r.TotalQuestions,
		CorrectAnswers: r.CorrectAnswers,
		Score:          r.Score,
		TimeTaken:      r.TimeTaken,
		CompletedAt:    r.CompletedAt,
	}
}
