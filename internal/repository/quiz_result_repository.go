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

const quizResultColumns = `ID, USER_ID, COURSE_ID, COURSE_NAME, DIFFICULTY, TOTAL_QUESTIONS, CORRECT_ANSWERS, SCORE, TIME_TAKEN, COMPLETED_AT`

// QuizResultRepositoryImpl implements domain.QuizResultRepository
type QuizResultRepositoryImpl struct {
	db *sqlx.DB
}

func NewQuizResultRepository(db *sqlx.DB) *QuizResultRepositoryImpl {
	return &QuizResultRepositoryImpl{db: db}
}

func toDomainQuizResult(m *models.QuizResult) *domain.QuizResult {
	return &domain.QuizResult{
		ID:             m.ID,
		UserID:         m.UserID,
		CourseID:       util.NullStringToString(m.CourseID),
		CourseName:     m.CourseName,
		Difficulty:     m.Difficulty,
		TotalQuestions: m.TotalQuestions,
		CorrectAnswers: m.CorrectAnswers,
		Score:          m.Score,
		TimeTaken:      m.TimeTaken,
		CompletedAt:    m.CompletedAt,
	}
}

func (r *QuizResultRepositoryImpl) CreateResult(ctx context.Context, result *domain.QuizResult) error {
	if result.ID == "" {
		result.ID = util.NewULID()
	}
	if result.CompletedAt.IsZero() {
		result.CompletedAt = time.Now()
	}

	query := `INSERT INTO QUIZ_RESULTS (` + quizResultColumns + `) VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		result.ID,
		result.UserID,
		util.StringToNullString(result.CourseID),
		result.CourseName,
		result.Difficulty,
		result.TotalQuestions,
		result.CorrectAnswers,
		result.Score,
		result.TimeTaken,
		result.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create quiz result: %w", err)
	}
	return nil
}

// ListResultsByUser returns at most limit results, most recent first.
func (r *QuizResultRepositoryImpl) ListResultsByUser(ctx context.Context, userID string, limit int) ([]*domain.QuizResult, error) {
	var rows []models.QuizResult
	query := `SELECT ` + quizResultColumns + ` FROM QUIZ_RESULTS WHERE USER_ID = :1
	ORDER BY COMPLETED_AT DESC FETCH FIRST :2 ROWS ONLY`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to list quiz results: %w", err)
	}
	results := make([]*domain.QuizResult, 0, len(rows))
	for i := range rows {
		results = append(results, toDomainQuizResult(&rows[i]))
	}
	return results, nil
}

func (r *QuizResultRepositoryImpl) GetResultStats(ctx context.Context, userID string) (*domain.QuizStats, error) {
	var m models.QuizStats
	query := `SELECT COUNT(*) AS TOTAL_QUIZZES, AVG(SCORE) AS AVERAGE_SCORE, MAX(SCORE) AS BEST_SCORE
	FROM QUIZ_RESULTS WHERE USER_ID = :1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get quiz stats: %w", err)
	}
	return &domain.QuizStats{
		TotalQuizzes: m.TotalQuizzes,
		AverageScore: m.AverageScore.Float64,
		BestScore:    m.BestScore.Float64,
	}, nil
}
