package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"course-compass/internal/domain"
	"course-compass/internal/dto"
	"course-compass/internal/logger"
	"course-compass/internal/normalize"
)

const (
	defaultResultLimit = 20
	maxResultLimit     = 100
)

// QuizService generates quizzes and records their results.
type QuizService interface {
	GenerateQuiz(ctx context.Context, req dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
	SaveResult(ctx context.Context, userID string, req dto.SaveQuizResultRequest) (*domain.QuizResult, error)
	ListResults(ctx context.Context, userID string, limit int) ([]*domain.QuizResult, error)
}

type quizServiceImpl struct {
	generator  domain.TextGenerator
	resultRepo domain.QuizResultRepository
	courseRepo domain.CourseRepository
	cache      domain.Cache
}

// NewQuizService creates a new instance of QuizService. cache may be nil.
func NewQuizService(generator domain.TextGenerator, resultRepo domain.QuizResultRepository, courseRepo domain.CourseRepository, cache domain.Cache) QuizService {
	return &quizServiceImpl{
		generator:  generator,
		resultRepo: resultRepo,
		courseRepo: courseRepo,
		cache:      cache,
	}
}

// GenerateQuiz clamps the requested count, prompts the model and normalizes
// its answer. Fewer questions than requested are returned as-is.
func (s *quizServiceImpl) GenerateQuiz(ctx context.Context, req dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	spec, err := normalize.NewQuizSpec(req.CourseName, req.Difficulty, req.NumQuestions, req.TimePerQuestion)
	if err != nil {
		return nil, err
	}

	raw, err := s.generator.Generate(ctx, normalize.BuildQuizPrompt(spec))
	if err != nil {
		return nil, err
	}

	questions, err := normalize.NormalizeQuizResponse(raw, spec)
	if err != nil {
		logPipelineFailure("quiz generation", err, zap.String("course_name", spec.EntityName))
		return nil, err
	}

	unconfident := 0
	for _, q := range questions {
		if !q.AnswerConfident {
			unconfident++
		}
	}
	l := logger.Get()
	if unconfident > 0 {
		l.Warn("Quiz contains defaulted answers",
			zap.String("course_name", spec.EntityName),
			zap.Int("count", unconfident))
	}
	if len(questions) < spec.QuestionCount {
		l.Info("Model returned fewer questions than requested",
			zap.Int("requested", spec.QuestionCount),
			zap.Int("returned", len(questions)))
	}

	return &dto.GenerateQuizResponse{
		Questions:       questions,
		Requested:       spec.QuestionCount,
		Returned:        len(questions),
		TimePerQuestion: spec.TimePerQuestion,
	}, nil
}

func (s *quizServiceImpl) SaveResult(ctx context.Context, userID string, req dto.SaveQuizResultRequest) (*domain.QuizResult, error) {
	if req.CorrectAnswers > req.TotalQuestions {
		return nil, domain.ValidationErrors{domain.NewOutOfRangeError("correct_answers", req.CorrectAnswers, 0, req.TotalQuestions)}
	}

	courseID := strings.TrimSpace(req.CourseID)
	if courseID != "" {
		course, err := s.courseRepo.GetCourseByID(ctx, userID, courseID)
		if err != nil {
			return nil, domain.NewInternalError("failed to load course", err)
		}
		if course == nil {
			return nil, domain.NewCourseNotFoundError(courseID)
		}
	}

	result := &domain.QuizResult{
		UserID:         userID,
		CourseID:       courseID,
		CourseName:     strings.TrimSpace(req.CourseName),
		Difficulty:     strings.ToLower(req.Difficulty),
		TotalQuestions: req.TotalQuestions,
		CorrectAnswers: req.CorrectAnswers,
		TimeTaken:      req.TimeTaken,
	}
	result.ComputeScore()

	if err := s.resultRepo.CreateResult(ctx, result); err != nil {
		return nil, domain.NewInternalError("failed to save quiz result", err)
	}
	invalidateDashboard(ctx, s.cache, userID)
	return result, nil
}

// ListResults returns the most recent results; limit defaults to 20 and is capped at 100.
func (s *quizServiceImpl) ListResults(ctx context.Context, userID string, limit int) ([]*domain.QuizResult, error) {
	if limit <= 0 {
		limit = defaultResultLimit
	}
	if limit > maxResultLimit {
		limit = maxResultLimit
	}
	results, err := s.resultRepo.ListResultsByUser(ctx, userID, limit)
	if err != nil {
		return nil, domain.NewInternalError("failed to list quiz results", err)
	}
	return results, nil
}
