package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"course-compass/internal/cache"
	"course-compass/internal/domain"
	"course-compass/internal/logger"
	"course-compass/internal/normalize"
)

// CourseService defines course catalog and extraction operations.
type CourseService interface {
	ExtractCourse(ctx context.Context, url string, hoursPerWeek int) (*domain.CourseInfo, error)
	CreateCourse(ctx context.Context, userID string, course *domain.Course) (*domain.Course, error)
	ListCourses(ctx context.Context, userID string) ([]*domain.Course, error)
	GetCourse(ctx context.Context, userID, courseID string) (*domain.Course, error)
	UpdateCourse(ctx context.Context, userID, courseID string, course *domain.Course) (*domain.Course, error)
	DeleteCourse(ctx context.Context, userID, courseID string) error
	SetMilestoneCompleted(ctx context.Context, userID, courseID string, index int, completed bool) (*domain.Course, error)
}

type courseServiceImpl struct {
	repo          domain.CourseRepository
	generator     domain.TextGenerator
	cache         domain.Cache
	extractionTTL time.Duration
	group         singleflight.Group
	now           func() time.Time
}

// NewCourseService creates a new instance of CourseService. cache may be nil.
func NewCourseService(repo domain.CourseRepository, generator domain.TextGenerator, cache domain.Cache, extractionTTL time.Duration) CourseService {
	return &courseServiceImpl{
		repo:          repo,
		generator:     generator,
		cache:         cache,
		extractionTTL: extractionTTL,
		now:           time.Now,
	}
}

// ExtractCourse asks the model to describe the course at url and schedules
// its milestones from today. Identical concurrent requests share one model
// call and successful results are cached.
func (s *courseServiceImpl) ExtractCourse(ctx context.Context, url string, hoursPerWeek int) (*domain.CourseInfo, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("url")}
	}
	if hoursPerWeek <= 0 {
		hoursPerWeek = normalize.DefaultHoursPerWeek
	}
	today := s.now()
	key := cache.CourseExtractionKey(url, hoursPerWeek, today.Format(normalize.DateLayout))

	if info, ok := s.cachedExtraction(ctx, key); ok {
		return info, nil
	}

	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		prompt := normalize.BuildCourseExtractionPrompt(normalize.CourseExtractionParams{
			CourseURL:    url,
			HoursPerWeek: hoursPerWeek,
			Today:        today,
		})
		raw, err := s.generator.Generate(ctx, prompt)
		if err != nil {
			return nil, err
		}
		info, err := normalize.NormalizeCourseResponse(raw, today)
		if err != nil {
			logPipelineFailure("course extraction", err, zap.String("url", url))
			return nil, err
		}
		s.storeExtraction(ctx, key, info)
		return info, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Get().Debug("Course extraction shared with a concurrent request", zap.String("url", url))
	}
	info := *v.(*domain.CourseInfo)
	return &info, nil
}

func (s *courseServiceImpl) cachedExtraction(ctx context.Context, key string) (*domain.CourseInfo, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Course extraction cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var info domain.CourseInfo
	if err := json.Unmarshal([]byte(data), &info); err != nil {
		logger.Get().Warn("Discarding unreadable cached course extraction", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &info, true
}

func (s *courseServiceImpl) storeExtraction(ctx context.Context, key string, info *domain.CourseInfo) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(info)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.extractionTTL); err != nil {
		logger.Get().Warn("Course extraction cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *courseServiceImpl) CreateCourse(ctx context.Context, userID string, course *domain.Course) (*domain.Course, error) {
	course.ID = ""
	course.UserID = userID
	course.Status = ""
	course.RecomputeProgress()
	if err := s.repo.CreateCourse(ctx, course); err != nil {
		return nil, domain.NewInternalError("failed to save course", err)
	}
	invalidateDashboard(ctx, s.cache, userID)
	return course, nil
}

func (s *courseServiceImpl) ListCourses(ctx context.Context, userID string) ([]*domain.Course, error) {
	courses, err := s.repo.ListCoursesByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list courses", err)
	}
	return courses, nil
}

func (s *courseServiceImpl) GetCourse(ctx context.Context, userID, courseID string) (*domain.Course, error) {
	course, err := s.repo.GetCourseByID(ctx, userID, courseID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load course", err)
	}
	if course == nil {
		return nil, domain.NewCourseNotFoundError(courseID)
	}
	return course, nil
}

// UpdateCourse replaces the editable fields of a course and recomputes its progress.
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, userID, courseID string, update *domain.Course) (*domain.Course, error) {
	course, err := s.GetCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	course.URL = update.URL
	course.HoursPerWeek = update.HoursPerWeek
	course.Name = update.Name
	course.Provider = update.Provider
	course.Duration = update.Duration
	course.Pace = update.Pace
	course.Objectives = update.Objectives
	course.Prerequisites = update.Prerequisites
	course.MainSkills = update.MainSkills
	course.Milestones = update.Milestones
	course.RecomputeProgress()

	if err := s.save(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseServiceImpl) DeleteCourse(ctx context.Context, userID, courseID string) error {
	if err := s.repo.DeleteCourse(ctx, userID, courseID); err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return err
		}
		return domain.NewInternalError("failed to delete course", err)
	}
	invalidateDashboard(ctx, s.cache, userID)
	return nil
}

func (s *courseServiceImpl) SetMilestoneCompleted(ctx context.Context, userID, courseID string, index int, completed bool) (*domain.Course, error) {
	course, err := s.GetCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(course.Milestones) {
		return nil, domain.NewNotFoundError(fmt.Sprintf("milestone %d not found in course %s", index, courseID))
	}

	course.Milestones[index].Completed = completed
	course.RecomputeProgress()
	if err := s.save(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseServiceImpl) save(ctx context.Context, course *domain.Course) error {
	if err := s.repo.UpdateCourse(ctx, course); err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return err
		}
		return domain.NewInternalError("failed to save course", err)
	}
	invalidateDashboard(ctx, s.cache, course.UserID)
	return nil
}

// logPipelineFailure records the sanitized model text of a failed normalization.
func logPipelineFailure(operation string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("operation", operation), zap.Error(err))
	var malformed *domain.MalformedAIResponseError
	if errors.As(err, &malformed) {
		fields = append(fields, zap.String("sanitized_text", malformed.Text))
	}
	var missing *domain.MissingRequiredFieldsError
	if errors.As(err, &missing) {
		fields = append(fields, zap.Strings("missing_fields", missing.Fields))
	}
	logger.Get().Warn("Model response could not be normalized", fields...)
}

// invalidateDashboard drops the cached dashboard after a write. Failures are
// logged; the entry expires on its own.
func invalidateDashboard(ctx context.Context, c domain.Cache, userID string) {
	if c == nil {
		return
	}
	if err := c.Delete(ctx, cache.DashboardKey(userID)); err != nil {
		logger.Get().Warn("Failed to invalidate dashboard cache", zap.String("userID", userID), zap.Error(err))
	}
}
