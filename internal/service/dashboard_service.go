package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"course-compass/internal/cache"
	"course-compass/internal/domain"
	"course-compass/internal/dto"
	"course-compass/internal/logger"
)

const (
	upcomingMilestoneCount = 5
	recentResultCount      = 5
)

// DashboardService aggregates a user's learning activity.
type DashboardService interface {
	GetDashboard(ctx context.Context, userID string) (*dto.DashboardResponse, error)
}

type dashboardServiceImpl struct {
	courseRepo domain.CourseRepository
	resultRepo domain.QuizResultRepository
	cache      domain.Cache
	ttl        time.Duration
	now        func() time.Time
}

// NewDashboardService creates a new instance of DashboardService. cache may be nil.
func NewDashboardService(courseRepo domain.CourseRepository, resultRepo domain.QuizResultRepository, cache domain.Cache, ttl time.Duration) DashboardService {
	return &dashboardServiceImpl{
		courseRepo: courseRepo,
		resultRepo: resultRepo,
		cache:      cache,
		ttl:        ttl,
		now:        time.Now,
	}
}

func (s *dashboardServiceImpl) GetDashboard(ctx context.Context, userID string) (*dto.DashboardResponse, error) {
	key := cache.DashboardKey(userID)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key); err == nil {
			var cached dto.DashboardResponse
			if err := json.Unmarshal([]byte(data), &cached); err == nil {
				return &cached, nil
			}
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Dashboard cache read failed", zap.String("userID", userID), zap.Error(err))
		}
	}

	var (
		courses []*domain.Course
		stats   *domain.QuizStats
		recent  []*domain.QuizResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		courses, err = s.courseRepo.ListCoursesByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.resultRepo.GetResultStats(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.resultRepo.ListResultsByUser(gctx, userID, recentResultCount)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("failed to build dashboard", err)
	}

	resp := buildDashboard(courses, stats, recent, s.now())

	if s.cache != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
				logger.Get().Warn("Dashboard cache write failed", zap.String("userID", userID), zap.Error(err))
			}
		}
	}
	return resp, nil
}

// buildDashboard is the pure aggregation step. Upcoming milestones are the
// earliest incomplete ones due today or later.
func buildDashboard(courses []*domain.Course, stats *domain.QuizStats, recent []*domain.QuizResult, now time.Time) *dto.DashboardResponse {
	resp := &dto.DashboardResponse{
		UpcomingMilestones: []dto.UpcomingMilestone{},
		RecentResults:      make([]dto.QuizResultResponse, 0, len(recent)),
	}

	today := now.Format("2006-01-02")
	totalProgress := 0
	for _, c := range courses {
		resp.TotalCourses++
		totalProgress += c.Progress
		switch c.Status {
		case domain.CourseStatusCompleted:
			resp.CompletedCourses++
		case domain.CourseStatusInProgress:
			resp.InProgressCourses++
		default:
			resp.NotStartedCourses++
		}
		for i, m := range c.Milestones {
			if m.Completed || m.Deadline == "" || m.Deadline < today {
				continue
			}
			resp.UpcomingMilestones = append(resp.UpcomingMilestones, dto.UpcomingMilestone{
				CourseID:   c.ID,
				CourseName: c.Name,
				Name:       m.Name,
				Deadline:   m.Deadline,
				Index:      i,
			})
		}
	}
	if resp.TotalCourses > 0 {
		resp.AverageProgress = float64(totalProgress) / float64(resp.TotalCourses)
	}

	sort.SliceStable(resp.UpcomingMilestones, func(i, j int) bool {
		return resp.UpcomingMilestones[i].Deadline < resp.UpcomingMilestones[j].Deadline
	})
	if len(resp.UpcomingMilestones) > upcomingMilestoneCount {
		resp.UpcomingMilestones = resp.UpcomingMilestones[:upcomingMilestoneCount]
	}

	if stats != nil {
		resp.TotalQuizzes = stats.TotalQuizzes
		resp.AverageQuizScore = stats.AverageScore
		resp.BestQuizScore = stats.BestScore
	}
	for _, r := range recent {
		resp.RecentResults = append(resp.RecentResults, dto.ToQuizResultResponse(r))
	}
	return resp
}
