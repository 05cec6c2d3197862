package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"course-compass/internal/domain"
	"course-compass/internal/dto"
)

// MockAuthService is a mock implementation of service.AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenResponse), args.Error(1)
}

func (m *MockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthClaims), args.Error(1)
}

func (m *MockAuthService) GetProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserProfileResponse), args.Error(1)
}

func (m *MockAuthService) GoogleEnabled() bool {
	return m.Called().Bool(0)
}

func (m *MockAuthService) GetGoogleLoginURL(state string) string {
	return m.Called(state).String(0)
}

func (m *MockAuthService) HandleGoogleCallback(ctx context.Context, code string) (*dto.AuthResponse, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

// MockCourseService is a mock implementation of service.CourseService
type MockCourseService struct {
	mock.Mock
}

func (m *MockCourseService) ExtractCourse(ctx context.Context, url string, hoursPerWeek int) (*domain.CourseInfo, error) {
	args := m.Called(ctx, url, hoursPerWeek)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CourseInfo), args.Error(1)
}

func (m *MockCourseService) CreateCourse(ctx context.Context, userID string, course *domain.Course) (*domain.Course, error) {
	args := m.Called(ctx, userID, course)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseService) ListCourses(ctx context.Context, userID string) ([]*domain.Course, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Course), args.Error(1)
}

func (m *MockCourseService) GetCourse(ctx context.Context, userID, courseID string) (*domain.Course, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseService) UpdateCourse(ctx context.Context, userID, courseID string, course *domain.Course) (*domain.Course, error) {
	args := m.Called(ctx, userID, courseID, course)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseService) DeleteCourse(ctx context.Context, userID, courseID string) error {
	return m.Called(ctx, userID, courseID).Error(0)
}

func (m *MockCourseService) SetMilestoneCompleted(ctx context.Context, userID, courseID string, index int, completed bool) (*domain.Course, error) {
	args := m.Called(ctx, userID, courseID, index, completed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

// MockQuizService is a mock implementation of service.QuizService
type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) GenerateQuiz(ctx context.Context, req dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GenerateQuizResponse), args.Error(1)
}

func (m *MockQuizService) SaveResult(ctx context.Context, userID string, req dto.SaveQuizResultRequest) (*domain.QuizResult, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizResult), args.Error(1)
}

func (m *MockQuizService) ListResults(ctx context.Context, userID string, limit int) ([]*domain.QuizResult, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuizResult), args.Error(1)
}

// MockChatService is a mock implementation of service.ChatService
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) SendMessage(ctx context.Context, userID, message string) (*domain.ChatMessage, error) {
	args := m.Called(ctx, userID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatMessage), args.Error(1)
}

func (m *MockChatService) GetHistory(ctx context.Context, userID string, limit int) ([]*domain.ChatMessage, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ChatMessage), args.Error(1)
}

func (m *MockChatService) ClearHistory(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

// MockDashboardService is a mock implementation of service.DashboardService
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetDashboard(ctx context.Context, userID string) (*dto.DashboardResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DashboardResponse), args.Error(1)
}
