package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"course-compass/internal/cache"
	"course-compass/internal/domain"
)

const rawCourseResponse = "```json\n" + `{
  "name": "Go Programming",
  "provider": "Coursera",
  "duration": "12 weeks",
  "pace": "Self-paced",
  "objectives": ["Write Go", "Test Go", "Ship Go"],
  "prerequisites": ["Basic programming"],
  "mainSkills": ["Go", "Concurrency", "Testing"],
  "milestones": [{"name": "Basics"}, {"name": "Concurrency"}, {"name": "Project"}]
}` + "\n```"

var fixedNow = time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC)

func newTestCourseService(repo *MockCourseRepository, gen *MockTextGenerator, c domain.Cache) *courseServiceImpl {
	svc := NewCourseService(repo, gen, c, time.Hour).(*courseServiceImpl)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestCourseService_ExtractCourse(t *testing.T) {
	repo := new(MockCourseRepository)
	gen := new(MockTextGenerator)
	mc := new(MockCache)
	svc := newTestCourseService(repo, gen, mc)

	key := cache.CourseExtractionKey("https://example.com/go", 5, "2024-03-01")
	mc.On("Get", mock.Anything, key).Return("", domain.ErrCacheMiss)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "https://example.com/go") && strings.Contains(p, "2024-03-01")
	})).Return(rawCourseResponse, nil).Once()
	mc.On("Set", mock.Anything, key, mock.AnythingOfType("string"), time.Hour).Return(nil)

	info, err := svc.ExtractCourse(context.Background(), " https://example.com/go ", 5)
	require.NoError(t, err)
	assert.Equal(t, "Go Programming", info.Name)
	require.Len(t, info.Milestones, 3)
	assert.Equal(t, "2024-03-29", info.Milestones[0].Deadline)
	assert.Equal(t, "2024-04-26", info.Milestones[1].Deadline)
	assert.Equal(t, "2024-05-24", info.Milestones[2].Deadline)

	gen.AssertExpectations(t)
	mc.AssertExpectations(t)
}

func TestCourseService_ExtractCourse_CacheHit(t *testing.T) {
	gen := new(MockTextGenerator)
	mc := new(MockCache)
	svc := newTestCourseService(new(MockCourseRepository), gen, mc)

	cached, err := json.Marshal(domain.CourseInfo{Name: "Cached Course"})
	require.NoError(t, err)
	mc.On("Get", mock.Anything, mock.Anything).Return(string(cached), nil)

	info, err := svc.ExtractCourse(context.Background(), "https://example.com/go", 5)
	require.NoError(t, err)
	assert.Equal(t, "Cached Course", info.Name)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestCourseService_ExtractCourse_PipelineErrors(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		check func(t *testing.T, err error)
	}{
		{
			name: "malformed",
			raw:  "I could not find that course, sorry.",
			check: func(t *testing.T, err error) {
				var malformed *domain.MalformedAIResponseError
				assert.True(t, errors.As(err, &malformed))
			},
		},
		{
			name: "missing fields",
			raw:  `{"name":"Go","provider":"Coursera"}`,
			check: func(t *testing.T, err error) {
				var missing *domain.MissingRequiredFieldsError
				require.True(t, errors.As(err, &missing))
				assert.Equal(t, []string{"duration", "pace", "objectives", "milestones", "prerequisites", "mainSkills"}, missing.Fields)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(MockTextGenerator)
			svc := newTestCourseService(new(MockCourseRepository), gen, nil)
			gen.On("Generate", mock.Anything, mock.Anything).Return(tt.raw, nil)

			info, err := svc.ExtractCourse(context.Background(), "https://example.com/go", 5)
			assert.Nil(t, info)
			tt.check(t, err)
		})
	}
}

func TestCourseService_ExtractCourse_LLMError(t *testing.T) {
	gen := new(MockTextGenerator)
	svc := newTestCourseService(new(MockCourseRepository), gen, nil)
	llmErr := domain.NewLLMServiceError(errors.New("connection refused"))
	gen.On("Generate", mock.Anything, mock.Anything).Return("", llmErr)

	_, err := svc.ExtractCourse(context.Background(), "https://example.com/go", 5)
	assert.ErrorIs(t, err, llmErr)
}

func TestCourseService_ExtractCourse_EmptyURL(t *testing.T) {
	svc := newTestCourseService(new(MockCourseRepository), new(MockTextGenerator), nil)
	_, err := svc.ExtractCourse(context.Background(), "  ", 5)
	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "url", verrs[0].Field)
}

// blockingGenerator holds every Generate call until release is closed.
type blockingGenerator struct {
	calls   int32
	started chan struct{}
	release chan struct{}
}

func (g *blockingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if atomic.AddInt32(&g.calls, 1) == 1 {
		close(g.started)
	}
	<-g.release
	return rawCourseResponse, nil
}

func (g *blockingGenerator) Chat(ctx context.Context, turns []domain.ChatTurn) (string, error) {
	return "", nil
}

func TestCourseService_ExtractCourse_SharesConcurrentCalls(t *testing.T) {
	gen := &blockingGenerator{started: make(chan struct{}), release: make(chan struct{})}
	svc := NewCourseService(new(MockCourseRepository), gen, nil, time.Hour).(*courseServiceImpl)
	svc.now = func() time.Time { return fixedNow }

	const callers = 5
	var wg sync.WaitGroup
	results := make([]*domain.CourseInfo, callers)
	errs := make([]error, callers)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = svc.ExtractCourse(context.Background(), "https://example.com/go", 5)
	}()
	<-gen.started
	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.ExtractCourse(context.Background(), "https://example.com/go", 5)
		}(i)
	}
	// Give the followers time to join the in-flight call.
	time.Sleep(50 * time.Millisecond)
	close(gen.release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&gen.calls))
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "Go Programming", results[i].Name)
	}
	results[0].Name = "mutated"
	assert.Equal(t, "Go Programming", results[1].Name)
}

func TestCourseService_CreateCourse(t *testing.T) {
	repo := new(MockCourseRepository)
	mc := new(MockCache)
	svc := newTestCourseService(repo, new(MockTextGenerator), mc)

	repo.On("CreateCourse", mock.Anything, mock.AnythingOfType("*domain.Course")).Return(nil)
	mc.On("Delete", mock.Anything, []string{cache.DashboardKey("user-1")}).Return(nil)

	course, err := svc.CreateCourse(context.Background(), "user-1", &domain.Course{
		ID:         "client-supplied",
		Name:       "Go",
		Milestones: []domain.Milestone{{Name: "a", Completed: true}, {Name: "b"}},
	})
	require.NoError(t, err)
	assert.Empty(t, course.ID)
	assert.Equal(t, "user-1", course.UserID)
	assert.Equal(t, 50, course.Progress)
	assert.Equal(t, domain.CourseStatusInProgress, course.Status)
	mc.AssertExpectations(t)
}

func TestCourseService_GetCourse_NotFound(t *testing.T) {
	repo := new(MockCourseRepository)
	svc := newTestCourseService(repo, new(MockTextGenerator), nil)
	repo.On("GetCourseByID", mock.Anything, "user-1", "c-1").Return(nil, nil)

	_, err := svc.GetCourse(context.Background(), "user-1", "c-1")
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
}

func TestCourseService_SetMilestoneCompleted(t *testing.T) {
	repo := new(MockCourseRepository)
	mc := new(MockCache)
	svc := newTestCourseService(repo, new(MockTextGenerator), mc)

	course := &domain.Course{
		ID:         "c-1",
		UserID:     "user-1",
		Milestones: []domain.Milestone{{Name: "a", Completed: true}, {Name: "b"}},
		Status:     domain.CourseStatusInProgress,
		Progress:   50,
	}
	repo.On("GetCourseByID", mock.Anything, "user-1", "c-1").Return(course, nil)
	repo.On("UpdateCourse", mock.Anything, course).Return(nil)
	mc.On("Delete", mock.Anything, []string{cache.DashboardKey("user-1")}).Return(nil)

	updated, err := svc.SetMilestoneCompleted(context.Background(), "user-1", "c-1", 1, true)
	require.NoError(t, err)
	assert.Equal(t, 100, updated.Progress)
	assert.Equal(t, domain.CourseStatusCompleted, updated.Status)

	_, err = svc.SetMilestoneCompleted(context.Background(), "user-1", "c-1", 2, true)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
	repo.AssertNumberOfCalls(t, "UpdateCourse", 1)
}

func TestCourseService_DeleteCourse(t *testing.T) {
	repo := new(MockCourseRepository)
	mc := new(MockCache)
	svc := newTestCourseService(repo, new(MockTextGenerator), mc)

	repo.On("DeleteCourse", mock.Anything, "user-1", "c-1").Return(nil).Once()
	mc.On("Delete", mock.Anything, []string{cache.DashboardKey("user-1")}).Return(errors.New("redis down"))
	require.NoError(t, svc.DeleteCourse(context.Background(), "user-1", "c-1"))

	repo.On("DeleteCourse", mock.Anything, "user-1", "c-2").Return(domain.NewCourseNotFoundError("c-2")).Once()
	err := svc.DeleteCourse(context.Background(), "user-1", "c-2")
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
}
