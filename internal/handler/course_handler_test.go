package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"course-compass/internal/domain"
	"course-compass/internal/dto"
	"course-compass/internal/middleware"
)

func newCourseTestApp(svc *MockCourseService) *fiber.App {
	h := NewCourseHandler(svc, testValidator)
	app := newTestApp()
	courses := app.Group("/courses", asUser)
	courses.Post("/extract", h.ExtractCourse)
	courses.Post("/", h.CreateCourse)
	courses.Get("/", h.ListCourses)
	courses.Get("/:id", h.GetCourse)
	courses.Put("/:id", h.UpdateCourse)
	courses.Delete("/:id", h.DeleteCourse)
	courses.Patch("/:id/milestones/:index", middleware.ValidateIndexParam("index"), h.UpdateMilestone)
	return app
}

func TestCourseHandler_ExtractCourse(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{name: "success", body: dto.ExtractCourseRequest{URL: "https://example.com/go", HoursPerWeek: 5}, wantStatus: http.StatusOK},
		{name: "invalid url", body: dto.ExtractCourseRequest{URL: "not a url"}, wantStatus: http.StatusBadRequest, wantCode: string(domain.CodeValidation)},
		{
			name:       "malformed model output",
			body:       dto.ExtractCourseRequest{URL: "https://example.com/go"},
			serviceErr: &domain.MalformedAIResponseError{Text: "no json here"},
			wantStatus: http.StatusInternalServerError,
			wantCode:   string(domain.CodeMalformedAIResponse),
		},
		{
			name:       "missing fields in model output",
			body:       dto.ExtractCourseRequest{URL: "https://example.com/go"},
			serviceErr: &domain.MissingRequiredFieldsError{Fields: []string{"pace"}},
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domain.CodeMissingRequiredFields),
		},
		{
			name:       "model unavailable",
			body:       dto.ExtractCourseRequest{URL: "https://example.com/go"},
			serviceErr: domain.NewLLMServiceError(errors.New("timeout")),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   string(domain.CodeLLMServiceError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCourseService)
			if tt.serviceErr != nil {
				svc.On("ExtractCourse", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.serviceErr)
			} else {
				svc.On("ExtractCourse", mock.Anything, "https://example.com/go", 5).
					Return(&domain.CourseInfo{Name: "Go", Milestones: []domain.Milestone{{Name: "m1", Deadline: "2024-03-29"}}}, nil)
			}
			app := newCourseTestApp(svc)

			resp, env := doRequest(t, app, "POST", "/courses/extract", tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, env.Code)
				return
			}
			var info domain.CourseInfo
			require.NoError(t, json.Unmarshal(env.Data, &info))
			assert.Equal(t, "2024-03-29", info.Milestones[0].Deadline)
		})
	}
}

func TestCourseHandler_CreateCourse(t *testing.T) {
	svc := new(MockCourseService)
	svc.On("CreateCourse", mock.Anything, testUserID, mock.MatchedBy(func(c *domain.Course) bool {
		return c.Name == "Go" && len(c.Milestones) == 1 && c.Objectives != nil
	})).Return(&domain.Course{ID: "c-1", Name: "Go", Status: domain.CourseStatusNotStarted}, nil)
	app := newCourseTestApp(svc)

	resp, env := doRequest(t, app, "POST", "/courses/", dto.CourseRequest{
		Name:       "Go",
		Milestones: []dto.MilestoneRequest{{Name: "Basics", Deadline: "2024-03-29"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var course dto.CourseResponse
	require.NoError(t, json.Unmarshal(env.Data, &course))
	assert.Equal(t, "c-1", course.ID)
	assert.NotNil(t, course.Milestones)

	resp, env = doRequest(t, app, "POST", "/courses/", dto.CourseRequest{
		Name:       "Go",
		Milestones: []dto.MilestoneRequest{{Name: "ok"}, {Name: "bad", Deadline: "29/03/2024"}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"milestones[1].deadline"}, errorFields(env))
	svc.AssertNumberOfCalls(t, "CreateCourse", 1)
}

func TestCourseHandler_ReadAndDelete(t *testing.T) {
	svc := new(MockCourseService)
	svc.On("ListCourses", mock.Anything, testUserID).Return([]*domain.Course{{ID: "c-1"}, {ID: "c-2"}}, nil)
	svc.On("GetCourse", mock.Anything, testUserID, "missing").Return(nil, domain.NewCourseNotFoundError("missing"))
	svc.On("DeleteCourse", mock.Anything, testUserID, "c-1").Return(nil)
	app := newCourseTestApp(svc)

	resp, env := doRequest(t, app, "GET", "/courses/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.CourseResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 2)

	resp, env = doRequest(t, app, "GET", "/courses/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, string(domain.CodeNotFound), env.Code)

	resp, _ = doRequest(t, app, "DELETE", "/courses/c-1", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestCourseHandler_UpdateMilestone(t *testing.T) {
	svc := new(MockCourseService)
	svc.On("SetMilestoneCompleted", mock.Anything, testUserID, "c-1", 2, true).
		Return(&domain.Course{ID: "c-1", Progress: 100, Status: domain.CourseStatusCompleted}, nil)
	app := newCourseTestApp(svc)

	resp, env := doRequest(t, app, "PATCH", "/courses/c-1/milestones/2", dto.UpdateMilestoneRequest{Completed: true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var course dto.CourseResponse
	require.NoError(t, json.Unmarshal(env.Data, &course))
	assert.Equal(t, 100, course.Progress)

	resp, _ = doRequest(t, app, "PATCH", "/courses/c-1/milestones/abc", dto.UpdateMilestoneRequest{Completed: true})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	svc.AssertNumberOfCalls(t, "SetMilestoneCompleted", 1)
}
