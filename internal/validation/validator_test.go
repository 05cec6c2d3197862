package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-compass/internal/domain"
	"course-compass/internal/dto"
)

func TestValidator_Struct(t *testing.T) {
	v := NewValidator()

	t.Run("valid", func(t *testing.T) {
		req := dto.GenerateQuizRequest{CourseName: "Go", Difficulty: "easy", NumQuestions: 50}
		assert.NoError(t, v.Struct(req))
	})

	t.Run("json field names and all failures", func(t *testing.T) {
		req := dto.GenerateQuizRequest{CourseName: "   ", Difficulty: "extreme"}
		err := v.Struct(req)

		var verrs domain.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		fields := map[string]string{}
		for _, e := range verrs {
			fields[e.Field] = e.Message
		}
		assert.Contains(t, fields, "course_name")
		assert.Contains(t, fields, "difficulty")
		assert.Contains(t, fields, "num_questions")
		assert.Equal(t, "course_name must not be blank", fields["course_name"])
	})

	t.Run("cross field", func(t *testing.T) {
		req := dto.SaveQuizResultRequest{CourseName: "Go", Difficulty: "hard", TotalQuestions: 5, CorrectAnswers: 6}
		err := v.Struct(req)

		var verrs domain.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		require.Len(t, verrs, 1)
		assert.Equal(t, "correct_answers", verrs[0].Field)
	})

	t.Run("nested milestones", func(t *testing.T) {
		req := dto.CourseRequest{Name: "Go", Milestones: []dto.MilestoneRequest{{Name: "ok"}, {Name: "x", Deadline: "01/02/2024"}}}
		err := v.Struct(req)

		var verrs domain.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		require.Len(t, verrs, 1)
		assert.Equal(t, "milestones[1].deadline", verrs[0].Field)
	})

	t.Run("password is not echoed", func(t *testing.T) {
		req := dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "short"}
		err := v.Struct(req)

		var verrs domain.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		require.Len(t, verrs, 1)
		assert.Equal(t, "password", verrs[0].Field)
		assert.Nil(t, verrs[0].Value)
	})
}
