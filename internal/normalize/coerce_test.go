package normalize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-compass/internal/domain"
)

func TestCoerceAnswerCode(t *testing.T) {
	tests := []struct {
		input     any
		expected  string
		confident bool
	}{
		{"C) Paris", "C", true},
		{"completely invalid", "A", false},
		{"B", "B", true},
		{"d", "D", true},
		{"(D)", "D", true},
		{"[b] Berlin", "B", true},
		{"Answer: C) Paris", "C", true},
		{"The correct answer is B.", "B", true},
		{"A.", "A", true},
		{"Apple", "A", false},
		{"E", "A", false},
		{"", "A", false},
		{float64(2), "A", false},
		{nil, "A", false},
	}

	for _, tt := range tests {
		code, confident := coerceAnswerCode(tt.input)
		assert.Equal(t, tt.expected, code, "input %v", tt.input)
		assert.Equal(t, tt.confident, confident, "input %v", tt.input)
	}
}

func TestCoerceQuizQuestions_AlwaysWellFormed(t *testing.T) {
	items := []any{
		map[string]any{"question": "  What is 2+2? ", "options": []any{"3", "4", "5", "6"}, "correctAnswer": "B"},
		map[string]any{"question": "", "options": "not a list", "correctAnswer": "nope"},
		map[string]any{"options": []any{"only one"}, "correct_answer": "c"},
		map[string]any{"question": 42, "options": []any{"a", "b", "c", "d", "e", "f"}, "answer": "(d)"},
		map[string]any{"options": []any{"", nil, 7, true}},
		"not an object",
		nil,
	}
	spec := QuizSpec{EntityName: "Math", Difficulty: "easy", QuestionCount: 10, TimePerQuestion: 45}

	questions := CoerceQuizQuestions(items, spec)
	require.Len(t, questions, len(items))

	for i, q := range questions {
		assert.Equal(t, i+1, q.ID)
		assert.NotEmpty(t, q.Question)
		assert.Len(t, q.Options, 4)
		for _, opt := range q.Options {
			assert.NotEmpty(t, opt)
		}
		assert.Contains(t, []string{"A", "B", "C", "D"}, q.CorrectAnswer)
		assert.Equal(t, 45, q.TimePerQuestion)
	}

	assert.Equal(t, "What is 2+2?", questions[0].Question)
	assert.Equal(t, [4]string{"3", "4", "5", "6"}, questions[0].Options)
	assert.True(t, questions[0].AnswerConfident)

	assert.Equal(t, "Question 2", questions[1].Question)
	assert.Equal(t, placeholderOptions, questions[1].Options)
	assert.Equal(t, "A", questions[1].CorrectAnswer)
	assert.False(t, questions[1].AnswerConfident)

	assert.Equal(t, [4]string{"only one", "Option B", "Option C", "Option D"}, questions[2].Options)
	assert.Equal(t, "C", questions[2].CorrectAnswer)

	assert.Equal(t, "42", questions[3].Question)
	assert.Equal(t, [4]string{"a", "b", "c", "d"}, questions[3].Options)
	assert.Equal(t, "D", questions[3].CorrectAnswer)

	assert.Equal(t, [4]string{"Option A", "Option B", "7", "true"}, questions[4].Options)
	assert.Equal(t, "Question 6", questions[5].Question)
}

func TestCoerceQuizQuestions_DefaultsTime(t *testing.T) {
	questions := CoerceQuizQuestions([]any{map[string]any{}}, QuizSpec{QuestionCount: 1})
	require.Len(t, questions, 1)
	assert.Equal(t, DefaultTimePerQuestion, questions[0].TimePerQuestion)
}

func TestCoerceQuizQuestions_NeverPads(t *testing.T) {
	questions := CoerceQuizQuestions([]any{map[string]any{"question": "Q1"}}, QuizSpec{QuestionCount: 5})
	assert.Len(t, questions, 1)
}

func TestValidateCourseFields(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		assert.NoError(t, ValidateCourseFields(completeCourseObject()))
	})

	t.Run("missing milestones", func(t *testing.T) {
		obj := completeCourseObject()
		delete(obj, "milestones")

		err := ValidateCourseFields(obj)
		var missing *domain.MissingRequiredFieldsError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, []string{"milestones"}, missing.Fields)
	})

	t.Run("null counts as missing and order is canonical", func(t *testing.T) {
		obj := completeCourseObject()
		obj["mainSkills"] = nil
		delete(obj, "name")
		delete(obj, "pace")

		err := ValidateCourseFields(obj)
		var missing *domain.MissingRequiredFieldsError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, []string{"name", "pace", "mainSkills"}, missing.Fields)
	})
}

func TestCoerceCourseInfo(t *testing.T) {
	obj := completeCourseObject()
	obj["prerequisites"] = "Basic programming"
	obj["milestones"] = []any{
		map[string]any{"name": "Basics"},
		map[string]any{"title": "Concurrency"},
		"Capstone",
		map[string]any{},
	}

	info := CoerceCourseInfo(obj)
	assert.Equal(t, "Go Fundamentals", info.Name)
	assert.Equal(t, []string{"Basic programming"}, info.Prerequisites)
	assert.Equal(t, []string{"Types", "Goroutines", "Testing"}, info.MainSkills)
	require.Len(t, info.Milestones, 4)
	assert.Equal(t, "Basics", info.Milestones[0].Name)
	assert.Equal(t, "Concurrency", info.Milestones[1].Name)
	assert.Equal(t, "Capstone", info.Milestones[2].Name)
	assert.Equal(t, "Milestone 4", info.Milestones[3].Name)
	assert.Empty(t, info.Milestones[0].Deadline)
}

func completeCourseObject() map[string]any {
	return map[string]any{
		"name":          "Go Fundamentals",
		"provider":      "Coursera",
		"duration":      "12 weeks",
		"pace":          "5 hours per week",
		"objectives":    []any{"Write Go", "Test Go", "Ship Go"},
		"prerequisites": []any{},
		"mainSkills":    []any{"Types", "Goroutines", "Testing"},
		"milestones":    []any{map[string]any{"name": "Week 1"}},
	}
}
