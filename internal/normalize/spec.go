// Package normalize turns free-text model output into validated quiz and
// course records. Every function here is pure: no I/O, no clock reads and no
// shared state, so callers own the model client, timeouts and logging.
package normalize

import (
	"strings"
	"time"

	"course-compass/internal/domain"
)

const (
	// MaxQuestionCount bounds a single generated quiz.
	MaxQuestionCount = 30
	// DefaultTimePerQuestion is used when the caller gives no positive value (seconds).
	DefaultTimePerQuestion = 60
	// DefaultDurationWeeks is used when a course duration has no leading number.
	DefaultDurationWeeks = 12
	// MaxDurationWeeks caps a parsed course duration at ten years.
	MaxDurationWeeks = 520
	// DefaultHoursPerWeek is the pacing hint used when none is given.
	DefaultHoursPerWeek = 5

	// DateLayout is the ISO calendar date format used for milestone deadlines.
	DateLayout = "2006-01-02"
)

// QuizSpec describes a quiz generation request.
type QuizSpec struct {
	EntityName      string
	Difficulty      string
	QuestionCount   int
	TimePerQuestion int
}

// NewQuizSpec validates the request parameters, clamps the question count to
// MaxQuestionCount and applies the default time per question.
func NewQuizSpec(entityName, difficulty string, questionCount, timePerQuestion int) (QuizSpec, error) {
	var errs domain.ValidationErrors

	entityName = strings.TrimSpace(entityName)
	if entityName == "" {
		errs = append(errs, domain.NewMissingFieldError("course_name"))
	}
	difficulty = strings.ToLower(strings.TrimSpace(difficulty))
	if !domain.IsValidDifficulty(difficulty) {
		errs = append(errs, domain.NewInvalidFormatError("difficulty", difficulty))
	}
	if questionCount <= 0 {
		errs = append(errs, domain.NewOutOfRangeError("num_questions", questionCount, 1, MaxQuestionCount))
	}
	if len(errs) > 0 {
		return QuizSpec{}, errs
	}

	return QuizSpec{
		EntityName:      entityName,
		Difficulty:      difficulty,
		QuestionCount:   ClampQuestionCount(questionCount),
		TimePerQuestion: timeOrDefault(timePerQuestion),
	}, nil
}

// ClampQuestionCount caps n at MaxQuestionCount. Non-positive values map to
// MaxQuestionCount so a zero-value spec never truncates below the cap.
func ClampQuestionCount(n int) int {
	if n <= 0 || n > MaxQuestionCount {
		return MaxQuestionCount
	}
	return n
}

func (s QuizSpec) questionLimit() int {
	return ClampQuestionCount(s.QuestionCount)
}

func (s QuizSpec) timePerQuestion() int {
	return timeOrDefault(s.TimePerQuestion)
}

func timeOrDefault(seconds int) int {
	if seconds <= 0 {
		return DefaultTimePerQuestion
	}
	return seconds
}

// CourseExtractionParams describes a course-extraction request. Today is
// optional; when set it is embedded in the prompt as the scheduling anchor.
type CourseExtractionParams struct {
	CourseURL    string
	HoursPerWeek int
	Today        time.Time
}
