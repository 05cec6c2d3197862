package normalize

import (
	"time"

	"course-compass/internal/domain"
)

// NormalizeQuizResponse turns raw quiz-generation output into questions.
// It fails only with *domain.MalformedAIResponseError; element-level defects
// are coerced.
func NormalizeQuizResponse(raw string, spec QuizSpec) ([]domain.QuizQuestion, error) {
	text := Sanitize(StripReasoning(raw))
	items, err := ExtractArray(text)
	if err != nil {
		return nil, err
	}
	return CoerceQuizQuestions(items, spec), nil
}

// NormalizeCourseResponse turns raw course-extraction output into a
// CourseInfo with deadlines scheduled from anchor. It fails with
// *domain.MalformedAIResponseError or *domain.MissingRequiredFieldsError.
func NormalizeCourseResponse(raw string, anchor time.Time) (*domain.CourseInfo, error) {
	text := Sanitize(StripReasoning(raw))
	obj, err := ExtractObject(text)
	if err != nil {
		return nil, err
	}
	if err := ValidateCourseFields(obj); err != nil {
		return nil, err
	}

	info := CoerceCourseInfo(obj)
	if len(info.Milestones) == 0 {
		// An empty list cannot be scheduled.
		return nil, &domain.MissingRequiredFieldsError{Fields: []string{"milestones"}}
	}
	info.Milestones = ScheduleMilestones(info.Milestones, ParseDurationWeeks(info.Duration), anchor)
	return &info, nil
}
