package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"course-compass/internal/domain"
)

const defaultAnswerCode = "A"

var (
	placeholderOptions = [4]string{"Option A", "Option B", "Option C", "Option D"}

	// A leading A-D, optionally after "Answer:" or an opening bracket, that is
	// not the first letter of a word.
	answerCodeRe = regexp.MustCompile(`^(?:(?:THE\s+)?(?:CORRECT\s+)?ANSWER(?:\s+IS)?\s*[:=\-]?\s*)?[(\[]?([A-D])(?:[^A-Z0-9]|$)`)

	requiredCourseFields = []string{
		"name", "provider", "duration", "pace",
		"objectives", "milestones", "prerequisites", "mainSkills",
	}
)

// CoerceQuizQuestions maps parsed model items onto QuizQuestions. It never
// fails and never drops an index: malformed fields get placeholders and an
// unreadable answer becomes "A" with AnswerConfident=false. The result is
// capped at the clamped question count but never padded.
func CoerceQuizQuestions(items []any, spec QuizSpec) []domain.QuizQuestion {
	n := len(items)
	if limit := spec.questionLimit(); n > limit {
		n = limit
	}
	seconds := spec.timePerQuestion()

	questions := make([]domain.QuizQuestion, 0, n)
	for i := 0; i < n; i++ {
		obj, _ := items[i].(map[string]any)
		code, confident := coerceAnswerCode(firstPresent(obj, "correctAnswer", "correct_answer", "answer"))
		questions = append(questions, domain.QuizQuestion{
			ID:              i + 1,
			Question:        coerceQuestionText(obj["question"], i+1),
			Options:         coerceOptions(obj["options"]),
			CorrectAnswer:   code,
			AnswerConfident: confident,
			TimePerQuestion: seconds,
		})
	}
	return questions
}

func coerceQuestionText(v any, position int) string {
	if s := coerceText(v); s != "" {
		return s
	}
	return fmt.Sprintf("Question %d", position)
}

func coerceOptions(v any) [4]string {
	options := placeholderOptions
	list, ok := v.([]any)
	if !ok {
		return options
	}
	for i := 0; i < len(list) && i < len(options); i++ {
		if s := coerceText(list[i]); s != "" {
			options[i] = s
		}
	}
	return options
}

// coerceAnswerCode returns the canonical letter and whether it was read from
// the model output rather than defaulted.
func coerceAnswerCode(v any) (string, bool) {
	s := strings.ToUpper(coerceText(v))
	if m := answerCodeRe.FindStringSubmatch(s); m != nil {
		return m[1], true
	}
	return defaultAnswerCode, false
}

// ValidateCourseFields reports every required key that is absent or null,
// in canonical order.
func ValidateCourseFields(obj map[string]any) error {
	var missing []string
	for _, key := range requiredCourseFields {
		if v, ok := obj[key]; !ok || v == nil {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return &domain.MissingRequiredFieldsError{Fields: missing}
	}
	return nil
}

// CoerceCourseInfo converts a validated course object into a CourseInfo.
// Milestone deadlines are left empty for the scheduler.
func CoerceCourseInfo(obj map[string]any) domain.CourseInfo {
	return domain.CourseInfo{
		Name:          coerceText(obj["name"]),
		Provider:      coerceText(obj["provider"]),
		Duration:      coerceText(obj["duration"]),
		Pace:          coerceText(obj["pace"]),
		Objectives:    coerceStringList(obj["objectives"]),
		Prerequisites: coerceStringList(obj["prerequisites"]),
		MainSkills:    coerceStringList(obj["mainSkills"]),
		Milestones:    coerceMilestones(obj["milestones"]),
	}
}

func coerceStringList(v any) []string {
	out := []string{}
	switch list := v.(type) {
	case []any:
		for _, item := range list {
			if s := coerceText(item); s != "" {
				out = append(out, s)
			}
		}
	case string:
		if s := strings.TrimSpace(list); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func coerceMilestones(v any) []domain.Milestone {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	milestones := make([]domain.Milestone, 0, len(list))
	for i, item := range list {
		var name string
		switch m := item.(type) {
		case map[string]any:
			name = coerceText(firstPresent(m, "name", "title"))
		default:
			name = coerceText(m)
		}
		if name == "" {
			name = fmt.Sprintf("Milestone %d", i+1)
		}
		milestones = append(milestones, domain.Milestone{Name: name})
	}
	return milestones
}

// coerceText renders scalar JSON values as trimmed text; anything else is "".
func coerceText(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func firstPresent(obj map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return v
		}
	}
	return nil
}
