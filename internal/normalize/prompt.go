package normalize

import (
	"fmt"
	"strings"
)

// BuildQuizPrompt returns the instruction sent to the model for quiz
// generation. The question count is clamped before it is written.
func BuildQuizPrompt(spec QuizSpec) string {
	count := spec.questionLimit()
	difficulty := strings.ToLower(spec.Difficulty)
	if difficulty == "" {
		difficulty = "medium"
	}

	var sb strings.Builder
	sb.WriteString("You are a quiz author for an online learning platform.\n\n")
	sb.WriteString(fmt.Sprintf("Write %d multiple-choice questions about \"%s\" at %s difficulty.\n\n", count, spec.EntityName, difficulty))
	sb.WriteString("OUTPUT FORMAT:\n")
	sb.WriteString(fmt.Sprintf("- Respond with ONLY a JSON array of exactly %d objects.\n", count))
	sb.WriteString("- Do NOT wrap the JSON in markdown code fences and do NOT add any text before or after it.\n")
	sb.WriteString("- Each object must have exactly these keys:\n")
	sb.WriteString("  \"question\": string, the question text\n")
	sb.WriteString("  \"options\": array of exactly 4 strings, the choices in order A, B, C, D\n")
	sb.WriteString("  \"correctAnswer\": string, the single letter A, B, C or D of the correct option\n\n")
	sb.WriteString("Example element:\n")
	sb.WriteString(`{"question": "Which keyword declares a constant in Go?", "options": ["var", "const", "let", "static"], "correctAnswer": "B"}`)
	sb.WriteString("\n")

	return sb.String()
}

// BuildCourseExtractionPrompt returns the instruction sent to the model to
// describe the course at params.CourseURL.
func BuildCourseExtractionPrompt(params CourseExtractionParams) string {
	hours := params.HoursPerWeek
	if hours <= 0 {
		hours = DefaultHoursPerWeek
	}

	var sb strings.Builder
	sb.WriteString("You are an assistant that catalogs online courses.\n\n")
	sb.WriteString("COURSE URL: " + strings.TrimSpace(params.CourseURL) + "\n")
	sb.WriteString(fmt.Sprintf("STUDY TIME: the learner can spend %d hours per week. Estimate duration and pace for that commitment.\n", hours))
	if !params.Today.IsZero() {
		sb.WriteString("TODAY: " + params.Today.Format(DateLayout) + "\n")
	}
	sb.WriteString("\nOUTPUT FORMAT:\n")
	sb.WriteString("- Respond with ONLY a JSON object.\n")
	sb.WriteString("- Do NOT wrap the JSON in markdown code fences and do NOT add any text before or after it.\n")
	sb.WriteString("- The object must have exactly these keys:\n")
	sb.WriteString("  \"name\": string, the course title\n")
	sb.WriteString("  \"provider\": string, the platform or institution offering the course\n")
	sb.WriteString("  \"duration\": string starting with the number of weeks, e.g. \"8 weeks\"\n")
	sb.WriteString("  \"pace\": string, e.g. \"5 hours per week\"\n")
	sb.WriteString("  \"objectives\": array of at least 3 strings\n")
	sb.WriteString("  \"prerequisites\": array of strings, empty if none\n")
	sb.WriteString("  \"mainSkills\": array of at least 3 strings\n")
	sb.WriteString("  \"milestones\": array of objects with a \"name\" string, in the order they should be completed\n")

	return sb.String()
}
