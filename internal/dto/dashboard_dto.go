package dto

// UpcomingMilestone is an incomplete milestone with a deadline.
type UpcomingMilestone struct {
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name"`
	Name       string `json:"name"`
	Deadline   string `json:"deadline"`
	Index      int    `json:"index"`
}

// DashboardResponse summarizes a user's learning activity.
type DashboardResponse struct {
	TotalCourses       int                  `json:"total_courses"`
	NotStartedCourses  int                  `json:"not_started_courses"`
	InProgressCourses  int                  `json:"in_progress_courses"`
	CompletedCourses   int                  `json:"completed_courses"`
	AverageProgress    float64              `json:"average_progress"`
	TotalQuizzes       int                  `json:"total_quizzes"`
	AverageQuizScore   float64              `json:"average_quiz_score"`
	BestQuizScore      float64              `json:"best_quiz_score"`
	UpcomingMilestones []UpcomingMilestone  `json:"upcoming_milestones"`
	RecentResults      []QuizResultResponse `json:"recent_results"`
}
