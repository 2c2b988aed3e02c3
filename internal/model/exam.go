package model

// Exam 考试安排
type Exam struct {
	ID              string   `json:"id"`
	CourseID        string   `json:"course_id"`
	Name            string   `json:"name"`
	ExamDate        string   `json:"exam_date"`
	StartTime       string   `json:"start_time"`
	DurationMinutes int      `json:"duration_minutes"`
	Room            string   `json:"room"`
	MaxScore        float64  `json:"max_score"`
	SupervisorIDs   []string `json:"supervisor_ids,omitempty"`
	CreatedAt       string   `json:"created_at,omitempty"`
}

func (e Exam) GetID() string { return e.ID }

// ExamInput 创建考试请求体
type ExamInput struct {
	CourseID        string   `json:"course_id"`
	Name            string   `json:"name"`
	ExamDate        string   `json:"exam_date"`
	StartTime       string   `json:"start_time"`
	DurationMinutes int      `json:"duration_minutes"`
	Room            string   `json:"room"`
	MaxScore        float64  `json:"max_score"`
	SupervisorIDs   []string `json:"supervisor_ids,omitempty"`
}
