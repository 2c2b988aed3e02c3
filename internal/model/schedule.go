package model

// DaysInWeek day_of_week 取值 0..6，0 为周一
const DaysInWeek = 7

// Schedule 课表条目
type Schedule struct {
	ID        string `json:"id"`
	CourseID  string `json:"course_id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Room      string `json:"room"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (s Schedule) GetID() string { return s.ID }

// ValidDay 0..6
func ValidDay(day int) bool { return day >= 0 && day < DaysInWeek }

// ScheduleInput 创建课表条目请求体
type ScheduleInput struct {
	CourseID  string `json:"course_id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Room      string `json:"room"`
}
