package model

// Course 课程；TeacherID 为空表示未分配教师
type Course struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	DepartmentID string `json:"department_id"`
	TeacherID    string `json:"teacher_id,omitempty"`
	Credits      int    `json:"credits"`
	Semester     int    `json:"semester"`
	Description  string `json:"description,omitempty"`
	MaxStudents  int    `json:"max_students"`
	CreatedAt    string `json:"created_at,omitempty"`
}

func (c Course) GetID() string { return c.ID }

// CourseInput 创建课程请求体
type CourseInput struct {
	Name         string `json:"name"`
	Code         string `json:"code"`
	DepartmentID string `json:"department_id"`
	TeacherID    string `json:"teacher_id,omitempty"`
	Credits      int    `json:"credits"`
	Semester     int    `json:"semester"`
	Description  string `json:"description,omitempty"`
	MaxStudents  int    `json:"max_students"`
}

// Enrollment 选课申请
type Enrollment struct {
	ID         string           `json:"id"`
	StudentID  string           `json:"student_id"`
	CourseID   string           `json:"course_id"`
	Status     EnrollmentStatus `json:"status"`
	EnrolledAt string           `json:"enrolled_at,omitempty"`
}

func (e Enrollment) GetID() string { return e.ID }

// EnrollmentInput 选课申请请求体
type EnrollmentInput struct {
	StudentID string `json:"student_id"`
	CourseID  string `json:"course_id"`
}
