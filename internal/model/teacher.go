package model

// Teacher 教师档案，与 User 一对一
type Teacher struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	EmployeeNumber string `json:"employee_number"`
	DepartmentID   string `json:"department_id"`
	Specialization string `json:"specialization,omitempty"`
	Qualification  string `json:"qualification,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
}

func (t Teacher) GetID() string { return t.ID }

// TeacherInput 创建教师档案请求体
type TeacherInput struct {
	UserID         string `json:"user_id"`
	EmployeeNumber string `json:"employee_number"`
	DepartmentID   string `json:"department_id"`
	Specialization string `json:"specialization,omitempty"`
	Qualification  string `json:"qualification,omitempty"`
}

// FindTeacherByUser 按 user_id 查找教师档案
func FindTeacherByUser(teachers []Teacher, userID string) (Teacher, bool) {
	for _, t := range teachers {
		if t.UserID == userID {
			return t, true
		}
	}
	return Teacher{}, false
}
