package model

// EnrollmentStatus 学生档案审核状态
type EnrollmentStatus string

const (
	EnrollmentPending  EnrollmentStatus = "pending"
	EnrollmentApproved EnrollmentStatus = "approved"
	EnrollmentRejected EnrollmentStatus = "rejected"
)

// Valid 是否为已知状态
func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentPending, EnrollmentApproved, EnrollmentRejected:
		return true
	}
	return false
}

// CanTransitionTo 状态流转：仅 pending → approved | rejected
func (s EnrollmentStatus) CanTransitionTo(next EnrollmentStatus) bool {
	return s == EnrollmentPending && (next == EnrollmentApproved || next == EnrollmentRejected)
}

// Student 学生档案，与 User 一对一
type Student struct {
	ID               string           `json:"id"`
	UserID           string           `json:"user_id"`
	StudentNumber    string           `json:"student_number"`
	DepartmentID     string           `json:"department_id"`
	AcademicYear     string           `json:"academic_year"`
	DateOfBirth      string           `json:"date_of_birth"`
	Address          string           `json:"address,omitempty"`
	EmergencyContact string           `json:"emergency_contact,omitempty"`
	EnrollmentStatus EnrollmentStatus `json:"enrollment_status"`
	CreatedAt        string           `json:"created_at,omitempty"`
}

func (s Student) GetID() string { return s.ID }

// StudentInput 创建学生档案请求体
type StudentInput struct {
	UserID           string `json:"user_id"`
	StudentNumber    string `json:"student_number"`
	DepartmentID     string `json:"department_id"`
	AcademicYear     string `json:"academic_year"`
	DateOfBirth      string `json:"date_of_birth"`
	Address          string `json:"address,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`
}

// FindStudentByUser 按 user_id 查找学生档案
func FindStudentByUser(students []Student, userID string) (Student, bool) {
	for _, s := range students {
		if s.UserID == userID {
			return s, true
		}
	}
	return Student{}, false
}
