package dto

// ── 院系 / 档案 ──

// CreateDepartmentRequest 创建院系
type CreateDepartmentRequest struct {
	Name        string `json:"name"        binding:"required,max=100"`
	Code        string `json:"code"        binding:"required,max=20"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// CreateStudentRequest 为用户建立学生档案
type CreateStudentRequest struct {
	UserID           string `json:"user_id"           binding:"required"`
	StudentNumber    string `json:"student_number"    binding:"required,max=30"`
	DepartmentID     string `json:"department_id"     binding:"required"`
	AcademicYear     string `json:"academic_year"     binding:"required"`
	DateOfBirth      string `json:"date_of_birth"     binding:"required,datetime=2006-01-02"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergency_contact"`
}

// CreateTeacherRequest 为用户建立教师档案
type CreateTeacherRequest struct {
	UserID         string `json:"user_id"         binding:"required"`
	EmployeeNumber string `json:"employee_number" binding:"required,max=30"`
	DepartmentID   string `json:"department_id"   binding:"required"`
	Specialization string `json:"specialization"`
	Qualification  string `json:"qualification"`
}

// SetUserStatusRequest 启用 / 停用用户
type SetUserStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// ── 课程 / 考试 / 课表 ──

// CreateCourseRequest 创建课程，max_students 默认 50
type CreateCourseRequest struct {
	Name         string `json:"name"          binding:"required,max=100"`
	Code         string `json:"code"          binding:"required,max=20"`
	DepartmentID string `json:"department_id" binding:"required"`
	TeacherID    string `json:"teacher_id"`
	Credits      int    `json:"credits"       binding:"required,min=1,max=30"`
	Semester     int    `json:"semester"      binding:"required,min=1,max=12"`
	Description  string `json:"description"`
	MaxStudents  int    `json:"max_students"  binding:"omitempty,min=1"`
}

// CreateExamRequest 创建考试，max_score 默认 100
type CreateExamRequest struct {
	CourseID        string   `json:"course_id"        binding:"required"`
	Name            string   `json:"name"             binding:"required,max=100"`
	ExamDate        string   `json:"exam_date"        binding:"required,datetime=2006-01-02"`
	StartTime       string   `json:"start_time"       binding:"required"`
	DurationMinutes int      `json:"duration_minutes" binding:"required,min=1"`
	Room            string   `json:"room"             binding:"required"`
	MaxScore        *float64 `json:"max_score"`
	SupervisorIDs   []string `json:"supervisor_ids"`
}

// CreateScheduleRequest 创建课表条目，day_of_week 0 为周一
type CreateScheduleRequest struct {
	CourseID  string `json:"course_id"   binding:"required"`
	DayOfWeek *int   `json:"day_of_week" binding:"required"`
	StartTime string `json:"start_time"  binding:"required"`
	EndTime   string `json:"end_time"    binding:"required"`
	Room      string `json:"room"        binding:"required"`
}

// ── 成绩 / 考勤 / 选课 ──

// CreateGradeRequest 录入成绩，exam_id 为空表示平时成绩，max_score 默认 100
type CreateGradeRequest struct {
	StudentID string   `json:"student_id" binding:"required"`
	CourseID  string   `json:"course_id"  binding:"required"`
	ExamID    string   `json:"exam_id"`
	Score     *float64 `json:"score"      binding:"required"`
	MaxScore  *float64 `json:"max_score"`
	Comments  string   `json:"comments"`
}

// CreateAttendanceRequest 登记考勤
type CreateAttendanceRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	CourseID  string `json:"course_id"  binding:"required"`
	Date      string `json:"date"       binding:"required,datetime=2006-01-02"`
	Status    string `json:"status"     binding:"required,oneof=present absent late excused"`
	Notes     string `json:"notes"`
}

// CreateEnrollmentRequest 学生为自己提交选课申请
type CreateEnrollmentRequest struct {
	CourseID string `json:"course_id" binding:"required"`
}
