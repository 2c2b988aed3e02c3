package viewmodel

import (
	"sort"
	"time"

	"campus-portal/internal/index"
	"campus-portal/internal/model"
	pkgerrors "campus-portal/pkg/errors"
)

// ────────────────────── 课程 ──────────────────────

// CourseCard 课程卡片
type CourseCard struct {
	model.Course
	DepartmentName string `json:"department_name"`
	TeacherLabel   string `json:"teacher_label"`
}

// CoursesView 课程页；学生有档案时可提交选课申请
type CoursesView struct {
	Courses   []CourseCard `json:"courses"`
	CanCreate bool         `json:"can_create"`
	CanEnroll bool         `json:"can_enroll"`
	StudentID string       `json:"student_id,omitempty"`
}

// BuildCoursesView 课程对所有角色可见
func BuildCoursesView(role model.Role, selfStudentID string, courses []model.Course, joins *index.Joins) (*CoursesView, error) {
	view := &CoursesView{Courses: make([]CourseCard, 0, len(courses))}
	switch role {
	case model.RoleAdmin, model.RoleTeacher:
		view.CanCreate = true
	case model.RoleStudent:
		view.CanEnroll = selfStudentID != ""
		view.StudentID = selfStudentID
	default:
		return nil, model.ErrUnknownRole
	}

	for _, c := range courses {
		view.Courses = append(view.Courses, CourseCard{
			Course:         c,
			DepartmentName: joins.DepartmentName(c.DepartmentID),
			TeacherLabel:   joins.TeacherLabel(c.TeacherID),
		})
	}
	return view, nil
}

// ────────────────────── 考试 ──────────────────────

// ExamCard 考试卡片
type ExamCard struct {
	model.Exam
	StartTime  string `json:"start_time"`
	CourseName string `json:"course_name"`
	CourseCode string `json:"course_code"`

	date  time.Time
	start model.Clock
}

// ExamsView 考试页，按日期与开始时间升序
type ExamsView struct {
	Exams     []ExamCard `json:"exams"`
	CanCreate bool       `json:"can_create"`
}

// ParseExamDate 接受 YYYY-MM-DD 或 RFC3339
func ParseExamDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, pkgerrors.Invariant("exam_date", "无法解析日期 %q", s)
}

// BuildExamsView 考试对所有角色可见
func BuildExamsView(role model.Role, exams []model.Exam, joins *index.Joins) (*ExamsView, error) {
	if !role.Valid() {
		return nil, model.ErrUnknownRole
	}

	view := &ExamsView{
		Exams:     make([]ExamCard, 0, len(exams)),
		CanCreate: role.IsStaff(),
	}
	for _, e := range exams {
		date, err := ParseExamDate(e.ExamDate)
		if err != nil {
			return nil, err
		}
		start, err := model.ParseClock(e.StartTime)
		if err != nil {
			return nil, err
		}
		view.Exams = append(view.Exams, ExamCard{
			Exam:       e,
			StartTime:  start.String(),
			CourseName: joins.CourseName(e.CourseID),
			CourseCode: joins.CourseCode(e.CourseID),
			date:       date,
			start:      start,
		})
	}

	sort.SliceStable(view.Exams, func(i, j int) bool {
		a, b := view.Exams[i], view.Exams[j]
		if !a.date.Equal(b.date) {
			return a.date.Before(b.date)
		}
		return a.start.Before(b.start)
	})
	return view, nil
}

// ────────────────────── 院系 ──────────────────────

// DepartmentRow 院系及其规模
type DepartmentRow struct {
	model.Department
	Courses  int `json:"courses"`
	Teachers int `json:"teachers"`
	Students int `json:"students"`
}

// DepartmentsView 院系页（管理员）
type DepartmentsView struct {
	Departments []DepartmentRow `json:"departments"`
}

// BuildDepartmentsView 统计每个院系的课程、教师、学生数量
func BuildDepartmentsView(departments []model.Department, courses []model.Course, teachers []model.Teacher, students []model.Student) *DepartmentsView {
	courseCount := make(map[string]int)
	for _, c := range courses {
		courseCount[c.DepartmentID]++
	}
	teacherCount := make(map[string]int)
	for _, t := range teachers {
		teacherCount[t.DepartmentID]++
	}
	studentCount := make(map[string]int)
	for _, s := range students {
		studentCount[s.DepartmentID]++
	}

	view := &DepartmentsView{Departments: make([]DepartmentRow, 0, len(departments))}
	for _, d := range departments {
		view.Departments = append(view.Departments, DepartmentRow{
			Department: d,
			Courses:    courseCount[d.ID],
			Teachers:   teacherCount[d.ID],
			Students:   studentCount[d.ID],
		})
	}
	return view
}
