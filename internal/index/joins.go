package index

import "campus-portal/internal/model"

const (
	// UnknownLabel 引用的记录不存在
	UnknownLabel = "N/A"
	// UnassignedLabel 课程未分配教师
	UnassignedLabel = "Unassigned"
	// ContinuousAssessmentLabel 无关联考试的平时成绩
	ContinuousAssessmentLabel = "Continuous assessment"
)

// Joins 页面渲染所需的各类索引，未加载的索引视为空
// nil *Joins 可直接调用各解析方法
type Joins struct {
	Departments *Index[model.Department]
	Courses     *Index[model.Course]
	Teachers    *Index[model.Teacher]
	Students    *Index[model.Student]
	Exams       *Index[model.Exam]
	Users       *Index[model.User]
}

// JoinSet 构建 Joins 的原始数据，nil 切片表示不需要该索引
type JoinSet struct {
	Departments []model.Department
	Courses     []model.Course
	Teachers    []model.Teacher
	Students    []model.Student
	Exams       []model.Exam
	Users       []model.User
}

// noJoins nil *Joins 的等价值：所有引用均解析为 UnknownLabel
var noJoins = NewJoins(JoinSet{})

func (j *Joins) orEmpty() *Joins {
	if j == nil {
		return noJoins
	}
	return j
}

// NewJoins 为每类记录建立索引
func NewJoins(s JoinSet) *Joins {
	return &Joins{
		Departments: Build(s.Departments, model.Department{Name: UnknownLabel, Code: UnknownLabel}),
		Courses:     Build(s.Courses, model.Course{Name: UnknownLabel, Code: UnknownLabel}),
		Teachers:    Build(s.Teachers, model.Teacher{EmployeeNumber: UnknownLabel}),
		Students:    Build(s.Students, model.Student{StudentNumber: UnknownLabel}),
		Exams:       Build(s.Exams, model.Exam{Name: UnknownLabel}),
		Users:       Build(s.Users, model.User{FirstName: UnknownLabel}),
	}
}

// DepartmentName 院系名称
func (j *Joins) DepartmentName(id string) string {
	j = j.orEmpty()
	return j.Departments.Lookup(id).Name
}

// CourseName 课程名称
func (j *Joins) CourseName(id string) string {
	j = j.orEmpty()
	return j.Courses.Lookup(id).Name
}

// CourseCode 课程代码
func (j *Joins) CourseCode(id string) string {
	j = j.orEmpty()
	return j.Courses.Lookup(id).Code
}

// TeacherLabel 课程教师显示名：未分配与引用失效分别展示
func (j *Joins) TeacherLabel(teacherID string) string {
	if teacherID == "" {
		return UnassignedLabel
	}
	j = j.orEmpty()
	t, ok := j.Teachers.Get(teacherID)
	if !ok {
		return UnknownLabel
	}
	if u, ok := j.Users.Get(t.UserID); ok {
		return u.FullName()
	}
	return t.EmployeeNumber
}

// StudentNumber 学号
func (j *Joins) StudentNumber(id string) string {
	j = j.orEmpty()
	return j.Students.Lookup(id).StudentNumber
}

// ExamName 考试名称，平时成绩无关联考试
func (j *Joins) ExamName(id string) string {
	if id == "" {
		return ContinuousAssessmentLabel
	}
	return j.orEmpty().Exams.Lookup(id).Name
}

// UserName 用户姓名
func (j *Joins) UserName(id string) string {
	j = j.orEmpty()
	u, ok := j.Users.Get(id)
	if !ok {
		return UnknownLabel
	}
	return u.FullName()
}
