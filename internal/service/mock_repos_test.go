package service

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"campus-portal/internal/model"
	"campus-portal/internal/repository"
	"campus-portal/internal/session"
	pkgerrors "campus-portal/pkg/errors"
)

// ── 上游数据桩 ──
// 各 mock repo 共享同一份数据；fail 按 "Repo.Method" 注入错误

type mockUpstream struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error

	login         *model.LoginResult
	users         []model.User
	students      []model.Student
	teachers      []model.Teacher
	departments   []model.Department
	courses       []model.Course
	exams         []model.Exam
	grades        []model.Grade
	attendance    []model.Attendance
	schedules     []model.Schedule
	enrollments   []model.Enrollment
	notifications []model.Notification
	stats         model.DashboardStats

	filters    []repository.RecordFilter
	registered []model.RegisterInput
	created    []interface{}
	patched    map[string]string
}

func newMockUpstream() *mockUpstream {
	return &mockUpstream{fail: make(map[string]error), patched: make(map[string]string)}
}

func (m *mockUpstream) call(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
	return m.fail[name]
}

func (m *mockUpstream) called(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (m *mockUpstream) record(v interface{}) {
	m.mu.Lock()
	m.created = append(m.created, v)
	m.mu.Unlock()
}

func (m *mockUpstream) factory() RepoFactory {
	return func(_ *session.Session) *repository.Repository {
		return &repository.Repository{
			Auth:         mockAuthRepo{m},
			User:         mockUserRepo{m},
			Student:      mockStudentRepo{m},
			Teacher:      mockTeacherRepo{m},
			Department:   mockDeptRepo{m},
			Course:       mockCourseRepo{m},
			Exam:         mockExamRepo{m},
			Grade:        mockGradeRepo{m},
			Attendance:   mockAttendanceRepo{m},
			Schedule:     mockScheduleRepo{m},
			Enrollment:   mockEnrollmentRepo{m},
			Notification: mockNotificationRepo{m},
			Stats:        mockStatsRepo{m},
		}
	}
}

// ── Mock AuthRepository ──

type mockAuthRepo struct{ m *mockUpstream }

func (r mockAuthRepo) Login(_ context.Context, email, password string) (*model.LoginResult, error) {
	if err := r.m.call("Auth.Login"); err != nil {
		return nil, err
	}
	if r.m.login == nil || r.m.login.User.Email != email || password != "password123" {
		return nil, &pkgerrors.ValidationError{Status: http.StatusUnauthorized, Detail: "Incorrect email or password"}
	}
	return r.m.login, nil
}

func (r mockAuthRepo) Register(_ context.Context, in *model.RegisterInput) (*model.User, error) {
	if err := r.m.call("Auth.Register"); err != nil {
		return nil, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Email == in.Email {
			return nil, &pkgerrors.ValidationError{Status: http.StatusBadRequest, Detail: "Email already registered"}
		}
	}
	r.m.registered = append(r.m.registered, *in)
	u := model.User{ID: "u-" + in.Email, Email: in.Email, FirstName: in.FirstName, LastName: in.LastName, Role: in.Role, IsActive: true}
	r.m.users = append(r.m.users, u)
	return &u, nil
}

func (r mockAuthRepo) Me(_ context.Context) (*model.User, error) {
	if err := r.m.call("Auth.Me"); err != nil {
		return nil, err
	}
	return &r.m.login.User, nil
}

// ── Mock UserRepository ──

type mockUserRepo struct{ m *mockUpstream }

func (r mockUserRepo) List(_ context.Context) ([]model.User, error) {
	return r.m.users, r.m.call("User.List")
}

func (r mockUserRepo) SetActive(_ context.Context, id string, active bool) error {
	r.m.record(id)
	return r.m.call("User.SetActive")
}

// ── Mock StudentRepository ──

type mockStudentRepo struct{ m *mockUpstream }

func (r mockStudentRepo) List(_ context.Context, status model.EnrollmentStatus) ([]model.Student, error) {
	if err := r.m.call("Student.List"); err != nil {
		return nil, err
	}
	var out []model.Student
	for _, s := range r.m.students {
		if status == "" || s.EnrollmentStatus == status {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r mockStudentRepo) Get(_ context.Context, id string) (*model.Student, error) {
	if err := r.m.call("Student.Get"); err != nil {
		return nil, err
	}
	for _, s := range r.m.students {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, &pkgerrors.NotFoundError{Detail: "Student not found"}
}

func (r mockStudentRepo) Create(_ context.Context, in *model.StudentInput) (*model.Student, error) {
	r.m.record(in)
	return &model.Student{ID: "s-new", UserID: in.UserID, StudentNumber: in.StudentNumber}, r.m.call("Student.Create")
}

func (r mockStudentRepo) PatchStatus(_ context.Context, id string, status model.EnrollmentStatus) error {
	if err := r.m.call("Student.PatchStatus"); err != nil {
		return err
	}
	r.m.mu.Lock()
	r.m.patched[id] = string(status)
	r.m.mu.Unlock()
	return nil
}

// ── Mock TeacherRepository ──

type mockTeacherRepo struct{ m *mockUpstream }

func (r mockTeacherRepo) List(_ context.Context) ([]model.Teacher, error) {
	return r.m.teachers, r.m.call("Teacher.List")
}

func (r mockTeacherRepo) Create(_ context.Context, in *model.TeacherInput) (*model.Teacher, error) {
	r.m.record(in)
	return &model.Teacher{ID: "t-new", UserID: in.UserID}, r.m.call("Teacher.Create")
}

// ── Mock DepartmentRepository ──

type mockDeptRepo struct{ m *mockUpstream }

func (r mockDeptRepo) List(_ context.Context) ([]model.Department, error) {
	return r.m.departments, r.m.call("Department.List")
}

func (r mockDeptRepo) Create(_ context.Context, in *model.DepartmentInput) (*model.Department, error) {
	r.m.record(in)
	return &model.Department{ID: "d-new", Name: in.Name, Code: in.Code}, r.m.call("Department.Create")
}

// ── Mock CourseRepository ──

type mockCourseRepo struct{ m *mockUpstream }

func (r mockCourseRepo) List(_ context.Context, _ string) ([]model.Course, error) {
	return r.m.courses, r.m.call("Course.List")
}

func (r mockCourseRepo) Get(_ context.Context, id string) (*model.Course, error) {
	if err := r.m.call("Course.Get"); err != nil {
		return nil, err
	}
	for _, c := range r.m.courses {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, &pkgerrors.NotFoundError{Detail: "Course not found"}
}

func (r mockCourseRepo) Create(_ context.Context, in *model.CourseInput) (*model.Course, error) {
	r.m.record(in)
	return &model.Course{ID: "c-new", Name: in.Name, Code: in.Code, MaxStudents: in.MaxStudents}, r.m.call("Course.Create")
}

// ── Mock ExamRepository ──

type mockExamRepo struct{ m *mockUpstream }

func (r mockExamRepo) List(_ context.Context, _ string) ([]model.Exam, error) {
	return r.m.exams, r.m.call("Exam.List")
}

func (r mockExamRepo) Create(_ context.Context, in *model.ExamInput) (*model.Exam, error) {
	r.m.record(in)
	return &model.Exam{ID: "e-new", CourseID: in.CourseID, Name: in.Name, StartTime: in.StartTime, MaxScore: in.MaxScore}, r.m.call("Exam.Create")
}

// ── Mock GradeRepository ──

type mockGradeRepo struct{ m *mockUpstream }

func (r mockGradeRepo) List(_ context.Context, f repository.RecordFilter) ([]model.Grade, error) {
	r.m.mu.Lock()
	r.m.filters = append(r.m.filters, f)
	r.m.mu.Unlock()
	if err := r.m.call("Grade.List"); err != nil {
		return nil, err
	}
	var out []model.Grade
	for _, g := range r.m.grades {
		if f.StudentID == "" || g.StudentID == f.StudentID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r mockGradeRepo) Create(_ context.Context, in *model.GradeInput) (*model.Grade, error) {
	r.m.record(in)
	if err := r.m.call("Grade.Create"); err != nil {
		return nil, err
	}
	return &model.Grade{
		ID: "g-new", StudentID: in.StudentID, CourseID: in.CourseID, ExamID: in.ExamID,
		Score: in.Score, MaxScore: in.MaxScore, Comments: in.Comments,
	}, nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct{ m *mockUpstream }

func (r mockAttendanceRepo) List(_ context.Context, f repository.RecordFilter) ([]model.Attendance, error) {
	if err := r.m.call("Attendance.List"); err != nil {
		return nil, err
	}
	var out []model.Attendance
	for _, a := range r.m.attendance {
		if f.StudentID == "" || a.StudentID == f.StudentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r mockAttendanceRepo) Create(_ context.Context, in *model.AttendanceInput) (*model.Attendance, error) {
	r.m.record(in)
	return &model.Attendance{ID: "a-new", StudentID: in.StudentID, Status: in.Status}, r.m.call("Attendance.Create")
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct{ m *mockUpstream }

func (r mockScheduleRepo) List(_ context.Context, _ string) ([]model.Schedule, error) {
	return r.m.schedules, r.m.call("Schedule.List")
}

func (r mockScheduleRepo) Create(_ context.Context, in *model.ScheduleInput) (*model.Schedule, error) {
	r.m.record(in)
	return &model.Schedule{ID: "sch-new", CourseID: in.CourseID, DayOfWeek: in.DayOfWeek, StartTime: in.StartTime, EndTime: in.EndTime}, r.m.call("Schedule.Create")
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct{ m *mockUpstream }

func (r mockEnrollmentRepo) List(_ context.Context, _ repository.RecordFilter) ([]model.Enrollment, error) {
	return r.m.enrollments, r.m.call("Enrollment.List")
}

func (r mockEnrollmentRepo) Create(_ context.Context, in *model.EnrollmentInput) (*model.Enrollment, error) {
	r.m.record(in)
	return &model.Enrollment{ID: "en-new", StudentID: in.StudentID, CourseID: in.CourseID, Status: model.EnrollmentPending}, r.m.call("Enrollment.Create")
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct{ m *mockUpstream }

func (r mockNotificationRepo) List(_ context.Context) ([]model.Notification, error) {
	return r.m.notifications, r.m.call("Notification.List")
}

func (r mockNotificationRepo) MarkRead(_ context.Context, id string) error {
	r.m.record(id)
	return r.m.call("Notification.MarkRead")
}

// ── Mock StatsRepository ──

type mockStatsRepo struct{ m *mockUpstream }

func (r mockStatsRepo) Dashboard(_ context.Context) (model.DashboardStats, error) {
	return r.m.stats, r.m.call("Stats.Dashboard")
}

// ── 测试辅助 ──

var (
	adminUser   = model.User{ID: "u-admin", Email: "admin@school.edu", FirstName: "Ada", LastName: "Admin", Role: model.RoleAdmin, IsActive: true}
	teacherUser = model.User{ID: "u-teacher", Email: "t@school.edu", FirstName: "Tom", LastName: "Teach", Role: model.RoleTeacher, IsActive: true}
	studentUser = model.User{ID: "u1", Email: "s1@school.edu", FirstName: "Sam", LastName: "Stu", Role: model.RoleStudent, IsActive: true}
)

// newTestSession 创建已登录会话
func newTestSession(t *testing.T, u model.User) *session.Session {
	t.Helper()
	sess := session.New(session.NewMemoryStore(), time.Hour, zap.NewNop())
	if err := sess.Begin(context.Background(), "upstream-token", u); err != nil {
		t.Fatalf("Begin 失败: %v", err)
	}
	return sess
}

// seedCampus s1 属于 u1，s2 属于 u2；各有一条成绩
func seedCampus(m *mockUpstream) {
	m.users = []model.User{adminUser, teacherUser, studentUser,
		{ID: "u2", FirstName: "Bo", LastName: "Two", Role: model.RoleStudent}}
	m.students = []model.Student{
		{ID: "s1", UserID: "u1", StudentNumber: "S001", DepartmentID: "d1", EnrollmentStatus: model.EnrollmentApproved},
		{ID: "s2", UserID: "u2", StudentNumber: "S002", DepartmentID: "d1", EnrollmentStatus: model.EnrollmentPending},
	}
	m.teachers = []model.Teacher{{ID: "t1", UserID: "u-teacher", EmployeeNumber: "E01", DepartmentID: "d1"}}
	m.departments = []model.Department{{ID: "d1", Name: "计算机系", Code: "CS"}}
	m.courses = []model.Course{{ID: "c1", Name: "算法", Code: "CS101", DepartmentID: "d1", TeacherID: "t1"}}
	m.exams = []model.Exam{{ID: "e1", CourseID: "c1", Name: "期中", ExamDate: "2026-04-20", StartTime: "9:00"}}
	m.grades = []model.Grade{
		{ID: "g1", StudentID: "s1", CourseID: "c1", ExamID: "e1", Score: 80, MaxScore: 100},
		{ID: "g2", StudentID: "s2", CourseID: "c1", Score: 30, MaxScore: 50},
	}
	m.attendance = []model.Attendance{
		{ID: "a1", StudentID: "s1", CourseID: "c1", Status: model.AttendancePresent},
		{ID: "a2", StudentID: "s1", CourseID: "c1", Status: model.AttendanceAbsent},
		{ID: "a3", StudentID: "s2", CourseID: "c1", Status: model.AttendanceLate},
	}
	m.schedules = []model.Schedule{
		{ID: "sc1", CourseID: "c1", DayOfWeek: 0, StartTime: "09:00", EndTime: "10:30", Room: "A101"},
		{ID: "sc2", CourseID: "c1", DayOfWeek: 0, StartTime: "8:30", EndTime: "09:00", Room: "A102"},
		{ID: "sc3", CourseID: "c1", DayOfWeek: 6, StartTime: "10:00", EndTime: "11:00"},
	}
}
