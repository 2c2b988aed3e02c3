package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"campus-portal/internal/index"
	"campus-portal/internal/model"
	"campus-portal/internal/repository"
	"campus-portal/internal/session"
	"campus-portal/internal/viewmodel"
)

// ViewService 页面视图业务接口
//
// 每个页面并发拉取所需数据，全部返回后再构建视图模型；
// 任一请求失败即取消其余请求并只返回该错误，不返回部分视图。
type ViewService interface {
	Navigation(sess *session.Session) ([]viewmodel.NavItem, error)
	Dashboard(ctx context.Context, sess *session.Session) (*viewmodel.DashboardView, error)
	Grades(ctx context.Context, sess *session.Session) (*viewmodel.GradesView, error)
	Attendance(ctx context.Context, sess *session.Session) (*viewmodel.AttendanceView, error)
	Schedule(ctx context.Context, sess *session.Session) (*viewmodel.ScheduleView, error)
	Courses(ctx context.Context, sess *session.Session) (*viewmodel.CoursesView, error)
	Exams(ctx context.Context, sess *session.Session) (*viewmodel.ExamsView, error)
	Students(ctx context.Context, sess *session.Session, status model.EnrollmentStatus) (*viewmodel.StudentsView, error)
	Teachers(ctx context.Context, sess *session.Session) (*viewmodel.TeachersView, error)
	Users(ctx context.Context, sess *session.Session) (*viewmodel.UsersView, error)
	Departments(ctx context.Context, sess *session.Session) (*viewmodel.DepartmentsView, error)
}

type viewService struct {
	repos  RepoFactory
	logger *zap.Logger
}

// NewViewService 创建 ViewService 实例
func NewViewService(repos RepoFactory, logger *zap.Logger) ViewService {
	return &viewService{repos: repos, logger: logger}
}

// begin 取出当前用户并创建会话绑定的 Repository
func (s *viewService) begin(sess *session.Session) (model.User, *repository.Repository, error) {
	u, err := actor(sess)
	if err != nil {
		return model.User{}, nil, err
	}
	return u, s.repos(sess), nil
}

// self 学生角色解析本人档案（students[].user_id == 当前用户）
// 返回的学生列表可直接用于关联；无档案时 selfID 为空
func self(ctx context.Context, repo *repository.Repository, u model.User) (students []model.Student, selfID string, err error) {
	if u.Role != model.RoleStudent {
		return nil, "", nil
	}
	students, err = repo.Student.List(ctx, "")
	if err != nil {
		return nil, "", err
	}
	if st, ok := model.FindStudentByUser(students, u.ID); ok {
		selfID = st.ID
	}
	return students, selfID, nil
}

func (s *viewService) Navigation(sess *session.Session) ([]viewmodel.NavItem, error) {
	u, err := actor(sess)
	if err != nil {
		return nil, err
	}
	return viewmodel.BuildNavigation(u.Role)
}

func (s *viewService) Dashboard(ctx context.Context, sess *session.Session) (*viewmodel.DashboardView, error) {
	u, repo, err := s.begin(sess)
	if err != nil {
		return nil, err
	}

	var (
		stats  model.DashboardStats
		notifs []model.Notification
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { stats, err = repo.Stats.Dashboard(gctx); return })
	g.Go(func() (err error) { notifs, err = repo.Notification.List(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return viewmodel.BuildDashboardView(u.Role, stats, notifs)
}

func (s *viewService) Grades(ctx context.Context, sess *session.Session) (*viewmodel.GradesView, error) {
	u, repo, err := s.begin(sess)
	if err != nil {
		return nil, err
	}
	students, selfID, err := self(ctx, repo, u)
	if err != nil {
		return nil, err
	}
	if u.Role == model.RoleStudent && selfID == "" {
		return viewmodel.BuildGradesView(u.Role, "", nil, index.NewJoins(index.JoinSet{}))
	}

	var (
		grades  []model.Grade
		courses []model.Course
		exams   []model.Exam
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		grades, err = repo.Grade.List(gctx, repository.RecordFilter{StudentID: selfID})
		return
	})
	g.Go(func() (err error) { courses, err = repo.Course.List(gctx, ""); return })
	g.Go(func() (err error) { exams, err = repo.Exam.List(gctx, ""); return })
	if students == nil {
		g.Go(func() (err error) { students, err = repo.Student.List(gctx, ""); return })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	joins := index.NewJoins(index.JoinSet{Courses: courses, Students: students, Exams: exams})
	return viewmodel.BuildGradesView(u.Role, selfID, grades, joins)
}

func (s *viewService) Attendance(ctx context.Context, sess *session.Session) (*viewmodel.AttendanceView, error) {
	u, repo, err := s.begin(sess)
	if err != nil {
		return nil, err
	}
	students, selfID, err := self(ctx, repo, u)
	if err != nil {
		return nil, err
	}
	if u.Role == model.RoleStudent && selfID == "" {
		return viewmodel.BuildAttendanceView(u.Role, "", nil, index.NewJoins(index.JoinSet{}))
	}

	var (
		records []model.Attendance
		courses []model.Course
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		records, err = repo.Attendance.List(gctx, repository.RecordFilter{StudentID: selfID})
		return
	})
	g.Go(func() (err error) { courses, err = repo.Course.List(gctx, ""); return })
	if students == nil {
		g.Go(func() (err error) { students, err = repo.Student.List(gctx, ""); return })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	joins := index.NewJoins(index.JoinSet{Courses: courses, Students: students})
	return viewmodel.BuildAttendanceView(u.Role, selfID, records, joins)
}

func (s *viewService) Schedule(ctx context.Context, sess *session.Session) (*viewmodel.ScheduleView, error) {
	u, repo, err := s.begin(sess)
	if err != nil {
		return nil, err
	}

	var (
		schedules []model.Schedule
		courses   []model.Course
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { schedules, err = repo.Schedule.List(gctx, ""); return })
	g.Go(func() (err error) { courses, err = repo.Course.List(gctx, ""); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view, err := viewmodel.BuildScheduleView(schedules, index.NewJoins(index.JoinSet{Courses: courses}))
	if err != nil {
		return nil, err
	}
	view.CanCreate = u.Role == model.RoleAdmin
	return view, nil
}

func (s *viewService) Courses(ctx context.Context, sess *session.Session) (*viewmodel.CoursesView, error) {
	u, repo, err := s.begin(sess)
	if err != nil {
		return nil, err
	}

	var (
		courses     []model.Course
		departments []model.Department
		teachers    []model.Teacher
		selfID      string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { courses, err = repo.Course.List(gctx, ""); return })
	g.Go(func() (err error) { departments, err = repo.Department.List(gctx); return })
	g.Go(func() (err error) { teachers, err = repo.Teacher.List(gctx); return })
	g.Go(func() (err error) { _, selfID, err = self(gctx, repo, u); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	joins := index.NewJoins(index.JoinSet{Departments: departments, Teachers: teachers})
	return viewmodel.BuildCoursesView(u.Role, selfID, courses, joins)
}

func (s *viewService) Exams(ctx context.Context, sess *session.Session) (*viewmodel.ExamsView, error) {
	u, repo, err := s.begin(sess)
	if err != nil {
		return nil, err
	}

	var (
		exams   []model.Exam
		courses []model.Course
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { exams, err = repo.Exam.List(gctx, ""); return })
	g.Go(func() (err error) { courses, err = repo.Course.List(gctx, ""); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return viewmodel.BuildExamsView(u.Role, exams, index.NewJoins(index.JoinSet{Courses: courses}))
}

func (s *viewService) Students(ctx context.Context, sess *session.Session, status model.EnrollmentStatus) (*viewmodel.StudentsView, error) {
	u, repo, err := s.begin(sess)
	if err != nil {
		return nil, err
	}
	if !u.Role.IsStaff() {
		return nil, viewmodel.ErrForbiddenView
	}

	var (
		students    []model.Student
		departments []model.Department
		users       []model.User
	)
	g, gctx := errgroup.WithContext(ctx)
	// 计数基于全量，过滤在视图层完成
	g.Go(func() (err error) { students, err = repo.Student.List(gctx, ""); return })
	g.Go(func() (err error) { departments, err = repo.Department.List(gctx); return })
	// 用户列表仅管理员可读
	if u.Role == model.RoleAdmin {
		g.Go(func() (err error) { users, err = repo.User.List(gctx); return })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	joins := index.NewJoins(index.JoinSet{Departments: departments, Users: users})
	return viewmodel.BuildStudentsView(u.Role, status, students, joins)
}

func (s *viewService) Teachers(ctx context.Context, sess *session.Session) (*viewmodel.TeachersView, error) {
	u, repo, err := s.begin(sess)
	if err != nil {
		return nil, err
	}
	if u.Role != model.RoleAdmin {
		return nil, viewmodel.ErrForbiddenView
	}

	var (
		teachers    []model.Teacher
		departments []model.Department
		users       []model.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { teachers, err = repo.Teacher.List(gctx); return })
	g.Go(func() (err error) { departments, err = repo.Department.List(gctx); return })
	g.Go(func() (err error) { users, err = repo.User.List(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	joins := index.NewJoins(index.JoinSet{Departments: departments, Users: users})
	return viewmodel.BuildTeachersView(teachers, joins), nil
}

func (s *viewService) Users(ctx context.Context, sess *session.Session) (*viewmodel.UsersView, error) {
	u, repo, err := s.begin(sess)
	if err != nil {
		return nil, err
	}
	if u.Role != model.RoleAdmin {
		return nil, viewmodel.ErrForbiddenView
	}

	var (
		users    []model.User
		students []model.Student
		teachers []model.Teacher
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { users, err = repo.User.List(gctx); return })
	g.Go(func() (err error) { students, err = repo.Student.List(gctx, ""); return })
	g.Go(func() (err error) { teachers, err = repo.Teacher.List(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return viewmodel.BuildUsersView(users, students, teachers)
}

func (s *viewService) Departments(ctx context.Context, sess *session.Session) (*viewmodel.DepartmentsView, error) {
	u, repo, err := s.begin(sess)
	if err != nil {
		return nil, err
	}
	if u.Role != model.RoleAdmin {
		return nil, viewmodel.ErrForbiddenView
	}

	var (
		departments []model.Department
		courses     []model.Course
		teachers    []model.Teacher
		students    []model.Student
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { departments, err = repo.Department.List(gctx); return })
	g.Go(func() (err error) { courses, err = repo.Course.List(gctx, ""); return })
	g.Go(func() (err error) { teachers, err = repo.Teacher.List(gctx); return })
	g.Go(func() (err error) { students, err = repo.Student.List(gctx, ""); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return viewmodel.BuildDepartmentsView(departments, courses, teachers, students), nil
}
