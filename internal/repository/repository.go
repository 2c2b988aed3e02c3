package repository

import (
	"context"
	"net/http"
	"net/url"

	"campus-portal/internal/apiclient"
)

// Doer 由 *apiclient.Client 实现
type Doer interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error
	DoPublic(ctx context.Context, method, path string, body, out interface{}) error
}

var _ Doer = (*apiclient.Client)(nil)

// Repository 所有 Repository 的聚合入口
// 每个请求基于会话绑定的客户端创建一次；不做缓存，每次调用都重新拉取
type Repository struct {
	Auth         AuthRepository
	User         UserRepository
	Student      StudentRepository
	Teacher      TeacherRepository
	Department   DepartmentRepository
	Course       CourseRepository
	Exam         ExamRepository
	Grade        GradeRepository
	Attendance   AttendanceRepository
	Schedule     ScheduleRepository
	Enrollment   EnrollmentRepository
	Notification NotificationRepository
	Stats        StatsRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(c Doer) *Repository {
	return &Repository{
		Auth:         NewAuthRepo(c),
		User:         NewUserRepo(c),
		Student:      NewStudentRepo(c),
		Teacher:      NewTeacherRepo(c),
		Department:   NewDepartmentRepo(c),
		Course:       NewCourseRepo(c),
		Exam:         NewExamRepo(c),
		Grade:        NewGradeRepo(c),
		Attendance:   NewAttendanceRepo(c),
		Schedule:     NewScheduleRepo(c),
		Enrollment:   NewEnrollmentRepo(c),
		Notification: NewNotificationRepo(c),
		Stats:        NewStatsRepo(c),
	}
}

// ── 过滤条件 ──

// RecordFilter 成绩、考勤、选课的查询条件，空字段不下发
type RecordFilter struct {
	StudentID string
	CourseID  string
}

func (f RecordFilter) values() url.Values {
	q := url.Values{}
	setIf(q, "student_id", f.StudentID)
	setIf(q, "course_id", f.CourseID)
	return q
}

func setIf(q url.Values, key, val string) {
	if val != "" {
		q.Set(key, val)
	}
}

// ── 通用请求 ──

func list[T any](ctx context.Context, c Doer, path string, q url.Values) ([]T, error) {
	var out []T
	if err := c.Do(ctx, http.MethodGet, path, q, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func get[T any](ctx context.Context, c Doer, path string) (*T, error) {
	var out T
	if err := c.Do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func create[T any](ctx context.Context, c Doer, path string, body interface{}) (*T, error) {
	var out T
	if err := c.Do(ctx, http.MethodPost, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func pathID(prefix, id, suffix string) string {
	return prefix + "/" + url.PathEscape(id) + suffix
}
