package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"campus-portal/internal/dto"
	"campus-portal/internal/model"
	"campus-portal/internal/session"
	"campus-portal/internal/viewmodel"
)

// ── 记录模块业务错误 ──

var (
	ErrNoStudentProfile = errors.New("当前用户尚未建立学生档案")
	ErrForbidden        = errors.New("无权操作")
)

const (
	defaultMaxScore    = 100
	defaultMaxStudents = 50
)

// RecordService 创建与状态变更业务接口
// 所有本地可判定的校验在请求上游之前完成
type RecordService interface {
	CreateDepartment(ctx context.Context, sess *session.Session, req *dto.CreateDepartmentRequest) (*model.Department, error)
	CreateStudent(ctx context.Context, sess *session.Session, req *dto.CreateStudentRequest) (*model.Student, error)
	CreateTeacher(ctx context.Context, sess *session.Session, req *dto.CreateTeacherRequest) (*model.Teacher, error)
	CreateCourse(ctx context.Context, sess *session.Session, req *dto.CreateCourseRequest) (*model.Course, error)
	CreateExam(ctx context.Context, sess *session.Session, req *dto.CreateExamRequest) (*model.Exam, error)
	CreateGrade(ctx context.Context, sess *session.Session, req *dto.CreateGradeRequest) (*viewmodel.GradeRecord, error)
	CreateAttendance(ctx context.Context, sess *session.Session, req *dto.CreateAttendanceRequest) (*model.Attendance, error)
	CreateSchedule(ctx context.Context, sess *session.Session, req *dto.CreateScheduleRequest) (*model.Schedule, error)
	CreateEnrollment(ctx context.Context, sess *session.Session, req *dto.CreateEnrollmentRequest) (*model.Enrollment, error)
	ReviewStudent(ctx context.Context, sess *session.Session, studentID, status string) error
	SetUserActive(ctx context.Context, sess *session.Session, userID string, active bool) error
	MarkNotificationRead(ctx context.Context, sess *session.Session, id string) error
}

type recordService struct {
	repos  RepoFactory
	logger *zap.Logger
}

// NewRecordService 创建 RecordService 实例
func NewRecordService(repos RepoFactory, logger *zap.Logger) RecordService {
	return &recordService{repos: repos, logger: logger}
}

// require 校验当前用户角色
func require(sess *session.Session, roles ...model.Role) (model.User, error) {
	u, err := actor(sess)
	if err != nil {
		return model.User{}, err
	}
	for _, r := range roles {
		if u.Role == r {
			return u, nil
		}
	}
	return model.User{}, ErrForbidden
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func (s *recordService) CreateDepartment(ctx context.Context, sess *session.Session, req *dto.CreateDepartmentRequest) (*model.Department, error) {
	if _, err := require(sess, model.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repos(sess).Department.Create(ctx, &model.DepartmentInput{
		Name:        strings.TrimSpace(req.Name),
		Code:        strings.ToUpper(strings.TrimSpace(req.Code)),
		Description: req.Description,
	})
}

func (s *recordService) CreateStudent(ctx context.Context, sess *session.Session, req *dto.CreateStudentRequest) (*model.Student, error) {
	if _, err := require(sess, model.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repos(sess).Student.Create(ctx, &model.StudentInput{
		UserID:           req.UserID,
		StudentNumber:    strings.TrimSpace(req.StudentNumber),
		DepartmentID:     req.DepartmentID,
		AcademicYear:     req.AcademicYear,
		DateOfBirth:      req.DateOfBirth,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
	})
}

func (s *recordService) CreateTeacher(ctx context.Context, sess *session.Session, req *dto.CreateTeacherRequest) (*model.Teacher, error) {
	if _, err := require(sess, model.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repos(sess).Teacher.Create(ctx, &model.TeacherInput{
		UserID:         req.UserID,
		EmployeeNumber: strings.TrimSpace(req.EmployeeNumber),
		DepartmentID:   req.DepartmentID,
		Specialization: req.Specialization,
		Qualification:  req.Qualification,
	})
}

func (s *recordService) CreateCourse(ctx context.Context, sess *session.Session, req *dto.CreateCourseRequest) (*model.Course, error) {
	if _, err := require(sess, model.RoleAdmin, model.RoleTeacher); err != nil {
		return nil, err
	}
	maxStudents := req.MaxStudents
	if maxStudents == 0 {
		maxStudents = defaultMaxStudents
	}
	return s.repos(sess).Course.Create(ctx, &model.CourseInput{
		Name:         strings.TrimSpace(req.Name),
		Code:         strings.ToUpper(strings.TrimSpace(req.Code)),
		DepartmentID: req.DepartmentID,
		TeacherID:    req.TeacherID,
		Credits:      req.Credits,
		Semester:     req.Semester,
		Description:  req.Description,
		MaxStudents:  maxStudents,
	})
}

func (s *recordService) CreateExam(ctx context.Context, sess *session.Session, req *dto.CreateExamRequest) (*model.Exam, error) {
	if _, err := require(sess, model.RoleAdmin, model.RoleTeacher); err != nil {
		return nil, err
	}
	start, err := model.ParseClock(req.StartTime)
	if err != nil {
		return nil, invalid("开始时间格式应为 HH:MM")
	}
	maxScore := float64(defaultMaxScore)
	if req.MaxScore != nil {
		maxScore = *req.MaxScore
	}
	if maxScore <= 0 {
		return nil, invalid("满分必须大于 0")
	}

	return s.repos(sess).Exam.Create(ctx, &model.ExamInput{
		CourseID:        req.CourseID,
		Name:            strings.TrimSpace(req.Name),
		ExamDate:        req.ExamDate,
		StartTime:       start.String(),
		DurationMinutes: req.DurationMinutes,
		Room:            req.Room,
		MaxScore:        maxScore,
		SupervisorIDs:   req.SupervisorIDs,
	})
}

// CreateGrade 返回带百分比与等级的成绩，百分比由分数推导
func (s *recordService) CreateGrade(ctx context.Context, sess *session.Session, req *dto.CreateGradeRequest) (*viewmodel.GradeRecord, error) {
	if _, err := require(sess, model.RoleAdmin, model.RoleTeacher); err != nil {
		return nil, err
	}
	maxScore := float64(defaultMaxScore)
	if req.MaxScore != nil {
		maxScore = *req.MaxScore
	}
	if _, err := model.ComputePercentage(*req.Score, maxScore); err != nil {
		return nil, invalid("分数无效: %v", err)
	}
	if *req.Score > maxScore {
		return nil, invalid("得分 %v 超过满分 %v", *req.Score, maxScore)
	}

	g, err := s.repos(sess).Grade.Create(ctx, &model.GradeInput{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		ExamID:    req.ExamID,
		Score:     *req.Score,
		MaxScore:  maxScore,
		Comments:  req.Comments,
	})
	if err != nil {
		return nil, err
	}
	rec, err := viewmodel.NewGradeRecord(*g, nil)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *recordService) CreateAttendance(ctx context.Context, sess *session.Session, req *dto.CreateAttendanceRequest) (*model.Attendance, error) {
	if _, err := require(sess, model.RoleAdmin, model.RoleTeacher); err != nil {
		return nil, err
	}
	status := model.AttendanceStatus(req.Status)
	if !status.Valid() {
		return nil, invalid("未知考勤状态 %q", req.Status)
	}
	return s.repos(sess).Attendance.Create(ctx, &model.AttendanceInput{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Date:      req.Date,
		Status:    status,
		Notes:     req.Notes,
	})
}

func (s *recordService) CreateSchedule(ctx context.Context, sess *session.Session, req *dto.CreateScheduleRequest) (*model.Schedule, error) {
	if _, err := require(sess, model.RoleAdmin); err != nil {
		return nil, err
	}
	if !model.ValidDay(*req.DayOfWeek) {
		return nil, invalid("day_of_week 应在 0-6 之间")
	}
	start, err := model.ParseClock(req.StartTime)
	if err != nil {
		return nil, invalid("开始时间格式应为 HH:MM")
	}
	end, err := model.ParseClock(req.EndTime)
	if err != nil {
		return nil, invalid("结束时间格式应为 HH:MM")
	}
	if !start.Before(end) {
		return nil, invalid("结束时间必须晚于开始时间")
	}

	return s.repos(sess).Schedule.Create(ctx, &model.ScheduleInput{
		CourseID:  req.CourseID,
		DayOfWeek: *req.DayOfWeek,
		StartTime: start.String(),
		EndTime:   end.String(),
		Room:      req.Room,
	})
}

// CreateEnrollment 学生只能为自己的档案提交选课申请
func (s *recordService) CreateEnrollment(ctx context.Context, sess *session.Session, req *dto.CreateEnrollmentRequest) (*model.Enrollment, error) {
	u, err := require(sess, model.RoleStudent)
	if err != nil {
		return nil, err
	}
	repo := s.repos(sess)
	_, selfID, err := self(ctx, repo, u)
	if err != nil {
		return nil, err
	}
	if selfID == "" {
		return nil, ErrNoStudentProfile
	}
	return repo.Enrollment.Create(ctx, &model.EnrollmentInput{StudentID: selfID, CourseID: req.CourseID})
}

func (s *recordService) ReviewStudent(ctx context.Context, sess *session.Session, studentID, status string) error {
	u, err := require(sess, model.RoleAdmin)
	if err != nil {
		return err
	}
	target := model.EnrollmentStatus(status)
	if !model.EnrollmentPending.CanTransitionTo(target) {
		return invalid("审核状态只能为 approved 或 rejected")
	}
	if err := s.repos(sess).Student.PatchStatus(ctx, studentID, target); err != nil {
		return err
	}
	s.logger.Info("学生档案已审核",
		zap.String("student_id", studentID),
		zap.String("status", status),
		zap.String("operator", u.ID),
	)
	return nil
}

func (s *recordService) SetUserActive(ctx context.Context, sess *session.Session, userID string, active bool) error {
	u, err := require(sess, model.RoleAdmin)
	if err != nil {
		return err
	}
	if userID == u.ID && !active {
		return invalid("不能停用自己")
	}
	return s.repos(sess).User.SetActive(ctx, userID, active)
}

func (s *recordService) MarkNotificationRead(ctx context.Context, sess *session.Session, id string) error {
	if _, err := actor(sess); err != nil {
		return err
	}
	return s.repos(sess).Notification.MarkRead(ctx, id)
}
