package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"campus-portal/internal/dto"
	"campus-portal/internal/model"
)

func setupTestRecordService() (RecordService, *mockUpstream) {
	m := newMockUpstream()
	seedCampus(m)
	return NewRecordService(m.factory(), zap.NewNop()), m
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// ── CreateGrade 测试 ──

func TestRecordService_CreateGrade_Percentage(t *testing.T) {
	svc, _ := setupTestRecordService()
	sess := newTestSession(t, teacherUser)

	rec, err := svc.CreateGrade(context.Background(), sess, &dto.CreateGradeRequest{
		StudentID: "s1", CourseID: "c1", Score: floatPtr(45), MaxScore: floatPtr(50),
	})
	if err != nil {
		t.Fatalf("CreateGrade 应成功: %v", err)
	}
	if rec.Percentage != 90 {
		t.Errorf("期望 90，实际=%v", rec.Percentage)
	}
	if !rec.IsContinuousAssessment() {
		t.Error("无考试 ID 应为平时成绩")
	}
}

func TestRecordService_CreateGrade_DefaultMax(t *testing.T) {
	svc, m := setupTestRecordService()
	sess := newTestSession(t, adminUser)

	if _, err := svc.CreateGrade(context.Background(), sess, &dto.CreateGradeRequest{
		StudentID: "s1", CourseID: "c1", Score: floatPtr(70),
	}); err != nil {
		t.Fatalf("CreateGrade 应成功: %v", err)
	}
	in := m.created[0].(*model.GradeInput)
	if in.MaxScore != defaultMaxScore {
		t.Errorf("期望默认满分 %d，实际=%v", defaultMaxScore, in.MaxScore)
	}
}

func TestRecordService_CreateGrade_LocalValidation(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		max   float64
	}{
		{"满分为0", 10, 0},
		{"负分", -1, 100},
		{"超过满分", 101, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := setupTestRecordService()
			sess := newTestSession(t, teacherUser)
			_, err := svc.CreateGrade(context.Background(), sess, &dto.CreateGradeRequest{
				StudentID: "s1", CourseID: "c1", Score: floatPtr(tt.score), MaxScore: floatPtr(tt.max),
			})
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("期望 ErrInvalidInput，实际: %v", err)
			}
			if m.called("Grade.Create") != 0 {
				t.Error("本地校验失败不应请求上游")
			}
		})
	}
}

func TestRecordService_CreateGrade_StudentForbidden(t *testing.T) {
	svc, m := setupTestRecordService()
	sess := newTestSession(t, studentUser)

	_, err := svc.CreateGrade(context.Background(), sess, &dto.CreateGradeRequest{Score: floatPtr(1)})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("期望 ErrForbidden，实际: %v", err)
	}
	if len(m.calls) != 0 {
		t.Error("无权操作不应请求上游")
	}
}

// ── CreateSchedule / CreateExam 测试 ──

func TestRecordService_CreateSchedule(t *testing.T) {
	svc, m := setupTestRecordService()
	sess := newTestSession(t, adminUser)

	s, err := svc.CreateSchedule(context.Background(), sess, &dto.CreateScheduleRequest{
		CourseID: "c1", DayOfWeek: intPtr(2), StartTime: "8:00", EndTime: "9:30",
	})
	if err != nil {
		t.Fatalf("CreateSchedule 应成功: %v", err)
	}
	if s.StartTime != "08:00" {
		t.Errorf("期望规范化为 08:00，实际=%s", s.StartTime)
	}

	bad := []*dto.CreateScheduleRequest{
		{CourseID: "c1", DayOfWeek: intPtr(7), StartTime: "08:00", EndTime: "09:00"},
		{CourseID: "c1", DayOfWeek: intPtr(1), StartTime: "25:00", EndTime: "09:00"},
		{CourseID: "c1", DayOfWeek: intPtr(1), StartTime: "10:00", EndTime: "09:00"},
		{CourseID: "c1", DayOfWeek: intPtr(1), StartTime: "09:00", EndTime: "09:00"},
	}
	for i, req := range bad {
		if _, err := svc.CreateSchedule(context.Background(), sess, req); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("用例 %d 期望 ErrInvalidInput，实际: %v", i, err)
		}
	}
	if m.called("Schedule.Create") != 1 {
		t.Errorf("期望仅 1 次上游创建，实际=%d", m.called("Schedule.Create"))
	}
}

func TestRecordService_CreateExam_Defaults(t *testing.T) {
	svc, m := setupTestRecordService()
	sess := newTestSession(t, teacherUser)

	exam, err := svc.CreateExam(context.Background(), sess, &dto.CreateExamRequest{
		CourseID: "c1", Name: " 期末 ", ExamDate: "2026-06-20", StartTime: "9:05", DurationMinutes: 120,
	})
	if err != nil {
		t.Fatalf("CreateExam 应成功: %v", err)
	}
	if exam.MaxScore != 100 || exam.StartTime != "09:05" || exam.Name != "期末" {
		t.Errorf("默认值或规范化错误: %+v", exam)
	}

	if _, err := svc.CreateExam(context.Background(), sess, &dto.CreateExamRequest{
		CourseID: "c1", Name: "x", StartTime: "9:05", MaxScore: floatPtr(0),
	}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("满分为 0 期望 ErrInvalidInput，实际: %v", err)
	}
	if m.called("Exam.Create") != 1 {
		t.Errorf("期望仅 1 次上游创建，实际=%d", m.called("Exam.Create"))
	}
}

func TestRecordService_CreateAttendance_UnknownStatus(t *testing.T) {
	svc, m := setupTestRecordService()
	sess := newTestSession(t, teacherUser)

	_, err := svc.CreateAttendance(context.Background(), sess, &dto.CreateAttendanceRequest{
		StudentID: "s1", CourseID: "c1", Date: "2026-03-02", Status: "sick",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("期望 ErrInvalidInput，实际: %v", err)
	}
	if len(m.calls) != 0 {
		t.Error("不应请求上游")
	}
}

// ── CreateEnrollment 测试 ──

func TestRecordService_CreateEnrollment_UsesOwnProfile(t *testing.T) {
	svc, m := setupTestRecordService()
	sess := newTestSession(t, studentUser)

	en, err := svc.CreateEnrollment(context.Background(), sess, &dto.CreateEnrollmentRequest{CourseID: "c1"})
	if err != nil {
		t.Fatalf("CreateEnrollment 应成功: %v", err)
	}
	if en.StudentID != "s1" {
		t.Errorf("期望 s1，实际=%s", en.StudentID)
	}
	if m.called("Enrollment.Create") != 1 {
		t.Error("期望调用一次上游")
	}
}

func TestRecordService_CreateEnrollment_NoProfile(t *testing.T) {
	svc, m := setupTestRecordService()
	sess := newTestSession(t, model.User{ID: "u-none", Role: model.RoleStudent})

	_, err := svc.CreateEnrollment(context.Background(), sess, &dto.CreateEnrollmentRequest{CourseID: "c1"})
	if !errors.Is(err, ErrNoStudentProfile) {
		t.Errorf("期望 ErrNoStudentProfile，实际: %v", err)
	}
	if m.called("Enrollment.Create") != 0 {
		t.Error("无档案不应提交选课")
	}
}

// ── ReviewStudent / SetUserActive ──

func TestRecordService_ReviewStudent(t *testing.T) {
	svc, m := setupTestRecordService()
	sess := newTestSession(t, adminUser)

	if err := svc.ReviewStudent(context.Background(), sess, "s2", "approved"); err != nil {
		t.Fatalf("ReviewStudent 应成功: %v", err)
	}
	if m.patched["s2"] != "approved" {
		t.Errorf("期望 s2=approved，实际=%v", m.patched)
	}

	for _, status := range []string{"pending", "unknown", ""} {
		if err := svc.ReviewStudent(context.Background(), sess, "s2", status); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("状态 %q 期望 ErrInvalidInput，实际: %v", status, err)
		}
	}
	if m.called("Student.PatchStatus") != 1 {
		t.Errorf("期望仅 1 次上游调用，实际=%d", m.called("Student.PatchStatus"))
	}
}

func TestRecordService_SetUserActive_NotSelf(t *testing.T) {
	svc, m := setupTestRecordService()
	sess := newTestSession(t, adminUser)

	if err := svc.SetUserActive(context.Background(), sess, adminUser.ID, false); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("期望 ErrInvalidInput，实际: %v", err)
	}
	if err := svc.SetUserActive(context.Background(), sess, "u2", false); err != nil {
		t.Errorf("停用他人应成功: %v", err)
	}
	if m.called("User.SetActive") != 1 {
		t.Errorf("期望 1 次上游调用，实际=%d", m.called("User.SetActive"))
	}
}

func TestRecordService_CreateDepartment_UppercaseCode(t *testing.T) {
	svc, m := setupTestRecordService()
	sess := newTestSession(t, adminUser)

	d, err := svc.CreateDepartment(context.Background(), sess, &dto.CreateDepartmentRequest{Name: " 数学系 ", Code: "math"})
	if err != nil {
		t.Fatalf("CreateDepartment 应成功: %v", err)
	}
	if d.Code != "MATH" || d.Name != "数学系" {
		t.Errorf("期望 MATH/数学系，实际=%s/%s", d.Code, d.Name)
	}
	if _, ok := m.created[0].(*model.DepartmentInput); !ok {
		t.Error("期望提交 DepartmentInput")
	}
}

func TestRecordService_CreateCourse_DefaultCapacity(t *testing.T) {
	svc, _ := setupTestRecordService()
	sess := newTestSession(t, teacherUser)

	c, err := svc.CreateCourse(context.Background(), sess, &dto.CreateCourseRequest{Name: "线代", Code: "ma201", DepartmentID: "d1", Credits: 3})
	if err != nil {
		t.Fatalf("CreateCourse 应成功: %v", err)
	}
	if c.MaxStudents != defaultMaxStudents || c.Code != "MA201" {
		t.Errorf("期望容量 %d 代码 MA201，实际=%+v", defaultMaxStudents, c)
	}
}
