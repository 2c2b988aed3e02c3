package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"campus-portal/internal/dto"
	"campus-portal/internal/service"
	"campus-portal/internal/session"
	"campus-portal/pkg/response"
)

// RecordHandler 创建与状态变更 HTTP 处理器
type RecordHandler struct {
	recordSvc service.RecordService
}

// NewRecordHandler 创建 RecordHandler
func NewRecordHandler(recordSvc service.RecordService) *RecordHandler {
	return &RecordHandler{recordSvc: recordSvc}
}

// create 绑定请求体、调用 Service 并返回 201
func create[Req any, Out any](c *gin.Context, fn func(ctx context.Context, sess *session.Session, req *Req) (Out, error)) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	var req Req
	if !bindJSON(c, &req) {
		return
	}
	out, err := fn(c.Request.Context(), sess, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, out)
}

// CreateDepartment POST /api/v1/departments
func (h *RecordHandler) CreateDepartment(c *gin.Context) {
	create[dto.CreateDepartmentRequest](c, h.recordSvc.CreateDepartment)
}

// CreateStudent POST /api/v1/students
func (h *RecordHandler) CreateStudent(c *gin.Context) {
	create[dto.CreateStudentRequest](c, h.recordSvc.CreateStudent)
}

// CreateTeacher POST /api/v1/teachers
func (h *RecordHandler) CreateTeacher(c *gin.Context) {
	create[dto.CreateTeacherRequest](c, h.recordSvc.CreateTeacher)
}

// CreateCourse POST /api/v1/courses
func (h *RecordHandler) CreateCourse(c *gin.Context) {
	create[dto.CreateCourseRequest](c, h.recordSvc.CreateCourse)
}

// CreateExam POST /api/v1/exams
func (h *RecordHandler) CreateExam(c *gin.Context) {
	create[dto.CreateExamRequest](c, h.recordSvc.CreateExam)
}

// CreateGrade POST /api/v1/grades
func (h *RecordHandler) CreateGrade(c *gin.Context) {
	create[dto.CreateGradeRequest](c, h.recordSvc.CreateGrade)
}

// CreateAttendance POST /api/v1/attendance
func (h *RecordHandler) CreateAttendance(c *gin.Context) {
	create[dto.CreateAttendanceRequest](c, h.recordSvc.CreateAttendance)
}

// CreateSchedule POST /api/v1/schedules
func (h *RecordHandler) CreateSchedule(c *gin.Context) {
	create[dto.CreateScheduleRequest](c, h.recordSvc.CreateSchedule)
}

// CreateEnrollment POST /api/v1/enrollments
func (h *RecordHandler) CreateEnrollment(c *gin.Context) {
	create[dto.CreateEnrollmentRequest](c, h.recordSvc.CreateEnrollment)
}

// ReviewStudent 审核学生档案
// PATCH /api/v1/students/:id/status?status=approved
func (h *RecordHandler) ReviewStudent(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	status := c.Query("status")
	if status == "" {
		response.BadRequest(c, response.CodeInvalidParams, "status 不能为空")
		return
	}
	if err := h.recordSvc.ReviewStudent(c.Request.Context(), sess, c.Param("id"), status); err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// MarkNotificationRead PATCH /api/v1/notifications/:id/read
func (h *RecordHandler) MarkNotificationRead(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	if err := h.recordSvc.MarkNotificationRead(c.Request.Context(), sess, c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, nil)
}
