package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"campus-portal/internal/model"
	"campus-portal/internal/service"
	"campus-portal/internal/session"
	"campus-portal/internal/viewmodel"
	"campus-portal/pkg/response"
)

// ViewHandler 页面视图 HTTP 处理器
type ViewHandler struct {
	viewSvc service.ViewService
}

// NewViewHandler 创建 ViewHandler
func NewViewHandler(viewSvc service.ViewService) *ViewHandler {
	return &ViewHandler{viewSvc: viewSvc}
}

// serveView 取出会话并输出视图
func serveView[T any](c *gin.Context, build func(ctx context.Context, sess *session.Session) (T, error)) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	view, err := build(c.Request.Context(), sess)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, view)
}

// Navigation 按角色过滤的导航菜单
// GET /api/v1/navigation
func (h *ViewHandler) Navigation(c *gin.Context) {
	serveView(c, func(_ context.Context, sess *session.Session) ([]viewmodel.NavItem, error) {
		return h.viewSvc.Navigation(sess)
	})
}

// Dashboard GET /api/v1/views/dashboard
func (h *ViewHandler) Dashboard(c *gin.Context) { serveView(c, h.viewSvc.Dashboard) }

// Grades GET /api/v1/views/grades
func (h *ViewHandler) Grades(c *gin.Context) { serveView(c, h.viewSvc.Grades) }

// Attendance GET /api/v1/views/attendance
func (h *ViewHandler) Attendance(c *gin.Context) { serveView(c, h.viewSvc.Attendance) }

// Schedule GET /api/v1/views/schedule
func (h *ViewHandler) Schedule(c *gin.Context) { serveView(c, h.viewSvc.Schedule) }

// Courses GET /api/v1/views/courses
func (h *ViewHandler) Courses(c *gin.Context) { serveView(c, h.viewSvc.Courses) }

// Exams GET /api/v1/views/exams
func (h *ViewHandler) Exams(c *gin.Context) { serveView(c, h.viewSvc.Exams) }

// Teachers GET /api/v1/views/teachers
func (h *ViewHandler) Teachers(c *gin.Context) { serveView(c, h.viewSvc.Teachers) }

// Users GET /api/v1/views/users
func (h *ViewHandler) Users(c *gin.Context) { serveView(c, h.viewSvc.Users) }

// Departments GET /api/v1/views/departments
func (h *ViewHandler) Departments(c *gin.Context) { serveView(c, h.viewSvc.Departments) }

// Students 学生列表，可按审核状态过滤
// GET /api/v1/views/students?status=pending
func (h *ViewHandler) Students(c *gin.Context) {
	status := model.EnrollmentStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		response.BadRequest(c, response.CodeInvalidParams, "status 只能为 pending、approved 或 rejected")
		return
	}
	serveView(c, func(ctx context.Context, sess *session.Session) (*viewmodel.StudentsView, error) {
		return h.viewSvc.Students(ctx, sess, status)
	})
}
