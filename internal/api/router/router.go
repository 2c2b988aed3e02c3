package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus-portal/config"
	"campus-portal/internal/api/handler"
	"campus-portal/internal/api/middleware"
	"campus-portal/internal/model"
	"campus-portal/internal/session"
	"campus-portal/pkg/jwt"
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时登录限流降级关闭
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	jwtMgr *jwt.Manager,
	store session.Store,
	limiter middleware.RateLimiter,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	admin := middleware.RoleAuth(model.RoleAdmin)
	staff := middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher)
	student := middleware.RoleAuth(model.RoleStudent)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(limiter, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow), h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, store, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.GET("/navigation", h.View.Navigation)

			// 页面视图
			views := authorized.Group("/views")
			{
				views.GET("/dashboard", h.View.Dashboard)
				views.GET("/grades", h.View.Grades)
				views.GET("/attendance", h.View.Attendance)
				views.GET("/schedule", h.View.Schedule)
				views.GET("/courses", h.View.Courses)
				views.GET("/exams", h.View.Exams)
				views.GET("/students", staff, h.View.Students)
				views.GET("/teachers", admin, h.View.Teachers)
				views.GET("/users", admin, h.View.Users)
				views.GET("/departments", admin, h.View.Departments)
			}

			// 档案与基础数据（管理员）
			authorized.POST("/departments", admin, h.Record.CreateDepartment)
			authorized.POST("/teachers", admin, h.Record.CreateTeacher)
			authorized.POST("/schedules", admin, h.Record.CreateSchedule)
			authorized.POST("/students", admin, h.Record.CreateStudent)
			authorized.PATCH("/students/:id/status", admin, h.Record.ReviewStudent)

			// 用户管理
			users := authorized.Group("/users", admin)
			{
				users.PATCH("/:id/status", h.User.SetStatus)
				users.POST("/import", h.User.ImportUsers)
			}

			// 教学记录（管理员、教师）
			authorized.POST("/courses", staff, h.Record.CreateCourse)
			authorized.POST("/exams", staff, h.Record.CreateExam)
			authorized.POST("/grades", staff, h.Record.CreateGrade)
			authorized.POST("/attendance", staff, h.Record.CreateAttendance)

			// 学生选课
			authorized.POST("/enrollments", student, h.Record.CreateEnrollment)

			authorized.PATCH("/notifications/:id/read", h.Record.MarkNotificationRead)

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/schedule.xlsx", h.Export.ScheduleExcel)
				export.GET("/schedule.ics", h.Export.ScheduleICS)
				export.GET("/grades.xlsx", h.Export.GradesExcel)
			}
		}
	}

	return r
}
