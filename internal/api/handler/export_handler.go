package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"campus-portal/internal/service"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ScheduleExcel 导出课表
// GET /api/v1/export/schedule.xlsx
func (h *ExportHandler) ScheduleExcel(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	buf, filename, err := h.exportSvc.ScheduleExcel(c.Request.Context(), sess)
	if err != nil {
		handleError(c, err)
		return
	}
	attachment(c, filename, contentTypeXLSX, buf.Bytes())
}

// GradesExcel 导出成绩
// GET /api/v1/export/grades.xlsx
func (h *ExportHandler) GradesExcel(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	buf, filename, err := h.exportSvc.GradesExcel(c.Request.Context(), sess)
	if err != nil {
		handleError(c, err)
		return
	}
	attachment(c, filename, contentTypeXLSX, buf.Bytes())
}

// ScheduleICS 导出 iCalendar 课表，week_of 缺省为本周
// GET /api/v1/export/schedule.ics?week_of=2026-03-02
func (h *ExportHandler) ScheduleICS(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	data, filename, err := h.exportSvc.ScheduleICS(c.Request.Context(), sess, c.Query("week_of"))
	if err != nil {
		handleError(c, err)
		return
	}
	attachment(c, filename, contentTypeICS, data)
}

// attachment 设置下载响应头
func attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Data(http.StatusOK, contentType, data)
}
