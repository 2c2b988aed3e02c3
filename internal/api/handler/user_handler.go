package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-portal/internal/dto"
	"campus-portal/internal/service"
	"campus-portal/pkg/response"
)

// UserHandler 用户管理 HTTP 处理器（仅管理员）
type UserHandler struct {
	recordSvc service.RecordService
	importSvc service.ImportService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(recordSvc service.RecordService, importSvc service.ImportService) *UserHandler {
	return &UserHandler{recordSvc: recordSvc, importSvc: importSvc}
}

// SetStatus 启用 / 停用用户
// PATCH /api/v1/users/:id/status
func (h *UserHandler) SetStatus(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	var req dto.SetUserStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.recordSvc.SetUserActive(c.Request.Context(), sess, c.Param("id"), *req.IsActive); err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, gin.H{"id": c.Param("id"), "is_active": *req.IsActive})
}

// ImportUsers 通过 Excel 批量注册用户
// POST /api/v1/users/import  (multipart/form-data, 字段 file)
func (h *UserHandler) ImportUsers(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "请上传 Excel 文件（字段 file）")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "无法读取上传文件")
		return
	}
	defer f.Close()

	rows, err := h.importSvc.ParseImportFile(f)
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidParams, "Excel 解析失败", err.Error())
		return
	}
	result, err := h.importSvc.ImportUsers(c.Request.Context(), sess, rows)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, result)
}
