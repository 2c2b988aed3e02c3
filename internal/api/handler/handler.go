package handler

import "campus-portal/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth   *AuthHandler
	View   *ViewHandler
	Record *RecordHandler
	User   *UserHandler
	Export *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(svc.Auth),
		View:   NewViewHandler(svc.View),
		Record: NewRecordHandler(svc.Record),
		User:   NewUserHandler(svc.Record, svc.Import),
		Export: NewExportHandler(svc.Export),
	}
}
