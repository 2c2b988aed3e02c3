package service

import (
	"errors"

	"go.uber.org/zap"

	"campus-portal/config"
	"campus-portal/internal/apiclient"
	"campus-portal/internal/model"
	"campus-portal/internal/repository"
	"campus-portal/internal/session"
	pkgerrors "campus-portal/pkg/errors"
	"campus-portal/pkg/jwt"
)

// ErrInvalidInput 本地参数校验失败，不会请求上游
var ErrInvalidInput = errors.New("参数校验失败")

// RepoFactory 为会话创建 Repository；sess 为 nil 时只能调用公开接口
type RepoFactory func(sess *session.Session) *repository.Repository

// NewRepoFactory 每次调用创建绑定会话的上游客户端
func NewRepoFactory(cfg *config.UpstreamConfig, logger *zap.Logger) RepoFactory {
	return func(sess *session.Session) *repository.Repository {
		var src apiclient.TokenSource
		if sess != nil {
			src = sess
		}
		return repository.NewRepository(apiclient.New(cfg.BaseURL, cfg.Timeout, src, logger))
	}
}

// Service 所有 Service 的聚合入口
type Service struct {
	Auth   AuthService
	View   ViewService
	Record RecordService
	Import ImportService
	Export ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repos RepoFactory,
	store session.Store,
	jwtMgr *jwt.Manager,
	logger *zap.Logger,
) *Service {
	views := NewViewService(repos, logger)
	return &Service{
		Auth:   NewAuthService(repos, store, jwtMgr, logger),
		View:   views,
		Record: NewRecordService(repos, logger),
		Import: NewImportService(repos, logger),
		Export: NewExportService(views, &cfg.Export, logger),
	}
}

// actor 当前登录用户；会话已结束时返回 ErrSessionExpired
func actor(sess *session.Session) (model.User, error) {
	if sess == nil {
		return model.User{}, pkgerrors.ErrSessionExpired
	}
	u, ok := sess.User()
	if !ok {
		return model.User{}, pkgerrors.ErrSessionExpired
	}
	return u, nil
}
