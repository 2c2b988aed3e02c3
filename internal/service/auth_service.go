package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"campus-portal/internal/dto"
	"campus-portal/internal/model"
	"campus-portal/internal/session"
	pkgerrors "campus-portal/pkg/errors"
	"campus-portal/pkg/jwt"
)

// ErrInvalidCredentials 上游拒绝登录
var ErrInvalidCredentials = errors.New("邮箱或密码错误")

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error)
	Logout(ctx context.Context, sess *session.Session) error
	Me(ctx context.Context, sess *session.Session) (*model.User, error)
}

type authService struct {
	repos  RepoFactory
	store  session.Store
	jwtMgr *jwt.Manager
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	repos RepoFactory,
	store session.Store,
	jwtMgr *jwt.Manager,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repos:  repos,
		store:  store,
		jwtMgr: jwtMgr,
		logger: logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 上游登录
	res, err := s.repos(nil).Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		if v, ok := pkgerrors.IsValidation(err); ok && v.Status == http.StatusUnauthorized {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, v.Detail)
		}
		return nil, err
	}

	// 2. 建立会话并持久化
	sess := session.New(s.store, s.jwtMgr.TTL(), s.logger)
	if err := sess.Begin(ctx, res.Token, res.User); err != nil {
		s.logger.Error("建立会话失败", zap.Error(err))
		return nil, err
	}

	// 3. 签发网关 Token
	token, err := s.jwtMgr.GenerateAccessToken(sess.ID(), res.User.ID, res.User.Role.String())
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		sess.End(ctx)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.jwtMgr.TTL().Seconds()),
		User:        res.User,
	}, nil
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error) {
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: 角色 %q", ErrInvalidInput, req.Role)
	}
	return s.repos(nil).Auth.Register(ctx, &model.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      role,
	})
}

func (s *authService) Logout(ctx context.Context, sess *session.Session) error {
	if sess == nil || !sess.End(ctx) {
		return pkgerrors.ErrSessionExpired
	}
	return nil
}

func (s *authService) Me(ctx context.Context, sess *session.Session) (*model.User, error) {
	if _, err := actor(sess); err != nil {
		return nil, err
	}
	return s.repos(sess).Auth.Me(ctx)
}
