package repository

import (
	"context"
	"net/http"

	"campus-portal/internal/model"
)

// AuthRepository 登录、注册与当前用户
type AuthRepository interface {
	Login(ctx context.Context, email, password string) (*model.LoginResult, error)
	Register(ctx context.Context, in *model.RegisterInput) (*model.User, error)
	Me(ctx context.Context) (*model.User, error)
}

type authRepo struct {
	c Doer
}

// NewAuthRepo 创建 AuthRepository 实例
func NewAuthRepo(c Doer) AuthRepository {
	return &authRepo{c: c}
}

func (r *authRepo) Login(ctx context.Context, email, password string) (*model.LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out model.LoginResult
	if err := r.c.DoPublic(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *authRepo) Register(ctx context.Context, in *model.RegisterInput) (*model.User, error) {
	var out model.User
	if err := r.c.DoPublic(ctx, http.MethodPost, "/auth/register", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *authRepo) Me(ctx context.Context) (*model.User, error) {
	return get[model.User](ctx, r.c, "/auth/me")
}
