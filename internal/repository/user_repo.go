package repository

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"campus-portal/internal/model"
)

// UserRepository 用户管理（仅管理员）
type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	SetActive(ctx context.Context, id string, active bool) error
}

type userRepo struct {
	c Doer
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(c Doer) UserRepository {
	return &userRepo{c: c}
}

func (r *userRepo) List(ctx context.Context) ([]model.User, error) {
	return list[model.User](ctx, r.c, "/users", nil)
}

// SetActive 上游从查询参数读取 is_active
func (r *userRepo) SetActive(ctx context.Context, id string, active bool) error {
	q := url.Values{"is_active": {strconv.FormatBool(active)}}
	return r.c.Do(ctx, http.MethodPatch, pathID("/users", id, "/status"), q, nil, nil)
}
