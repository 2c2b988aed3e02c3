package repository

import (
	"context"

	"campus-portal/internal/model"
)

// DepartmentRepository 院系
type DepartmentRepository interface {
	List(ctx context.Context) ([]model.Department, error)
	Create(ctx context.Context, in *model.DepartmentInput) (*model.Department, error)
}

type departmentRepo struct {
	c Doer
}

// NewDepartmentRepo 创建 DepartmentRepository 实例
func NewDepartmentRepo(c Doer) DepartmentRepository {
	return &departmentRepo{c: c}
}

func (r *departmentRepo) List(ctx context.Context) ([]model.Department, error) {
	return list[model.Department](ctx, r.c, "/departments", nil)
}

func (r *departmentRepo) Create(ctx context.Context, in *model.DepartmentInput) (*model.Department, error) {
	return create[model.Department](ctx, r.c, "/departments", in)
}
