package repository

import (
	"context"

	"campus-portal/internal/model"
)

// EnrollmentRepository 选课申请
type EnrollmentRepository interface {
	List(ctx context.Context, f RecordFilter) ([]model.Enrollment, error)
	Create(ctx context.Context, in *model.EnrollmentInput) (*model.Enrollment, error)
}

type enrollmentRepo struct {
	c Doer
}

// NewEnrollmentRepo 创建 EnrollmentRepository 实例
func NewEnrollmentRepo(c Doer) EnrollmentRepository {
	return &enrollmentRepo{c: c}
}

func (r *enrollmentRepo) List(ctx context.Context, f RecordFilter) ([]model.Enrollment, error) {
	return list[model.Enrollment](ctx, r.c, "/enrollments", f.values())
}

func (r *enrollmentRepo) Create(ctx context.Context, in *model.EnrollmentInput) (*model.Enrollment, error) {
	return create[model.Enrollment](ctx, r.c, "/enrollments", in)
}
