package repository

import (
	"context"

	"campus-portal/internal/model"
)

// GradeRepository 成绩
type GradeRepository interface {
	List(ctx context.Context, f RecordFilter) ([]model.Grade, error)
	Create(ctx context.Context, in *model.GradeInput) (*model.Grade, error)
}

type gradeRepo struct {
	c Doer
}

// NewGradeRepo 创建 GradeRepository 实例
func NewGradeRepo(c Doer) GradeRepository {
	return &gradeRepo{c: c}
}

func (r *gradeRepo) List(ctx context.Context, f RecordFilter) ([]model.Grade, error) {
	return list[model.Grade](ctx, r.c, "/grades", f.values())
}

func (r *gradeRepo) Create(ctx context.Context, in *model.GradeInput) (*model.Grade, error) {
	return create[model.Grade](ctx, r.c, "/grades", in)
}
