package repository

import (
	"context"

	"campus-portal/internal/model"
)

// TeacherRepository 教师档案
type TeacherRepository interface {
	List(ctx context.Context) ([]model.Teacher, error)
	Create(ctx context.Context, in *model.TeacherInput) (*model.Teacher, error)
}

type teacherRepo struct {
	c Doer
}

// NewTeacherRepo 创建 TeacherRepository 实例
func NewTeacherRepo(c Doer) TeacherRepository {
	return &teacherRepo{c: c}
}

func (r *teacherRepo) List(ctx context.Context) ([]model.Teacher, error) {
	return list[model.Teacher](ctx, r.c, "/teachers", nil)
}

func (r *teacherRepo) Create(ctx context.Context, in *model.TeacherInput) (*model.Teacher, error) {
	return create[model.Teacher](ctx, r.c, "/teachers", in)
}
