package repository

import (
	"context"
	"net/url"

	"campus-portal/internal/model"
)

// ExamRepository 考试
type ExamRepository interface {
	List(ctx context.Context, courseID string) ([]model.Exam, error)
	Create(ctx context.Context, in *model.ExamInput) (*model.Exam, error)
}

type examRepo struct {
	c Doer
}

// NewExamRepo 创建 ExamRepository 实例
func NewExamRepo(c Doer) ExamRepository {
	return &examRepo{c: c}
}

func (r *examRepo) List(ctx context.Context, courseID string) ([]model.Exam, error) {
	q := url.Values{}
	setIf(q, "course_id", courseID)
	return list[model.Exam](ctx, r.c, "/exams", q)
}

func (r *examRepo) Create(ctx context.Context, in *model.ExamInput) (*model.Exam, error) {
	return create[model.Exam](ctx, r.c, "/exams", in)
}
