package repository

import (
	"context"
	"net/url"

	"campus-portal/internal/model"
)

// CourseRepository 课程
type CourseRepository interface {
	List(ctx context.Context, departmentID string) ([]model.Course, error)
	Get(ctx context.Context, id string) (*model.Course, error)
	Create(ctx context.Context, in *model.CourseInput) (*model.Course, error)
}

type courseRepo struct {
	c Doer
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(c Doer) CourseRepository {
	return &courseRepo{c: c}
}

// List departmentID 为空时返回全部
func (r *courseRepo) List(ctx context.Context, departmentID string) ([]model.Course, error) {
	q := url.Values{}
	setIf(q, "department_id", departmentID)
	return list[model.Course](ctx, r.c, "/courses", q)
}

func (r *courseRepo) Get(ctx context.Context, id string) (*model.Course, error) {
	return get[model.Course](ctx, r.c, pathID("/courses", id, ""))
}

func (r *courseRepo) Create(ctx context.Context, in *model.CourseInput) (*model.Course, error) {
	return create[model.Course](ctx, r.c, "/courses", in)
}
