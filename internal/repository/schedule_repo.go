package repository

import (
	"context"
	"net/url"

	"campus-portal/internal/model"
)

// ScheduleRepository 课表
type ScheduleRepository interface {
	List(ctx context.Context, courseID string) ([]model.Schedule, error)
	Create(ctx context.Context, in *model.ScheduleInput) (*model.Schedule, error)
}

type scheduleRepo struct {
	c Doer
}

// NewScheduleRepo 创建 ScheduleRepository 实例
func NewScheduleRepo(c Doer) ScheduleRepository {
	return &scheduleRepo{c: c}
}

func (r *scheduleRepo) List(ctx context.Context, courseID string) ([]model.Schedule, error) {
	q := url.Values{}
	setIf(q, "course_id", courseID)
	return list[model.Schedule](ctx, r.c, "/schedules", q)
}

func (r *scheduleRepo) Create(ctx context.Context, in *model.ScheduleInput) (*model.Schedule, error) {
	return create[model.Schedule](ctx, r.c, "/schedules", in)
}
