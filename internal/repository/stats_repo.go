package repository

import (
	"context"
	"net/http"

	"campus-portal/internal/model"
)

// StatsRepository 仪表盘统计
type StatsRepository interface {
	Dashboard(ctx context.Context) (model.DashboardStats, error)
}

type statsRepo struct {
	c Doer
}

// NewStatsRepo 创建 StatsRepository 实例
func NewStatsRepo(c Doer) StatsRepository {
	return &statsRepo{c: c}
}

func (r *statsRepo) Dashboard(ctx context.Context) (model.DashboardStats, error) {
	out := model.DashboardStats{}
	if err := r.c.Do(ctx, http.MethodGet, "/stats/dashboard", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
