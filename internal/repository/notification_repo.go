package repository

import (
	"context"
	"net/http"

	"campus-portal/internal/model"
)

// NotificationRepository 当前用户的通知，上游按时间倒序返回
type NotificationRepository interface {
	List(ctx context.Context) ([]model.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

type notificationRepo struct {
	c Doer
}

// NewNotificationRepo 创建 NotificationRepository 实例
func NewNotificationRepo(c Doer) NotificationRepository {
	return &notificationRepo{c: c}
}

func (r *notificationRepo) List(ctx context.Context) ([]model.Notification, error) {
	return list[model.Notification](ctx, r.c, "/notifications", nil)
}

func (r *notificationRepo) MarkRead(ctx context.Context, id string) error {
	return r.c.Do(ctx, http.MethodPatch, pathID("/notifications", id, "/read"), nil, nil, nil)
}
