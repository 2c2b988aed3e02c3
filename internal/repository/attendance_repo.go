package repository

import (
	"context"

	"campus-portal/internal/model"
)

// AttendanceRepository 考勤
type AttendanceRepository interface {
	List(ctx context.Context, f RecordFilter) ([]model.Attendance, error)
	Create(ctx context.Context, in *model.AttendanceInput) (*model.Attendance, error)
}

type attendanceRepo struct {
	c Doer
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(c Doer) AttendanceRepository {
	return &attendanceRepo{c: c}
}

func (r *attendanceRepo) List(ctx context.Context, f RecordFilter) ([]model.Attendance, error) {
	return list[model.Attendance](ctx, r.c, "/attendance", f.values())
}

func (r *attendanceRepo) Create(ctx context.Context, in *model.AttendanceInput) (*model.Attendance, error) {
	return create[model.Attendance](ctx, r.c, "/attendance", in)
}
