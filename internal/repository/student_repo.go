package repository

import (
	"context"
	"net/http"
	"net/url"

	"campus-portal/internal/model"
	pkgerrors "campus-portal/pkg/errors"
)

// StudentRepository 学生档案
type StudentRepository interface {
	List(ctx context.Context, status model.EnrollmentStatus) ([]model.Student, error)
	Get(ctx context.Context, id string) (*model.Student, error)
	Create(ctx context.Context, in *model.StudentInput) (*model.Student, error)
	PatchStatus(ctx context.Context, id string, status model.EnrollmentStatus) error
}

type studentRepo struct {
	c Doer
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(c Doer) StudentRepository {
	return &studentRepo{c: c}
}

// List status 为空时返回全部
func (r *studentRepo) List(ctx context.Context, status model.EnrollmentStatus) ([]model.Student, error) {
	q := url.Values{}
	setIf(q, "status", string(status))
	return list[model.Student](ctx, r.c, "/students", q)
}

func (r *studentRepo) Get(ctx context.Context, id string) (*model.Student, error) {
	return get[model.Student](ctx, r.c, pathID("/students", id, ""))
}

func (r *studentRepo) Create(ctx context.Context, in *model.StudentInput) (*model.Student, error) {
	return create[model.Student](ctx, r.c, "/students", in)
}

// PatchStatus 仅允许审核为 approved / rejected
func (r *studentRepo) PatchStatus(ctx context.Context, id string, status model.EnrollmentStatus) error {
	if err := checkReviewTarget(status); err != nil {
		return err
	}
	q := url.Values{"status": {string(status)}}
	return r.c.Do(ctx, http.MethodPatch, pathID("/students", id, "/status"), q, nil, nil)
}

func checkReviewTarget(status model.EnrollmentStatus) error {
	if status != model.EnrollmentApproved && status != model.EnrollmentRejected {
		return &pkgerrors.ValidationError{
			Status: http.StatusBadRequest,
			Detail: "审核状态只能为 approved 或 rejected",
		}
	}
	return nil
}
