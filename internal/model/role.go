package model

import (
	"errors"
	"strings"

	pkgerrors "campus-portal/pkg/errors"
)

// ErrUnknownRole 角色不在 admin / teacher / student 之内
var ErrUnknownRole = errors.New("未知角色")

// Role 用户角色，封闭枚举
type Role int

const (
	RoleAdmin Role = iota + 1
	RoleTeacher
	RoleStudent
)

// Roles 全部角色，按权限从高到低
var Roles = []Role{RoleAdmin, RoleTeacher, RoleStudent}

// ParseRole 将上游字符串解析为 Role
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "teacher":
		return RoleTeacher, nil
	case "student":
		return RoleStudent, nil
	}
	return 0, ErrUnknownRole
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleTeacher:
		return "teacher"
	case RoleStudent:
		return "student"
	}
	return ""
}

// Valid 是否为已知角色
func (r Role) Valid() bool {
	return r >= RoleAdmin && r <= RoleStudent
}

// IsStaff 管理员与教师可查看全量数据
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleTeacher
}

// MarshalText 实现 encoding.TextMarshaler
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, ErrUnknownRole
	}
	return []byte(r.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return pkgerrors.Invariant("role", "未知角色 %q", string(b))
	}
	*r = parsed
	return nil
}
