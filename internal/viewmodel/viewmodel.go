// Package viewmodel 按角色过滤、关联并聚合上游数据，生成页面直接渲染的视图模型
package viewmodel

import (
	"errors"
	"math"

	"campus-portal/internal/model"
)

// ErrForbiddenView 当前角色无权查看该页面
var ErrForbiddenView = errors.New("当前角色无权查看该页面")

// Tone 徽章色调
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
	ToneInfo    Tone = "info"
	ToneNeutral Tone = "neutral"
)

// Badge 状态徽章
type Badge struct {
	Label string `json:"label"`
	Tone  Tone   `json:"tone"`
}

// scope 角色对应的可见范围：学生仅能看到自己的记录
type scope struct {
	ownOnly bool
	self    string
}

func scopeFor(role model.Role, selfStudentID string) (scope, error) {
	switch role {
	case model.RoleAdmin, model.RoleTeacher:
		return scope{}, nil
	case model.RoleStudent:
		return scope{ownOnly: true, self: selfStudentID}, nil
	}
	return scope{}, model.ErrUnknownRole
}

// visible 无学生档案时 self 为空，任何记录都不可见
func (s scope) visible(studentID string) bool {
	if !s.ownOnly {
		return true
	}
	return s.self != "" && studentID == s.self
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
