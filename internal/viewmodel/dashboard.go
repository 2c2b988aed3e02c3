package viewmodel

import (
	"fmt"
	"strconv"

	"campus-portal/internal/model"
)

// StatCard 仪表盘统计卡片
type StatCard struct {
	Key    string  `json:"key"`
	Title  string  `json:"title"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit,omitempty"`
	Detail string  `json:"detail"`
}

// DashboardView 仪表盘
type DashboardView struct {
	Role          model.Role           `json:"role"`
	Cards         []StatCard           `json:"cards"`
	Notifications []model.Notification `json:"notifications"`
	Unread        int                  `json:"unread"`
}

// RecentNotifications 仪表盘展示的通知条数
const RecentNotifications = 5

// BuildDashboardStats 按角色挑选统计项，缺失的键按 0 处理
func BuildDashboardStats(role model.Role, raw model.DashboardStats) ([]StatCard, error) {
	switch role {
	case model.RoleAdmin:
		return []StatCard{
			{Key: "total_students", Title: "学生", Value: raw.Get("total_students"),
				Detail: fmt.Sprintf("%s 人待审核", formatNumber(raw.Get("pending_students")))},
			{Key: "total_teachers", Title: "教师", Value: raw.Get("total_teachers"), Detail: "在职"},
			{Key: "total_courses", Title: "课程", Value: raw.Get("total_courses"), Detail: "开设课程"},
			{Key: "total_exams", Title: "考试", Value: raw.Get("total_exams"), Detail: "考试总数"},
		}, nil
	case model.RoleTeacher:
		return []StatCard{
			{Key: "my_courses", Title: "我的课程", Value: raw.Get("my_courses"), Detail: "已分配课程"},
			{Key: "total_students", Title: "学生", Value: raw.Get("total_students"), Detail: "已选课人数"},
			{Key: "upcoming_exams", Title: "考试", Value: raw.Get("upcoming_exams"), Detail: "待进行"},
		}, nil
	case model.RoleStudent:
		return []StatCard{
			{Key: "enrolled_courses", Title: "我的课程", Value: raw.Get("enrolled_courses"), Detail: "已选课程"},
			{Key: "upcoming_exams", Title: "考试", Value: raw.Get("upcoming_exams"), Detail: "待进行"},
			{Key: "average_grade", Title: "平均成绩", Value: raw.Get("average_grade"), Unit: "%", Detail: "总体平均"},
		}, nil
	}
	return nil, model.ErrUnknownRole
}

// BuildDashboardView 统计卡片与最近 5 条通知
func BuildDashboardView(role model.Role, raw model.DashboardStats, notifications []model.Notification) (*DashboardView, error) {
	cards, err := BuildDashboardStats(role, raw)
	if err != nil {
		return nil, err
	}

	view := &DashboardView{Role: role, Cards: cards}
	for _, n := range notifications {
		if !n.Read {
			view.Unread++
		}
	}
	if len(notifications) > RecentNotifications {
		notifications = notifications[:RecentNotifications]
	}
	view.Notifications = append([]model.Notification{}, notifications...)
	return view, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
