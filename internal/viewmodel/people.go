package viewmodel

import (
	"campus-portal/internal/index"
	"campus-portal/internal/model"
	pkgerrors "campus-portal/pkg/errors"
)

var enrollmentBadges = map[model.EnrollmentStatus]Badge{
	model.EnrollmentApproved: {Label: "已通过", Tone: ToneSuccess},
	model.EnrollmentPending:  {Label: "待审核", Tone: ToneWarning},
	model.EnrollmentRejected: {Label: "已拒绝", Tone: ToneDanger},
}

// ────────────────────── 学生 ──────────────────────

// StudentRow 学生档案行
type StudentRow struct {
	model.Student
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	DepartmentName string `json:"department_name"`
	Badge          Badge  `json:"badge"`
}

// StudentsView 学生页（管理员、教师）
type StudentsView struct {
	Students  []StudentRow                   `json:"students"`
	Counts    map[model.EnrollmentStatus]int `json:"counts"`
	Filter    model.EnrollmentStatus         `json:"filter,omitempty"`
	CanReview bool                           `json:"can_review"`
}

// BuildStudentsView filter 为空时展示全部；计数始终基于全量
func BuildStudentsView(role model.Role, filter model.EnrollmentStatus, students []model.Student, joins *index.Joins) (*StudentsView, error) {
	switch role {
	case model.RoleAdmin, model.RoleTeacher:
	case model.RoleStudent:
		return nil, ErrForbiddenView
	default:
		return nil, model.ErrUnknownRole
	}
	if filter != "" && !filter.Valid() {
		return nil, pkgerrors.Invariant("status", "未知审核状态 %q", filter)
	}

	view := &StudentsView{
		Students: make([]StudentRow, 0, len(students)),
		Counts: map[model.EnrollmentStatus]int{
			model.EnrollmentPending:  0,
			model.EnrollmentApproved: 0,
			model.EnrollmentRejected: 0,
		},
		Filter:    filter,
		CanReview: role == model.RoleAdmin,
	}
	for _, s := range students {
		badge, ok := enrollmentBadges[s.EnrollmentStatus]
		if !ok {
			return nil, pkgerrors.Invariant("enrollment_status", "未知审核状态 %q", s.EnrollmentStatus)
		}
		view.Counts[s.EnrollmentStatus]++
		if filter != "" && s.EnrollmentStatus != filter {
			continue
		}

		row := StudentRow{
			Student:        s,
			Name:           index.UnknownLabel,
			DepartmentName: joins.DepartmentName(s.DepartmentID),
			Badge:          badge,
		}
		if u, ok := joins.Users.Get(s.UserID); ok {
			row.Name = u.FullName()
			row.Email = u.Email
		}
		view.Students = append(view.Students, row)
	}
	return view, nil
}

// ────────────────────── 教师 ──────────────────────

// TeacherRow 教师档案行
type TeacherRow struct {
	model.Teacher
	Name           string `json:"name"`
	DepartmentName string `json:"department_name"`
}

// TeachersView 教师页（管理员）
type TeachersView struct {
	Teachers []TeacherRow `json:"teachers"`
}

// BuildTeachersView 关联院系与用户姓名
func BuildTeachersView(teachers []model.Teacher, joins *index.Joins) *TeachersView {
	view := &TeachersView{Teachers: make([]TeacherRow, 0, len(teachers))}
	for _, t := range teachers {
		view.Teachers = append(view.Teachers, TeacherRow{
			Teacher:        t,
			Name:           joins.UserName(t.UserID),
			DepartmentName: joins.DepartmentName(t.DepartmentID),
		})
	}
	return view
}

// ────────────────────── 用户 ──────────────────────

// UserRow 用户行；学生、教师需要对应档案，管理员不需要
type UserRow struct {
	model.User
	FullName     string `json:"full_name"`
	Initials     string `json:"initials"`
	ProfileID    string `json:"profile_id,omitempty"`
	NeedsProfile bool   `json:"needs_profile"`
}

// UsersView 用户页（管理员）
type UsersView struct {
	Users        []UserRow          `json:"users"`
	RoleCounts   map[model.Role]int `json:"role_counts"`
	Active       int                `json:"active"`
	NeedsProfile int                `json:"needs_profile"`
}

// BuildUsersView 标记尚未建立学生或教师档案的用户
func BuildUsersView(users []model.User, students []model.Student, teachers []model.Teacher) (*UsersView, error) {
	studentByUser := make(map[string]string, len(students))
	for _, s := range students {
		studentByUser[s.UserID] = s.ID
	}
	teacherByUser := make(map[string]string, len(teachers))
	for _, t := range teachers {
		teacherByUser[t.UserID] = t.ID
	}

	view := &UsersView{
		Users:      make([]UserRow, 0, len(users)),
		RoleCounts: make(map[model.Role]int, len(model.Roles)),
	}
	for _, r := range model.Roles {
		view.RoleCounts[r] = 0
	}

	for _, u := range users {
		row := UserRow{User: u, FullName: u.FullName(), Initials: u.Initials()}
		switch u.Role {
		case model.RoleAdmin:
		case model.RoleTeacher:
			row.ProfileID = teacherByUser[u.ID]
			row.NeedsProfile = row.ProfileID == ""
		case model.RoleStudent:
			row.ProfileID = studentByUser[u.ID]
			row.NeedsProfile = row.ProfileID == ""
		default:
			return nil, model.ErrUnknownRole
		}

		view.RoleCounts[u.Role]++
		if u.IsActive {
			view.Active++
		}
		if row.NeedsProfile {
			view.NeedsProfile++
		}
		view.Users = append(view.Users, row)
	}
	return view, nil
}
