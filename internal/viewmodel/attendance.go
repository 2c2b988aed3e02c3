package viewmodel

import (
	"campus-portal/internal/index"
	"campus-portal/internal/model"
	pkgerrors "campus-portal/pkg/errors"
)

var attendanceBadges = map[model.AttendanceStatus]Badge{
	model.AttendancePresent: {Label: "出勤", Tone: ToneSuccess},
	model.AttendanceAbsent:  {Label: "缺勤", Tone: ToneDanger},
	model.AttendanceLate:    {Label: "迟到", Tone: ToneWarning},
	model.AttendanceExcused: {Label: "请假", Tone: ToneInfo},
}

// AttendanceRecord 带关联信息的考勤
type AttendanceRecord struct {
	model.Attendance
	Badge         Badge  `json:"badge"`
	StudentNumber string `json:"student_number"`
	CourseName    string `json:"course_name"`
}

// AttendanceView 考勤页
type AttendanceView struct {
	Records        []AttendanceRecord             `json:"records"`
	Total          int                            `json:"total"`
	Counts         map[model.AttendanceStatus]int `json:"counts"`
	AttendanceRate float64                        `json:"attendance_rate"`
	CanCreate      bool                           `json:"can_create"`
}

// BuildAttendanceView 过滤规则同成绩页
// 出勤率 = (出勤 + 迟到) / 总数 × 100，保留一位小数，无记录时为 0
func BuildAttendanceView(role model.Role, selfStudentID string, records []model.Attendance, joins *index.Joins) (*AttendanceView, error) {
	sc, err := scopeFor(role, selfStudentID)
	if err != nil {
		return nil, err
	}

	view := &AttendanceView{
		Records:   make([]AttendanceRecord, 0, len(records)),
		Counts:    make(map[model.AttendanceStatus]int, len(model.AttendanceStatuses)),
		CanCreate: role.IsStaff(),
	}
	for _, st := range model.AttendanceStatuses {
		view.Counts[st] = 0
	}

	attended := 0
	for _, a := range records {
		if !sc.visible(a.StudentID) {
			continue
		}
		badge, ok := attendanceBadges[a.Status]
		if !ok {
			return nil, pkgerrors.Invariant("status", "未知考勤状态 %q", a.Status)
		}
		if a.Status.CountsAsAttended() {
			attended++
		}
		view.Counts[a.Status]++
		view.Records = append(view.Records, AttendanceRecord{
			Attendance:    a,
			Badge:         badge,
			StudentNumber: joins.StudentNumber(a.StudentID),
			CourseName:    joins.CourseName(a.CourseID),
		})
	}

	view.Total = len(view.Records)
	if view.Total > 0 {
		view.AttendanceRate = round(float64(attended)*100/float64(view.Total), 1)
	}
	return view, nil
}
