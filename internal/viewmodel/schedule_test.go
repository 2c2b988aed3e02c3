package viewmodel

import (
	"testing"

	"campus-portal/internal/index"
	"campus-portal/internal/model"
	pkgerrors "campus-portal/pkg/errors"
)

func TestBuildScheduleView_OrderingAndBuckets(t *testing.T) {
	schedules := []model.Schedule{
		{ID: "x1", CourseID: "c1", DayOfWeek: 2, StartTime: "09:00", EndTime: "10:00"},
		{ID: "x2", CourseID: "c1", DayOfWeek: 2, StartTime: "08:30", EndTime: "09:30"},
		{ID: "x3", CourseID: "c2", DayOfWeek: 6, StartTime: "07:00", EndTime: "08:00"},
	}
	joins := index.NewJoins(index.JoinSet{Courses: []model.Course{{ID: "c1", Name: "Algebra", Code: "M101"}}})

	view, err := BuildScheduleView(schedules, joins)
	if err != nil {
		t.Fatalf("BuildScheduleView 失败: %v", err)
	}

	day2 := view.Days[2].Entries
	if len(day2) != 2 || day2[0].StartTime != "08:30" || day2[1].StartTime != "09:00" {
		t.Fatalf("周三应 08:30 在前，实际 %+v", day2)
	}
	if day2[0].CourseName != "Algebra" {
		t.Errorf("CourseName=%q", day2[0].CourseName)
	}
	if len(view.Days[0].Entries) != 0 {
		t.Errorf("周日的课不应出现在周一，实际 %+v", view.Days[0].Entries)
	}
	if len(view.Days[6].Entries) != 1 || view.Days[6].Entries[0].CourseName != index.UnknownLabel {
		t.Errorf("周日应有 1 条且课程缺失占位，实际 %+v", view.Days[6].Entries)
	}
	for d, day := range view.Days {
		if day.Day != d || day.Name != DayNames[d] || day.Entries == nil {
			t.Errorf("第 %d 组结构不符: %+v", d, day)
		}
	}
}

func TestBuildScheduleView_NormalizesTimes(t *testing.T) {
	// "9:05" 与 "10:00" 按字符串比较会排错
	schedules := []model.Schedule{
		{ID: "a", DayOfWeek: 0, StartTime: "10:00", EndTime: "11:00"},
		{ID: "b", DayOfWeek: 0, StartTime: "9:05", EndTime: "9:50"},
	}
	view, err := BuildScheduleView(schedules, emptyJoins())
	if err != nil {
		t.Fatalf("BuildScheduleView 失败: %v", err)
	}
	e := view.Days[0].Entries
	if e[0].ID != "b" || e[0].StartTime != "09:05" || e[0].EndTime != "09:50" {
		t.Errorf("期望规范化并排在前面，实际 %+v", e)
	}
}

func TestBuildScheduleView_Invalid(t *testing.T) {
	tests := []struct {
		name string
		s    model.Schedule
	}{
		{"星期越界", model.Schedule{DayOfWeek: 7, StartTime: "08:00", EndTime: "09:00"}},
		{"负星期", model.Schedule{DayOfWeek: -1, StartTime: "08:00", EndTime: "09:00"}},
		{"开始时间错误", model.Schedule{DayOfWeek: 1, StartTime: "8h", EndTime: "09:00"}},
		{"结束时间错误", model.Schedule{DayOfWeek: 1, StartTime: "08:00", EndTime: "25:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildScheduleView([]model.Schedule{tt.s}, emptyJoins())
			if !pkgerrors.IsInvariant(err) {
				t.Errorf("期望 InvariantViolation，实际 %v", err)
			}
		})
	}
}

func TestBuilders_NilJoins(t *testing.T) {
	sched, err := BuildScheduleView([]model.Schedule{
		{ID: "x1", CourseID: "c1", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
	}, nil)
	if err != nil {
		t.Fatalf("BuildScheduleView 失败: %v", err)
	}
	if sched.Days[1].Entries[0].CourseName != index.UnknownLabel {
		t.Errorf("CourseName=%q", sched.Days[1].Entries[0].CourseName)
	}

	attView, err := BuildAttendanceView(model.RoleAdmin, "", []model.Attendance{
		{ID: "a1", StudentID: "s1", CourseID: "c1", Date: "2024-03-01", Status: model.AttendancePresent},
	}, nil)
	if err != nil {
		t.Fatalf("BuildAttendanceView 失败: %v", err)
	}
	if attView.Records[0].StudentNumber != index.UnknownLabel || attView.Records[0].CourseName != index.UnknownLabel {
		t.Errorf("关联不符: %+v", attView.Records[0])
	}

	courses, err := BuildCoursesView(model.RoleAdmin, "", []model.Course{{ID: "c1", DepartmentID: "d1"}}, nil)
	if err != nil {
		t.Fatalf("BuildCoursesView 失败: %v", err)
	}
	if courses.Courses[0].DepartmentName != index.UnknownLabel || courses.Courses[0].TeacherLabel != index.UnassignedLabel {
		t.Errorf("关联不符: %+v", courses.Courses[0])
	}
}
