package viewmodel

import (
	"sort"

	"campus-portal/internal/index"
	"campus-portal/internal/model"
	pkgerrors "campus-portal/pkg/errors"
)

// DayNames day_of_week 0..6 对应周一至周日
var DayNames = [model.DaysInWeek]string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}

// ScheduleEntry 课表条目，时间已规范化为 HH:MM
type ScheduleEntry struct {
	ID         string `json:"id"`
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name"`
	CourseCode string `json:"course_code"`
	DayOfWeek  int    `json:"day_of_week"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Room       string `json:"room"`

	Start model.Clock `json:"-"`
	End   model.Clock `json:"-"`
}

// DaySchedule 某一天的课表
type DaySchedule struct {
	Day     int             `json:"day"`
	Name    string          `json:"name"`
	Entries []ScheduleEntry `json:"entries"`
}

// ScheduleView 按周一至周日分组的课表
type ScheduleView struct {
	Days      [model.DaysInWeek]DaySchedule `json:"days"`
	CanCreate bool                          `json:"can_create"`
}

// BuildScheduleView 按 day_of_week 分为 7 组，组内按开始时间升序
// 时间按分钟数比较；格式错误或星期越界返回 InvariantViolation
func BuildScheduleView(schedules []model.Schedule, joins *index.Joins) (*ScheduleView, error) {
	view := &ScheduleView{}
	for d := 0; d < model.DaysInWeek; d++ {
		view.Days[d] = DaySchedule{Day: d, Name: DayNames[d], Entries: []ScheduleEntry{}}
	}

	for _, s := range schedules {
		if !model.ValidDay(s.DayOfWeek) {
			return nil, pkgerrors.Invariant("day_of_week", "应在 0-6 之间，实际为 %d", s.DayOfWeek)
		}
		start, err := model.ParseClock(s.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := model.ParseClock(s.EndTime)
		if err != nil {
			return nil, err
		}
		day := &view.Days[s.DayOfWeek]
		day.Entries = append(day.Entries, ScheduleEntry{
			ID:         s.ID,
			CourseID:   s.CourseID,
			CourseName: joins.CourseName(s.CourseID),
			CourseCode: joins.CourseCode(s.CourseID),
			DayOfWeek:  s.DayOfWeek,
			StartTime:  start.String(),
			EndTime:    end.String(),
			Room:       s.Room,
			Start:      start,
			End:        end,
		})
	}

	for d := range view.Days {
		entries := view.Days[d].Entries
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Start.Before(entries[j].Start)
		})
	}
	return view, nil
}
