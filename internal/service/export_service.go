package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"campus-portal/config"
	"campus-portal/internal/model"
	"campus-portal/internal/session"
)

var (
	ErrExportGenerateFail = errors.New("生成导出文件失败")
	ErrExportBadWeek      = errors.New("week_of 格式应为 YYYY-MM-DD")
)

// ExportService 导出课表、成绩
//
// 数据均来自 ViewService，角色范围与页面一致。
// Excel 以 bytes.Buffer 返回，由 Handler 设置响应头后写出。
type ExportService interface {
	ScheduleExcel(ctx context.Context, sess *session.Session) (*bytes.Buffer, string, error)
	GradesExcel(ctx context.Context, sess *session.Session) (*bytes.Buffer, string, error)
	// ScheduleICS 以 weekOf（导出时区的日期，空为今天）所在周为首周，生成每周重复的日历事件
	ScheduleICS(ctx context.Context, sess *session.Session, weekOf string) ([]byte, string, error)
}

type exportService struct {
	views   ViewService
	loc     *time.Location
	calName string
	logger  *zap.Logger
}

// NewExportService 创建 ExportService 实例；时区无效时回退 UTC
func NewExportService(views ViewService, cfg *config.ExportConfig, logger *zap.Logger) ExportService {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("导出时区无效，使用 UTC", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.UTC
	}
	return &exportService{views: views, loc: loc, calName: cfg.CalendarName, logger: logger}
}

// ────────────────────── ScheduleExcel ──────────────────────
//
// 表头: | 星期 | 时间 | 课程 | 代码 | 教室 |
// 每天的条目连续排列，星期列合并单元格

func (s *exportService) ScheduleExcel(ctx context.Context, sess *session.Session) (*bytes.Buffer, string, error) {
	view, err := s.views.Schedule(ctx, sess)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "课表"
	idx, _ := f.NewSheet(sheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"星期", "时间", "课程", "代码", "教室"}
	widths := []float64{8, 14, 28, 12, 14}
	header := s.writeHeader(f, sheet, "课程表", headers, widths)

	row := 3
	for _, day := range view.Days {
		if len(day.Entries) == 0 {
			continue
		}
		first := row
		for _, e := range day.Entries {
			f.SetCellValue(sheet, cell("A", row), day.Name)
			f.SetCellValue(sheet, cell("B", row), fmt.Sprintf("%s-%s", e.StartTime, e.EndTime))
			f.SetCellValue(sheet, cell("C", row), e.CourseName)
			f.SetCellValue(sheet, cell("D", row), e.CourseCode)
			f.SetCellValue(sheet, cell("E", row), e.Room)
			row++
		}
		if row-first > 1 {
			f.MergeCell(sheet, cell("A", first), cell("A", row-1))
		}
		f.SetCellStyle(sheet, cell("A", first), cell("A", row-1), header.center)
	}

	return s.finish(f, "课程表.xlsx")
}

// ────────────────────── GradesExcel ──────────────────────

func (s *exportService) GradesExcel(ctx context.Context, sess *session.Session) (*bytes.Buffer, string, error) {
	view, err := s.views.Grades(ctx, sess)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "成绩"
	idx, _ := f.NewSheet(sheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"学号", "课程", "代码", "考核", "得分", "满分", "百分比", "等级", "评语"}
	widths := []float64{14, 24, 12, 18, 8, 8, 10, 10, 30}
	s.writeHeader(f, sheet, "成绩单", headers, widths)

	row := 3
	for _, r := range view.Records {
		values := []any{
			r.StudentNumber, r.CourseName, r.CourseCode, r.ExamName,
			r.Score, r.MaxScore, r.Percentage, string(r.Band), r.Comments,
		}
		for i, v := range values {
			f.SetCellValue(sheet, cell(colName(i), row), v)
		}
		row++
	}

	// 汇总行
	row++
	f.SetCellValue(sheet, cell("F", row), "平均")
	f.SetCellValue(sheet, cell("G", row), view.AveragePercentage)

	return s.finish(f, "成绩单.xlsx")
}

type sheetStyles struct {
	center int
}

// writeHeader 写入合并的标题行和第 2 行表头
func (s *exportService) writeHeader(f *excelize.File, sheet, title string, headers []string, widths []float64) sheetStyles {
	for i, w := range widths {
		col := colName(i)
		f.SetColWidth(sheet, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	centerStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheet, "A1", title)
	f.MergeCell(sheet, "A1", cell(colName(len(headers)-1), 1))
	f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	for i, h := range headers {
		f.SetCellValue(sheet, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheet, "A2", cell(colName(len(headers)-1), 2), headerStyle)
	return sheetStyles{center: centerStyle}
}

func (s *exportService) finish(f *excelize.File, filename string) (*bytes.Buffer, string, error) {
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, filename, nil
}

// ────────────────────── ScheduleICS ──────────────────────

func (s *exportService) ScheduleICS(ctx context.Context, sess *session.Session, weekOf string) ([]byte, string, error) {
	monday, err := s.firstMonday(weekOf)
	if err != nil {
		return nil, "", err
	}
	view, err := s.views.Schedule(ctx, sess)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//campus-portal//schedule//ZH")
	cal.SetXWRCalName(s.calName)
	cal.SetXWRTimezone(s.loc.String())

	stamp := time.Now().UTC()
	for _, day := range view.Days {
		date := monday.AddDate(0, 0, day.Day)
		for _, e := range day.Entries {
			evt := cal.AddEvent(fmt.Sprintf("%s-%s@campus-portal", e.ID, date.Format("20060102")))
			evt.SetDtStampTime(stamp)
			evt.SetStartAt(atClock(date, e.Start, s.loc))
			evt.SetEndAt(atClock(date, e.End, s.loc))
			evt.SetSummary(fmt.Sprintf("%s (%s)", e.CourseName, e.CourseCode))
			if e.Room != "" {
				evt.SetLocation(e.Room)
			}
			evt.AddProperty(ics.ComponentPropertyRrule, "FREQ=WEEKLY")
		}
	}

	filename := fmt.Sprintf("课程表_%s.ics", monday.Format(time.DateOnly))
	return []byte(cal.Serialize()), filename, nil
}

// firstMonday raw 为导出时区的日历日期，不经 UTC 换算
func (s *exportService) firstMonday(raw string) (time.Time, error) {
	if raw == "" {
		return weekStart(time.Now(), s.loc), nil
	}
	d, err := time.ParseInLocation(time.DateOnly, raw, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrExportBadWeek, raw)
	}
	return weekStart(d, s.loc), nil
}

// weekStart t 所在周的周一零点（loc 时区）
func weekStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, loc)
}

func atClock(date time.Time, c model.Clock, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, c.Minutes(), 0, 0, loc)
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
