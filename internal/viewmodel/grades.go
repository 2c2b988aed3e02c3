package viewmodel

import (
	"campus-portal/internal/index"
	"campus-portal/internal/model"
)

// GradeBand 成绩等级，用于前端配色
type GradeBand string

const (
	BandExcellent GradeBand = "excellent"
	BandGood      GradeBand = "good"
	BandAverage   GradeBand = "average"
	BandPoor      GradeBand = "poor"
)

// BandFor ≥80 优秀，≥60 良好，≥40 一般，其余较差
func BandFor(percentage float64) GradeBand {
	switch {
	case percentage >= 80:
		return BandExcellent
	case percentage >= 60:
		return BandGood
	case percentage >= 40:
		return BandAverage
	}
	return BandPoor
}

// GradeRecord 带关联信息的成绩
type GradeRecord struct {
	model.Grade
	Percentage    float64   `json:"percentage"`
	Band          GradeBand `json:"band"`
	StudentNumber string    `json:"student_number,omitempty"`
	CourseName    string    `json:"course_name,omitempty"`
	CourseCode    string    `json:"course_code,omitempty"`
	ExamName      string    `json:"exam_name,omitempty"`
}

// GradesView 成绩页
type GradesView struct {
	Records           []GradeRecord `json:"records"`
	AveragePercentage float64       `json:"average_percentage"`
	CanCreate         bool          `json:"can_create"`
}

// NewGradeRecord 计算百分比；joins 为 nil 时不填充关联字段
func NewGradeRecord(g model.Grade, joins *index.Joins) (GradeRecord, error) {
	pct, err := g.Percentage()
	if err != nil {
		return GradeRecord{}, err
	}
	rec := GradeRecord{Grade: g, Percentage: pct, Band: BandFor(pct)}
	if joins != nil {
		rec.StudentNumber = joins.StudentNumber(g.StudentID)
		rec.CourseName = joins.CourseName(g.CourseID)
		rec.CourseCode = joins.CourseCode(g.CourseID)
		rec.ExamName = joins.ExamName(g.ExamID)
	}
	return rec, nil
}

// BuildGradesView 学生仅保留 student_id == selfStudentID 的成绩，其余角色不过滤
// 平均百分比保留两位小数，无记录时为 0
func BuildGradesView(role model.Role, selfStudentID string, grades []model.Grade, joins *index.Joins) (*GradesView, error) {
	sc, err := scopeFor(role, selfStudentID)
	if err != nil {
		return nil, err
	}

	view := &GradesView{
		Records:   make([]GradeRecord, 0, len(grades)),
		CanCreate: role.IsStaff(),
	}
	var sum float64
	for _, g := range grades {
		if !sc.visible(g.StudentID) {
			continue
		}
		rec, err := NewGradeRecord(g, joins)
		if err != nil {
			return nil, err
		}
		sum += rec.Percentage
		view.Records = append(view.Records, rec)
	}

	if n := len(view.Records); n > 0 {
		view.AveragePercentage = round(sum/float64(n), 2)
	}
	return view, nil
}
