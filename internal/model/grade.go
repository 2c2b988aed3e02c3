package model

import (
	"math"

	pkgerrors "campus-portal/pkg/errors"
)

// Grade 成绩。百分比不作为字段保存，始终由 Score / MaxScore 推导
type Grade struct {
	ID        string  `json:"id"`
	StudentID string  `json:"student_id"`
	CourseID  string  `json:"course_id"`
	ExamID    string  `json:"exam_id,omitempty"` // 为空表示平时成绩
	Score     float64 `json:"score"`
	MaxScore  float64 `json:"max_score"`
	Comments  string  `json:"comments,omitempty"`
	GradedBy  string  `json:"graded_by,omitempty"`
	GradedAt  string  `json:"graded_at,omitempty"`
}

func (g Grade) GetID() string { return g.ID }

// IsContinuousAssessment 无关联考试的平时成绩
func (g Grade) IsContinuousAssessment() bool { return g.ExamID == "" }

// Percentage 按 score / max_score × 100 计算
func (g Grade) Percentage() (float64, error) {
	return ComputePercentage(g.Score, g.MaxScore)
}

// ComputePercentage 先乘后除，45/50 得到精确的 90
func ComputePercentage(score, maxScore float64) (float64, error) {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, pkgerrors.Invariant("score", "不是有限数值")
	}
	if math.IsNaN(maxScore) || math.IsInf(maxScore, 0) {
		return 0, pkgerrors.Invariant("max_score", "不是有限数值")
	}
	if maxScore <= 0 {
		return 0, pkgerrors.Invariant("max_score", "必须大于 0，实际为 %v", maxScore)
	}
	if score < 0 {
		return 0, pkgerrors.Invariant("score", "不能为负数，实际为 %v", score)
	}
	return score * 100 / maxScore, nil
}

// GradeInput 录入成绩请求体
type GradeInput struct {
	StudentID string  `json:"student_id"`
	CourseID  string  `json:"course_id"`
	ExamID    string  `json:"exam_id,omitempty"`
	Score     float64 `json:"score"`
	MaxScore  float64 `json:"max_score"`
	Comments  string  `json:"comments,omitempty"`
}
