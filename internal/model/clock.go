package model

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	pkgerrors "campus-portal/pkg/errors"
)

// Clock 一天内的时刻，精确到分钟
// 上游以 "HH:MM" 字符串传递，排序按分钟数比较，不依赖字符串字典序
type Clock struct {
	minutes int
}

// ParseClock 解析 "HH:MM"（允许单位数小时，如 "8:30"）
func ParseClock(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 || !allDigits(hh) || !allDigits(mm) {
		return Clock{}, pkgerrors.Invariant("time", "格式应为 HH:MM，实际为 %q", s)
	}
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	if h > 23 || m > 59 {
		return Clock{}, pkgerrors.Invariant("time", "超出范围 %q", s)
	}
	return Clock{minutes: h*60 + m}, nil
}

// Minutes 自零点起的分钟数
func (c Clock) Minutes() int { return c.minutes }

// Before 是否早于 o
func (c Clock) Before(o Clock) bool { return c.minutes < o.minutes }

// String 规范化为补零的 "HH:MM"
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.minutes/60, c.minutes%60)
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) || r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

func toUpper(s string) string { return strings.ToUpper(s) }
