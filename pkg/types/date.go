package types

import (
	"fmt"
	"time"
)

// DateLayout формат календарной даты YYYY-MM-DD
const DateLayout = "2006-01-02"

// ParseDate парсит календарную дату без времени (полночь UTC)
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return d, nil
}

// DateOnly отбрасывает время и часовой пояс, оставляя календарную дату (полночь UTC).
// Год, месяц и день берутся в собственной локации t.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate форматирует дату как YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// WeekdayOf возвращает день недели в ISO-нумерации с нуля: понедельник=0 ... воскресенье=6
func WeekdayOf(date time.Time) int {
	return (int(DateOnly(date).Weekday()) + 6) % 7
}

// IsValidWeekday проверяет, что номер дня недели в диапазоне 0..6
func IsValidWeekday(weekday int) bool {
	return weekday >= 0 && weekday <= 6
}
