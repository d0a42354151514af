package domain

import (
	"errors"
	"time"
)

// RecurrencePattern represents how a recurring series advances between occurrences
type RecurrencePattern string

const (
	PatternDaily   RecurrencePattern = "daily"
	PatternWeekly  RecurrencePattern = "weekly"
	PatternMonthly RecurrencePattern = "monthly"
)

// ErrUnknownPattern возвращается при нераспознанном шаблоне повторения
var ErrUnknownPattern = errors.New("unknown recurrence pattern")

// ParseRecurrencePattern валидирует строку шаблона повторения
func ParseRecurrencePattern(s string) (RecurrencePattern, error) {
	switch RecurrencePattern(s) {
	case PatternDaily, PatternWeekly, PatternMonthly:
		return RecurrencePattern(s), nil
	default:
		return "", ErrUnknownPattern
	}
}

// NextDate возвращает дату следующего вхождения серии.
// monthly сдвигает календарный месяц на один, декабрь переходит в январь
// следующего года. Время суток у всех вхождений одинаковое и здесь не участвует.
func (p RecurrencePattern) NextDate(date time.Time) time.Time {
	switch p {
	case PatternDaily:
		return date.AddDate(0, 0, 1)
	case PatternWeekly:
		return date.AddDate(0, 0, 7)
	case PatternMonthly:
		return date.AddDate(0, 1, 0)
	default:
		return date
	}
}
