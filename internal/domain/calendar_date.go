package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidCalendarDate возвращается, когда год/месяц/день не образуют реальную дату
var ErrInvalidCalendarDate = errors.New("invalid calendar date")

// CalendarDate represents a day without a time component
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewCalendarDate создает дату и проверяет, что такой день существует (нет 30 февраля)
func NewCalendarDate(year int, month time.Month, day int) (CalendarDate, error) {
	d := CalendarDate{Year: year, Month: month, Day: day}
	if !d.IsValid() {
		return CalendarDate{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidCalendarDate, year, int(month), day)
	}
	return d, nil
}

// DateOf returns the calendar day of t in t's location
func DateOf(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// ParseCalendarDate парсит дату в формате YYYY-MM-DD
func ParseCalendarDate(s string) (CalendarDate, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("%w: %v", ErrInvalidCalendarDate, err)
	}
	return DateOf(t), nil
}

// IsValid returns true if the date denotes a real calendar day
func (d CalendarDate) IsValid() bool {
	if d.Month < time.January || d.Month > time.December || d.Day < 1 {
		return false
	}
	// time.Date нормализует 30 февраля в 1 марта, поэтому сравниваем обратно
	norm := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	return DateOf(norm) == d
}

// IsZero returns true if the date was never set
func (d CalendarDate) IsZero() bool {
	return d == CalendarDate{}
}

// At combines the date with an hour, minutes and seconds are zeroed
func (d CalendarDate) At(hour int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, hour, 0, 0, 0, loc)
}

// String возвращает дату в формате YYYY-MM-DD
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
