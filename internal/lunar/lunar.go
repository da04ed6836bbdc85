// Package lunar converts Gregorian dates to their Korean lunisolar
// equivalents. The conversion is table-driven: each covered lunar year
// carries its own new-year anchor and month lengths, so a record is
// self-contained and never depends on neighboring years.
package lunar

import (
	"fmt"
	"time"
)

// Date is a Korean lunisolar calendar date. Year is the lunar year, which
// begins on Seollal and therefore differs from the Gregorian year for
// solar dates in January and early February. Leap marks a date inside an
// intercalary month.
type Date struct {
	Year  int
	Month int
	Day   int
	Leap  bool
}

func (d Date) String() string {
	if d.Leap {
		return fmt.Sprintf("%04d-%02d-%02d (leap)", d.Year, d.Month, d.Day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// yearData describes one lunar year: the Gregorian month/day of its new
// year, the intercalary month number (0 when there is none), and the
// length of each month in calendar order. When leapMonth is n, the entry
// after month n in monthLens is the intercalary month.
type yearData struct {
	lnyMonth  time.Month
	lnyDay    int
	leapMonth int
	monthLens []int
}

// FirstYear and LastYear bound the lunar years the table covers.
// Conversions outside [FirstYear, LastYear] return ErrOutOfRange; extending
// coverage means appending rows to the table and moving LastYear.
const (
	FirstYear = 2020
	LastYear  = 2030
)

// Month lengths are anchored against the published Korean holiday dates
// (Seollal, Buddha's Birthday, Chuseok) for every covered year.
var years = map[int]yearData{
	2020: {time.January, 25, 4, []int{30, 29, 30, 30, 29, 30, 29, 29, 30, 29, 30, 29, 30}},
	2021: {time.February, 12, 0, []int{29, 30, 30, 29, 30, 29, 30, 29, 30, 29, 30, 29}},
	2022: {time.February, 1, 0, []int{30, 29, 30, 29, 30, 30, 29, 30, 29, 30, 29, 30}},
	2023: {time.January, 22, 2, []int{29, 30, 29, 30, 29, 30, 29, 30, 30, 29, 30, 29, 30}},
	2024: {time.February, 10, 0, []int{29, 30, 29, 29, 30, 29, 30, 30, 29, 30, 30, 29}},
	2025: {time.January, 29, 6, []int{30, 29, 30, 29, 29, 30, 29, 30, 29, 30, 30, 30, 29}},
	2026: {time.February, 17, 0, []int{30, 29, 30, 29, 29, 30, 29, 30, 29, 30, 30, 29}},
	2027: {time.February, 6, 0, []int{30, 29, 30, 29, 30, 29, 30, 30, 29, 30, 29, 29}},
	2028: {time.January, 26, 5, []int{30, 30, 30, 29, 30, 29, 29, 30, 29, 29, 30, 30, 29}},
	2029: {time.February, 13, 0, []int{30, 29, 30, 30, 29, 30, 29, 30, 29, 30, 29, 30}},
	2030: {time.February, 3, 0, []int{29, 30, 29, 30, 30, 29, 30, 29, 30, 29, 30, 29}},
}

// ErrOutOfRange is returned for dates outside the covered table.
var ErrOutOfRange = fmt.Errorf("date outside lunar table coverage")

// newYear returns the Gregorian date of the lunar new year for the given
// lunar year, at midnight in loc.
func newYear(year int, loc *time.Location) (time.Time, bool) {
	yd, ok := years[year]
	if !ok {
		return time.Time{}, false
	}
	return time.Date(year, yd.lnyMonth, yd.lnyDay, 0, 0, 0, 0, loc), true
}

// ToLunar converts a Gregorian date to its lunisolar equivalent. Only the
// date portion of t is considered; the computation runs in t's location.
func ToLunar(t time.Time) (Date, error) {
	loc := t.Location()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)

	lunarYear := day.Year()
	lny, ok := newYear(lunarYear, loc)
	if !ok || day.Before(lny) {
		// Before this year's Seollal the date belongs to the previous
		// lunar year.
		lunarYear--
		lny, ok = newYear(lunarYear, loc)
		if !ok {
			return Date{}, ErrOutOfRange
		}
	}

	offset := int(day.Sub(lny).Hours() / 24)
	yd := years[lunarYear]

	month := 1
	leap := false
	for _, length := range yd.monthLens {
		if offset < length {
			return Date{Year: lunarYear, Month: month, Day: offset + 1, Leap: leap}, nil
		}
		offset -= length

		// Advance to the next calendar month. The intercalary month
		// repeats its predecessor's number.
		if yd.leapMonth != 0 && month == yd.leapMonth && !leap {
			leap = true
		} else {
			leap = false
			month++
		}
	}
	return Date{}, ErrOutOfRange
}

// FromLunar converts a lunisolar date back to the Gregorian calendar, at
// midnight in loc.
func FromLunar(d Date, loc *time.Location) (time.Time, error) {
	yd, ok := years[d.Year]
	if !ok {
		return time.Time{}, ErrOutOfRange
	}
	if d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return time.Time{}, fmt.Errorf("invalid lunar date %v", d)
	}
	if d.Leap && yd.leapMonth != d.Month {
		return time.Time{}, fmt.Errorf("year %d has no leap month %d", d.Year, d.Month)
	}

	offset := 0
	month := 1
	leap := false
	for _, length := range yd.monthLens {
		if month == d.Month && leap == d.Leap {
			if d.Day > length {
				return time.Time{}, fmt.Errorf("invalid lunar date %v", d)
			}
			lny, _ := newYear(d.Year, loc)
			return lny.AddDate(0, 0, offset+d.Day-1), nil
		}
		offset += length
		if yd.leapMonth != 0 && month == yd.leapMonth && !leap {
			leap = true
		} else {
			leap = false
			month++
		}
	}
	return time.Time{}, fmt.Errorf("invalid lunar date %v", d)
}

// NewYearDate returns the Gregorian date of Seollal for the given lunar year.
func NewYearDate(year int, loc *time.Location) (time.Time, error) {
	lny, ok := newYear(year, loc)
	if !ok {
		return time.Time{}, ErrOutOfRange
	}
	return lny, nil
}
