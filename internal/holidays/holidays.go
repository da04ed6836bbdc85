// Package holidays provides the Korean public-holiday calendar used for
// day-type classification. A Calendar is constructed once at process start
// and is immutable afterwards; it is plain read-only reference data and is
// passed explicitly to whatever needs it.
package holidays

import (
	"fmt"
	"time"

	"campus.hyuabot.org/internal/lunar"
)

// Calendar answers "is this date a public holiday" for the campus timezone.
type Calendar struct {
	loc  *time.Location
	days map[string]string // "2006-01-02" -> holiday name
}

// NewCalendar builds the holiday table for every year the lunar table
// covers. Lunar-derived holidays (Seollal, Buddha's Birthday, Chuseok) are
// resolved through the lunisolar conversion; substitute-holiday rules are
// applied afterwards.
func NewCalendar(loc *time.Location) (*Calendar, error) {
	c := &Calendar{loc: loc, days: make(map[string]string)}

	for year := lunar.FirstYear; year <= lunar.LastYear; year++ {
		if err := c.addYear(year); err != nil {
			return nil, fmt.Errorf("error building holiday table for %d: %w", year, err)
		}
	}
	return c, nil
}

func (c *Calendar) addYear(year int) error {
	fixed := []struct {
		month time.Month
		day   int
		name  string
	}{
		{time.January, 1, "New Year's Day"},
		{time.March, 1, "Independence Movement Day"},
		{time.May, 5, "Children's Day"},
		{time.June, 6, "Memorial Day"},
		{time.August, 15, "Liberation Day"},
		{time.October, 3, "National Foundation Day"},
		{time.October, 9, "Hangul Day"},
		{time.December, 25, "Christmas Day"},
	}
	for _, f := range fixed {
		c.add(time.Date(year, f.month, f.day, 0, 0, 0, 0, c.loc), f.name)
	}

	seollal, err := lunar.FromLunar(lunar.Date{Year: year, Month: 1, Day: 1}, c.loc)
	if err != nil {
		return err
	}
	c.add(seollal.AddDate(0, 0, -1), "Seollal")
	c.add(seollal, "Seollal")
	c.add(seollal.AddDate(0, 0, 1), "Seollal")

	buddha, err := lunar.FromLunar(lunar.Date{Year: year, Month: 4, Day: 8}, c.loc)
	if err != nil {
		return err
	}
	c.add(buddha, "Buddha's Birthday")

	chuseok, err := lunar.FromLunar(lunar.Date{Year: year, Month: 8, Day: 15}, c.loc)
	if err != nil {
		return err
	}
	c.add(chuseok.AddDate(0, 0, -1), "Chuseok")
	c.add(chuseok, "Chuseok")
	c.add(chuseok.AddDate(0, 0, 1), "Chuseok")

	c.addSubstitutes(year, seollal, chuseok)
	return nil
}

// addSubstitutes applies the substitute-holiday rules: Seollal and Chuseok
// gain a substitute when any of their three days falls on a Sunday;
// Children's Day gains one when it falls on a weekend.
func (c *Calendar) addSubstitutes(year int, seollal, chuseok time.Time) {
	for _, block := range []time.Time{seollal, chuseok} {
		for d := -1; d <= 1; d++ {
			day := block.AddDate(0, 0, d)
			if day.Weekday() == time.Sunday {
				c.add(c.nextWorkday(block.AddDate(0, 0, 2)), "Substitute Holiday")
			}
		}
	}

	children := time.Date(year, time.May, 5, 0, 0, 0, 0, c.loc)
	if wd := children.Weekday(); wd == time.Saturday || wd == time.Sunday {
		c.add(c.nextWorkday(children.AddDate(0, 0, 1)), "Substitute Holiday")
	}
}

// nextWorkday walks forward to the first day that is neither a weekend day
// nor already a holiday.
func (c *Calendar) nextWorkday(from time.Time) time.Time {
	day := from
	for {
		wd := day.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			if _, taken := c.days[key(day)]; !taken {
				return day
			}
		}
		day = day.AddDate(0, 0, 1)
	}
}

func (c *Calendar) add(day time.Time, name string) {
	if _, taken := c.days[key(day)]; taken {
		return
	}
	c.days[key(day)] = name
}

func key(t time.Time) string {
	return t.Format("2006-01-02")
}

// IsHoliday reports whether the date portion of t is a public holiday.
func (c *Calendar) IsHoliday(t time.Time) bool {
	_, ok := c.days[key(t.In(c.loc))]
	return ok
}

// Name returns the holiday name for t, or "" when t is a working day.
func (c *Calendar) Name(t time.Time) string {
	return c.days[key(t.In(c.loc))]
}
