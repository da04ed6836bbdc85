package models

import (
	"fmt"

	"campus.hyuabot.org/campusdb"
)

// FormatSeconds renders seconds since midnight as HH:MM:SS. Values past
// 24 hours wrap, matching how after-midnight departures are published.
func FormatSeconds(seconds int64) string {
	seconds %= 24 * 3600
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

type PeriodEntry struct {
	Seq       int64  `json:"seq"`
	Type      string `json:"type"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	CreatedAt string `json:"createdAt"`
}

func NewPeriodEntry(p campusdb.Period) PeriodEntry {
	return PeriodEntry{
		Seq:       p.Seq,
		Type:      p.Type,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		CreatedAt: p.CreatedAt,
	}
}

type HolidayEntry struct {
	Date     string `json:"date"`
	Calendar string `json:"calendar"`
	Type     string `json:"type"`
}

func NewHolidayEntry(h campusdb.Holiday) HolidayEntry {
	return HolidayEntry{Date: h.Date, Calendar: h.Calendar, Type: h.Type}
}

type ShuttleStopEntry struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func NewShuttleStopEntry(s campusdb.ShuttleStop) ShuttleStopEntry {
	return ShuttleStopEntry{Name: s.Name, Latitude: s.Latitude, Longitude: s.Longitude}
}

type ShuttleRouteEntry struct {
	Name      string  `json:"name"`
	Tag       string  `json:"tag"`
	Korean    *string `json:"korean"`
	English   *string `json:"english"`
	StartStop *string `json:"startStop"`
	EndStop   *string `json:"endStop"`
}

func NewShuttleRouteEntry(r campusdb.ShuttleRoute) ShuttleRouteEntry {
	entry := ShuttleRouteEntry{Name: r.Name, Tag: r.Tag}
	if r.Korean.Valid {
		entry.Korean = &r.Korean.String
	}
	if r.English.Valid {
		entry.English = &r.English.String
	}
	if r.StartStop.Valid {
		entry.StartStop = &r.StartStop.String
	}
	if r.EndStop.Valid {
		entry.EndStop = &r.EndStop.String
	}
	return entry
}

type RouteStopEntry struct {
	Route          string `json:"route"`
	Stop           string `json:"stop"`
	Order          int64  `json:"order"`
	CumulativeTime int64  `json:"cumulativeTime"`
}

func NewRouteStopEntry(rs campusdb.RouteStop) RouteStopEntry {
	return RouteStopEntry{
		Route:          rs.RouteName,
		Stop:           rs.StopName,
		Order:          rs.StopOrder,
		CumulativeTime: rs.CumulativeTime,
	}
}

type ShuttleTimetableEntry struct {
	Seq           int64  `json:"seq"`
	Period        string `json:"period"`
	Weekdays      bool   `json:"weekdays"`
	Route         string `json:"route"`
	DepartureTime string `json:"departureTime"`
}

func NewShuttleTimetableEntry(t campusdb.Timetable) ShuttleTimetableEntry {
	return ShuttleTimetableEntry{
		Seq:           t.Seq,
		Period:        t.PeriodType,
		Weekdays:      t.IsWeekdays,
		Route:         t.RouteName,
		DepartureTime: FormatSeconds(t.DepartureTime),
	}
}

// TimetableViewEntry is one row of the resolved timetable view: a departure
// at a specific stop with the stop's travel offset already applied.
type TimetableViewEntry struct {
	Seq      int64  `json:"sequence"`
	Period   string `json:"period"`
	Weekdays bool   `json:"weekdays"`
	Route    string `json:"route"`
	Tag      string `json:"tag"`
	Stop     string `json:"stop"`
	Time     string `json:"time"`
}

func NewTimetableViewEntry(row campusdb.TimetableViewRow) TimetableViewEntry {
	return TimetableViewEntry{
		Seq:      row.Seq,
		Period:   row.PeriodType,
		Weekdays: row.IsWeekdays,
		Route:    row.RouteName,
		Tag:      row.RouteTag,
		Stop:     row.StopName,
		Time:     FormatSeconds(row.DepartureTime),
	}
}

// ViaStopEntry is one stop along a departure's route with the time the
// vehicle passes it.
type ViaStopEntry struct {
	Stop string `json:"stop"`
	Time string `json:"time"`
}

func NewTimetableViewEntries(rows []campusdb.TimetableViewRow) []TimetableViewEntry {
	entries := make([]TimetableViewEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, NewTimetableViewEntry(row))
	}
	return entries
}
