package models

import "campus.hyuabot.org/campusdb"

type BusRouteEntry struct {
	ID        string  `json:"id"`
	ShortName *string `json:"shortName"`
	LongName  *string `json:"longName"`
	Type      int64   `json:"type"`
}

func NewBusRouteEntry(r campusdb.BusRoute) BusRouteEntry {
	entry := BusRouteEntry{ID: r.ID, Type: r.Type}
	if r.ShortName.Valid {
		entry.ShortName = &r.ShortName.String
	}
	if r.LongName.Valid {
		entry.LongName = &r.LongName.String
	}
	return entry
}

type BusStopEntry struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func NewBusStopEntry(s campusdb.BusStop) BusStopEntry {
	return BusStopEntry{ID: s.ID, Name: s.Name, Latitude: s.Latitude, Longitude: s.Longitude}
}

type BusRouteStopEntry struct {
	Route string `json:"route"`
	Stop  string `json:"stop"`
	Order int64  `json:"order"`
}

func NewBusRouteStopEntry(rs campusdb.BusRouteStop) BusRouteStopEntry {
	return BusRouteStopEntry{Route: rs.RouteID, Stop: rs.StopID, Order: rs.StopOrder}
}

type BusTimetableEntry struct {
	Seq           int64  `json:"seq"`
	Route         string `json:"route"`
	Stop          string `json:"stop"`
	WeekdayType   string `json:"weekdayType"`
	DepartureTime string `json:"departureTime"`
}

func NewBusTimetableEntry(t campusdb.BusTimetable) BusTimetableEntry {
	return BusTimetableEntry{
		Seq:           t.Seq,
		Route:         t.RouteID,
		Stop:          t.StopID,
		WeekdayType:   t.WeekdayType,
		DepartureTime: FormatSeconds(t.DepartureTime),
	}
}

type SubwayRouteEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewSubwayRouteEntry(r campusdb.SubwayRoute) SubwayRouteEntry {
	return SubwayRouteEntry{ID: r.ID, Name: r.Name}
}

type SubwayStationEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Route string `json:"route"`
}

func NewSubwayStationEntry(s campusdb.SubwayStation) SubwayStationEntry {
	return SubwayStationEntry{ID: s.ID, Name: s.Name, Route: s.RouteID}
}

type SubwayTimetableEntry struct {
	Seq             int64  `json:"seq"`
	Station         string `json:"station"`
	Weekdays        bool   `json:"weekdays"`
	Heading         string `json:"heading"`
	TerminalStation string `json:"terminalStation"`
	DepartureTime   string `json:"departureTime"`
}

func NewSubwayTimetableEntry(t campusdb.SubwayTimetable) SubwayTimetableEntry {
	return SubwayTimetableEntry{
		Seq:             t.Seq,
		Station:         t.StationID,
		Weekdays:        t.IsWeekdays,
		Heading:         t.Heading,
		TerminalStation: t.TerminalStation,
		DepartureTime:   FormatSeconds(t.DepartureTime),
	}
}
