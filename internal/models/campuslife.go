package models

import "campus.hyuabot.org/campusdb"

type CampusEntry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func NewCampusEntry(c campusdb.Campus) CampusEntry {
	return CampusEntry{ID: c.ID, Name: c.Name}
}

type BuildingEntry struct {
	Name      string  `json:"name"`
	CampusID  int64   `json:"campusId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	URL       *string `json:"url"`
}

func NewBuildingEntry(b campusdb.Building) BuildingEntry {
	entry := BuildingEntry{
		Name:      b.Name,
		CampusID:  b.CampusID,
		Latitude:  b.Latitude,
		Longitude: b.Longitude,
	}
	if b.URL.Valid {
		entry.URL = &b.URL.String
	}
	return entry
}

type RoomEntry struct {
	Building string `json:"building"`
	Name     string `json:"name"`
	Number   string `json:"number"`
}

func NewRoomEntry(room campusdb.Room) RoomEntry {
	return RoomEntry{Building: room.BuildingName, Name: room.Name, Number: room.Number}
}

type CafeteriaEntry struct {
	ID        int64   `json:"id"`
	CampusID  int64   `json:"campusId"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func NewCafeteriaEntry(c campusdb.Cafeteria) CafeteriaEntry {
	return CafeteriaEntry{
		ID:        c.ID,
		CampusID:  c.CampusID,
		Name:      c.Name,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
	}
}

type MenuEntry struct {
	Seq         int64   `json:"seq"`
	CafeteriaID int64   `json:"cafeteriaId"`
	Date        string  `json:"date"`
	TimeType    string  `json:"timeType"`
	Menu        string  `json:"menu"`
	Price       *string `json:"price"`
}

func NewMenuEntry(m campusdb.Menu) MenuEntry {
	entry := MenuEntry{
		Seq:         m.Seq,
		CafeteriaID: m.CafeteriaID,
		Date:        m.FeedDate,
		TimeType:    m.TimeType,
		Menu:        m.Menu,
	}
	if m.Price.Valid {
		entry.Price = &m.Price.String
	}
	return entry
}

type ReadingRoomEntry struct {
	ID             int64  `json:"id"`
	CampusID       int64  `json:"campusId"`
	Name           string `json:"name"`
	TotalSeats     int64  `json:"totalSeats"`
	ActiveSeats    int64  `json:"activeSeats"`
	OccupiedSeats  int64  `json:"occupiedSeats"`
	AvailableSeats int64  `json:"availableSeats"`
	UpdatedAt      string `json:"updatedAt"`
}

func NewReadingRoomEntry(r campusdb.ReadingRoom) ReadingRoomEntry {
	return ReadingRoomEntry{
		ID:             r.ID,
		CampusID:       r.CampusID,
		Name:           r.Name,
		TotalSeats:     r.TotalSeats,
		ActiveSeats:    r.ActiveSeats,
		OccupiedSeats:  r.OccupiedSeats,
		AvailableSeats: r.ActiveSeats - r.OccupiedSeats,
		UpdatedAt:      r.UpdatedAt,
	}
}
