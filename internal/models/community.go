package models

import "campus.hyuabot.org/campusdb"

type CategoryEntry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type NoticeEntry struct {
	ID         int64   `json:"id"`
	CategoryID int64   `json:"categoryId"`
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Language   string  `json:"language"`
	ExpiredAt  *string `json:"expiredAt"`
}

func NewNoticeEntry(n campusdb.Notice) NoticeEntry {
	entry := NoticeEntry{
		ID:         n.ID,
		CategoryID: n.CategoryID,
		Title:      n.Title,
		URL:        n.URL,
		Language:   n.Language,
	}
	if n.ExpiredAt.Valid {
		entry.ExpiredAt = &n.ExpiredAt.String
	}
	return entry
}

type ContactEntry struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"categoryId"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	CampusID   int64  `json:"campusId"`
}

func NewContactEntry(c campusdb.Contact) ContactEntry {
	return ContactEntry{
		ID:         c.ID,
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Phone:      c.Phone,
		CampusID:   c.CampusID,
	}
}

type CalendarEventEntry struct {
	ID          int64   `json:"id"`
	CategoryID  int64   `json:"categoryId"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
}

func NewCalendarEventEntry(e campusdb.CalendarEvent) CalendarEventEntry {
	entry := CalendarEventEntry{
		ID:         e.ID,
		CategoryID: e.CategoryID,
		Title:      e.Title,
		StartDate:  e.StartDate,
		EndDate:    e.EndDate,
	}
	if e.Description.Valid {
		entry.Description = &e.Description.String
	}
	return entry
}
