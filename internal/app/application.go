package app

import (
	"log/slog"
	"time"

	"campus.hyuabot.org/campusdb"
	"campus.hyuabot.org/internal/appconf"
	"campus.hyuabot.org/internal/holidays"
	"campus.hyuabot.org/internal/timetable"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config    appconf.Config
	Logger    *slog.Logger
	DataStore *campusdb.Client
	Holidays  *holidays.Calendar
	Resolver  *timetable.Resolver
	Location  *time.Location
}
