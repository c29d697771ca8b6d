package services

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dkosteva/go-airport-backend/internal/domain"
)

// newServiceDB opens a throwaway file-backed SQLite database with the full
// schema migrated. Shared by all service tests in this package.
func newServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("svc_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "open sqlite")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	require.NoError(t, db.AutoMigrate(
		&domain.Country{}, &domain.City{}, &domain.Airport{},
		&domain.AirplaneType{}, &domain.Airplane{}, &domain.Crew{},
		&domain.Route{}, &domain.Flight{},
		&domain.Order{}, &domain.Ticket{},
		&domain.ChatSupport{}, &domain.ChatMember{}, &domain.ChatMessage{},
	), "automigrate")
	return db
}

// seedAirport inserts a country -> city -> airport chain.
func seedAirport(t *testing.T, db *gorm.DB, country, city, airport string) domain.Airport {
	t.Helper()

	co := domain.Country{Name: country}
	require.NoError(t, db.Create(&co).Error)
	ci := domain.City{Name: city, CountryID: co.ID}
	require.NoError(t, db.Create(&ci).Error)
	ap := domain.Airport{Name: airport, ClosestBigCityID: ci.ID}
	require.NoError(t, db.Create(&ap).Error)
	return ap
}

// seedFlightGraph builds a route between two fresh airports and one flight
// on a rows x seats airplane, returning the flight.
func seedFlightGraph(t *testing.T, db *gorm.DB, rows, seats int) domain.Flight {
	t.Helper()

	src := seedAirport(t, db, "UK "+t.Name(), "London "+t.Name(), "Heathrow "+t.Name())
	dst := seedAirport(t, db, "France "+t.Name(), "Paris "+t.Name(), "CDG "+t.Name())

	at := domain.AirplaneType{Name: "A320 " + t.Name()}
	require.NoError(t, db.Create(&at).Error)
	plane := domain.Airplane{Name: "F-TEST", Rows: rows, SeatsInRow: seats, AirplaneTypeID: at.ID}
	require.NoError(t, db.Create(&plane).Error)
	route := domain.Route{SourceID: src.ID, DestinationID: dst.ID, Distance: 344}
	require.NoError(t, db.Create(&route).Error)

	dep := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	fl := domain.Flight{DepartureTime: dep, ArrivalTime: dep.Add(2 * time.Hour), RouteID: route.ID, AirplaneID: plane.ID}
	require.NoError(t, db.Create(&fl).Error)
	return fl
}
