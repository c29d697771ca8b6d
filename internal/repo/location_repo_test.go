package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dkosteva/go-airport-backend/internal/domain"
)

// newRepoDB opens a throwaway file-backed SQLite database and migrates the
// given models. Shared by all repo tests in this package.
func newRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

// geoModels is the migration set for tests touching the geography aggregates.
func geoModels() []any {
	return []any{&domain.Country{}, &domain.City{}, &domain.Airport{}}
}

// seedGeo inserts one country -> city -> airport chain and returns the rows.
func seedGeo(t *testing.T, db *gorm.DB, country, city, airport string) (domain.Country, domain.City, domain.Airport) {
	t.Helper()

	co := domain.Country{Name: country}
	if err := db.Create(&co).Error; err != nil {
		t.Fatalf("seed country %q: %v", country, err)
	}
	ci := domain.City{Name: city, CountryID: co.ID}
	if err := db.Create(&ci).Error; err != nil {
		t.Fatalf("seed city %q: %v", city, err)
	}
	ap := domain.Airport{Name: airport, ClosestBigCityID: ci.ID}
	if err := db.Create(&ap).Error; err != nil {
		t.Fatalf("seed airport %q: %v", airport, err)
	}
	return co, ci, ap
}

func TestCreateCountry_Error_NoTable(t *testing.T) {
	db := newRepoDB(t /* no migrations */)
	if err := CreateCountry(context.Background(), db, &domain.Country{Name: "x"}); err == nil {
		t.Fatalf("expected error creating without table")
	}
}

func TestCountryCRUD_RoundTrip(t *testing.T) {
	db := newRepoDB(t, geoModels()...)
	ctx := context.Background()

	c := &domain.Country{Name: "Ukraine"}
	if err := CreateCountry(ctx, db, c); err != nil {
		t.Fatalf("CreateCountry: %v", err)
	}
	if c.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	got, err := GetCountry(ctx, db, c.ID)
	if err != nil {
		t.Fatalf("GetCountry: %v", err)
	}
	if got.Name != "Ukraine" {
		t.Fatalf("unexpected country: %+v", got)
	}

	c.Name = "United Kingdom"
	if err := UpdateCountry(ctx, db, c); err != nil {
		t.Fatalf("UpdateCountry: %v", err)
	}
	got, err = GetCountry(ctx, db, c.ID)
	if err != nil || got.Name != "United Kingdom" {
		t.Fatalf("update not persisted: %+v err=%v", got, err)
	}

	if err := DeleteCountry(ctx, db, c.ID); err != nil {
		t.Fatalf("DeleteCountry: %v", err)
	}
	if _, err := GetCountry(ctx, db, c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestUpdateCountry_NotFound(t *testing.T) {
	db := newRepoDB(t, geoModels()...)
	err := UpdateCountry(context.Background(), db, &domain.Country{ID: 999, Name: "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteCountry_NotFound(t *testing.T) {
	db := newRepoDB(t, geoModels()...)
	if err := DeleteCountry(context.Background(), db, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound")
	}
}

func TestListCountries_Ordered(t *testing.T) {
	db := newRepoDB(t, geoModels()...)
	ctx := context.Background()

	for _, n := range []string{"Greece", "France", "Ukraine"} {
		if err := CreateCountry(ctx, db, &domain.Country{Name: n}); err != nil {
			t.Fatalf("seed %s: %v", n, err)
		}
	}
	list, err := ListCountries(ctx, db)
	if err != nil {
		t.Fatalf("ListCountries: %v", err)
	}
	if len(list) != 3 || list[0].Name != "Greece" || list[2].Name != "Ukraine" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestGetCity_PreloadsCountry(t *testing.T) {
	db := newRepoDB(t, geoModels()...)
	ctx := context.Background()

	_, ci, _ := seedGeo(t, db, "UK", "London", "Heathrow")

	got, err := GetCity(ctx, db, ci.ID)
	if err != nil {
		t.Fatalf("GetCity: %v", err)
	}
	if got.Country.Name != "UK" {
		t.Fatalf("country not preloaded: %+v", got)
	}
}

func TestUpdateCity_SuccessAndNotFound(t *testing.T) {
	db := newRepoDB(t, geoModels()...)
	ctx := context.Background()

	co, ci, _ := seedGeo(t, db, "UK", "London", "Heathrow")

	ci.Name = "Greater London"
	if err := UpdateCity(ctx, db, &ci); err != nil {
		t.Fatalf("UpdateCity: %v", err)
	}
	got, err := GetCity(ctx, db, ci.ID)
	if err != nil || got.Name != "Greater London" || got.CountryID != co.ID {
		t.Fatalf("update not persisted: %+v err=%v", got, err)
	}

	missing := domain.City{ID: 999, Name: "x", CountryID: co.ID}
	if err := UpdateCity(ctx, db, &missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListAirports_NoFilter_ReturnsAllWithGraph(t *testing.T) {
	db := newRepoDB(t, geoModels()...)
	ctx := context.Background()

	seedGeo(t, db, "UK", "London", "Heathrow")
	seedGeo(t, db, "France", "Paris", "Charles de Gaulle")

	list, err := ListAirports(ctx, db, AirportFilter{})
	if err != nil {
		t.Fatalf("ListAirports: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 airports, got %d", len(list))
	}
	if list[0].ClosestBigCity.Country.Name != "UK" {
		t.Fatalf("nested graph not preloaded: %+v", list[0])
	}
}

func TestListAirports_NameFilter_CaseInsensitiveSubstring(t *testing.T) {
	db := newRepoDB(t, geoModels()...)
	ctx := context.Background()

	seedGeo(t, db, "UK", "London", "Heathrow")
	seedGeo(t, db, "UK2", "Gatwick Town", "London Gatwick")
	seedGeo(t, db, "France", "Paris", "Orly")

	list, err := ListAirports(ctx, db, AirportFilter{Name: "gatwick"})
	if err != nil {
		t.Fatalf("ListAirports: %v", err)
	}
	if len(list) != 1 || list[0].Name != "London Gatwick" {
		t.Fatalf("unexpected result: %+v", list)
	}
}

func TestListAirports_CityFilter_MatchesRelatedCity(t *testing.T) {
	db := newRepoDB(t, geoModels()...)
	ctx := context.Background()

	seedGeo(t, db, "UK", "London", "Heathrow")
	seedGeo(t, db, "UK2", "London Area", "Gatwick")
	seedGeo(t, db, "France", "Paris", "Orly")

	// "Lon" matches both London cities through the join, not Paris.
	list, err := ListAirports(ctx, db, AirportFilter{City: "Lon"})
	if err != nil {
		t.Fatalf("ListAirports: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 airports near London, got %d: %+v", len(list), list)
	}
}

func TestListAirports_CombinedFilters_AreANDed(t *testing.T) {
	db := newRepoDB(t, geoModels()...)
	ctx := context.Background()

	seedGeo(t, db, "UK", "London", "Heathrow")
	seedGeo(t, db, "UK2", "London Area", "Gatwick")

	list, err := ListAirports(ctx, db, AirportFilter{Name: "heath", City: "london"})
	if err != nil {
		t.Fatalf("ListAirports: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Heathrow" {
		t.Fatalf("unexpected result: %+v", list)
	}
}

func TestDeleteAirport_SuccessAndNotFound(t *testing.T) {
	db := newRepoDB(t, geoModels()...)
	ctx := context.Background()

	_, _, ap := seedGeo(t, db, "UK", "London", "Heathrow")
	if err := DeleteAirport(ctx, db, ap.ID); err != nil {
		t.Fatalf("DeleteAirport: %v", err)
	}
	if err := DeleteAirport(ctx, db, ap.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
