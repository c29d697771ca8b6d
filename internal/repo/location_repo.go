// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the geography
// aggregates: Country, City, and Airport.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions. They follow the "thin repository"
// approach: no business logic, only CRUD persistence and query composition.
//
// Error semantics:
//   - When a record is not found, functions return gorm.ErrRecordNotFound
//     (also exported in this package as ErrNotFound).
//   - On other DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/dkosteva/go-airport-backend/internal/domain"
)

// AirportFilter is the typed filter-options struct for airport listings.
// Both fields are optional case-insensitive substring matches combined
// with AND; Name matches the airport name, City the related city name.
type AirportFilter struct {
	Name string
	City string
}

// CreateCountry inserts a new country row.
func CreateCountry(ctx context.Context, db *gorm.DB, c *domain.Country) error {
	return db.WithContext(ctx).Create(c).Error
}

// ListCountries returns all countries ordered by id.
func ListCountries(ctx context.Context, db *gorm.DB) ([]domain.Country, error) {
	var out []domain.Country
	err := db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

// GetCountry fetches a country by id, or ErrNotFound.
func GetCountry(ctx context.Context, db *gorm.DB, id uint) (*domain.Country, error) {
	var c domain.Country
	if err := db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCountry saves all mutable country fields. Returns ErrNotFound when
// no row was touched.
func UpdateCountry(ctx context.Context, db *gorm.DB, c *domain.Country) error {
	res := db.WithContext(ctx).Model(&domain.Country{}).
		Where("id = ?", c.ID).
		Update("name", c.Name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCountry removes a country by id. Returns ErrNotFound when missing.
func DeleteCountry(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Country{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateCity inserts a new city row.
func CreateCity(ctx context.Context, db *gorm.DB, c *domain.City) error {
	return db.WithContext(ctx).Create(c).Error
}

// ListCities returns all cities with their country preloaded.
func ListCities(ctx context.Context, db *gorm.DB) ([]domain.City, error) {
	var out []domain.City
	err := db.WithContext(ctx).Preload("Country").Order("id").Find(&out).Error
	return out, err
}

// GetCity fetches a city with its country, or ErrNotFound.
func GetCity(ctx context.Context, db *gorm.DB, id uint) (*domain.City, error) {
	var c domain.City
	if err := db.WithContext(ctx).Preload("Country").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCity saves mutable city fields. Returns ErrNotFound when missing.
func UpdateCity(ctx context.Context, db *gorm.DB, c *domain.City) error {
	res := db.WithContext(ctx).Model(&domain.City{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{"name": c.Name, "country_id": c.CountryID})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCity removes a city by id. Returns ErrNotFound when missing.
func DeleteCity(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.City{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateAirport inserts a new airport row.
func CreateAirport(ctx context.Context, db *gorm.DB, a *domain.Airport) error {
	return db.WithContext(ctx).Create(a).Error
}

// ListAirports returns airports matching the filter, with city and country
// preloaded. Filters translate to case-insensitive LIKE predicates; results
// are deduplicated via DISTINCT because the city filter joins cities.
func ListAirports(ctx context.Context, db *gorm.DB, f AirportFilter) ([]domain.Airport, error) {
	q := db.WithContext(ctx).Model(&domain.Airport{}).
		Distinct("airports.*").
		Preload("ClosestBigCity.Country").
		Order("airports.id")

	if f.Name != "" {
		q = q.Where("LOWER(airports.name) LIKE ?", "%"+strings.ToLower(f.Name)+"%")
	}
	if f.City != "" {
		q = q.Joins("JOIN cities ON cities.id = airports.closest_big_city_id").
			Where("LOWER(cities.name) LIKE ?", "%"+strings.ToLower(f.City)+"%")
	}

	var out []domain.Airport
	err := q.Find(&out).Error
	return out, err
}

// GetAirport fetches an airport with its city and country, or ErrNotFound.
func GetAirport(ctx context.Context, db *gorm.DB, id uint) (*domain.Airport, error) {
	var a domain.Airport
	err := db.WithContext(ctx).Preload("ClosestBigCity.Country").First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAirport saves mutable airport fields. Returns ErrNotFound when missing.
func UpdateAirport(ctx context.Context, db *gorm.DB, a *domain.Airport) error {
	res := db.WithContext(ctx).Model(&domain.Airport{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{"name": a.Name, "closest_big_city_id": a.ClosestBigCityID})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAirport removes an airport by id. Returns ErrNotFound when missing.
func DeleteAirport(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Airport{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
