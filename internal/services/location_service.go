// Package services – LocationService
//
// This file implements the LocationService, which manages the geography
// aggregates: countries, cities, and airports. It validates name inputs and
// foreign-key references before delegating persistence to the repository,
// and maps repository sentinels onto service-level errors so handlers can
// translate them consistently.
package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/dkosteva/go-airport-backend/internal/domain"
	"github.com/dkosteva/go-airport-backend/internal/repo"
)

// LocationService provides country, city, and airport operations.
type LocationService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// whitespaceRE collapses consecutive whitespace to a single space.
var whitespaceRE = regexp.MustCompile(`\s+`)

// normalizeName trims and collapses internal whitespace.
func normalizeName(s string) string {
	return whitespaceRE.ReplaceAllString(strings.TrimSpace(s), " ")
}

// CreateCountry validates and inserts a country. Duplicate names surface as
// a validation error on the name field.
func (s *LocationService) CreateCountry(ctx context.Context, name string) (*domain.Country, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, NewValidationError("name", "must not be empty")
	}
	c := &domain.Country{Name: name}
	if err := repo.CreateCountry(ctx, s.DB, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err) {
			return nil, NewValidationError("name", "country with this name already exists")
		}
		return nil, err
	}
	return c, nil
}

// ListCountries returns all countries.
func (s *LocationService) ListCountries(ctx context.Context) ([]domain.Country, error) {
	return repo.ListCountries(ctx, s.DB)
}

// GetCountry fetches one country or ErrCountryNotFound.
func (s *LocationService) GetCountry(ctx context.Context, id uint) (*domain.Country, error) {
	c, err := repo.GetCountry(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrCountryNotFound
	}
	return c, err
}

// UpdateCountry renames a country.
func (s *LocationService) UpdateCountry(ctx context.Context, id uint, name string) (*domain.Country, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, NewValidationError("name", "must not be empty")
	}
	c := &domain.Country{ID: id, Name: name}
	if err := repo.UpdateCountry(ctx, s.DB, c); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrCountryNotFound
		case errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err):
			return nil, NewValidationError("name", "country with this name already exists")
		}
		return nil, err
	}
	return c, nil
}

// DeleteCountry removes a country.
func (s *LocationService) DeleteCountry(ctx context.Context, id uint) error {
	err := repo.DeleteCountry(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrCountryNotFound
	}
	return err
}

// CreateCity validates the country reference and inserts a city.
func (s *LocationService) CreateCity(ctx context.Context, name string, countryID uint) (*domain.City, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, NewValidationError("name", "must not be empty")
	}
	if _, err := repo.GetCountry(ctx, s.DB, countryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewValidationError("country_id", "unknown country")
		}
		return nil, err
	}
	c := &domain.City{Name: name, CountryID: countryID}
	if err := repo.CreateCity(ctx, s.DB, c); err != nil {
		return nil, err
	}
	return repo.GetCity(ctx, s.DB, c.ID)
}

// ListCities returns all cities with their countries.
func (s *LocationService) ListCities(ctx context.Context) ([]domain.City, error) {
	return repo.ListCities(ctx, s.DB)
}

// GetCity fetches one city or ErrCityNotFound.
func (s *LocationService) GetCity(ctx context.Context, id uint) (*domain.City, error) {
	c, err := repo.GetCity(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrCityNotFound
	}
	return c, err
}

// UpdateCity revalidates references and saves a city.
func (s *LocationService) UpdateCity(ctx context.Context, id uint, name string, countryID uint) (*domain.City, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, NewValidationError("name", "must not be empty")
	}
	if _, err := repo.GetCountry(ctx, s.DB, countryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewValidationError("country_id", "unknown country")
		}
		return nil, err
	}
	if err := repo.UpdateCity(ctx, s.DB, &domain.City{ID: id, Name: name, CountryID: countryID}); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCityNotFound
		}
		return nil, err
	}
	return repo.GetCity(ctx, s.DB, id)
}

// DeleteCity removes a city.
func (s *LocationService) DeleteCity(ctx context.Context, id uint) error {
	err := repo.DeleteCity(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrCityNotFound
	}
	return err
}

// CreateAirport validates the city reference and inserts an airport.
func (s *LocationService) CreateAirport(ctx context.Context, name string, cityID uint) (*domain.Airport, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, NewValidationError("name", "must not be empty")
	}
	if _, err := repo.GetCity(ctx, s.DB, cityID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewValidationError("closest_big_city_id", "unknown city")
		}
		return nil, err
	}
	a := &domain.Airport{Name: name, ClosestBigCityID: cityID}
	if err := repo.CreateAirport(ctx, s.DB, a); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err) {
			return nil, NewValidationError("name", "airport with this name already exists")
		}
		return nil, err
	}
	return repo.GetAirport(ctx, s.DB, a.ID)
}

// ListAirports returns airports matching the optional name/city filters.
func (s *LocationService) ListAirports(ctx context.Context, f repo.AirportFilter) ([]domain.Airport, error) {
	return repo.ListAirports(ctx, s.DB, f)
}

// GetAirport fetches one airport or ErrAirportNotFound.
func (s *LocationService) GetAirport(ctx context.Context, id uint) (*domain.Airport, error) {
	a, err := repo.GetAirport(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrAirportNotFound
	}
	return a, err
}

// UpdateAirport revalidates references and saves an airport.
func (s *LocationService) UpdateAirport(ctx context.Context, id uint, name string, cityID uint) (*domain.Airport, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, NewValidationError("name", "must not be empty")
	}
	if _, err := repo.GetCity(ctx, s.DB, cityID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewValidationError("closest_big_city_id", "unknown city")
		}
		return nil, err
	}
	if err := repo.UpdateAirport(ctx, s.DB, &domain.Airport{ID: id, Name: name, ClosestBigCityID: cityID}); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrAirportNotFound
		case errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err):
			return nil, NewValidationError("name", "airport with this name already exists")
		}
		return nil, err
	}
	return repo.GetAirport(ctx, s.DB, id)
}

// DeleteAirport removes an airport.
func (s *LocationService) DeleteAirport(ctx context.Context, id uint) error {
	err := repo.DeleteAirport(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrAirportNotFound
	}
	return err
}
