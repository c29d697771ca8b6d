// Package services – FlightService
//
// This file implements the FlightService, which manages routes and flights.
// It validates airport/route/airplane/crew references, enforces the
// schedule invariants (distinct endpoints, arrival after departure), parses
// the departure-date filter, and applies page-based pagination on top of
// the repository listings.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/dkosteva/go-airport-backend/internal/domain"
	"github.com/dkosteva/go-airport-backend/internal/repo"
)

// departureDateLayout is the wire format of the departure_time filter.
const departureDateLayout = "2006-01-02"

// FlightService provides route and flight operations.
type FlightService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// ParseDepartureDate parses a YYYY-MM-DD filter value. Malformed input is a
// validation error on the departure_time parameter.
func ParseDepartureDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(departureDateLayout, s)
	if err != nil {
		return nil, NewValidationError("departure_time", "must be a date in YYYY-MM-DD format")
	}
	t = t.UTC()
	return &t, nil
}

// validateRoute checks that both endpoints exist, differ, and the distance
// is positive.
func (s *FlightService) validateRoute(ctx context.Context, sourceID, destID uint, distance int) error {
	verr := &ValidationError{}
	if sourceID == destID {
		verr.Add("destination_id", "must differ from source")
	}
	if distance < 1 {
		verr.Add("distance", "must be >= 1")
	}
	if _, err := repo.GetAirport(ctx, s.DB, sourceID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			verr.Add("source_id", "unknown airport")
		} else {
			return err
		}
	}
	if destID != sourceID {
		if _, err := repo.GetAirport(ctx, s.DB, destID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				verr.Add("destination_id", "unknown airport")
			} else {
				return err
			}
		}
	}
	if !verr.Empty() {
		return verr
	}
	return nil
}

// CreateRoute validates and inserts a route.
func (s *FlightService) CreateRoute(ctx context.Context, sourceID, destID uint, distance int) (*domain.Route, error) {
	if err := s.validateRoute(ctx, sourceID, destID, distance); err != nil {
		return nil, err
	}
	r := &domain.Route{SourceID: sourceID, DestinationID: destID, Distance: distance}
	if err := repo.CreateRoute(ctx, s.DB, r); err != nil {
		return nil, err
	}
	return repo.GetRoute(ctx, s.DB, r.ID)
}

// ListRoutesPage returns one page of routes matching the filter, plus the
// total match count for pagination metadata.
func (s *FlightService) ListRoutesPage(ctx context.Context, f repo.RouteFilter, page, pageSize int) ([]domain.Route, int64, error) {
	total, err := repo.CountRoutes(ctx, s.DB, f)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Route{}, 0, nil
	}
	items, err := repo.ListRoutesPage(ctx, s.DB, f, (page-1)*pageSize, pageSize)
	return items, total, err
}

// GetRoute fetches one route or ErrRouteNotFound.
func (s *FlightService) GetRoute(ctx context.Context, id uint) (*domain.Route, error) {
	r, err := repo.GetRoute(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrRouteNotFound
	}
	return r, err
}

// UpdateRoute revalidates and saves a route.
func (s *FlightService) UpdateRoute(ctx context.Context, id, sourceID, destID uint, distance int) (*domain.Route, error) {
	if err := s.validateRoute(ctx, sourceID, destID, distance); err != nil {
		return nil, err
	}
	r := &domain.Route{ID: id, SourceID: sourceID, DestinationID: destID, Distance: distance}
	if err := repo.UpdateRoute(ctx, s.DB, r); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}
	return repo.GetRoute(ctx, s.DB, id)
}

// DeleteRoute removes a route.
func (s *FlightService) DeleteRoute(ctx context.Context, id uint) error {
	err := repo.DeleteRoute(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrRouteNotFound
	}
	return err
}

// validateFlight checks the schedule and every reference; it returns the
// resolved crew so creation can attach it.
func (s *FlightService) validateFlight(ctx context.Context, departure, arrival time.Time, routeID, airplaneID uint, crewIDs []uint) ([]domain.Crew, error) {
	verr := &ValidationError{}
	if departure.IsZero() {
		verr.Add("departure_time", "must be set")
	}
	if arrival.IsZero() {
		verr.Add("arrival_time", "must be set")
	}
	if !departure.IsZero() && !arrival.IsZero() && !arrival.After(departure) {
		verr.Add("arrival_time", "must be after departure_time")
	}
	if _, err := repo.GetRoute(ctx, s.DB, routeID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			verr.Add("route_id", "unknown route")
		} else {
			return nil, err
		}
	}
	if _, err := repo.GetAirplane(ctx, s.DB, airplaneID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			verr.Add("airplane_id", "unknown airplane")
		} else {
			return nil, err
		}
	}
	crew := make([]domain.Crew, 0, len(crewIDs))
	for _, id := range crewIDs {
		c, err := repo.GetCrew(ctx, s.DB, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				verr.Add("crew", "unknown crew member")
				continue
			}
			return nil, err
		}
		crew = append(crew, *c)
	}
	if !verr.Empty() {
		return nil, verr
	}
	return crew, nil
}

// CreateFlight validates and inserts a flight with its crew assignment.
func (s *FlightService) CreateFlight(ctx context.Context, departure, arrival time.Time, routeID, airplaneID uint, crewIDs []uint) (*domain.Flight, error) {
	crew, err := s.validateFlight(ctx, departure, arrival, routeID, airplaneID, crewIDs)
	if err != nil {
		return nil, err
	}
	f := &domain.Flight{
		DepartureTime: departure.UTC(),
		ArrivalTime:   arrival.UTC(),
		RouteID:       routeID,
		AirplaneID:    airplaneID,
	}
	if err := repo.CreateFlight(ctx, s.DB, f, crew); err != nil {
		return nil, err
	}
	return repo.GetFlight(ctx, s.DB, f.ID)
}

// ListFlightsPage returns one page of annotated flights matching the filter,
// plus the total match count.
func (s *FlightService) ListFlightsPage(ctx context.Context, f repo.FlightFilter, page, pageSize int) ([]domain.Flight, int64, error) {
	total, err := repo.CountFlights(ctx, s.DB, f)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Flight{}, 0, nil
	}
	items, err := repo.ListFlightsPage(ctx, s.DB, f, (page-1)*pageSize, pageSize)
	return items, total, err
}

// GetFlight fetches one annotated flight or ErrFlightNotFound.
func (s *FlightService) GetFlight(ctx context.Context, id uint) (*domain.Flight, error) {
	f, err := repo.GetFlight(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrFlightNotFound
	}
	return f, err
}

// UpdateFlight revalidates and saves a flight, replacing its crew.
func (s *FlightService) UpdateFlight(ctx context.Context, id uint, departure, arrival time.Time, routeID, airplaneID uint, crewIDs []uint) (*domain.Flight, error) {
	crew, err := s.validateFlight(ctx, departure, arrival, routeID, airplaneID, crewIDs)
	if err != nil {
		return nil, err
	}
	f := &domain.Flight{
		ID:            id,
		DepartureTime: departure.UTC(),
		ArrivalTime:   arrival.UTC(),
		RouteID:       routeID,
		AirplaneID:    airplaneID,
	}
	if err := repo.UpdateFlight(ctx, s.DB, f, crew); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}
	return repo.GetFlight(ctx, s.DB, id)
}

// DeleteFlight removes a flight.
func (s *FlightService) DeleteFlight(ctx context.Context, id uint) error {
	err := repo.DeleteFlight(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrFlightNotFound
	}
	return err
}
