// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for Route and
// Flight, including the filtered, paginated listings and the free-seat
// annotation described in the API contract.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dkosteva/go-airport-backend/internal/domain"
)

// RouteFilter is the typed filter-options struct for route listings:
// membership (IN) filters on the source and destination airport ids.
// Empty slices mean "no filter".
type RouteFilter struct {
	SourceIDs      []uint
	DestinationIDs []uint
}

// FlightFilter is the typed filter-options struct for flight listings.
// RouteIDs is a membership filter; DepartureDate restricts to flights whose
// departure timestamp falls on that calendar date (any time of day).
type FlightFilter struct {
	RouteIDs      []uint
	DepartureDate *time.Time
}

// routePreloads attaches the nested airport -> city -> country graph used
// by route read shapes.
func routePreloads(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Source.ClosestBigCity.Country").
		Preload("Destination.ClosestBigCity.Country")
}

// CreateRoute inserts a new route row.
func CreateRoute(ctx context.Context, db *gorm.DB, r *domain.Route) error {
	return db.WithContext(ctx).Create(r).Error
}

// CountRoutes returns the number of routes matching the filter.
func CountRoutes(ctx context.Context, db *gorm.DB, f RouteFilter) (int64, error) {
	var total int64
	err := applyRouteFilter(db.WithContext(ctx).Model(&domain.Route{}), f).
		Count(&total).Error
	return total, err
}

// ListRoutesPage returns one page of routes matching the filter, ordered by
// id, with both airports (and their city/country) preloaded.
func ListRoutesPage(ctx context.Context, db *gorm.DB, f RouteFilter, offset, limit int) ([]domain.Route, error) {
	var out []domain.Route
	q := applyRouteFilter(db.WithContext(ctx).Model(&domain.Route{}), f)
	err := routePreloads(q).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetRoute fetches a route with its airport graph, or ErrNotFound.
func GetRoute(ctx context.Context, db *gorm.DB, id uint) (*domain.Route, error) {
	var r domain.Route
	if err := routePreloads(db.WithContext(ctx)).First(&r, id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateRoute saves mutable route fields. Returns ErrNotFound when missing.
func UpdateRoute(ctx context.Context, db *gorm.DB, r *domain.Route) error {
	res := db.WithContext(ctx).Model(&domain.Route{}).
		Where("id = ?", r.ID).
		Updates(map[string]any{
			"source_id":      r.SourceID,
			"destination_id": r.DestinationID,
			"distance":       r.Distance,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRoute removes a route by id. Returns ErrNotFound when missing.
func DeleteRoute(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Route{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func applyRouteFilter(q *gorm.DB, f RouteFilter) *gorm.DB {
	if len(f.SourceIDs) > 0 {
		q = q.Where("source_id IN ?", f.SourceIDs)
	}
	if len(f.DestinationIDs) > 0 {
		q = q.Where("destination_id IN ?", f.DestinationIDs)
	}
	return q
}

// freeSeatSelect is the derived free_tickets_seat expression: total seats of
// the joined airplane minus the tickets sold for the flight, computed inside
// the listing query so the count is consistent with the row snapshot.
const freeSeatSelect = "flights.*, airplanes.rows * airplanes.seats_in_row - " +
	"(SELECT COUNT(*) FROM tickets WHERE tickets.flight_id = flights.id) AS free_tickets_seat"

// flightPreloads attaches the object graph used by flight read shapes.
func flightPreloads(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Route.Source.ClosestBigCity.Country").
		Preload("Route.Destination.ClosestBigCity.Country").
		Preload("Airplane.AirplaneType").
		Preload("Crew")
}

// CreateFlight inserts a flight and attaches the given crew members.
func CreateFlight(ctx context.Context, db *gorm.DB, f *domain.Flight, crew []domain.Crew) error {
	f.Crew = crew
	return db.WithContext(ctx).Create(f).Error
}

// CountFlights returns the number of flights matching the filter.
func CountFlights(ctx context.Context, db *gorm.DB, f FlightFilter) (int64, error) {
	var total int64
	err := applyFlightFilter(db.WithContext(ctx).Model(&domain.Flight{}), f).
		Count(&total).Error
	return total, err
}

// ListFlightsPage returns one page of flights matching the filter in the
// default (departure_time, arrival_time) ordering, annotated with
// free_tickets_seat and carrying the full nested read graph.
func ListFlightsPage(ctx context.Context, db *gorm.DB, f FlightFilter, offset, limit int) ([]domain.Flight, error) {
	var out []domain.Flight
	q := applyFlightFilter(db.WithContext(ctx).Model(&domain.Flight{}), f).
		Joins("JOIN airplanes ON airplanes.id = flights.airplane_id").
		Select(freeSeatSelect)
	err := flightPreloads(q).
		Order("flights.departure_time, flights.arrival_time").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetFlight fetches one flight with the free-seat annotation and nested
// graph, or ErrNotFound.
func GetFlight(ctx context.Context, db *gorm.DB, id uint) (*domain.Flight, error) {
	var fl domain.Flight
	q := db.WithContext(ctx).Model(&domain.Flight{}).
		Joins("JOIN airplanes ON airplanes.id = flights.airplane_id").
		Select(freeSeatSelect).
		Where("flights.id = ?", id)
	if err := flightPreloads(q).First(&fl).Error; err != nil {
		return nil, err
	}
	return &fl, nil
}

// UpdateFlight saves mutable flight fields and replaces the crew assignment
// when crew is non-nil. Returns ErrNotFound when the flight is missing.
func UpdateFlight(ctx context.Context, db *gorm.DB, f *domain.Flight, crew []domain.Crew) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Flight{}).
			Where("id = ?", f.ID).
			Updates(map[string]any{
				"departure_time": f.DepartureTime,
				"arrival_time":   f.ArrivalTime,
				"route_id":       f.RouteID,
				"airplane_id":    f.AirplaneID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if crew != nil {
			if err := tx.Model(f).Association("Crew").Replace(crew); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteFlight removes a flight by id. Returns ErrNotFound when missing.
func DeleteFlight(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Flight{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func applyFlightFilter(q *gorm.DB, f FlightFilter) *gorm.DB {
	if len(f.RouteIDs) > 0 {
		q = q.Where("flights.route_id IN ?", f.RouteIDs)
	}
	if f.DepartureDate != nil {
		day := f.DepartureDate.UTC().Truncate(24 * time.Hour)
		q = q.Where("flights.departure_time >= ? AND flights.departure_time < ?",
			day, day.Add(24*time.Hour))
	}
	return q
}
