// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Order
// aggregate (orders plus their tickets). Every listing is scoped to the
// owning user; there is no cross-user read path at all.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dkosteva/go-airport-backend/internal/domain"
)

// orderPreloads attaches the full ticket -> flight read graph used by order
// read shapes.
func orderPreloads(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Tickets").
		Preload("Tickets.Flight.Route.Source.ClosestBigCity.Country").
		Preload("Tickets.Flight.Route.Destination.ClosestBigCity.Country").
		Preload("Tickets.Flight.Airplane.AirplaneType").
		Preload("Tickets.Flight.Crew")
}

// CreateOrder inserts the order row together with all of its tickets.
// Callers are expected to run it inside a transaction; the tickets ride on
// the association so a failing ticket insert aborts the whole statement.
func CreateOrder(ctx context.Context, db *gorm.DB, o *domain.Order) error {
	o.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(o).Error
}

// CountOrders returns the number of orders owned by userID.
func CountOrders(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Order{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

// ListOrdersPage returns one page of the user's orders, newest first, with
// tickets and their flight graph preloaded.
func ListOrdersPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.Order, error) {
	var out []domain.Order
	err := orderPreloads(db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetOrder fetches one order by id scoped to its owner. A foreign order id
// yields ErrNotFound, never a different user's data.
func GetOrder(ctx context.Context, db *gorm.DB, id uint, userID string) (*domain.Order, error) {
	var o domain.Order
	err := orderPreloads(db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", id, userID).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CountFlightTickets returns how many tickets exist for a flight.
func CountFlightTickets(ctx context.Context, db *gorm.DB, flightID uint) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Ticket{}).
		Where("flight_id = ?", flightID).
		Count(&total).Error
	return total, err
}

// TicketSlotTaken reports whether (flight, row, seat) is already sold.
func TicketSlotTaken(ctx context.Context, db *gorm.DB, flightID uint, row, seat int) (bool, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Ticket{}).
		Where("flight_id = ? AND row = ? AND seat = ?", flightID, row, seat).
		Count(&total).Error
	return total > 0, err
}

// OrdersStats returns aggregate metadata for a user's orders: the total row
// count and the most recent CreatedAt. Used for weak ETags on the order
// listing. With no orders, count is 0 and the timestamp is nil.
func OrdersStats(ctx context.Context, db *gorm.DB, userID string) (count int64, latest *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Order{}).Where("user_id = ?", userID)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Avoid MAX() -> TEXT on SQLite.
	var row struct {
		CreatedAt time.Time
	}
	if err = q.Select("created_at").Order("created_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.CreatedAt, nil
}
