// Package services – OrderService
//
// This file implements the OrderService, which owns the checkout use case:
// creating an order together with all of its tickets atomically, and the
// owner-scoped listings. Every ticket is revalidated inside the creation
// transaction against its flight's airplane capacity and against the
// already-sold seats, so either the whole order persists or nothing does.
package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dkosteva/go-airport-backend/internal/domain"
	"github.com/dkosteva/go-airport-backend/internal/repo"
)

// TicketSpec is one requested seat in an order creation payload.
type TicketSpec struct {
	FlightID uint `json:"flight"`
	Row      int  `json:"row"`
	Seat     int  `json:"seat"`
}

// OrderService implements the use cases around orders and tickets.
type OrderService struct {
	// DB is the GORM handle used for all order operations.
	DB *gorm.DB
}

// Create places an order for userID covering the given tickets.
//
// Semantics and validation, all inside one transaction:
//   - the ticket list must be non-empty;
//   - every flight reference must exist;
//   - row/seat must fall within the flight's airplane grid;
//   - the same (flight, row, seat) must not appear twice in the payload and
//     must not already be sold.
//
// Any violation aborts with a field-level ValidationError (or ErrSeatTaken
// when the DB unique constraint fires under a concurrent purchase) and no
// partial rows remain.
func (s *OrderService) Create(ctx context.Context, userID string, tickets []TicketSpec) (*domain.Order, error) {
	if len(tickets) == 0 {
		return nil, NewValidationError("tickets", "must contain at least one ticket")
	}

	var created *domain.Order
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		verr := &ValidationError{}
		seen := make(map[TicketSpec]int, len(tickets))

		for i, t := range tickets {
			field := func(name string) string { return fmt.Sprintf("tickets[%d].%s", i, name) }

			flight, err := repo.GetFlight(ctx, tx, t.FlightID)
			if err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					verr.Add(field("flight"), "unknown flight")
					continue
				}
				return err
			}

			if t.Row < 1 || t.Row > flight.Airplane.Rows {
				verr.Add(field("row"), fmt.Sprintf("must be in range [1, %d]", flight.Airplane.Rows))
			}
			if t.Seat < 1 || t.Seat > flight.Airplane.SeatsInRow {
				verr.Add(field("seat"), fmt.Sprintf("must be in range [1, %d]", flight.Airplane.SeatsInRow))
			}

			if first, dup := seen[t]; dup {
				verr.Add(field("seat"), fmt.Sprintf("duplicates tickets[%d]", first))
			} else {
				seen[t] = i
			}

			taken, err := repo.TicketSlotTaken(ctx, tx, t.FlightID, t.Row, t.Seat)
			if err != nil {
				return err
			}
			if taken {
				verr.Add(field("seat"), "seat already taken for this flight")
			}
		}
		if !verr.Empty() {
			return verr
		}

		o := &domain.Order{UserID: userID}
		o.Tickets = make([]domain.Ticket, len(tickets))
		for i, t := range tickets {
			o.Tickets[i] = domain.Ticket{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat}
		}
		if err := repo.CreateOrder(ctx, tx, o); err != nil {
			// A concurrent purchase can still win the race between the
			// up-front check and the insert; surface it as a conflict.
			if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err) {
				return ErrSeatTaken
			}
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return repo.GetOrder(ctx, s.DB, created.ID, userID)
}

// ListPage returns one page of the caller's own orders plus the total count.
func (s *OrderService) ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.Order, int64, error) {
	total, err := repo.CountOrders(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Order{}, 0, nil
	}
	items, err := repo.ListOrdersPage(ctx, s.DB, userID, (page-1)*pageSize, pageSize)
	return items, total, err
}

// Get fetches one of the caller's orders or ErrOrderNotFound. A foreign
// order id is indistinguishable from a missing one.
func (s *OrderService) Get(ctx context.Context, id uint, userID string) (*domain.Order, error) {
	o, err := repo.GetOrder(ctx, s.DB, id, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	return o, err
}
