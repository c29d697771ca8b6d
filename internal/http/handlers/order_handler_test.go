package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkosteva/go-airport-backend/internal/domain"
	"github.com/dkosteva/go-airport-backend/internal/http/middleware"
	"github.com/dkosteva/go-airport-backend/internal/services"
)

func TestCreateOrderOverHTTP(t *testing.T) {
	r, db := newTestRouter(t)
	fl := seedFlightHTTP(t, db, 2, 3)

	w := doJSON(t, r, http.MethodPost, "/orders", "buyer-1", false, CreateOrderRequest{
		Tickets: []services.TicketSpec{
			{FlightID: fl.ID, Row: 1, Seat: 1},
			{FlightID: fl.ID, Row: 1, Seat: 2},
		},
	})
	wantStatus(t, w, http.StatusCreated)
	var o OrderView
	decodeBody(t, w, &o)
	if len(o.Tickets) != 2 {
		t.Fatalf("expected 2 tickets, got %d", len(o.Tickets))
	}
	if o.Tickets[0].Flight.AirplaneName != "F-TEST" {
		t.Fatalf("flight not expanded on ticket: %+v", o.Tickets[0])
	}
}

func TestCreateOrderValidationAddressesTickets(t *testing.T) {
	r, db := newTestRouter(t)
	fl := seedFlightHTTP(t, db, 2, 3)

	w := doJSON(t, r, http.MethodPost, "/orders", "buyer-1", false, CreateOrderRequest{
		Tickets: []services.TicketSpec{
			{FlightID: fl.ID, Row: 1, Seat: 1},
			{FlightID: fl.ID, Row: 9, Seat: 1},
		},
	})
	wantStatus(t, w, http.StatusBadRequest)
	e := decodeErr(t, w)
	if e.Code != ErrCodeValidation {
		t.Fatalf("code = %q, want %q", e.Code, ErrCodeValidation)
	}
	if _, ok := e.Fields["tickets[1].row"]; !ok {
		t.Fatalf("expected field error on tickets[1].row, got %v", e.Fields)
	}

	// Nothing persisted.
	var n int64
	if err := db.Model(&domain.Ticket{}).Count(&n).Error; err != nil || n != 0 {
		t.Fatalf("tickets persisted after failed checkout: n=%d err=%v", n, err)
	}
}

func TestCreateOrderEmptyTickets(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/orders", "buyer-1", false, CreateOrderRequest{Tickets: []services.TicketSpec{}})
	wantStatus(t, w, http.StatusBadRequest)
	e := decodeErr(t, w)
	if e.Code != ErrCodeValidation {
		t.Fatalf("code = %q, want %q", e.Code, ErrCodeValidation)
	}
	if _, ok := e.Fields["tickets"]; !ok {
		t.Fatalf("expected field error on tickets, got %v", e.Fields)
	}
}

func TestCreateOrderSeatAlreadySold(t *testing.T) {
	r, db := newTestRouter(t)
	fl := seedFlightHTTP(t, db, 2, 3)

	spec := CreateOrderRequest{Tickets: []services.TicketSpec{{FlightID: fl.ID, Row: 1, Seat: 1}}}
	w := doJSON(t, r, http.MethodPost, "/orders", "buyer-1", false, spec)
	wantStatus(t, w, http.StatusCreated)

	w = doJSON(t, r, http.MethodPost, "/orders", "buyer-2", false, spec)
	wantStatus(t, w, http.StatusBadRequest)
	e := decodeErr(t, w)
	if _, ok := e.Fields["tickets[0].seat"]; !ok {
		t.Fatalf("expected field error on tickets[0].seat, got %v", e.Fields)
	}
}

func TestOrdersAreOwnerScoped(t *testing.T) {
	r, db := newTestRouter(t)
	fl := seedFlightHTTP(t, db, 2, 3)

	w := doJSON(t, r, http.MethodPost, "/orders", "alice", false, CreateOrderRequest{
		Tickets: []services.TicketSpec{{FlightID: fl.ID, Row: 1, Seat: 1}},
	})
	wantStatus(t, w, http.StatusCreated)
	var o OrderView
	decodeBody(t, w, &o)

	// Owner sees it.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/orders/%d", o.ID), "alice", false, nil)
	wantStatus(t, w, http.StatusOK)

	// Anyone else gets a 404, not a 403.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/orders/%d", o.ID), "mallory", false, nil)
	wantStatus(t, w, http.StatusNotFound)

	// And the list is scoped too.
	w = doJSON(t, r, http.MethodGet, "/orders", "mallory", false, nil)
	wantStatus(t, w, http.StatusOK)
	var resp ListOrdersResponse
	decodeBody(t, w, &resp)
	if resp.Pagination.Total != 0 || len(resp.Orders) != 0 {
		t.Fatalf("foreign orders leaked: %+v", resp)
	}
}

func TestListOrdersETagRoundTrip(t *testing.T) {
	r, db := newTestRouter(t)
	fl := seedFlightHTTP(t, db, 2, 3)

	w := doJSON(t, r, http.MethodPost, "/orders", "alice", false, CreateOrderRequest{
		Tickets: []services.TicketSpec{{FlightID: fl.ID, Row: 1, Seat: 1}},
	})
	wantStatus(t, w, http.StatusCreated)

	w = doJSON(t, r, http.MethodGet, "/orders", "alice", false, nil)
	wantStatus(t, w, http.StatusOK)
	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("missing ETag header")
	}

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set(middleware.HeaderUserID, "alice")
	req.Header.Set("If-None-Match", etag)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusNotModified {
		t.Fatalf("status = %d, want 304", w2.Code)
	}

	// A new order invalidates the tag.
	w = doJSON(t, r, http.MethodPost, "/orders", "alice", false, CreateOrderRequest{
		Tickets: []services.TicketSpec{{FlightID: fl.ID, Row: 2, Seat: 1}},
	})
	wantStatus(t, w, http.StatusCreated)

	req = httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set(middleware.HeaderUserID, "alice")
	req.Header.Set("If-None-Match", etag)
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, req)
	if w3.Code != http.StatusOK {
		t.Fatalf("status after new order = %d, want 200", w3.Code)
	}
}
