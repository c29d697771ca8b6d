// Scheduling HTTP handlers.
//
// This file exposes REST endpoints for routes and flights:
//   - /routes   (public read with id-list filters, staff write, paginated)
//   - /flights  (public read with route/date filters, staff write, paginated;
//     list and detail carry the derived free-seat count)
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dkosteva/go-airport-backend/internal/repo"
	"github.com/dkosteva/go-airport-backend/internal/services"
)

//
// DTOs
//

// RouteRequest is the JSON payload for creating or updating a route.
type RouteRequest struct {
	// SourceID and DestinationID reference existing airports and must differ.
	SourceID      uint `json:"source_id"      binding:"required" example:"1"`
	DestinationID uint `json:"destination_id" binding:"required" example:"2"`
	// Distance is in kilometres.
	Distance int `json:"distance" binding:"required" example:"344"`
}

// FlightRequest is the JSON payload for creating or updating a flight.
type FlightRequest struct {
	DepartureTime time.Time `json:"departure_time" binding:"required" example:"2026-06-01T09:30:00Z"`
	ArrivalTime   time.Time `json:"arrival_time"   binding:"required" example:"2026-06-01T11:45:00Z"`
	RouteID       uint      `json:"route_id"    binding:"required" example:"1"`
	AirplaneID    uint      `json:"airplane_id" binding:"required" example:"1"`
	// Crew lists the ids of the crew members assigned to the flight.
	Crew []uint `json:"crew"`
}

// ListRoutesResponse wraps a page of routes and pagination information.
type ListRoutesResponse struct {
	Routes     []RouteView `json:"routes"`
	Pagination Pagination  `json:"pagination"`
}

// ListFlightsResponse wraps a page of flights and pagination information.
type ListFlightsResponse struct {
	Flights    []FlightView `json:"flights"`
	Pagination Pagination   `json:"pagination"`
}

//
// Routes
//

// ListRoutes godoc
// @ID          listRoutes
// @Summary     List routes (paginated)
// @Description Returns a page of routes, optionally filtered by source and
// @Description destination airport ids (?source=&destination=, repeatable or
// @Description comma-separated).
// @Tags        Routes
// @Produce     json
// @Param       source      query string false "Source airport ids (comma-separated)"
// @Param       destination query string false "Destination airport ids (comma-separated)"
// @Param       page        query int false "Page number"    minimum(1) default(1)
// @Param       page_size   query int false "Items per page" minimum(1) maximum(100) default(5)
// @Success     200 {object} handlers.ListRoutesResponse
// @Router      /routes [get]
func (h *Handlers) ListRoutes(c *gin.Context) {
	page, pageSize := h.clampPagination(c)
	sources, okIDs := idList(c, "source")
	if !okIDs {
		return
	}
	destinations, okIDs := idList(c, "destination")
	if !okIDs {
		return
	}
	f := repo.RouteFilter{
		SourceIDs:      sources,
		DestinationIDs: destinations,
	}
	items, total, err := h.flights.ListRoutesPage(c.Request.Context(), f, page, pageSize)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, ListRoutesResponse{
		Routes:     newRouteViews(items),
		Pagination: newPagination(page, pageSize, total),
	})
}

// GetRoute godoc
// @ID          getRoute
// @Summary     Retrieve a route
// @Tags        Routes
// @Produce     json
// @Param       id path int true "Route ID"
// @Success     200 {object} handlers.RouteDetailView
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /routes/{id} [get]
func (h *Handlers) GetRoute(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	r, err := h.flights.GetRoute(c.Request.Context(), id)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, newRouteDetailView(*r))
}

// CreateRoute godoc
// @ID          createRoute
// @Summary     Create a route
// @Tags        Routes
// @Accept      json
// @Produce     json
// @Param       body body handlers.RouteRequest true "Route payload"
// @Success     201 {object} handlers.RouteDetailView
// @Failure     400 {object} handlers.ErrorResponse
// @Router      /routes [post]
func (h *Handlers) CreateRoute(c *gin.Context) {
	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	r, err := h.flights.CreateRoute(c.Request.Context(), req.SourceID, req.DestinationID, req.Distance)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusCreated, newRouteDetailView(*r))
}

// UpdateRoute godoc
// @ID          updateRoute
// @Summary     Update a route
// @Tags        Routes
// @Accept      json
// @Produce     json
// @Param       id   path int                    true "Route ID"
// @Param       body body handlers.RouteRequest true "Route payload"
// @Success     200 {object} handlers.RouteDetailView
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /routes/{id} [put]
func (h *Handlers) UpdateRoute(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	r, err := h.flights.UpdateRoute(c.Request.Context(), id, req.SourceID, req.DestinationID, req.Distance)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, newRouteDetailView(*r))
}

// DeleteRoute godoc
// @ID          deleteRoute
// @Summary     Delete a route
// @Tags        Routes
// @Param       id path int true "Route ID"
// @Success     204 {string} string "No Content"
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /routes/{id} [delete]
func (h *Handlers) DeleteRoute(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	if err := h.flights.DeleteRoute(c.Request.Context(), id); err != nil {
		svcFail(c, err)
		return
	}
	noContent(c)
}

//
// Flights
//

// ListFlights godoc
// @ID          listFlights
// @Summary     List flights (paginated)
// @Description Returns a page of flights ordered by departure then arrival,
// @Description with the per-flight free seat count. Supports ?route= id
// @Description filters (repeatable or comma-separated) and a
// @Description ?departure_time=YYYY-MM-DD day filter.
// @Tags        Flights
// @Produce     json
// @Param       route          query string false "Route ids (comma-separated)"
// @Param       departure_time query string false "Departure day (YYYY-MM-DD)"
// @Param       page           query int    false "Page number"    minimum(1) default(1)
// @Param       page_size      query int    false "Items per page" minimum(1) maximum(100) default(5)
// @Success     200 {object} handlers.ListFlightsResponse
// @Failure     400 {object} handlers.ErrorResponse
// @Router      /flights [get]
func (h *Handlers) ListFlights(c *gin.Context) {
	page, pageSize := h.clampPagination(c)
	day, err := services.ParseDepartureDate(c.Query("departure_time"))
	if err != nil {
		svcFail(c, err)
		return
	}
	routes, okIDs := idList(c, "route")
	if !okIDs {
		return
	}
	f := repo.FlightFilter{
		RouteIDs:      routes,
		DepartureDate: day,
	}
	items, total, err := h.flights.ListFlightsPage(c.Request.Context(), f, page, pageSize)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, ListFlightsResponse{
		Flights:    newFlightViews(items),
		Pagination: newPagination(page, pageSize, total),
	})
}

// GetFlight godoc
// @ID          getFlight
// @Summary     Retrieve a flight
// @Tags        Flights
// @Produce     json
// @Param       id path int true "Flight ID"
// @Success     200 {object} handlers.FlightDetailView
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /flights/{id} [get]
func (h *Handlers) GetFlight(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	f, err := h.flights.GetFlight(c.Request.Context(), id)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, newFlightDetailView(*f))
}

// CreateFlight godoc
// @ID          createFlight
// @Summary     Create a flight
// @Tags        Flights
// @Accept      json
// @Produce     json
// @Param       body body handlers.FlightRequest true "Flight payload"
// @Success     201 {object} handlers.FlightDetailView
// @Failure     400 {object} handlers.ErrorResponse
// @Router      /flights [post]
func (h *Handlers) CreateFlight(c *gin.Context) {
	var req FlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	f, err := h.flights.CreateFlight(c.Request.Context(),
		req.DepartureTime, req.ArrivalTime, req.RouteID, req.AirplaneID, req.Crew)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusCreated, newFlightDetailView(*f))
}

// UpdateFlight godoc
// @ID          updateFlight
// @Summary     Update a flight
// @Description Replaces the flight schedule and its crew assignment.
// @Tags        Flights
// @Accept      json
// @Produce     json
// @Param       id   path int                     true "Flight ID"
// @Param       body body handlers.FlightRequest true "Flight payload"
// @Success     200 {object} handlers.FlightDetailView
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /flights/{id} [put]
func (h *Handlers) UpdateFlight(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	var req FlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	f, err := h.flights.UpdateFlight(c.Request.Context(), id,
		req.DepartureTime, req.ArrivalTime, req.RouteID, req.AirplaneID, req.Crew)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, newFlightDetailView(*f))
}

// DeleteFlight godoc
// @ID          deleteFlight
// @Summary     Delete a flight
// @Tags        Flights
// @Param       id path int true "Flight ID"
// @Success     204 {string} string "No Content"
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /flights/{id} [delete]
func (h *Handlers) DeleteFlight(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	if err := h.flights.DeleteFlight(c.Request.Context(), id); err != nil {
		svcFail(c, err)
		return
	}
	noContent(c)
}
