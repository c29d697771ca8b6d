// Order HTTP handlers.
//
// This file exposes REST endpoints for orders:
//   - POST /orders       (atomic checkout of one or more tickets)
//   - GET  /orders       (owner-scoped list, paginated, ETag support)
//   - GET  /orders/{id}  (owner-scoped retrieve)
//
// Orders are strictly owner-scoped: every query filters by the caller's
// user id, so a foreign order surfaces as not found.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkosteva/go-airport-backend/internal/repo"
	"github.com/dkosteva/go-airport-backend/internal/services"
)

//
// DTOs
//

// CreateOrderRequest is the JSON payload for the checkout endpoint. Each
// ticket names a flight and a (row, seat) slot on its airplane grid.
type CreateOrderRequest struct {
	Tickets []services.TicketSpec `json:"tickets" binding:"required"`
}

// ListOrdersResponse wraps a page of orders and pagination information.
type ListOrdersResponse struct {
	Orders     []OrderView `json:"orders"`
	Pagination Pagination  `json:"pagination"`
}

//
// Handlers
//

// CreateOrder godoc
// @ID          createOrder
// @Summary     Place an order
// @Description Books every listed seat in one transaction; if any ticket is
// @Description invalid or a seat is already sold, nothing is persisted.
// @Tags        Orders
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string                       true "User ID"
// @Param       body      body   handlers.CreateOrderRequest true "Tickets to book"
// @Success     201 {object} handlers.OrderView
// @Failure     400 {object} handlers.ErrorResponse "Validation failure"
// @Failure     409 {object} handlers.ErrorResponse "Seat already sold"
// @Router      /orders [post]
func (h *Handlers) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	o, err := h.orders.Create(c.Request.Context(), principal(c).UserID, req.Tickets)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusCreated, newOrderView(*o))
}

// ListOrders godoc
// @ID          listOrders
// @Summary     List orders (paginated)
// @Description Returns a page of the caller's orders, newest first. Supports
// @Description weak ETag via If-None-Match and may return 304.
// @Tags        Orders
// @Produce     json
// @Param       X-User-ID     header string true  "User ID"
// @Param       If-None-Match header string false "Return 304 if ETag matches"
// @Param       page          query  int    false "Page number"    minimum(1) default(1)
// @Param       page_size     query  int    false "Items per page" minimum(1) maximum(100) default(5)
// @Success     200 {object} handlers.ListOrdersResponse
// @Header      200 {string} ETag "Weak ETag for current result"
// @Success     304 {string} string "Not Modified"
// @Router      /orders [get]
func (h *Handlers) ListOrders(c *gin.Context) {
	ctx := c.Request.Context()
	uid := principal(c).UserID
	page, pageSize := h.clampPagination(c)

	// ETag pre-check (best effort).
	if count, latest, err := repo.OrdersStats(ctx, h.orders.DB, uid); err == nil {
		var ts int64
		if latest != nil {
			ts = latest.Unix()
		}
		etag := fmt.Sprintf(`W/"orders:%s:%d:%d"`, uid, count, ts)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, total, err := h.orders.ListPage(ctx, uid, page, pageSize)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, ListOrdersResponse{
		Orders:     newOrderViews(items),
		Pagination: newPagination(page, pageSize, total),
	})
}

// GetOrder godoc
// @ID          getOrder
// @Summary     Retrieve an order
// @Description Returns one of the caller's orders with its tickets and their
// @Description flights expanded. Foreign orders surface as not found.
// @Tags        Orders
// @Produce     json
// @Param       X-User-ID header string true "User ID"
// @Param       id        path   int    true "Order ID"
// @Success     200 {object} handlers.OrderView
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /orders/{id} [get]
func (h *Handlers) GetOrder(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	o, err := h.orders.Get(c.Request.Context(), id, principal(c).UserID)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, newOrderView(*o))
}
