// Handler wiring and shared request helpers.
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dkosteva/go-airport-backend/internal/access"
	"github.com/dkosteva/go-airport-backend/internal/config"
	"github.com/dkosteva/go-airport-backend/internal/http/middleware"
	"github.com/dkosteva/go-airport-backend/internal/services"
	"github.com/dkosteva/go-airport-backend/internal/utils"
)

// Handlers groups the HTTP endpoints of the API. It is transport-thin:
// handlers bind and validate input, call the services and translate results
// (including errors) into HTTP responses.
type Handlers struct {
	locations *services.LocationService
	fleet     *services.FleetService
	flights   *services.FlightService
	orders    *services.OrderService
	chats     *services.ChatService

	pageSize     int
	maxPageSize  int
	maxImageSize int64
}

// New constructs a Handlers instance bound to the given services. Pagination
// and upload limits are taken from cfg.
func New(
	locations *services.LocationService,
	fleet *services.FleetService,
	flights *services.FlightService,
	orders *services.OrderService,
	chats *services.ChatService,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		locations:    locations,
		fleet:        fleet,
		flights:      flights,
		orders:       orders,
		chats:        chats,
		pageSize:     cfg.PageSize,
		maxPageSize:  cfg.MaxPageSize,
		maxImageSize: cfg.MaxImageSize,
	}
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// newPagination fills the metadata envelope for one result page.
func newPagination(page, pageSize int, total int64) Pagination {
	totalPages := utils.TotalPages(total, pageSize)
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

// principal returns the caller identity established by the auth middleware.
func principal(c *gin.Context) access.Principal {
	return middleware.PrincipalFrom(c)
}

// clampPagination parses and bounds page / page_size query params.
func (h *Handlers) clampPagination(c *gin.Context) (page, pageSize int) {
	return utils.ClampPage(c.Query("page"), c.Query("page_size"), h.pageSize, h.maxPageSize)
}

// pathID parses the named path parameter as a positive integer id. On
// failure it writes a 400 response and returns ok=false.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return uint(n), true
}

// idList parses an id-list query parameter. The parameter may be repeated
// and each value may hold several ids separated by commas, so ?source=1,3
// and ?source=1&source=3 are equivalent. A value that is not a positive
// integer writes a 400 response and returns ok=false.
func idList(c *gin.Context, name string) ([]uint, bool) {
	var out []uint
	for _, raw := range c.QueryArray(name) {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.ParseUint(part, 10, 32)
			if err != nil || n == 0 {
				fail(c, http.StatusBadRequest, ErrCodeBadRequest, name+" must be a list of positive integer ids")
				return nil, false
			}
			out = append(out, uint(n))
		}
	}
	return out, true
}
