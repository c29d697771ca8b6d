// Geography HTTP handlers.
//
// This file exposes REST endpoints for the geographic resources:
//   - /countries  (staff-only CRUD)
//   - /cities     (staff-only CRUD)
//   - /airports   (public read with filters, staff write)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkosteva/go-airport-backend/internal/repo"
)

//
// DTOs
//

// CountryRequest is the JSON payload for creating or updating a country.
type CountryRequest struct {
	// Name is the unique country name.
	Name string `json:"name" binding:"required,min=1,max=100" example:"United Kingdom"`
}

// CityRequest is the JSON payload for creating or updating a city.
type CityRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100" example:"London"`
	// CountryID references an existing country.
	CountryID uint `json:"country_id" binding:"required" example:"1"`
}

// AirportRequest is the JSON payload for creating or updating an airport.
type AirportRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255" example:"Heathrow Airport"`
	// ClosestBigCityID references an existing city.
	ClosestBigCityID uint `json:"closest_big_city_id" binding:"required" example:"1"`
}

//
// Countries
//

// ListCountries godoc
// @ID          listCountries
// @Summary     List countries
// @Tags        Countries
// @Produce     json
// @Success     200 {array}  domain.Country
// @Failure     401 {object} handlers.ErrorResponse
// @Failure     403 {object} handlers.ErrorResponse
// @Router      /countries [get]
func (h *Handlers) ListCountries(c *gin.Context) {
	items, err := h.locations.ListCountries(c.Request.Context())
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, items)
}

// GetCountry godoc
// @ID          getCountry
// @Summary     Retrieve a country
// @Tags        Countries
// @Produce     json
// @Param       id path int true "Country ID"
// @Success     200 {object} domain.Country
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /countries/{id} [get]
func (h *Handlers) GetCountry(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	country, err := h.locations.GetCountry(c.Request.Context(), id)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, country)
}

// CreateCountry godoc
// @ID          createCountry
// @Summary     Create a country
// @Tags        Countries
// @Accept      json
// @Produce     json
// @Param       body body handlers.CountryRequest true "Country payload"
// @Success     201 {object} domain.Country
// @Failure     400 {object} handlers.ErrorResponse
// @Router      /countries [post]
func (h *Handlers) CreateCountry(c *gin.Context) {
	var req CountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	country, err := h.locations.CreateCountry(c.Request.Context(), req.Name)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusCreated, country)
}

// UpdateCountry godoc
// @ID          updateCountry
// @Summary     Update a country
// @Tags        Countries
// @Accept      json
// @Produce     json
// @Param       id   path int                      true "Country ID"
// @Param       body body handlers.CountryRequest true "Country payload"
// @Success     200 {object} domain.Country
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /countries/{id} [put]
func (h *Handlers) UpdateCountry(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	var req CountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	country, err := h.locations.UpdateCountry(c.Request.Context(), id, req.Name)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, country)
}

// DeleteCountry godoc
// @ID          deleteCountry
// @Summary     Delete a country
// @Tags        Countries
// @Param       id path int true "Country ID"
// @Success     204 {string} string "No Content"
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /countries/{id} [delete]
func (h *Handlers) DeleteCountry(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	if err := h.locations.DeleteCountry(c.Request.Context(), id); err != nil {
		svcFail(c, err)
		return
	}
	noContent(c)
}

//
// Cities
//

// ListCities godoc
// @ID          listCities
// @Summary     List cities
// @Description Returns all cities with the country name flattened in.
// @Tags        Cities
// @Produce     json
// @Success     200 {array}  handlers.CityView
// @Failure     401 {object} handlers.ErrorResponse
// @Router      /cities [get]
func (h *Handlers) ListCities(c *gin.Context) {
	items, err := h.locations.ListCities(c.Request.Context())
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, newCityViews(items))
}

// GetCity godoc
// @ID          getCity
// @Summary     Retrieve a city
// @Tags        Cities
// @Produce     json
// @Param       id path int true "City ID"
// @Success     200 {object} handlers.CityDetailView
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /cities/{id} [get]
func (h *Handlers) GetCity(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	city, err := h.locations.GetCity(c.Request.Context(), id)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, newCityDetailView(*city))
}

// CreateCity godoc
// @ID          createCity
// @Summary     Create a city
// @Tags        Cities
// @Accept      json
// @Produce     json
// @Param       body body handlers.CityRequest true "City payload"
// @Success     201 {object} handlers.CityDetailView
// @Failure     400 {object} handlers.ErrorResponse
// @Router      /cities [post]
func (h *Handlers) CreateCity(c *gin.Context) {
	var req CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	city, err := h.locations.CreateCity(c.Request.Context(), req.Name, req.CountryID)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusCreated, newCityDetailView(*city))
}

// UpdateCity godoc
// @ID          updateCity
// @Summary     Update a city
// @Tags        Cities
// @Accept      json
// @Produce     json
// @Param       id   path int                   true "City ID"
// @Param       body body handlers.CityRequest true "City payload"
// @Success     200 {object} handlers.CityDetailView
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /cities/{id} [put]
func (h *Handlers) UpdateCity(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	var req CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	city, err := h.locations.UpdateCity(c.Request.Context(), id, req.Name, req.CountryID)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, newCityDetailView(*city))
}

// DeleteCity godoc
// @ID          deleteCity
// @Summary     Delete a city
// @Tags        Cities
// @Param       id path int true "City ID"
// @Success     204 {string} string "No Content"
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /cities/{id} [delete]
func (h *Handlers) DeleteCity(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	if err := h.locations.DeleteCity(c.Request.Context(), id); err != nil {
		svcFail(c, err)
		return
	}
	noContent(c)
}

//
// Airports
//

// ListAirports godoc
// @ID          listAirports
// @Summary     List airports
// @Description Returns airports, optionally filtered by case-insensitive name
// @Description substring (?airport_name=) and closest-big-city substring (?city=).
// @Tags        Airports
// @Produce     json
// @Param       airport_name query string false "Airport name substring"
// @Param       city         query string false "City name substring"
// @Success     200 {array} handlers.AirportView
// @Router      /airports [get]
func (h *Handlers) ListAirports(c *gin.Context) {
	f := repo.AirportFilter{
		Name: c.Query("airport_name"),
		City: c.Query("city"),
	}
	items, err := h.locations.ListAirports(c.Request.Context(), f)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, newAirportViews(items))
}

// GetAirport godoc
// @ID          getAirport
// @Summary     Retrieve an airport
// @Tags        Airports
// @Produce     json
// @Param       id path int true "Airport ID"
// @Success     200 {object} handlers.AirportDetailView
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /airports/{id} [get]
func (h *Handlers) GetAirport(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	airport, err := h.locations.GetAirport(c.Request.Context(), id)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, newAirportDetailView(*airport))
}

// CreateAirport godoc
// @ID          createAirport
// @Summary     Create an airport
// @Tags        Airports
// @Accept      json
// @Produce     json
// @Param       body body handlers.AirportRequest true "Airport payload"
// @Success     201 {object} handlers.AirportDetailView
// @Failure     400 {object} handlers.ErrorResponse
// @Router      /airports [post]
func (h *Handlers) CreateAirport(c *gin.Context) {
	var req AirportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	airport, err := h.locations.CreateAirport(c.Request.Context(), req.Name, req.ClosestBigCityID)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusCreated, newAirportDetailView(*airport))
}

// UpdateAirport godoc
// @ID          updateAirport
// @Summary     Update an airport
// @Tags        Airports
// @Accept      json
// @Produce     json
// @Param       id   path int                      true "Airport ID"
// @Param       body body handlers.AirportRequest true "Airport payload"
// @Success     200 {object} handlers.AirportDetailView
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /airports/{id} [put]
func (h *Handlers) UpdateAirport(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	var req AirportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	airport, err := h.locations.UpdateAirport(c.Request.Context(), id, req.Name, req.ClosestBigCityID)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, newAirportDetailView(*airport))
}

// DeleteAirport godoc
// @ID          deleteAirport
// @Summary     Delete an airport
// @Tags        Airports
// @Param       id path int true "Airport ID"
// @Success     204 {string} string "No Content"
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /airports/{id} [delete]
func (h *Handlers) DeleteAirport(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	if err := h.locations.DeleteAirport(c.Request.Context(), id); err != nil {
		svcFail(c, err)
		return
	}
	noContent(c)
}
