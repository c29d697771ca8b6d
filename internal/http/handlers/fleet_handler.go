// Fleet HTTP handlers.
//
// This file exposes REST endpoints for the fleet resources:
//   - /airplane_types  (staff-only CRUD)
//   - /airplanes       (authenticated read, staff write, image upload)
//   - /crews           (staff-only CRUD)
package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

//
// DTOs
//

// AirplaneTypeRequest is the JSON payload for creating or updating an
// airframe type.
type AirplaneTypeRequest struct {
	// Name is the unique airframe model name.
	Name string `json:"name" binding:"required,min=1,max=100" example:"Boeing 737-800"`
}

// AirplaneRequest is the JSON payload for creating or updating an airplane.
type AirplaneRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255" example:"Sky Queen"`
	// Rows and SeatsInRow define the seat grid; both must be positive.
	Rows       int `json:"rows" binding:"required" example:"20"`
	SeatsInRow int `json:"seats_in_row" binding:"required" example:"6"`
	// AirplaneTypeID references an existing airframe type.
	AirplaneTypeID uint `json:"airplane_type_id" binding:"required" example:"1"`
}

// CrewRequest is the JSON payload for creating or updating a crew member.
type CrewRequest struct {
	FirstName string `json:"first_name" binding:"required,min=1,max=100" example:"Amelia"`
	LastName  string `json:"last_name"  binding:"required,min=1,max=100" example:"Earhart"`
}

//
// Airplane types
//

// ListAirplaneTypes godoc
// @ID          listAirplaneTypes
// @Summary     List airplane types
// @Tags        Fleet
// @Produce     json
// @Success     200 {array}  domain.AirplaneType
// @Failure     403 {object} handlers.ErrorResponse
// @Router      /airplane_types [get]
func (h *Handlers) ListAirplaneTypes(c *gin.Context) {
	items, err := h.fleet.ListAirplaneTypes(c.Request.Context())
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, items)
}

// GetAirplaneType godoc
// @ID          getAirplaneType
// @Summary     Retrieve an airplane type
// @Tags        Fleet
// @Produce     json
// @Param       id path int true "Airplane type ID"
// @Success     200 {object} domain.AirplaneType
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /airplane_types/{id} [get]
func (h *Handlers) GetAirplaneType(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	at, err := h.fleet.GetAirplaneType(c.Request.Context(), id)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, at)
}

// CreateAirplaneType godoc
// @ID          createAirplaneType
// @Summary     Create an airplane type
// @Tags        Fleet
// @Accept      json
// @Produce     json
// @Param       body body handlers.AirplaneTypeRequest true "Airplane type payload"
// @Success     201 {object} domain.AirplaneType
// @Failure     400 {object} handlers.ErrorResponse
// @Router      /airplane_types [post]
func (h *Handlers) CreateAirplaneType(c *gin.Context) {
	var req AirplaneTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	at, err := h.fleet.CreateAirplaneType(c.Request.Context(), req.Name)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusCreated, at)
}

// UpdateAirplaneType godoc
// @ID          updateAirplaneType
// @Summary     Update an airplane type
// @Tags        Fleet
// @Accept      json
// @Produce     json
// @Param       id   path int                           true "Airplane type ID"
// @Param       body body handlers.AirplaneTypeRequest true "Airplane type payload"
// @Success     200 {object} domain.AirplaneType
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /airplane_types/{id} [put]
func (h *Handlers) UpdateAirplaneType(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	var req AirplaneTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	at, err := h.fleet.UpdateAirplaneType(c.Request.Context(), id, req.Name)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, at)
}

// DeleteAirplaneType godoc
// @ID          deleteAirplaneType
// @Summary     Delete an airplane type
// @Tags        Fleet
// @Param       id path int true "Airplane type ID"
// @Success     204 {string} string "No Content"
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /airplane_types/{id} [delete]
func (h *Handlers) DeleteAirplaneType(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	if err := h.fleet.DeleteAirplaneType(c.Request.Context(), id); err != nil {
		svcFail(c, err)
		return
	}
	noContent(c)
}

//
// Airplanes
//

// ListAirplanes godoc
// @ID          listAirplanes
// @Summary     List airplanes
// @Tags        Fleet
// @Produce     json
// @Success     200 {array}  handlers.AirplaneView
// @Failure     401 {object} handlers.ErrorResponse
// @Router      /airplanes [get]
func (h *Handlers) ListAirplanes(c *gin.Context) {
	items, err := h.fleet.ListAirplanes(c.Request.Context())
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, newAirplaneViews(items))
}

// GetAirplane godoc
// @ID          getAirplane
// @Summary     Retrieve an airplane
// @Tags        Fleet
// @Produce     json
// @Param       id path int true "Airplane ID"
// @Success     200 {object} handlers.AirplaneDetailView
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /airplanes/{id} [get]
func (h *Handlers) GetAirplane(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	a, err := h.fleet.GetAirplane(c.Request.Context(), id)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, newAirplaneDetailView(*a))
}

// CreateAirplane godoc
// @ID          createAirplane
// @Summary     Create an airplane
// @Tags        Fleet
// @Accept      json
// @Produce     json
// @Param       body body handlers.AirplaneRequest true "Airplane payload"
// @Success     201 {object} handlers.AirplaneDetailView
// @Failure     400 {object} handlers.ErrorResponse
// @Router      /airplanes [post]
func (h *Handlers) CreateAirplane(c *gin.Context) {
	var req AirplaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	a, err := h.fleet.CreateAirplane(c.Request.Context(), req.Name, req.Rows, req.SeatsInRow, req.AirplaneTypeID)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusCreated, newAirplaneDetailView(*a))
}

// UpdateAirplane godoc
// @ID          updateAirplane
// @Summary     Update an airplane
// @Tags        Fleet
// @Accept      json
// @Produce     json
// @Param       id   path int                       true "Airplane ID"
// @Param       body body handlers.AirplaneRequest true "Airplane payload"
// @Success     200 {object} handlers.AirplaneDetailView
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /airplanes/{id} [put]
func (h *Handlers) UpdateAirplane(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	var req AirplaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	a, err := h.fleet.UpdateAirplane(c.Request.Context(), id, req.Name, req.Rows, req.SeatsInRow, req.AirplaneTypeID)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, newAirplaneDetailView(*a))
}

// DeleteAirplane godoc
// @ID          deleteAirplane
// @Summary     Delete an airplane
// @Tags        Fleet
// @Param       id path int true "Airplane ID"
// @Success     204 {string} string "No Content"
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /airplanes/{id} [delete]
func (h *Handlers) DeleteAirplane(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	if err := h.fleet.DeleteAirplane(c.Request.Context(), id); err != nil {
		svcFail(c, err)
		return
	}
	noContent(c)
}

// UploadAirplaneImage godoc
// @ID          uploadAirplaneImage
// @Summary     Upload an airplane image
// @Description Accepts a multipart form with an "image" file field. The
// @Description payload is content-sniffed; only images are accepted.
// @Description Re-uploading replaces the previous image.
// @Tags        Fleet
// @Accept      multipart/form-data
// @Produce     json
// @Param       id    path     int  true "Airplane ID"
// @Param       image formData file true "Image file"
// @Success     200 {object} handlers.AirplaneDetailView
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /airplanes/{id}/upload-image [post]
func (h *Handlers) UploadAirplaneImage(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, `multipart "image" file field required`)
		return
	}
	if h.maxImageSize > 0 && file.Size > h.maxImageSize {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "image exceeds the maximum allowed size")
		return
	}
	src, err := file.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unreadable upload")
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unreadable upload")
		return
	}

	a, err := h.fleet.UploadImage(c.Request.Context(), id, data)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, newAirplaneDetailView(*a))
}

//
// Crews
//

// ListCrews godoc
// @ID          listCrews
// @Summary     List crew members
// @Tags        Crews
// @Produce     json
// @Success     200 {array}  handlers.CrewView
// @Failure     403 {object} handlers.ErrorResponse
// @Router      /crews [get]
func (h *Handlers) ListCrews(c *gin.Context) {
	items, err := h.fleet.ListCrews(c.Request.Context())
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, newCrewViews(items))
}

// GetCrew godoc
// @ID          getCrew
// @Summary     Retrieve a crew member
// @Tags        Crews
// @Produce     json
// @Param       id path int true "Crew ID"
// @Success     200 {object} handlers.CrewView
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /crews/{id} [get]
func (h *Handlers) GetCrew(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	cr, err := h.fleet.GetCrew(c.Request.Context(), id)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, newCrewView(*cr))
}

// CreateCrew godoc
// @ID          createCrew
// @Summary     Create a crew member
// @Tags        Crews
// @Accept      json
// @Produce     json
// @Param       body body handlers.CrewRequest true "Crew payload"
// @Success     201 {object} handlers.CrewView
// @Failure     400 {object} handlers.ErrorResponse
// @Router      /crews [post]
func (h *Handlers) CreateCrew(c *gin.Context) {
	var req CrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	cr, err := h.fleet.CreateCrew(c.Request.Context(), req.FirstName, req.LastName)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusCreated, newCrewView(*cr))
}

// UpdateCrew godoc
// @ID          updateCrew
// @Summary     Update a crew member
// @Tags        Crews
// @Accept      json
// @Produce     json
// @Param       id   path int                   true "Crew ID"
// @Param       body body handlers.CrewRequest true "Crew payload"
// @Success     200 {object} handlers.CrewView
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /crews/{id} [put]
func (h *Handlers) UpdateCrew(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	var req CrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	cr, err := h.fleet.UpdateCrew(c.Request.Context(), id, req.FirstName, req.LastName)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, newCrewView(*cr))
}

// DeleteCrew godoc
// @ID          deleteCrew
// @Summary     Delete a crew member
// @Tags        Crews
// @Param       id path int true "Crew ID"
// @Success     204 {string} string "No Content"
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /crews/{id} [delete]
func (h *Handlers) DeleteCrew(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	if err := h.fleet.DeleteCrew(c.Request.Context(), id); err != nil {
		svcFail(c, err)
		return
	}
	noContent(c)
}
