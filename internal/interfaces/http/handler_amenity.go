package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"project_karcis/internal/entities"
	"project_karcis/internal/interfaces"
)

func (h *Handler) GetAllAmenities(c *gin.Context) {
	amenities, err := h.amenities.GetAll(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("get amenities failed")
		respondError(c, http.StatusInternalServerError, "An internal error occurred", CodeInternal)
		return
	}
	respondOK(c, http.StatusOK, "Amenities found.", amenities)
}

func (h *Handler) GetAmenity(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid amenity id", CodeValidation)
		return
	}

	amenity, err := h.amenities.FindByID(c.Request.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Msg("get amenity failed")
		respondError(c, http.StatusInternalServerError, "An internal error occurred", CodeInternal)
		return
	}
	if amenity == nil {
		respondError(c, http.StatusNotFound, "Amenity not found.", CodeNotFound)
		return
	}
	respondOK(c, http.StatusOK, "Amenity found.", amenity)
}

func (h *Handler) CreateAmenity(c *gin.Context) {
	var req CreateAmenityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		respondError(c, http.StatusBadRequest, "Name is required", CodeValidation)
		return
	}

	created, err := h.amenities.Create(c.Request.Context(), entities.Amenity{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("create amenity failed")
		respondError(c, http.StatusInternalServerError, "An internal error occurred", CodeInternal)
		return
	}
	respondOK(c, http.StatusCreated, "Amenity created.", created)
}

func (h *Handler) UpdateAmenity(c *gin.Context) {
	var req UpdateAmenityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 || req.Name == "" {
		respondError(c, http.StatusBadRequest, "Id and name are required", CodeValidation)
		return
	}

	updated, err := h.amenities.Update(c.Request.Context(), entities.Amenity{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Amenity not found.", CodeNotFound)
			return
		}
		h.log.Error().Err(err).Msg("update amenity failed")
		respondError(c, http.StatusInternalServerError, "An internal error occurred", CodeInternal)
		return
	}
	respondOK(c, http.StatusOK, "Amenity updated.", updated)
}

func (h *Handler) DeleteAmenity(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid amenity id", CodeValidation)
		return
	}

	if err := h.amenities.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Amenity not found.", CodeNotFound)
			return
		}
		h.log.Error().Err(err).Msg("delete amenity failed")
		respondError(c, http.StatusInternalServerError, "An internal error occurred", CodeInternal)
		return
	}
	respondOK(c, http.StatusOK, "Amenity deleted.", nil)
}
