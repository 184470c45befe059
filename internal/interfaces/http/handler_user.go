package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"project_karcis/internal/entities"
	"project_karcis/internal/interfaces"
)

func (h *Handler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user id", CodeValidation)
		return
	}

	user, err := h.users.FindBy(c.Request.Context(), interfaces.LookupByID, strconv.FormatInt(id, 10))
	if err != nil {
		h.log.Error().Err(err).Msg("get user failed")
		respondError(c, http.StatusInternalServerError, "An internal error occurred", CodeInternal)
		return
	}
	if user == nil {
		respondError(c, http.StatusNotFound, "User not found.", CodeNotFound)
		return
	}
	respondOK(c, http.StatusOK, "User found.", user.Profile())
}

// UpdateProfile updates the authenticated user's own profile.
func (h *Handler) UpdateProfile(c *gin.Context) {
	current, ok := CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "No valid token found", CodeUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", CodeValidation)
		return
	}
	if req.Email != "" && !ValidEmail(req.Email) {
		respondError(c, http.StatusBadRequest, "Invalid email format", CodeValidation)
		return
	}
	if req.Phone != "" && !ValidPhone(req.Phone) {
		respondError(c, http.StatusBadRequest, "Invalid phone number format", CodeValidation)
		return
	}

	profile := entities.Profile{
		ID:        current.ID,
		FirstName: orDefault(req.FirstName, current.FirstName),
		LastName:  orDefault(req.LastName, current.LastName),
		Username:  orDefault(req.Username, current.Username),
		Email:     orDefault(req.Email, current.Email),
		Phone:     orDefault(req.Phone, current.Phone),
		Title:     orDefault(req.Title, current.Title),
		Image:     orDefault(req.Image, current.Image),
	}

	updated, err := h.users.UpdateProfile(c.Request.Context(), profile)
	if err != nil {
		switch {
		case errors.Is(err, interfaces.ErrConflict):
			respondError(c, http.StatusConflict, "Username or email already taken", CodeConflict)
		case errors.Is(err, interfaces.ErrNotFound):
			respondError(c, http.StatusNotFound, "User not found.", CodeNotFound)
		default:
			h.log.Error().Err(err).Msg("update profile failed")
			respondError(c, http.StatusInternalServerError, "An internal error occurred", CodeInternal)
		}
		return
	}
	respondOK(c, http.StatusOK, "Profile updated.", updated.Profile())
}

// DeleteUser soft-deletes; the row is kept with deleted_at set.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user id", CodeValidation)
		return
	}

	if err := h.users.SoftDelete(c.Request.Context(), id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			respondError(c, http.StatusNotFound, "User not found.", CodeNotFound)
			return
		}
		h.log.Error().Err(err).Msg("delete user failed")
		respondError(c, http.StatusInternalServerError, "An internal error occurred", CodeInternal)
		return
	}
	respondOK(c, http.StatusOK, "User deleted.", nil)
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
