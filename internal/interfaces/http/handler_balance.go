package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"project_karcis/internal/interfaces"
)

func (h *Handler) GetBalance(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user id", CodeValidation)
		return
	}

	balance, err := h.balances.GetByUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Balance not found.", CodeNotFound)
			return
		}
		h.log.Error().Err(err).Msg("get balance failed")
		respondError(c, http.StatusInternalServerError, "An internal error occurred", CodeInternal)
		return
	}
	respondOK(c, http.StatusOK, "Balance found.", balance)
}

func (h *Handler) GetBalanceHistories(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user id", CodeValidation)
		return
	}

	histories, err := h.balances.Histories(c.Request.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Msg("get balance histories failed")
		respondError(c, http.StatusInternalServerError, "An internal error occurred", CodeInternal)
		return
	}
	respondOK(c, http.StatusOK, "Balance histories found.", histories)
}

// UpdateBalance writes the new amount and its history row transactionally.
func (h *Handler) UpdateBalance(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid balance id", CodeValidation)
		return
	}

	var req UpdateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", CodeValidation)
		return
	}
	if req.Balance.IsNegative() {
		respondError(c, http.StatusBadRequest, "Balance cannot be negative", CodeValidation)
		return
	}

	updated, err := h.balances.Update(c.Request.Context(), id, req.Balance)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Balance not found.", CodeNotFound)
			return
		}
		h.log.Error().Err(err).Msg("update balance failed")
		respondError(c, http.StatusInternalServerError, "An internal error occurred", CodeInternal)
		return
	}
	respondOK(c, http.StatusOK, "Balance updated.", updated)
}
