package handlers

import (
	"errors"
	"net/http"

	"pos_backend/internal/services"
	"pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads a positive integer path parameter. On failure it writes
// the 400 response itself and returns false.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := utils.StrToInt64(c.Param(name))
	if err != nil || id <= 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid "+name+" parameter", c.Param(name)))
		return 0, false
	}
	return id, true
}

// respondServiceError maps service sentinel errors onto the HTTP error
// envelope. Unrecognized errors become opaque 500s so internal details never
// leak to clients.
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, err.Error(), ""))
	case errors.Is(err, services.ErrInsufficientStock):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, err.Error(), ""))
	case errors.Is(err, services.ErrConflict):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, err.Error(), ""))
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrSaleNotFound),
		errors.Is(err, services.ErrCompanyNotFound),
		errors.Is(err, services.ErrItemNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, err.Error(), ""))
	case errors.Is(err, services.ErrInvalidSaleStatus):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, err.Error(), ""))
	default:
		utils.LogError(err, fallback)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, fallback, ""))
	}
}
