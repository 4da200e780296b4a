package api

import (
	"net/http"

	"rental-booking/internal/domain/user"
	"rental-booking/internal/domain/verification"
	"rental-booking/internal/handler/httperr"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// errorMappings is checked in order; the first matching sentinel wins.
var errorMappings = []errorMapping{
	{errs.ErrMissingField, http.StatusBadRequest, "Missing required field"},
	{errs.ErrInvalidTimestamp, http.StatusBadRequest, "Invalid timestamp"},
	{errs.ErrInvalidInterval, http.StatusBadRequest, "Reservation end precedes start"},
	{errs.ErrInvalidPrice, http.StatusBadRequest, "Price cannot be negative"},
	{user.ErrInvalidEmail, http.StatusBadRequest, "Invalid email format"},
	{user.ErrInvalidRole, http.StatusBadRequest, "Invalid role"},
	{verification.ErrInvalidKind, http.StatusBadRequest, "Invalid verification type"},
	{queries.ErrInvalidCursor, http.StatusBadRequest, "Invalid cursor"},
	{errs.ErrCodeMismatch, http.StatusBadRequest, "Invalid verification code"},

	{errs.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},

	{errs.ErrNoPendingFlow, http.StatusNotFound, "No pending verification"},
	{errs.ErrReservationNotFound, http.StatusNotFound, "Reservation not found"},
	{errs.ErrVehicleNotFound, http.StatusNotFound, "Vehicle not found"},
	{errs.ErrUserNotFound, http.StatusNotFound, "User not found"},

	{errs.ErrSlotUnavailable, http.StatusConflict, "Vehicle is not available for the requested time"},
	{errs.ErrDuplicateEmail, http.StatusConflict, "Email already registered"},
	{errs.ErrDuplicateDocument, http.StatusConflict, "Document already registered"},
	{errs.ErrInvalidTransition, http.StatusConflict, "Reservation cannot change to the requested status"},
}

// abortWithUseCaseError translates a use case error into the response. Errors
// outside the known taxonomy, ErrStorage included, become a generic 500.
func abortWithUseCaseError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errs.Is(err, m.target) {
			httperr.AbortWithError(c, m.status, err, m.message, nil)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}

func abortWithBindError(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", err.Error())
}
