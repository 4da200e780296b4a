package api

import (
	"net/http"

	reqdto "rental-booking/internal/handler/dto/request"
	resdto "rental-booking/internal/handler/dto/response"
	"rental-booking/internal/handler/httperr"
	"rental-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	queries queries.ReservationQueries
}

func NewVehicleHandler(q queries.ReservationQueries) *VehicleHandler {
	return &VehicleHandler{queries: q}
}

// @Summary Vehicle availability
// @Description Free windows of a vehicle between from and to, plus the active reservations around them
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param from query string true "Window start (RFC 3339 or local date-time)"
// @Param to query string true "Window end (RFC 3339 or local date-time)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /vehicles/{id}/availability [get]
func (h *VehicleHandler) Availability(c *gin.Context) {
	vehicleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var query reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortWithBindError(c, err)
		return
	}

	view, err := h.queries.Availability(c.Request.Context(), vehicleID, query.From, query.To)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	resp, err := resdto.FromAvailabilityView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
