package api

import (
	"net/http"

	"rental-booking/internal/domain/user"
	reqdto "rental-booking/internal/handler/dto/request"
	resdto "rental-booking/internal/handler/dto/response"
	"rental-booking/internal/handler/httperr"
	"rental-booking/internal/handler/middleware"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	commands commands.ReservationCommands
	queries  queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		commands: cmds,
		queries:  q,
	}
}

// @Summary Create reservation
// @Description Book a vehicle for the authenticated client. Start and end are truncated to the hour.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	clientID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errNoUserInContext, "Internal server error", nil)
		return
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	view, err := h.commands.CreateReservation(c.Request.Context(), req.ToInput(clientID))
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	h.respondReservation(c, http.StatusCreated, view)
}

// @Summary List reservations
// @Description Clients page through their own reservations, newest first.
// @Description Drivers and admins see every reservation, or the active ones of a vehicle when vehicle_id is set.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param cursor query string false "Cursor from the previous page (clients only)"
// @Param limit query int false "Page size (clients only)"
// @Param vehicle_id query string false "Vehicle ID (drivers and admins)"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	userID, okID := middleware.GetUserID(c)
	role, okRole := middleware.GetUserRole(c)
	if !okID || !okRole {
		httperr.AbortWithError(c, http.StatusInternalServerError, errNoUserInContext, "Internal server error", nil)
		return
	}

	var query reqdto.ListReservationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortWithBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	var (
		views []*queries.ReservationView
		next  *queries.Cursor
		err   error
	)
	switch {
	case role == user.RoleClient:
		views, next, err = h.queries.ListByClient(ctx, userID, &queries.Cursor{After: query.Cursor}, query.Limit)
	case query.VehicleID != "":
		// already validated by the binding
		vehicleID := uuid.MustParse(query.VehicleID)
		views, err = h.queries.ListActiveByVehicle(ctx, vehicleID)
	default:
		views, err = h.queries.ListAll(ctx)
	}
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	resp, err := resdto.FromReservationViews(views, next)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	if !visibleToCaller(c, view) {
		abortWithUseCaseError(c, errs.Wrapf(errs.ErrReservationNotFound, "reservation %s", id))
		return
	}
	h.respondReservation(c, http.StatusOK, view)
}

// @Summary Cancel reservation
// @Description Cancelling an already cancelled reservation returns it unchanged.
// @Description Clients may only cancel their own reservations.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/cancel [put]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if !h.ensureOwnedByClient(c, id) {
		return
	}

	view, err := h.commands.CancelReservation(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	h.respondReservation(c, http.StatusOK, view)
}

// @Summary Finalize reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/finalize [put]
func (h *ReservationHandler) FinalizeReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.commands.FinalizeReservation(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	h.respondReservation(c, http.StatusOK, view)
}

// ensureOwnedByClient lets drivers and admins through and checks that a
// client owns the reservation. A foreign reservation reads as missing.
func (h *ReservationHandler) ensureOwnedByClient(c *gin.Context, id uuid.UUID) bool {
	if role, _ := middleware.GetUserRole(c); role != user.RoleClient {
		return true
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return false
	}
	if !visibleToCaller(c, view) {
		abortWithUseCaseError(c, errs.Wrapf(errs.ErrReservationNotFound, "reservation %s", id))
		return false
	}
	return true
}

// visibleToCaller reports whether the caller may see view: clients only see
// their own bookings.
func visibleToCaller(c *gin.Context, view *queries.ReservationView) bool {
	role, _ := middleware.GetUserRole(c)
	if role != user.RoleClient {
		return true
	}
	userID, ok := middleware.GetUserID(c)
	return ok && view.ClientID == userID
}

func (h *ReservationHandler) respondReservation(c *gin.Context, status int, view *queries.ReservationView) {
	resp, err := resdto.FromReservationView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(status, resp)
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}
