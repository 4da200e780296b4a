//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"rental-booking/internal/domain/reservation"
	"rental-booking/internal/domain/user"
	"rental-booking/internal/handler/api"
	reqdto "rental-booking/internal/handler/dto/request"
	resdto "rental-booking/internal/handler/dto/response"
	"rental-booking/internal/handler/middleware"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/pkg/jwt"
	"rental-booking/internal/usecase"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"
	"rental-booking/tests/common/builder"
	"rental-booking/tests/common/httptest"
	commandsmock "rental-booking/tests/mock/commands"
	queriesmock "rental-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	jwtService   *jwt.Service

	clientID    uuid.UUID
	clientToken string
	driverToken string
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.jwtService = jwt.NewService("test-secret", time.Hour)

	h := api.NewReservationHandler(s.mockCommands, s.mockQueries)
	auth := middleware.NewAuthMiddleware(usecase.NewTokenValidator(s.jwtService))

	group := s.router.Group("/reservations", auth.RequireAuth())
	group.POST("", auth.RequireRole(user.RoleClient), h.CreateReservation)
	group.GET("", h.ListReservations)
	group.GET("/:id", h.GetReservation)
	group.PUT("/:id/cancel", h.CancelReservation)
	group.PUT("/:id/finalize", auth.RequireRole(user.RoleDriver, user.RoleAdmin), h.FinalizeReservation)

	s.clientID = uuid.New()
	s.clientToken = s.token(s.clientID, user.RoleClient)
	s.driverToken = s.token(uuid.New(), user.RoleDriver)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) token(id uuid.UUID, role user.Role) string {
	token, err := s.jwtService.GenerateToken(id, "someone@example.com", role)
	s.Require().NoError(err)
	return token
}

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	url := "/reservations"
	vehicleID := uuid.New()
	reqBody := reqdto.CreateReservationRequest{
		VehicleID:          vehicleID,
		StartAt:            "2024-06-01T10:00:00Z",
		EndAt:              "2024-06-01T14:00:00Z",
		OriginAddress:      "Calle 10 # 5-20",
		DestinationAddress: "Carrera 7 # 71-21",
	}

	s.Run("success: returns 201 with the client taken from the token", func() {
		view := builder.NewReservationBuilder().WithClient(s.clientID).WithVehicle(vehicleID).BuildReadModel()
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), commands.CreateReservationInput{
			VehicleID:          vehicleID,
			ClientID:           s.clientID,
			Start:              reqBody.StartAt,
			End:                reqBody.EndAt,
			OriginAddress:      reqBody.OriginAddress,
			DestinationAddress: reqBody.DestinationAddress,
		}).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.clientToken)

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(view.ID, response.ID)
		s.Equal("active", response.Status)
		s.Equal(view.TotalPriceCents, response.TotalPriceCents)
	})

	s.Run("success: quoted price is passed through", func() {
		quoted := int64(99000)
		body := reqBody
		body.TotalPriceCents = &quoted

		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Cond(func(in commands.CreateReservationInput) bool {
			return in.TotalPriceCents != nil && *in.TotalPriceCents == quoted
		})).Return(builder.NewReservationBuilder().BuildReadModel(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, s.clientToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: only clients may book", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.driverToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("error: token required", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "slot taken",
				commandsError:  errs.Wrap(errs.ErrSlotUnavailable, "1 active reservation(s)"),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "not available",
			},
			{
				name:           "missing field",
				commandsError:  errs.Mark(errs.New("missing origin_address"), errs.ErrMissingField),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Missing required field",
			},
			{
				name:           "bad timestamp",
				commandsError:  errs.ErrInvalidTimestamp,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid timestamp",
			},
			{
				name:           "end before start",
				commandsError:  errs.ErrInvalidInterval,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "end precedes start",
			},
			{
				name:           "negative price",
				commandsError:  errs.ErrInvalidPrice,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Price cannot be negative",
			},
			{
				name:           "unknown vehicle",
				commandsError:  errs.ErrVehicleNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Vehicle not found",
			},
			{
				name:           "storage failure",
				commandsError:  errs.Mark(errors.New("deadlock detected"), errs.ErrStorage),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.clientToken)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *ReservationHandlerTestSuite) TestListReservations() {
	url := "/reservations"

	s.Run("success: clients get their own page with a cursor", func() {
		views := []*queries.ReservationView{
			builder.NewReservationBuilder().WithClient(s.clientID).BuildReadModel(),
			builder.NewReservationBuilder().WithClient(s.clientID).BuildReadModel(),
		}
		next := &queries.Cursor{After: "djE6MTIzLWFiYw=="}
		s.mockQueries.EXPECT().ListByClient(gomock.Any(), s.clientID, &queries.Cursor{After: "abc"}, 2).
			Return(views, next, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?limit=2&cursor=abc", nil, s.clientToken)

		var response resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Items, 2)
		s.Require().NotNil(response.NextCursor)
		s.Equal(next.After, *response.NextCursor)
	})

	s.Run("success: last page has no cursor and items is never null", func() {
		s.mockQueries.EXPECT().ListByClient(gomock.Any(), s.clientID, gomock.Any(), 0).
			Return(nil, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.clientToken)

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal([]any{}, response["items"])
		s.NotContains(response, "next_cursor")
	})

	s.Run("success: drivers filter by vehicle", func() {
		vehicleID := uuid.New()
		s.mockQueries.EXPECT().ListActiveByVehicle(gomock.Any(), vehicleID).
			Return([]*queries.ReservationView{builder.NewReservationBuilder().WithVehicle(vehicleID).BuildReadModel()}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?vehicle_id="+vehicleID.String(), nil, s.driverToken)

		var response resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Items, 1)
	})

	s.Run("success: drivers list everything without a filter", func() {
		s.mockQueries.EXPECT().ListAll(gomock.Any()).Return([]*queries.ReservationView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.driverToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: invalid query", func() {
		for _, q := range []string{"?limit=-1", "?limit=201", "?vehicle_id=not-a-uuid"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+q, nil, s.driverToken)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
		}
	})

	s.Run("error: malformed cursor", func() {
		s.mockQueries.EXPECT().ListByClient(gomock.Any(), s.clientID, gomock.Any(), gomock.Any()).
			Return(nil, nil, errs.Mark(errs.New("decode cursor"), queries.ErrInvalidCursor)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?cursor=zzz", nil, s.clientToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid cursor")
	})
}

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	s.Run("success: owner reads the reservation", func() {
		view := builder.NewReservationBuilder().WithClient(s.clientID).BuildReadModel()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+view.ID.String(), nil, s.clientToken)

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.ID, response.ID)
	})

	s.Run("error: another client's reservation reads as missing", func() {
		view := builder.NewReservationBuilder().BuildReadModel()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+view.ID.String(), nil, s.clientToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})

	s.Run("success: drivers read any reservation", func() {
		view := builder.NewReservationBuilder().BuildReadModel()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+view.ID.String(), nil, s.driverToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil, s.clientToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

func (s *ReservationHandlerTestSuite) TestTransitions() {
	id := uuid.New()

	s.Run("success: clients cancel their own reservation", func() {
		owned := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) { b.ID = id }).
			WithClient(s.clientID).BuildReadModel()
		view := builder.NewReservationBuilder().WithClient(s.clientID).WithStatus(reservation.StatusCancelled).BuildReadModel()
		gomock.InOrder(
			s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(owned, nil).Times(1),
			s.mockCommands.EXPECT().CancelReservation(gomock.Any(), id).Return(view, nil).Times(1),
		)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/reservations/"+id.String()+"/cancel", nil, s.clientToken)

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("cancelled", response.Status)
	})

	s.Run("error: clients cannot cancel another client's reservation", func() {
		foreign := builder.NewReservationBuilder().BuildReadModel()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), foreign.ID).Return(foreign, nil).Times(1)
		s.mockCommands.EXPECT().CancelReservation(gomock.Any(), gomock.Any()).Times(0)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/reservations/"+foreign.ID.String()+"/cancel", nil, s.clientToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})

	s.Run("success: drivers cancel any reservation without an ownership lookup", func() {
		view := builder.NewReservationBuilder().WithStatus(reservation.StatusCancelled).BuildReadModel()
		s.mockCommands.EXPECT().CancelReservation(gomock.Any(), id).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/reservations/"+id.String()+"/cancel", nil, s.driverToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: cancelling a finalized reservation conflicts", func() {
		s.mockCommands.EXPECT().CancelReservation(gomock.Any(), id).
			Return(nil, errs.Wrap(errs.ErrInvalidTransition, "cannot move finalized reservation to cancelled")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/reservations/"+id.String()+"/cancel", nil, s.driverToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "cannot change")
	})

	s.Run("error: unknown reservation", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(nil, errs.ErrReservationNotFound).Times(1)
		s.mockCommands.EXPECT().CancelReservation(gomock.Any(), gomock.Any()).Times(0)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/reservations/"+id.String()+"/cancel", nil, s.clientToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})

	s.Run("success: drivers finalize", func() {
		view := builder.NewReservationBuilder().WithStatus(reservation.StatusFinalized).BuildReadModel()
		s.mockCommands.EXPECT().FinalizeReservation(gomock.Any(), id).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/reservations/"+id.String()+"/finalize", nil, s.driverToken)

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("finalized", response.Status)
	})

	s.Run("error: clients cannot finalize", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/reservations/"+id.String()+"/finalize", nil, s.clientToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})
}
