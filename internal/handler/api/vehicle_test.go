//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"rental-booking/internal/handler/api"
	resdto "rental-booking/internal/handler/dto/response"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/queries"
	"rental-booking/tests/common/builder"
	"rental-booking/tests/common/httptest"
	queriesmock "rental-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type VehicleHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockReservationQueries
}

func (s *VehicleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	h := api.NewVehicleHandler(s.mockQueries)
	s.router.GET("/vehicles/:id/availability", h.Availability)
}

func (s *VehicleHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestVehicleHandlerSuite(t *testing.T) {
	suite.Run(t, new(VehicleHandlerTestSuite))
}

func (s *VehicleHandlerTestSuite) TestAvailability() {
	vehicleID := uuid.New()
	from := "2024-06-01T08:00:00Z"
	to := "2024-06-01T18:00:00Z"
	url := "/vehicles/" + vehicleID.String() + "/availability?from=" + from + "&to=" + to
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	s.Run("success: returns free windows around busy reservations", func() {
		busy := builder.NewReservationBuilder().
			WithVehicle(vehicleID).
			WithWindow(day.Add(10*time.Hour), day.Add(14*time.Hour)).
			BuildReadModel()
		s.mockQueries.EXPECT().Availability(gomock.Any(), vehicleID, from, to).
			Return(&queries.AvailabilityView{
				VehicleID: vehicleID,
				From:      day.Add(8 * time.Hour),
				To:        day.Add(18 * time.Hour),
				Free: []queries.AvailabilityWindow{
					{Start: day.Add(8 * time.Hour), End: day.Add(10 * time.Hour)},
					{Start: day.Add(14 * time.Hour), End: day.Add(18 * time.Hour)},
				},
				Busy: []*queries.ReservationView{busy},
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(vehicleID, response.VehicleID)
		s.Require().Len(response.Free, 2)
		s.True(day.Add(10 * time.Hour).Equal(response.Free[0].End))
		s.Require().Len(response.Busy, 1)
		s.Equal(busy.ID, response.Busy[0].ID)
	})

	s.Run("error: from and to are required", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/vehicles/"+vehicleID.String()+"/availability?from="+from, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			queriesError   error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "unknown vehicle", queriesError: errs.ErrVehicleNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "Vehicle not found"},
			{name: "reversed window", queriesError: errs.ErrInvalidInterval, expectedStatus: http.StatusBadRequest, expectedMsg: "end precedes start"},
			{name: "unparseable instant", queriesError: errs.ErrInvalidTimestamp, expectedStatus: http.StatusBadRequest, expectedMsg: "Invalid timestamp"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().Availability(gomock.Any(), vehicleID, from, to).
					Return(nil, tc.queriesError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
