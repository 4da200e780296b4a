//go:build e2e

package reservation_test

import (
	"net/http"
	"net/url"
	"sync"
	"testing"
	"time"

	"rental-booking/internal/handler/dto/request"
	resdto "rental-booking/internal/handler/dto/response"
	"rental-booking/internal/infra/notify"
	"rental-booking/tests/common/authtest"
	"rental-booking/tests/common/dbtest"
	"rental-booking/tests/common/httptest"
	"rental-booking/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const reservationsURL = "/api/reservations"

type reservationSuite struct {
	e2e.SharedSuite

	clientID    uuid.UUID
	clientToken string
	driverToken string
	vehicleID   uuid.UUID
	base        time.Time
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(reservationSuite))
}

func (s *reservationSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	var driverID uuid.UUID
	driverID, s.driverToken = authtest.CreateAndLogin(s.T(), s.DB, s.Router, s.Mailbox, "driver@example.com", "driver")
	s.clientID, s.clientToken = authtest.CreateAndLogin(s.T(), s.DB, s.Router, s.Mailbox, "client@example.com", "client")
	s.vehicleID = dbtest.CreateTestVehicle(s.T(), s.DB, driverID, 240000)
	s.base = time.Now().UTC().Add(48 * time.Hour).Truncate(time.Hour)
}

func (s *reservationSuite) booking(start, end time.Time) request.CreateReservationRequest {
	return request.CreateReservationRequest{
		VehicleID:          s.vehicleID,
		StartAt:            start.Format(time.RFC3339),
		EndAt:              end.Format(time.RFC3339),
		OriginAddress:      "Calle 10 #5-20",
		DestinationAddress: "Carrera 7 #32-16",
	}
}

func (s *reservationSuite) create(req request.CreateReservationRequest, token string) resdto.ReservationResponse {
	s.T().Helper()
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, req, token)
	var resp resdto.ReservationResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
	return resp
}

func (s *reservationSuite) TestCreateReservation() {
	s.Run("price derives from the daily rate", func() {
		resp := s.create(s.booking(s.base, s.base.Add(3*time.Hour)), s.clientToken)

		assert.Equal(s.T(), "active", resp.Status)
		assert.Equal(s.T(), s.clientID, resp.ClientID)
		// 240000 cents per day over three hours
		assert.Equal(s.T(), int64(30000), resp.TotalPriceCents)
		assert.True(s.T(), s.base.Equal(resp.StartAt))
	})

	s.Run("client and vehicle owner are both notified", func() {
		s.create(s.booking(s.base, s.base.Add(2*time.Hour)), s.clientToken)

		for _, to := range []string{"client@example.com", "driver@example.com"} {
			require.Eventually(s.T(), func() bool {
				for _, msg := range s.Mailbox.Messages(to) {
					if msg.Kind == notify.KindReservationCreated {
						return true
					}
				}
				return false
			}, 5*time.Second, 10*time.Millisecond, "no booking notice for %s", to)
		}
	})

	s.Run("instants are truncated to the hour", func() {
		resp := s.create(s.booking(s.base.Add(25*time.Minute), s.base.Add(2*time.Hour+59*time.Minute)), s.clientToken)

		assert.True(s.T(), s.base.Equal(resp.StartAt), resp.StartAt)
		assert.True(s.T(), s.base.Add(2*time.Hour).Equal(resp.EndAt), resp.EndAt)
	})

	s.Run("overlapping slot is rejected", func() {
		s.create(s.booking(s.base, s.base.Add(3*time.Hour)), s.clientToken)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL,
			s.booking(s.base.Add(time.Hour), s.base.Add(5*time.Hour)), s.clientToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "not available")
	})

	s.Run("touching boundary is rejected", func() {
		s.create(s.booking(s.base, s.base.Add(3*time.Hour)), s.clientToken)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL,
			s.booking(s.base.Add(3*time.Hour), s.base.Add(5*time.Hour)), s.clientToken)
		assert.Equal(s.T(), http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("end before start", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL,
			s.booking(s.base.Add(3*time.Hour), s.base), s.clientToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "end precedes start")
	})

	s.Run("unknown vehicle", func() {
		req := s.booking(s.base, s.base.Add(time.Hour))
		req.VehicleID = uuid.New()
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, req, s.clientToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Vehicle not found")
	})

	s.Run("drivers cannot book", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL,
			s.booking(s.base, s.base.Add(time.Hour)), s.driverToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("concurrent requests for one slot book it once", func() {
		const attempts = 10
		req := s.booking(s.base, s.base.Add(4*time.Hour))

		var wg sync.WaitGroup
		codes := make([]int, attempts)
		for i := range attempts {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, req, s.clientToken)
				codes[i] = w.Code
			}()
		}
		wg.Wait()

		created := 0
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
			default:
				s.T().Errorf("unexpected status %d", code)
			}
		}
		assert.Equal(s.T(), 1, created)
		assert.Equal(s.T(), 1, dbtest.CountActiveReservations(s.T(), s.DB, s.vehicleID))
	})
}

func (s *reservationSuite) TestTransitions() {
	s.Run("cancel frees the slot and is idempotent", func() {
		resp := s.create(s.booking(s.base, s.base.Add(2*time.Hour)), s.clientToken)
		cancelURL := reservationsURL + "/" + resp.ID.String() + "/cancel"

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPut, cancelURL, nil, s.clientToken)
		var cancelled resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &cancelled)
		assert.Equal(s.T(), "cancelled", cancelled.Status)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPut, cancelURL, nil, s.clientToken)
		assert.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

		s.create(s.booking(s.base, s.base.Add(2*time.Hour)), s.clientToken)
	})

	s.Run("driver finalizes and the reservation stays closed", func() {
		resp := s.create(s.booking(s.base, s.base.Add(2*time.Hour)), s.clientToken)
		finalizeURL := reservationsURL + "/" + resp.ID.String() + "/finalize"

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPut, finalizeURL, nil, s.clientToken)
		assert.Equal(s.T(), http.StatusForbidden, w.Code)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPut, finalizeURL, nil, s.driverToken)
		var finalized resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &finalized)
		assert.Equal(s.T(), "finalized", finalized.Status)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPut,
			reservationsURL+"/"+resp.ID.String()+"/cancel", nil, s.clientToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "cannot change")
	})

	s.Run("clients cannot cancel other clients' reservations", func() {
		resp := s.create(s.booking(s.base, s.base.Add(2*time.Hour)), s.clientToken)
		_, otherToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, s.Mailbox, "other@example.com", "client")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPut,
			reservationsURL+"/"+resp.ID.String()+"/cancel", nil, otherToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Reservation not found")
		assert.Equal(s.T(), 1, dbtest.CountActiveReservations(s.T(), s.DB, s.vehicleID))
	})

	s.Run("unknown reservation", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPut,
			reservationsURL+"/"+uuid.NewString()+"/cancel", nil, s.clientToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Reservation not found")
	})
}

func (s *reservationSuite) TestList() {
	s.Run("clients page through their own reservations", func() {
		for i := range 3 {
			start := s.base.Add(time.Duration(i*5) * time.Hour)
			s.create(s.booking(start, start.Add(time.Hour)), s.clientToken)
		}

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, reservationsURL+"?limit=2", nil, s.clientToken)
		var page resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &page)
		require.Len(s.T(), page.Items, 2)
		require.NotNil(s.T(), page.NextCursor)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			reservationsURL+"?limit=2&cursor="+url.QueryEscape(*page.NextCursor), nil, s.clientToken)
		var rest resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &rest)
		require.Len(s.T(), rest.Items, 1)
		assert.Nil(s.T(), rest.NextCursor)
	})

	s.Run("drivers filter active reservations by vehicle", func() {
		kept := s.create(s.booking(s.base, s.base.Add(time.Hour)), s.clientToken)
		dropped := s.create(s.booking(s.base.Add(5*time.Hour), s.base.Add(6*time.Hour)), s.clientToken)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPut,
			reservationsURL+"/"+dropped.ID.String()+"/cancel", nil, s.clientToken)
		require.Equal(s.T(), http.StatusOK, w.Code)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			reservationsURL+"?vehicle_id="+s.vehicleID.String(), nil, s.driverToken)
		var list resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &list)
		require.Len(s.T(), list.Items, 1)
		assert.Equal(s.T(), kept.ID, list.Items[0].ID)
	})

	s.Run("clients cannot read other clients' reservations", func() {
		resp := s.create(s.booking(s.base, s.base.Add(time.Hour)), s.clientToken)
		_, otherToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, s.Mailbox, "other@example.com", "client")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, reservationsURL+"/"+resp.ID.String(), nil, otherToken)
		assert.Equal(s.T(), http.StatusNotFound, w.Code)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, reservationsURL+"/"+resp.ID.String(), nil, s.clientToken)
		assert.Equal(s.T(), http.StatusOK, w.Code)
	})
}

func (s *reservationSuite) TestAvailability() {
	s.Run("busy reservation splits the free windows", func() {
		s.create(s.booking(s.base.Add(2*time.Hour), s.base.Add(4*time.Hour)), s.clientToken)

		availabilityURL := "/api/vehicles/" + s.vehicleID.String() + "/availability?from=" +
			s.base.Format(time.RFC3339) + "&to=" + s.base.Add(8*time.Hour).Format(time.RFC3339)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, availabilityURL, nil, "")

		var resp resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		require.Len(s.T(), resp.Busy, 1)
		require.Len(s.T(), resp.Free, 2)
		assert.True(s.T(), s.base.Equal(resp.Free[0].Start))
		assert.True(s.T(), s.base.Add(8*time.Hour).Equal(resp.Free[1].End))
	})
}
