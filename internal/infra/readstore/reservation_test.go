//go:build unit

package readstore

import (
	"context"
	"testing"
	"time"

	"rental-booking/internal/infra"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	"rental-booking/internal/pkg/errs"
	"rental-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReservationViewQueries struct {
	mock.Mock
}

func (m *MockReservationViewQueries) GetReservationByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Reservations, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.Reservations), args.Error(1)
}

func (m *MockReservationViewQueries) ListReservationsByClientFirstPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListReservationsByClientFirstPageParams) ([]sqlc.Reservations, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]sqlc.Reservations), args.Error(1)
}

func (m *MockReservationViewQueries) ListReservationsByClientKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListReservationsByClientKeysetParams) ([]sqlc.Reservations, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]sqlc.Reservations), args.Error(1)
}

func (m *MockReservationViewQueries) ListActiveReservationsByVehicle(ctx context.Context, db sqlc.DBTX, vehicleID uuid.UUID) ([]sqlc.Reservations, error) {
	args := m.Called(ctx, db, vehicleID)
	return args.Get(0).([]sqlc.Reservations), args.Error(1)
}

func (m *MockReservationViewQueries) ListActiveReservationsInRange(ctx context.Context, db sqlc.DBTX, arg sqlc.ListActiveReservationsInRangeParams) ([]sqlc.Reservations, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]sqlc.Reservations), args.Error(1)
}

func (m *MockReservationViewQueries) ListReservations(ctx context.Context, db sqlc.DBTX) ([]sqlc.Reservations, error) {
	args := m.Called(ctx, db)
	return args.Get(0).([]sqlc.Reservations), args.Error(1)
}

func (m *MockReservationViewQueries) GetBookingContacts(ctx context.Context, db sqlc.DBTX, arg sqlc.GetBookingContactsParams) (sqlc.GetBookingContactsRow, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(sqlc.GetBookingContactsRow), args.Error(1)
}

func (m *MockReservationViewQueries) GetVehicleForBooking(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetVehicleForBookingRow, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.GetVehicleForBookingRow), args.Error(1)
}

func TestReservationReadStore_FindByID(t *testing.T) {
	row := builder.NewReservationBuilder().BuildInfra()

	t.Run("found", func(t *testing.T) {
		mockQueries := new(MockReservationViewQueries)
		mockQueries.On("GetReservationByID", mock.Anything, mock.Anything, row.ID).Return(row, nil)

		view, err := NewReservationReadStore(mockQueries, nil).FindByID(context.Background(), row.ID)

		require.NoError(t, err)
		assert.Equal(t, row.ID, view.ID)
		assert.Equal(t, row.StartAt.Time, view.StartAt)
		assert.Equal(t, "active", view.Status)
		assert.Equal(t, int64(120000), view.TotalPriceCents)
	})

	t.Run("not found", func(t *testing.T) {
		mockQueries := new(MockReservationViewQueries)
		mockQueries.On("GetReservationByID", mock.Anything, mock.Anything, row.ID).Return(sqlc.Reservations{}, pgx.ErrNoRows)

		_, err := NewReservationReadStore(mockQueries, nil).FindByID(context.Background(), row.ID)

		assert.True(t, errs.Is(err, errs.ErrReservationNotFound))
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestReservationReadStore_FindByClientKeyset(t *testing.T) {
	clientID := uuid.New()
	lastCreated := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	lastID := uuid.New()
	rows := []sqlc.Reservations{
		builder.NewReservationBuilder().WithClient(clientID).BuildInfra(),
		builder.NewReservationBuilder().WithClient(clientID).BuildInfra(),
	}

	mockQueries := new(MockReservationViewQueries)
	mockQueries.On("ListReservationsByClientKeyset", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.ListReservationsByClientKeysetParams) bool {
		return p.ClientID == clientID && p.ID == lastID && p.CreatedAt.Time.Equal(lastCreated) && p.RowLimit == 3
	})).Return(rows, nil)

	views, err := NewReservationReadStore(mockQueries, nil).FindByClientKeyset(context.Background(), clientID, lastCreated, lastID, 3)

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, rows[0].ID, views[0].ID)
	mockQueries.AssertExpectations(t)
}

func TestReservationReadStore_BookingContacts(t *testing.T) {
	clientID, vehicleID := uuid.New(), uuid.New()
	params := sqlc.GetBookingContactsParams{ClientID: clientID, VehicleID: vehicleID}

	t.Run("found", func(t *testing.T) {
		mockQueries := new(MockReservationViewQueries)
		mockQueries.On("GetBookingContacts", mock.Anything, mock.Anything, params).Return(sqlc.GetBookingContactsRow{
			ClientEmail:     "client@example.com",
			ClientFirstName: "Ana",
			OwnerEmail:      "owner@example.com",
			OwnerFirstName:  "Luis",
			VehiclePlate:    "ABC123",
			VehicleModel:    "Spark",
		}, nil)

		c, err := NewReservationReadStore(mockQueries, nil).BookingContacts(context.Background(), clientID, vehicleID)

		require.NoError(t, err)
		assert.Equal(t, "client@example.com", c.ClientEmail)
		assert.Equal(t, "owner@example.com", c.OwnerEmail)
		assert.Equal(t, "ABC123", c.VehiclePlate)
	})

	t.Run("missing", func(t *testing.T) {
		mockQueries := new(MockReservationViewQueries)
		mockQueries.On("GetBookingContacts", mock.Anything, mock.Anything, params).Return(sqlc.GetBookingContactsRow{}, pgx.ErrNoRows)

		_, err := NewReservationReadStore(mockQueries, nil).BookingContacts(context.Background(), clientID, vehicleID)

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}
