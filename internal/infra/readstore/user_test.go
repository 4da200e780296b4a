//go:build unit

package readstore

import (
	"context"
	"database/sql"
	"testing"

	"rental-booking/internal/domain/user"
	"rental-booking/internal/infra"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	"rental-booking/internal/pkg/errs"
	"rental-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserReadQueries struct {
	mock.Mock
}

func (m *MockUserReadQueries) FindUserByEmail(ctx context.Context, db sqlc.DBTX, email string) (sqlc.Users, error) {
	args := m.Called(ctx, db, email)
	return args.Get(0).(sqlc.Users), args.Error(1)
}

func (m *MockUserReadQueries) FindUserByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Users, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.Users), args.Error(1)
}

func (m *MockUserReadQueries) ExistsUserByEmail(ctx context.Context, db sqlc.DBTX, email string) (bool, error) {
	args := m.Called(ctx, db, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserReadQueries) ExistsUserByDocument(ctx context.Context, db sqlc.DBTX, documentNumber string) (bool, error) {
	args := m.Called(ctx, db, documentNumber)
	return args.Bool(0), args.Error(1)
}

func TestFindByEmail(t *testing.T) {
	testUser := builder.NewUserBuilder().BuildInfra()
	driver := builder.NewUserBuilder().WithRole("driver").WithoutMiddleNames().BuildInfra()

	tests := []struct {
		name       string
		email      string
		mockReturn sqlc.Users
		mockError  error
		wantRole   user.Role
		wantErrIs  error
		wantKind   infra.RepositoryErrorKind
	}{
		{
			name:       "success - client",
			email:      testUser.Email,
			mockReturn: testUser,
			wantRole:   user.RoleClient,
		},
		{
			name:       "success - driver without middle names",
			email:      driver.Email,
			mockReturn: driver,
			wantRole:   user.RoleDriver,
		},
		{
			name:       "user not found",
			email:      "notfound@example.com",
			mockReturn: sqlc.Users{},
			mockError:  sql.ErrNoRows,
			wantErrIs:  errs.ErrUserNotFound,
			wantKind:   infra.KindNotFound,
		},
		{
			name:       "database error",
			email:      testUser.Email,
			mockReturn: sqlc.Users{},
			mockError:  assert.AnError,
			wantKind:   infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockUserReadQueries)
			mockQueries.On("FindUserByEmail", mock.Anything, mock.Anything, tt.email).Return(tt.mockReturn, tt.mockError)

			store := NewUserReadStore(mockQueries, nil)

			got, err := store.FindByEmail(context.Background(), tt.email)

			if tt.mockError != nil {
				require.Error(t, err)
				assert.Nil(t, got)
				assert.True(t, infra.IsKind(err, tt.wantKind))
				if tt.wantErrIs != nil {
					assert.True(t, errs.Is(err, tt.wantErrIs))
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.mockReturn.ID, got.ID())
				assert.Equal(t, tt.mockReturn.PasswordHash, got.PasswordHash())
				assert.Equal(t, tt.wantRole, got.Role())
			}

			mockQueries.AssertExpectations(t)
		})
	}
}

func TestFindByID(t *testing.T) {
	row := builder.NewUserBuilder().WithoutMiddleNames().BuildInfra()
	row.SecondName = pgtype.Text{}

	mockQueries := new(MockUserReadQueries)
	mockQueries.On("FindUserByID", mock.Anything, mock.Anything, row.ID).Return(row, nil)

	view, err := NewUserReadStore(mockQueries, nil).FindByID(context.Background(), row.ID)

	require.NoError(t, err)
	assert.Equal(t, row.ID, view.ID)
	assert.Equal(t, "", view.SecondName)
	assert.Equal(t, row.Email, view.Email)
	assert.Equal(t, "client", view.Role)
}

func TestExistenceChecks(t *testing.T) {
	mockQueries := new(MockUserReadQueries)
	mockQueries.On("ExistsUserByEmail", mock.Anything, mock.Anything, "a@x.com").Return(true, nil)
	mockQueries.On("ExistsUserByDocument", mock.Anything, mock.Anything, "123").Return(false, assert.AnError)

	store := NewUserReadStore(mockQueries, nil)

	exists, err := store.EmailExists(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = store.DocumentExists(context.Background(), "123")
	assert.True(t, infra.IsKind(err, infra.KindDBFailure))
}
