package readstore

import (
	"context"

	"rental-booking/internal/domain/user"
	"rental-booking/internal/infra"
	"rental-booking/internal/infra/repository/converter"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/pkg/pgconv"
	"rental-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadQueries interface {
	FindUserByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Users, error)
	FindUserByEmail(ctx context.Context, db sqlc.DBTX, email string) (sqlc.Users, error)
	ExistsUserByEmail(ctx context.Context, db sqlc.DBTX, email string) (bool, error)
	ExistsUserByDocument(ctx context.Context, db sqlc.DBTX, documentNumber string) (bool, error)
}

type UserReadStore struct {
	queries UserReadQueries
	db      sqlc.DBTX
}

func NewUserReadStore(queries UserReadQueries, db sqlc.DBTX) *UserReadStore {
	return &UserReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	row, err := r.queries.FindUserByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(infra.WrapRepoErr("user not found", err, infra.KindNotFound), errs.ErrUserNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	return toUserView(row), nil
}

// FindByEmail returns the full aggregate, password hash included, for
// credential checks on the command side.
func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	row, err := r.queries.FindUserByEmail(ctx, r.db, email)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(infra.WrapRepoErr("user not found", err, infra.KindNotFound), errs.ErrUserNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}

	u, err := converter.UserFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode user", err)
	}
	return u, nil
}

func (r *UserReadStore) EmailExists(ctx context.Context, email string) (bool, error) {
	exists, err := r.queries.ExistsUserByEmail(ctx, r.db, email)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check email", err)
	}
	return exists, nil
}

func (r *UserReadStore) DocumentExists(ctx context.Context, documentNumber string) (bool, error) {
	exists, err := r.queries.ExistsUserByDocument(ctx, r.db, documentNumber)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check document", err)
	}
	return exists, nil
}

func toUserView(row sqlc.Users) *queries.UserView {
	return &queries.UserView{
		ID:             row.ID,
		FirstName:      row.FirstName,
		SecondName:     pgconv.StringFromPgtype(row.SecondName),
		FirstSurname:   row.FirstSurname,
		SecondSurname:  pgconv.StringFromPgtype(row.SecondSurname),
		DocumentType:   row.DocumentType,
		DocumentNumber: row.DocumentNumber,
		Email:          row.Email,
		Phone:          row.Phone,
		Role:           row.Role,
		CreatedAt:      pgconv.TimeFromPgtype(row.CreatedAt),
	}
}
