package repository

import (
	"context"

	"rental-booking/internal/domain/user"
	"rental-booking/internal/infra"
	"rental-booking/internal/infra/repository/converter"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	"rental-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	constraintUsersEmail    = "users_email_key"
	constraintUsersDocument = "users_document_number_key"
)

type UserWriteQueries interface {
	CreateUser(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateUserParams) (uuid.UUID, error)
	UpdateUserPassword(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateUserPasswordParams) (int64, error)
}

type UserRepository struct {
	queries UserWriteQueries
}

func NewUserRepository(queries UserWriteQueries) *UserRepository {
	return &UserRepository{
		queries: queries,
	}
}

func (r *UserRepository) Create(ctx context.Context, tx sqlc.DBTX, u *user.User) (uuid.UUID, error) {
	id, err := r.queries.CreateUser(ctx, tx, converter.UserToInfra(u))
	if err != nil {
		repoErr := infra.WrapRepoErr("failed to create user", err)
		if infra.IsKind(repoErr, infra.KindDuplicateKey) {
			switch infra.ConstraintOf(repoErr) {
			case constraintUsersEmail:
				return uuid.Nil, errs.Mark(repoErr, errs.ErrDuplicateEmail)
			case constraintUsersDocument:
				return uuid.Nil, errs.Mark(repoErr, errs.ErrDuplicateDocument)
			}
		}
		return uuid.Nil, repoErr
	}
	return id, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, tx sqlc.DBTX, email, passwordHash string) error {
	affected, err := r.queries.UpdateUserPassword(ctx, tx, sqlc.UpdateUserPasswordParams{
		Email:        email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update user password", err)
	}
	if affected == 0 {
		return errs.Mark(
			infra.WrapRepoErr("user not found", nil, infra.KindNotFound),
			errs.ErrUserNotFound,
		)
	}
	return nil
}
