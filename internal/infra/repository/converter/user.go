package converter

import (
	"rental-booking/internal/domain/user"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/pkg/pgconv"
)

func UserToInfra(u *user.User) sqlc.CreateUserParams {
	name := u.Name()
	return sqlc.CreateUserParams{
		FirstName:      name.FirstName,
		SecondName:     pgconv.OptionalStringToPgtype(name.SecondName),
		FirstSurname:   name.FirstSurname,
		SecondSurname:  pgconv.OptionalStringToPgtype(name.SecondSurname),
		DocumentType:   u.Document().Type,
		DocumentNumber: u.Document().Number,
		Email:          u.Email().Value(),
		Phone:          u.Phone(),
		PasswordHash:   u.PasswordHash(),
		Role:           u.Role().String(),
		CreatedAt:      pgconv.TimeToPgtype(u.CreatedAt()),
	}
}

func UserFromInfra(row sqlc.Users) (*user.User, error) {
	email, err := user.NewEmail(row.Email)
	if err != nil {
		return nil, errs.Wrapf(err, "stored user %s", row.ID)
	}
	role, err := user.NewRole(row.Role)
	if err != nil {
		return nil, errs.Wrapf(err, "stored user %s", row.ID)
	}

	return user.Reconstruct(
		row.ID,
		user.FullName{
			FirstName:     row.FirstName,
			SecondName:    pgconv.StringFromPgtype(row.SecondName),
			FirstSurname:  row.FirstSurname,
			SecondSurname: pgconv.StringFromPgtype(row.SecondSurname),
		},
		user.Document{Type: row.DocumentType, Number: row.DocumentNumber},
		email,
		row.Phone,
		row.PasswordHash,
		role,
		pgconv.TimeFromPgtype(row.CreatedAt),
	), nil
}
