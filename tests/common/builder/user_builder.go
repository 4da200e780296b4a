//go:build unit || e2e

package builder

import (
	"time"

	"rental-booking/internal/domain/user"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	"rental-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserBuilder struct {
	FirstName      string
	SecondName     string
	FirstSurname   string
	SecondSurname  string
	DocumentType   string
	DocumentNumber string
	Email          string
	Phone          string
	PasswordHash   string
	Role           string
	CreatedAt      time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		FirstName:      "Ana",
		SecondName:     "Maria",
		FirstSurname:   "Lopez",
		SecondSurname:  "Rojas",
		DocumentType:   "CC",
		DocumentNumber: "1020304050",
		Email:          "test@example.com",
		Phone:          "3001234567",
		PasswordHash:   "hashed_password",
		Role:           "client",
		CreatedAt:      time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) name() user.FullName {
	return user.FullName{
		FirstName:     u.FirstName,
		SecondName:    u.SecondName,
		FirstSurname:  u.FirstSurname,
		SecondSurname: u.SecondSurname,
	}
}

// Build methods
func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}

	return user.NewUser(user.NewUserParams{
		Name:         u.name(),
		Document:     user.Document{Type: u.DocumentType, Number: u.DocumentNumber},
		Email:        email,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		Role:         role,
		CreatedAt:    u.CreatedAt,
	})
}

func (u *UserBuilder) BuildInfra() sqlc.Users {
	return sqlc.Users{
		ID:             uuid.New(),
		FirstName:      u.FirstName,
		SecondName:     pgtype.Text{String: u.SecondName, Valid: u.SecondName != ""},
		FirstSurname:   u.FirstSurname,
		SecondSurname:  pgtype.Text{String: u.SecondSurname, Valid: u.SecondSurname != ""},
		DocumentType:   u.DocumentType,
		DocumentNumber: u.DocumentNumber,
		Email:          u.Email,
		Phone:          u.Phone,
		PasswordHash:   u.PasswordHash,
		Role:           u.Role,
		CreatedAt:      pgtype.Timestamptz{Time: u.CreatedAt, Valid: true},
	}
}

func (u *UserBuilder) BuildReadModel() *queries.UserView {
	return &queries.UserView{
		ID:             uuid.New(),
		FirstName:      u.FirstName,
		SecondName:     u.SecondName,
		FirstSurname:   u.FirstSurname,
		SecondSurname:  u.SecondSurname,
		DocumentType:   u.DocumentType,
		DocumentNumber: u.DocumentNumber,
		Email:          u.Email,
		Phone:          u.Phone,
		Role:           u.Role,
		CreatedAt:      u.CreatedAt,
	}
}

// Fluent builder methods
func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	u.PasswordHash = hash
	return u
}

func (u *UserBuilder) WithDocument(docType, number string) *UserBuilder {
	u.DocumentType = docType
	u.DocumentNumber = number
	return u
}

func (u *UserBuilder) WithoutMiddleNames() *UserBuilder {
	u.SecondName = ""
	u.SecondSurname = ""
	return u
}
