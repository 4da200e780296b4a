package user

import (
	"strings"
	"time"

	"rental-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type User struct {
	id           uuid.UUID
	name         FullName
	document     Document
	email        Email
	phone        string
	passwordHash string
	role         Role
	createdAt    time.Time
}

type NewUserParams struct {
	Name         FullName
	Document     Document
	Email        Email
	Phone        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// NewUser requires first name, first surname, document, phone and a hashed password.
func NewUser(p NewUserParams) (*User, error) {
	required := map[string]string{
		"first_name":      p.Name.FirstName,
		"first_surname":   p.Name.FirstSurname,
		"document_type":   p.Document.Type,
		"document_number": p.Document.Number,
		"email":           p.Email.Value(),
		"phone":           p.Phone,
		"password_hash":   p.PasswordHash,
	}
	for field, v := range required {
		if strings.TrimSpace(v) == "" {
			return nil, errs.Mark(errs.New("missing "+field), errs.ErrMissingField)
		}
	}
	if _, err := NewRole(string(p.Role)); err != nil {
		return nil, err
	}

	return &User{
		id:           uuid.New(),
		name:         p.Name,
		document:     p.Document,
		email:        p.Email,
		phone:        p.Phone,
		passwordHash: p.PasswordHash,
		role:         p.Role,
		createdAt:    p.CreatedAt,
	}, nil
}

func Reconstruct(id uuid.UUID, name FullName, document Document, email Email, phone, passwordHash string, role Role, createdAt time.Time) *User {
	return &User{
		id:           id,
		name:         name,
		document:     document,
		email:        email,
		phone:        phone,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    createdAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() FullName       { return u.name }
func (u *User) Document() Document   { return u.document }
func (u *User) Email() Email         { return u.email }
func (u *User) Phone() string        { return u.phone }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }
