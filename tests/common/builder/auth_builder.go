//go:build unit || e2e

package builder

import (
	reqdto "rental-booking/internal/handler/dto/request"
)

type AuthBuilder struct {
	FirstName      string
	FirstSurname   string
	DocumentType   string
	DocumentNumber string
	Email          string
	Phone          string
	Password       string
	Role           string
}

func NewAuthBuilder() *AuthBuilder {
	return &AuthBuilder{
		FirstName:      "Ana",
		FirstSurname:   "Gomez",
		DocumentType:   "CC",
		DocumentNumber: "1000000001",
		Email:          "test@example.com",
		Phone:          "+573001234567",
		Password:       "password123",
		Role:           "client",
	}
}

func (a *AuthBuilder) WithEmail(email string) *AuthBuilder {
	a.Email = email
	return a
}

func (a *AuthBuilder) WithPassword(password string) *AuthBuilder {
	a.Password = password
	return a
}

func (a *AuthBuilder) WithDocument(number string) *AuthBuilder {
	a.DocumentNumber = number
	return a
}

func (a *AuthBuilder) WithRole(role string) *AuthBuilder {
	a.Role = role
	return a
}

func (a *AuthBuilder) BuildDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{
		Email:    a.Email,
		Password: a.Password,
	}
}

func (a *AuthBuilder) BuildRegisterDTO() reqdto.RegisterRequest {
	return reqdto.RegisterRequest{
		FirstName:      a.FirstName,
		FirstSurname:   a.FirstSurname,
		DocumentType:   a.DocumentType,
		DocumentNumber: a.DocumentNumber,
		Email:          a.Email,
		Phone:          a.Phone,
		Password:       a.Password,
		Role:           a.Role,
	}
}
