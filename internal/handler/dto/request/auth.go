package request

import (
	"rental-booking/internal/usecase/commands"

	"github.com/jinzhu/copier"
)

type RegisterRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	SecondName     string `json:"second_name"`
	FirstSurname   string `json:"first_surname" binding:"required"`
	SecondSurname  string `json:"second_surname"`
	DocumentType   string `json:"document_type" binding:"required"`
	DocumentNumber string `json:"document_number" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"required"`
	Password       string `json:"password" binding:"required,min=8"`
	Role           string `json:"role" binding:"required"`
}

func (r *RegisterRequest) ToInput() (commands.RegisterInput, error) {
	var in commands.RegisterInput
	if err := copier.Copy(&in, r); err != nil {
		return commands.RegisterInput{}, err
	}
	return in, nil
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (r *LoginRequest) ToInput() commands.LoginInput {
	return commands.LoginInput{Email: r.Email, Password: r.Password}
}

// VerifyRequest confirms a pending flow. Type is register, login or reset.
type VerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
	Type  string `json:"type" binding:"required"`
}

type ResendCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Type  string `json:"type" binding:"required"`
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6,numeric"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}
