package response

import (
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
}

type ProfileResponse struct {
	ID             uuid.UUID `json:"id"`
	FirstName      string    `json:"first_name"`
	SecondName     string    `json:"second_name,omitempty"`
	FirstSurname   string    `json:"first_surname"`
	SecondSurname  string    `json:"second_surname,omitempty"`
	DocumentType   string    `json:"document_type"`
	DocumentNumber string    `json:"document_number"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Role           string    `json:"role"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func FromAuthResult(result *commands.AuthResult, expiresInSeconds int64) (*AuthResponse, error) {
	resp := &AuthResponse{
		AccessToken: result.Token,
		ExpiresIn:   expiresInSeconds,
	}
	if err := copier.Copy(&resp.User, &result.User); err != nil {
		return nil, err
	}
	return resp, nil
}

func FromUserView(v *queries.UserView) (*ProfileResponse, error) {
	var resp ProfileResponse
	if err := copier.Copy(&resp, v); err != nil {
		return nil, err
	}
	return &resp, nil
}
