package verification

import (
	"encoding/json"

	"rental-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// RegistrationPayload holds the submitted sign-up form until the code is
// confirmed. The password stays in clear text until finalization hashes it.
type RegistrationPayload struct {
	FirstName      string `json:"first_name"`
	SecondName     string `json:"second_name,omitempty"`
	FirstSurname   string `json:"first_surname"`
	SecondSurname  string `json:"second_surname,omitempty"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Password       string `json:"password"`
	Role           string `json:"role"`
}

// LoginPayload is the minimal identity captured after the credential check.
type LoginPayload struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
}

type ResetPayload struct {
	Email string `json:"email"`
}

func Encode(v any) (json.RawMessage, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errs.Wrap(err, "encode verification payload")
	}
	return b, nil
}

func Decode[T any](raw json.RawMessage) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, errs.Wrap(err, "decode verification payload")
	}
	return v, nil
}
