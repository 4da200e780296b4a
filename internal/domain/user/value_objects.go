package user

import (
	"regexp"
	"strings"

	"rental-booking/internal/pkg/errs"
)

var (
	ErrInvalidEmail = errs.New("invalid email format")
	ErrInvalidRole  = errs.New("invalid role")
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

type FullName struct {
	FirstName     string
	SecondName    string
	FirstSurname  string
	SecondSurname string
}

func (n FullName) Display() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{n.FirstName, n.SecondName, n.FirstSurname, n.SecondSurname} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

type Document struct {
	Type   string
	Number string
}
