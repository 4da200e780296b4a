package verification

import (
	"strings"

	"rental-booking/internal/pkg/errs"
)

var ErrInvalidKind = errs.New("invalid verification kind")

// Kind selects the namespace a pending verification lives in. The same
// identity may hold one pending entry per kind.
type Kind string

const (
	KindRegister      Kind = "register"
	KindLogin         Kind = "login"
	KindPasswordReset Kind = "reset"
)

func NewKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindRegister, KindLogin, KindPasswordReset:
		return k, nil
	default:
		return "", ErrInvalidKind
	}
}

func (k Kind) String() string {
	return string(k)
}

type Key struct {
	Identity string
	Kind     Kind
}

// NewKey lowercases the identity so that address case never splits a flow.
func NewKey(identity string, kind Kind) Key {
	return Key{Identity: strings.ToLower(strings.TrimSpace(identity)), Kind: kind}
}

func (k Key) String() string {
	return string(k.Kind) + ":" + k.Identity
}
