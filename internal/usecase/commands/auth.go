package commands

import (
	"context"
	"log/slog"
	"strings"

	"rental-booking/internal/domain/user"
	"rental-booking/internal/domain/verification"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrTokenGeneration = errs.New("token generation failed")

type RegisterInput struct {
	FirstName      string
	SecondName     string
	FirstSurname   string
	SecondSurname  string
	DocumentType   string
	DocumentNumber string
	Email          string
	Phone          string
	Password       string
	Role           string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthenticatedUser struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  user.Role
}

type AuthResult struct {
	User  AuthenticatedUser
	Token string
}

// AuthCommands drives the code-confirmed flows. Each Start* call stores a
// pending entry and mails its code; the matching Verify* call finalizes it.
type AuthCommands interface {
	StartRegistration(ctx context.Context, in RegisterInput) error
	StartLogin(ctx context.Context, in LoginInput) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResendCode(ctx context.Context, email string, kind verification.Kind) error

	VerifyRegistration(ctx context.Context, email, code string) (*AuthResult, error)
	VerifyLogin(ctx context.Context, email, code string) (*AuthResult, error)
	CheckResetCode(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

type authCommandsImpl struct {
	uow      shared.UnitOfWork
	codes    CodeStore
	notifier NotificationSender
	tokens   TokenIssuer
	hasher   PasswordHasher
	clock    clock.Clock
}

func NewAuthCommands(
	uow shared.UnitOfWork,
	codes CodeStore,
	notifier NotificationSender,
	tokens TokenIssuer,
	hasher PasswordHasher,
	clock clock.Clock,
) AuthCommands {
	return &authCommandsImpl{
		uow:      uow,
		codes:    codes,
		notifier: notifier,
		tokens:   tokens,
		hasher:   hasher,
		clock:    clock,
	}
}

func (a *authCommandsImpl) StartRegistration(ctx context.Context, in RegisterInput) error {
	payload, err := a.registrationPayload(in)
	if err != nil {
		return err
	}

	reads := a.uow.CommandReads()
	exists, err := reads.EmailExists(ctx, payload.Email)
	if err != nil {
		return asStorage(err)
	}
	if exists {
		return errs.Wrapf(errs.ErrDuplicateEmail, "email %s", payload.Email)
	}
	exists, err = reads.DocumentExists(ctx, payload.DocumentNumber)
	if err != nil {
		return asStorage(err)
	}
	if exists {
		return errs.Wrapf(errs.ErrDuplicateDocument, "document %s", payload.DocumentNumber)
	}

	return a.issue(ctx, payload.Email, verification.KindRegister, payload)
}

func (a *authCommandsImpl) registrationPayload(in RegisterInput) (verification.RegistrationPayload, error) {
	required := []struct{ field, value string }{
		{"first_name", in.FirstName},
		{"first_surname", in.FirstSurname},
		{"document_type", in.DocumentType},
		{"document_number", in.DocumentNumber},
		{"email", in.Email},
		{"phone", in.Phone},
		{"password", in.Password},
		{"role", in.Role},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return verification.RegistrationPayload{}, errs.Mark(errs.Newf("missing %s", f.field), errs.ErrMissingField)
		}
	}

	email, err := user.NewEmail(in.Email)
	if err != nil {
		return verification.RegistrationPayload{}, err
	}
	role, err := user.NewRole(strings.TrimSpace(in.Role))
	if err != nil {
		return verification.RegistrationPayload{}, err
	}
	if !role.SelfRegistrable() {
		return verification.RegistrationPayload{}, errs.Wrapf(user.ErrInvalidRole, "role %s cannot sign up", role)
	}

	return verification.RegistrationPayload{
		FirstName:      strings.TrimSpace(in.FirstName),
		SecondName:     strings.TrimSpace(in.SecondName),
		FirstSurname:   strings.TrimSpace(in.FirstSurname),
		SecondSurname:  strings.TrimSpace(in.SecondSurname),
		DocumentType:   strings.TrimSpace(in.DocumentType),
		DocumentNumber: strings.TrimSpace(in.DocumentNumber),
		Email:          strings.ToLower(email.Value()),
		Phone:          strings.TrimSpace(in.Phone),
		Password:       in.Password,
		Role:           role.String(),
	}, nil
}

func (a *authCommandsImpl) StartLogin(ctx context.Context, in LoginInput) error {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return errs.Mark(errs.New("missing email or password"), errs.ErrMissingField)
	}

	u, err := a.uow.CommandReads().UserByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if errs.Is(err, errs.ErrUserNotFound) {
			return errs.Wrap(errs.ErrInvalidCredentials, "unknown email")
		}
		return asStorage(err)
	}
	if err := a.hasher.Compare(u.PasswordHash(), in.Password); err != nil {
		return errs.Wrap(errs.ErrInvalidCredentials, "password mismatch")
	}

	return a.issue(ctx, u.Email().Value(), verification.KindLogin, verification.LoginPayload{
		UserID: u.ID(),
		Email:  u.Email().Value(),
		Role:   u.Role().String(),
	})
}

func (a *authCommandsImpl) RequestPasswordReset(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return errs.Mark(errs.New("missing email"), errs.ErrMissingField)
	}

	u, err := a.uow.CommandReads().UserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return asStorage(err)
	}

	return a.issue(ctx, u.Email().Value(), verification.KindPasswordReset, verification.ResetPayload{
		Email: u.Email().Value(),
	})
}

func (a *authCommandsImpl) ResendCode(ctx context.Context, email string, kind verification.Kind) error {
	if strings.TrimSpace(email) == "" {
		return errs.Mark(errs.New("missing email"), errs.ErrMissingField)
	}

	key := verification.NewKey(email, kind)
	code, err := a.codes.Reissue(ctx, key)
	if err != nil {
		return storeErr(err)
	}
	a.sendCode(ctx, key, code)
	return nil
}

func (a *authCommandsImpl) VerifyRegistration(ctx context.Context, email, code string) (*AuthResult, error) {
	pending, err := a.take(ctx, verification.NewKey(email, verification.KindRegister), code)
	if err != nil {
		return nil, err
	}
	payload, err := verification.Decode[verification.RegistrationPayload](pending.Payload)
	if err != nil {
		return nil, asStorage(err)
	}

	u, err := a.newUser(payload)
	if err != nil {
		a.restore(ctx, pending)
		return nil, err
	}

	// The entry comes back after a failed insert so the caller can retry with the same code.
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Users().Create(ctx, tx.DB(), u)
		return err
	})
	if err != nil {
		a.restore(ctx, pending)
		return nil, asStorage(err)
	}

	return a.authenticate(u.ID(), u.Name().Display(), u.Email().Value(), u.Role())
}

func (a *authCommandsImpl) newUser(p verification.RegistrationPayload) (*user.User, error) {
	email, err := user.NewEmail(p.Email)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(p.Role)
	if err != nil {
		return nil, err
	}
	hash, err := a.hasher.Hash(p.Password)
	if err != nil {
		return nil, errs.Wrap(err, "hash password")
	}

	return user.NewUser(user.NewUserParams{
		Name: user.FullName{
			FirstName:     p.FirstName,
			SecondName:    p.SecondName,
			FirstSurname:  p.FirstSurname,
			SecondSurname: p.SecondSurname,
		},
		Document:     user.Document{Type: p.DocumentType, Number: p.DocumentNumber},
		Email:        email,
		Phone:        p.Phone,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    a.clock.Now(),
	})
}

func (a *authCommandsImpl) VerifyLogin(ctx context.Context, email, code string) (*AuthResult, error) {
	pending, err := a.take(ctx, verification.NewKey(email, verification.KindLogin), code)
	if err != nil {
		return nil, err
	}
	payload, err := verification.Decode[verification.LoginPayload](pending.Payload)
	if err != nil {
		return nil, asStorage(err)
	}

	// The account may have been removed while the code was in flight; the
	// entry then stays gone.
	u, err := a.uow.CommandReads().UserByEmail(ctx, payload.Email)
	if err != nil {
		if !errs.Is(err, errs.ErrUserNotFound) {
			a.restore(ctx, pending)
		}
		return nil, asStorage(err)
	}

	result, err := a.authenticate(u.ID(), u.Name().Display(), u.Email().Value(), u.Role())
	if err != nil {
		a.restore(ctx, pending)
		return nil, err
	}
	return result, nil
}

func (a *authCommandsImpl) CheckResetCode(ctx context.Context, email, code string) error {
	_, err := a.check(ctx, verification.NewKey(email, verification.KindPasswordReset), code)
	return err
}

func (a *authCommandsImpl) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if newPassword == "" {
		return errs.Mark(errs.New("missing new password"), errs.ErrMissingField)
	}

	pending, err := a.take(ctx, verification.NewKey(email, verification.KindPasswordReset), code)
	if err != nil {
		return err
	}
	payload, err := verification.Decode[verification.ResetPayload](pending.Payload)
	if err != nil {
		return asStorage(err)
	}

	hash, err := a.hasher.Hash(newPassword)
	if err != nil {
		a.restore(ctx, pending)
		return errs.Wrap(err, "hash password")
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdatePassword(ctx, tx.DB(), payload.Email, hash)
	})
	if err != nil {
		a.restore(ctx, pending)
		return asStorage(err)
	}

	if err := a.notifier.SendPasswordChanged(ctx, payload.Email); err != nil {
		slog.WarnContext(ctx, "password change notice not accepted", "email", payload.Email, "error", err)
	}
	return nil
}

func (a *authCommandsImpl) issue(ctx context.Context, email string, kind verification.Kind, payload any) error {
	raw, err := verification.Encode(payload)
	if err != nil {
		return asStorage(err)
	}

	key := verification.NewKey(email, kind)
	code, err := a.codes.Issue(ctx, key, raw)
	if err != nil {
		return storeErr(err)
	}
	a.sendCode(ctx, key, code)
	return nil
}

// sendCode is best-effort: the pending entry stays valid and the user can
// ask for a resend.
func (a *authCommandsImpl) sendCode(ctx context.Context, key verification.Key, code string) {
	if err := a.notifier.SendVerificationCode(ctx, key.Identity, key.Kind, code); err != nil {
		slog.WarnContext(ctx, "verification code not accepted for delivery",
			"key", key.String(),
			"error", err,
		)
	}
}

func (a *authCommandsImpl) check(ctx context.Context, key verification.Key, code string) ([]byte, error) {
	if key.Identity == "" || strings.TrimSpace(code) == "" {
		return nil, errs.Mark(errs.New("missing email or code"), errs.ErrMissingField)
	}
	raw, err := a.codes.Check(ctx, key, strings.TrimSpace(code))
	if err != nil {
		return nil, storeErr(err)
	}
	return raw, nil
}

// take consumes the entry before any effect runs, so one code finalizes at
// most one flow even when submitted concurrently.
func (a *authCommandsImpl) take(ctx context.Context, key verification.Key, code string) (*verification.Pending, error) {
	if key.Identity == "" || strings.TrimSpace(code) == "" {
		return nil, errs.Mark(errs.New("missing email or code"), errs.ErrMissingField)
	}
	pending, err := a.codes.Consume(ctx, key, strings.TrimSpace(code))
	if err != nil {
		return nil, storeErr(err)
	}
	return pending, nil
}

// restore hands a taken entry back after finalization failed.
func (a *authCommandsImpl) restore(ctx context.Context, pending *verification.Pending) {
	if err := a.codes.Restore(ctx, *pending); err != nil {
		slog.WarnContext(ctx, "failed to restore verification", "key", pending.Key.String(), "error", err)
	}
}

func (a *authCommandsImpl) authenticate(id uuid.UUID, name, email string, role user.Role) (*AuthResult, error) {
	token, err := a.tokens.GenerateToken(id, email, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &AuthResult{
		User:  AuthenticatedUser{ID: id, Name: name, Email: email, Role: role},
		Token: token,
	}, nil
}

func storeErr(err error) error {
	switch {
	case errs.Is(err, verification.ErrPendingNotFound):
		return errs.Mark(err, errs.ErrNoPendingFlow)
	case errs.Is(err, verification.ErrCodeMismatch):
		return errs.Mark(err, errs.ErrCodeMismatch)
	default:
		return asStorage(err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
