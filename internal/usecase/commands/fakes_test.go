//go:build unit

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"rental-booking/internal/domain/reservation"
	"rental-booking/internal/domain/user"
	"rental-booking/internal/domain/verification"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeDB stands in for Postgres. Within does not serialize callers, so any
// ordering between concurrent bookings has to come from the use case.
type fakeDB struct {
	mu           sync.Mutex
	vehicles     map[uuid.UUID]reservation.VehicleSpec
	reservations map[uuid.UUID]*reservation.Reservation
	users        map[string]*user.User
	contacts     *shared.BookingContacts
	contactsErr  error
	createErr    error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		vehicles:     make(map[uuid.UUID]reservation.VehicleSpec),
		reservations: make(map[uuid.UUID]*reservation.Reservation),
		users:        make(map[string]*user.User),
	}
}

func (d *fakeDB) addVehicle(dailyRateCents int64) reservation.VehicleSpec {
	v := reservation.VehicleSpec{ID: uuid.New(), OwnerID: uuid.New(), DailyRateCents: dailyRateCents}
	d.mu.Lock()
	d.vehicles[v.ID] = v
	d.mu.Unlock()
	return v
}

func (d *fakeDB) addReservation(r *reservation.Reservation) {
	d.mu.Lock()
	d.reservations[r.ID()] = r
	d.mu.Unlock()
}

func (d *fakeDB) addUser(u *user.User) {
	d.mu.Lock()
	d.users[u.Email().Value()] = u
	d.mu.Unlock()
}

func (d *fakeDB) reservationCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.reservations)
}

type fakeUoW struct{ db *fakeDB }

func (u fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, fakeTx(u))
}

func (u fakeUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	return fn(ctx, nil)
}

func (u fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	return fn(ctx, nil)
}

func (u fakeUoW) CommandReads() shared.CommandReads { return fakeReads(u) }

type fakeTx struct{ db *fakeDB }

func (t fakeTx) Reservations() shared.ReservationRepository { return fakeReservations(t) }
func (t fakeTx) Vehicles() shared.VehicleRepository         { return fakeVehicles(t) }
func (t fakeTx) Users() shared.UserRepository               { return fakeUsers(t) }
func (t fakeTx) Reads() shared.CommandReads                 { return fakeReads(t) }
func (t fakeTx) DB() sqlc.DBTX                              { return nil }

type fakeReservations struct{ db *fakeDB }

func (r fakeReservations) CountActiveOverlapping(_ context.Context, _ sqlc.DBTX, vehicleID uuid.UUID, slot reservation.TimeSlot) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, res := range r.db.reservations {
		if res.VehicleID() == vehicleID && res.Conflicts(slot) {
			n++
		}
	}
	return n, nil
}

func (r fakeReservations) Create(_ context.Context, _ sqlc.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.createErr != nil {
		return uuid.Nil, r.db.createErr
	}
	r.db.reservations[res.ID()] = res
	return res.ID(), nil
}

func (r fakeReservations) FindByIDForUpdate(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	res, ok := r.db.reservations[id]
	if !ok {
		return nil, errs.Mark(errs.New("no rows"), errs.ErrReservationNotFound)
	}
	return res, nil
}

func (r fakeReservations) UpdateStatus(_ context.Context, _ sqlc.DBTX, res *reservation.Reservation) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.reservations[res.ID()] = res
	return nil
}

type fakeVehicles struct{ db *fakeDB }

func (v fakeVehicles) Lock(context.Context, sqlc.DBTX, uuid.UUID) error { return nil }

func (v fakeVehicles) FindForBooking(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (reservation.VehicleSpec, error) {
	v.db.mu.Lock()
	defer v.db.mu.Unlock()
	spec, ok := v.db.vehicles[id]
	if !ok {
		return reservation.VehicleSpec{}, errs.Mark(errs.New("no rows"), errs.ErrVehicleNotFound)
	}
	return spec, nil
}

type fakeUsers struct{ db *fakeDB }

func (u fakeUsers) Create(_ context.Context, _ sqlc.DBTX, usr *user.User) (uuid.UUID, error) {
	u.db.mu.Lock()
	defer u.db.mu.Unlock()
	if _, ok := u.db.users[usr.Email().Value()]; ok {
		return uuid.Nil, errs.Mark(errs.New("users_email_key"), errs.ErrDuplicateEmail)
	}
	u.db.users[usr.Email().Value()] = usr
	return usr.ID(), nil
}

func (u fakeUsers) UpdatePassword(_ context.Context, _ sqlc.DBTX, email, passwordHash string) error {
	u.db.mu.Lock()
	defer u.db.mu.Unlock()
	old, ok := u.db.users[email]
	if !ok {
		return errs.Mark(errs.New("0 rows"), errs.ErrUserNotFound)
	}
	u.db.users[email] = user.Reconstruct(old.ID(), old.Name(), old.Document(), old.Email(), old.Phone(), passwordHash, old.Role(), old.CreatedAt())
	return nil
}

type fakeReads struct{ db *fakeDB }

func (r fakeReads) UserByEmail(_ context.Context, email string) (*user.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[email]
	if !ok {
		return nil, errs.Mark(errs.New("no rows"), errs.ErrUserNotFound)
	}
	return u, nil
}

func (r fakeReads) EmailExists(_ context.Context, email string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_, ok := r.db.users[email]
	return ok, nil
}

func (r fakeReads) DocumentExists(_ context.Context, documentNumber string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Document().Number == documentNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeReads) BookingContacts(context.Context, uuid.UUID, uuid.UUID) (*shared.BookingContacts, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.contactsErr != nil {
		return nil, r.db.contactsErr
	}
	return r.db.contacts, nil
}

type sentCode struct {
	To   string
	Kind verification.Kind
	Code string
}

type fakeNotifier struct {
	mu        sync.Mutex
	err       error
	codes     []sentCode
	created   []ReservationNotice
	cancelled []ReservationNotice
	passwords []string
}

func (n *fakeNotifier) SendVerificationCode(_ context.Context, to string, kind verification.Kind, code string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.codes = append(n.codes, sentCode{To: to, Kind: kind, Code: code})
	return n.err
}

func (n *fakeNotifier) SendReservationCreated(_ context.Context, notice ReservationNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, notice)
	return n.err
}

func (n *fakeNotifier) SendReservationCancelled(_ context.Context, notice ReservationNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelled = append(n.cancelled, notice)
	return n.err
}

func (n *fakeNotifier) SendPasswordChanged(_ context.Context, to string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.passwords = append(n.passwords, to)
	return n.err
}

func (n *fakeNotifier) lastCode() sentCode {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.codes) == 0 {
		return sentCode{}
	}
	return n.codes[len(n.codes)-1]
}

type fakeCodeStore struct {
	mu      sync.Mutex
	seq     int
	entries map[verification.Key]verification.Pending
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{entries: make(map[verification.Key]verification.Pending)}
}

func (s *fakeCodeStore) next() string {
	s.seq++
	return fmt.Sprintf("%06d", s.seq)
}

func (s *fakeCodeStore) Issue(_ context.Context, key verification.Key, payload json.RawMessage) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code := s.next()
	s.entries[key] = verification.Pending{Key: key, Code: code, Payload: payload}
	return code, nil
}

func (s *fakeCodeStore) Reissue(_ context.Context, key verification.Key) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.entries[key]
	if !ok {
		return "", verification.ErrPendingNotFound
	}
	p.Code = s.next()
	s.entries[key] = p
	return p.Code, nil
}

func (s *fakeCodeStore) Peek(_ context.Context, key verification.Key) (*verification.Pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.entries[key]
	if !ok {
		return nil, verification.ErrPendingNotFound
	}
	return &p, nil
}

func (s *fakeCodeStore) Check(_ context.Context, key verification.Key, code string) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.entries[key]
	if !ok {
		return nil, verification.ErrPendingNotFound
	}
	if !p.Matches(code) {
		return nil, verification.ErrCodeMismatch
	}
	return p.Payload, nil
}

func (s *fakeCodeStore) Consume(_ context.Context, key verification.Key, code string) (*verification.Pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.entries[key]
	if !ok {
		return nil, verification.ErrPendingNotFound
	}
	if !p.Matches(code) {
		return nil, verification.ErrCodeMismatch
	}
	delete(s.entries, key)
	return &p, nil
}

func (s *fakeCodeStore) Restore(_ context.Context, p verification.Pending) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[p.Key]; !ok {
		s.entries[p.Key] = p
	}
	return nil
}

func (s *fakeCodeStore) Discard(_ context.Context, key verification.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *fakeCodeStore) has(key verification.Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[key]
	return ok
}

type fakeTokens struct{}

func (fakeTokens) GenerateToken(userID uuid.UUID, email string, role user.Role) (string, error) {
	return "token:" + userID.String() + ":" + role.String(), nil
}

func (fakeTokens) TokenDuration() time.Duration { return time.Hour }

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Compare(hashed, password string) error {
	if strings.TrimPrefix(hashed, "hashed:") != password {
		return errs.New("mismatch")
	}
	return nil
}
