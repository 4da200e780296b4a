//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"rental-booking/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultPassword = "password123"
	AdminEmail      = "admin@example.com"
)

var (
	hashOnce    sync.Once
	hashed      string
	errHashSeed error
)

// defaultPasswordHash hashes DefaultPassword once at the cheapest bcrypt cost.
func defaultPasswordHash() (string, error) {
	hashOnce.Do(func() {
		hashed, errHashSeed = password.NewHasher(bcrypt.MinCost).Hash(DefaultPassword)
	})
	return hashed, errHashSeed
}

// CreateTestUser inserts a user whose password is DefaultPassword. An existing
// row with the same email is reused.
func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	passwordHash, err := defaultPasswordHash()
	require.NoError(t, err)

	userID := uuid.New()
	ctx := context.Background()
	tag, err := db.Exec(ctx, `
		INSERT INTO users (id, first_name, first_surname, document_type, document_number, email, phone, password_hash, role)
		VALUES ($1, 'Test', 'User', 'CC', $2, $3, '+570000000000', $4, $5)
		ON CONFLICT (email) DO NOTHING`,
		userID, userID.String()[:18], email, passwordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		err = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
		require.NoError(t, err)
	}

	return userID
}

func CreateTestVehicle(t *testing.T, db DBLike, ownerID uuid.UUID, dailyRateCents int64) uuid.UUID {
	t.Helper()

	vehicleID := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO vehicles (id, owner_id, vehicle_type, plate, model, model_year, daily_rate_cents, approval_status)
		VALUES ($1, $2, 'sedan', $3, 'Test Model', 2022, $4, 'approved')`,
		vehicleID, ownerID, strings.ToUpper(vehicleID.String()[:8]), dailyRateCents)
	require.NoError(t, err)

	return vehicleID
}

func CountActiveReservations(t *testing.T, db DBLike, vehicleID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM reservations WHERE vehicle_id = $1 AND status = 'active'", vehicleID).Scan(&n)
	require.NoError(t, err)
	return n
}

// SeedReferenceData inserts the admin account; admins cannot self-register.
func SeedReferenceData(pool *pgxpool.Pool) error {
	passwordHash, err := defaultPasswordHash()
	if err != nil {
		return err
	}

	_, err = pool.Exec(context.Background(), `
		INSERT INTO users (first_name, first_surname, document_type, document_number, email, phone, password_hash, role)
		VALUES ('Admin', 'User', 'CC', '0000000000', $1, '+570000000000', $2, 'admin')
		ON CONFLICT (email) DO NOTHING`,
		AdminEmail, passwordHash)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations', 'atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
