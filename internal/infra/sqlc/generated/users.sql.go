// Maintained by hand in the layout sqlc v1.29.0 emits for sqlc.yaml.
// `go generate ./internal/infra/sqlc` rewrites it; keep it matching queries/.
// source: users.sql

package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createUser = `-- name: CreateUser :one
INSERT INTO users (
    first_name, second_name, first_surname, second_surname,
    document_type, document_number, email, phone, password_hash, role, created_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
)
RETURNING id
`

type CreateUserParams struct {
	FirstName      string             `json:"first_name"`
	SecondName     pgtype.Text        `json:"second_name"`
	FirstSurname   string             `json:"first_surname"`
	SecondSurname  pgtype.Text        `json:"second_surname"`
	DocumentType   string             `json:"document_type"`
	DocumentNumber string             `json:"document_number"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	PasswordHash   string             `json:"password_hash"`
	Role           string             `json:"role"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateUser(ctx context.Context, db DBTX, arg CreateUserParams) (uuid.UUID, error) {
	row := db.QueryRow(ctx, createUser,
		arg.FirstName,
		arg.SecondName,
		arg.FirstSurname,
		arg.SecondSurname,
		arg.DocumentType,
		arg.DocumentNumber,
		arg.Email,
		arg.Phone,
		arg.PasswordHash,
		arg.Role,
		arg.CreatedAt,
	)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

const existsUserByDocument = `-- name: ExistsUserByDocument :one
SELECT EXISTS (SELECT 1 FROM users WHERE document_number = $1)
`

func (q *Queries) ExistsUserByDocument(ctx context.Context, db DBTX, documentNumber string) (bool, error) {
	row := db.QueryRow(ctx, existsUserByDocument, documentNumber)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const existsUserByEmail = `-- name: ExistsUserByEmail :one
SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
`

func (q *Queries) ExistsUserByEmail(ctx context.Context, db DBTX, email string) (bool, error) {
	row := db.QueryRow(ctx, existsUserByEmail, email)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const findUserByEmail = `-- name: FindUserByEmail :one
SELECT id, first_name, second_name, first_surname, second_surname, document_type, document_number, email, phone, password_hash, role, created_at FROM users
WHERE email = $1
`

func (q *Queries) FindUserByEmail(ctx context.Context, db DBTX, email string) (Users, error) {
	row := db.QueryRow(ctx, findUserByEmail, email)
	var i Users
	err := row.Scan(
		&i.ID,
		&i.FirstName,
		&i.SecondName,
		&i.FirstSurname,
		&i.SecondSurname,
		&i.DocumentType,
		&i.DocumentNumber,
		&i.Email,
		&i.Phone,
		&i.PasswordHash,
		&i.Role,
		&i.CreatedAt,
	)
	return i, err
}

const findUserByID = `-- name: FindUserByID :one
SELECT id, first_name, second_name, first_surname, second_surname, document_type, document_number, email, phone, password_hash, role, created_at FROM users
WHERE id = $1
`

func (q *Queries) FindUserByID(ctx context.Context, db DBTX, id uuid.UUID) (Users, error) {
	row := db.QueryRow(ctx, findUserByID, id)
	var i Users
	err := row.Scan(
		&i.ID,
		&i.FirstName,
		&i.SecondName,
		&i.FirstSurname,
		&i.SecondSurname,
		&i.DocumentType,
		&i.DocumentNumber,
		&i.Email,
		&i.Phone,
		&i.PasswordHash,
		&i.Role,
		&i.CreatedAt,
	)
	return i, err
}

const updateUserPassword = `-- name: UpdateUserPassword :execrows
UPDATE users
SET password_hash = $2
WHERE email = $1
`

type UpdateUserPasswordParams struct {
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

func (q *Queries) UpdateUserPassword(ctx context.Context, db DBTX, arg UpdateUserPasswordParams) (int64, error) {
	result, err := db.Exec(ctx, updateUserPassword, arg.Email, arg.PasswordHash)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
