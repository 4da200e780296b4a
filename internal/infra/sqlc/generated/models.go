// Maintained by hand in the layout sqlc v1.29.0 emits for sqlc.yaml.
// `go generate ./internal/infra/sqlc` rewrites it; keep it matching queries/.

package sqlc

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type NotificationDeadLetters struct {
	ID        uuid.UUID          `json:"id"`
	Kind      string             `json:"kind"`
	Recipient string             `json:"recipient"`
	Subject   string             `json:"subject"`
	Body      string             `json:"body"`
	LastError string             `json:"last_error"`
	Attempts  int32              `json:"attempts"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type Reservations struct {
	ID                 uuid.UUID          `json:"id"`
	ClientID           uuid.UUID          `json:"client_id"`
	VehicleID          uuid.UUID          `json:"vehicle_id"`
	StartAt            pgtype.Timestamptz `json:"start_at"`
	EndAt              pgtype.Timestamptz `json:"end_at"`
	OriginAddress      string             `json:"origin_address"`
	DestinationAddress string             `json:"destination_address"`
	Status             string             `json:"status"`
	TotalPriceCents    int64              `json:"total_price_cents"`
	CreatedAt          pgtype.Timestamptz `json:"created_at"`
	UpdatedAt          pgtype.Timestamptz `json:"updated_at"`
}

type Users struct {
	ID             uuid.UUID          `json:"id"`
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

type Vehicles struct {
	ID             uuid.UUID          `json:"id"`
	OwnerID        uuid.UUID          `json:"owner_id"`
	VehicleType    string             `json:"vehicle_type"`
	Plate          string             `json:"plate"`
	Model          string             `json:"model"`
	ModelYear      int32              `json:"model_year"`
	DailyRateCents int64              `json:"daily_rate_cents"`
	ApprovalStatus string             `json:"approval_status"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
}
