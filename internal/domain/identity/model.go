package identity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account owning a health record set. The password hash never
// leaves the package boundary in API responses.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FirstName    *string    `db:"first_name" json:"first_name,omitempty"`
	LastName     *string    `db:"last_name" json:"last_name,omitempty"`
	BirthDate    *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// RegisterRequest is the payload for creating an account. The allergy and
// disease selections reference lookup entries; the custom fields let the
// form submit a name not yet in the lists.
type RegisterRequest struct {
	Email             string      `json:"email"`
	Password          string      `json:"password"`
	FirstName         *string     `json:"first_name,omitempty"`
	LastName          *string     `json:"last_name,omitempty"`
	BirthDate         *time.Time  `json:"birth_date,omitempty"`
	AllergyIDs        []uuid.UUID `json:"allergy_ids,omitempty"`
	ChronicDiseaseIDs []uuid.UUID `json:"chronic_disease_ids,omitempty"`
	CustomAllergy     string      `json:"custom_allergy,omitempty"`
	CustomDisease     string      `json:"custom_disease,omitempty"`
}

// LoginRequest is the payload for exchanging credentials for a session token.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly minted session token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
