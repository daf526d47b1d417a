package share

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is the share window promised to users: a link stops working
// ten minutes after it is minted.
const DefaultTTL = 10 * time.Minute

// ShareToken is an opaque bearer capability granting anonymous read-only
// access to one owner's snapshot until ExpiresAt. The token value is the
// lookup key; the holder never authenticates as the owner.
type ShareToken struct {
	Token     string    `db:"token" json:"token"`
	OwnerID   uuid.UUID `db:"owner_id" json:"owner_id"`
	IssuedAt  time.Time `db:"issued_at" json:"issued_at"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
}

// Expired reports whether the token is past its expiry at the given
// instant. Liveness is always derived from the timestamps; there is no
// stored state flag to drift out of sync.
func (t *ShareToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// MintResponse is returned to the owner who requested a share link.
type MintResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	URL       string    `json:"url"`
}
