package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// User represents an admin account for the studio console.
// The public booking form is anonymous; only staff sign in.
type User struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`

	LastLoginAt sql.NullTime   `db:"last_login_at"`
	LastLoginIP sql.NullString `db:"last_login_ip"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
