package interfaces

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"project_karcis/internal/entities"
)

// ErrNotFound indicates a record does not exist. It is a valid outcome,
// distinct from a database failure.
var ErrNotFound = errors.New("record not found")

// ErrConflict indicates a uniqueness violation.
var ErrConflict = errors.New("record already exists")

// UserLookupField enumerates the permitted user lookup keys. Repositories map
// each value to its own parameterized query; field names never come from input.
type UserLookupField string

const (
	LookupByID       UserLookupField = "id"
	LookupByUsername UserLookupField = "username"
	LookupByEmail    UserLookupField = "email"
	LookupByPhone    UserLookupField = "phone"
)

// SignFunc produces a signed token for a freshly created user. Registration
// needs it because the user ID is only known inside the transaction.
type SignFunc func(entities.User) (string, error)

// UserStore persists user records. Lookups return (nil, nil) when no active
// row matches; a non-nil error always means a database failure.
type UserStore interface {
	FindBy(ctx context.Context, field UserLookupField, value string) (*entities.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*entities.User, error)
	// Register creates the user, a zero balance, and the first token row in a
	// single transaction. The signed token is returned alongside the user.
	Register(ctx context.Context, user entities.User, sign SignFunc) (entities.User, string, error)
	UpdateProfile(ctx context.Context, profile entities.Profile) (*entities.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	SoftDelete(ctx context.Context, id int64) error
}

// TokenStore tracks every issued token so it can be revoked server-side.
type TokenStore interface {
	Create(ctx context.Context, token string) error
	IsRevoked(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
}

type OTPStore interface {
	Create(ctx context.Context, code string, ttl time.Duration) error
	// IsUsable reports whether the code exists, is active, and has not expired.
	IsUsable(ctx context.Context, code string) (bool, error)
	// Consume deactivates a usable code; false means it was not usable.
	Consume(ctx context.Context, code string) (bool, error)
}

type BalanceStore interface {
	Get(ctx context.Context, id int64) (*entities.Balance, error)
	GetByUser(ctx context.Context, userID int64) (*entities.Balance, error)
	Histories(ctx context.Context, userID int64) ([]entities.BalanceHistory, error)
	// Update sets the new amount and appends exactly one history row with
	// top_up = max(new-old, 0), both inside one transaction.
	Update(ctx context.Context, id int64, amount decimal.Decimal) (*entities.Balance, error)
}

type AmenityStore interface {
	GetAll(ctx context.Context) ([]entities.Amenity, error)
	FindByID(ctx context.Context, id int64) (*entities.Amenity, error)
	Create(ctx context.Context, amenity entities.Amenity) (*entities.Amenity, error)
	Update(ctx context.Context, amenity entities.Amenity) (*entities.Amenity, error)
	Delete(ctx context.Context, id int64) error
}

// Mailer delivers transactional mail.
type Mailer interface {
	Send(ctx context.Context, to entities.User, subject, htmlBody string) error
}
