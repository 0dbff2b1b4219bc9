package user

import (
	"context"
	"net/http"

	"github.com/Abraxas-365/craftable/errx"
)

var userErrors = errx.NewRegistry("USER")

var (
	ErrNotFound = userErrors.Register(
		"NOT_FOUND", errx.TypeNotFound, http.StatusNotFound,
		"User not found")
	ErrEmailExists = userErrors.Register(
		"EMAIL_EXISTS", errx.TypeConflict, http.StatusConflict,
		"Email already exists")
	ErrMobileExists = userErrors.Register(
		"MOBILE_EXISTS", errx.TypeConflict, http.StatusConflict,
		"Mobile number already exists")
	ErrGoogleIDExists = userErrors.Register(
		"GOOGLE_ID_EXISTS", errx.TypeConflict, http.StatusConflict,
		"Google account already linked")
)

// NotFound returns the canonical not-found error for a user id.
func NotFound() *errx.Error { return userErrors.New(ErrNotFound) }

// Conflict instantiates one of the registered uniqueness conflicts;
// it lets callers surface the same error from a pre-check that the
// store raises from the write itself.
func Conflict(code errx.Code) *errx.Error { return userErrors.New(code) }

// Store is the key-indexed persistence contract for identity records.
// Find methods return (nil, nil) when no record matches. Save assigns
// an id on first save and preserves it afterwards; it surfaces the
// store's own uniqueness violations as the Err*Exists conflicts above,
// which makes the write, not the pre-check, the invariant guardian.
type Store interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByMobile(ctx context.Context, mobile string) (*User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByMobile(ctx context.Context, mobile string) (bool, error)
	Save(ctx context.Context, u *User) (*User, error)
}
