package auth

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/craftable/errx"
	"github.com/Abraxas-365/craftable/logx"

	"multiauth-service/internal/lock"
	"multiauth-service/internal/user"
)

// identifierLockTTL bounds how long a registration or first-seen
// Google login may hold its per-identifier lock.
const identifierLockTTL = 5 * time.Second

// PasswordHasher is the opaque hash/verify capability.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) error
}

// TokenIssuer mints a signed session token bound to a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// IdentityVerifier validates an opaque provider token against the
// configured audience and returns the verified identity, or rejects.
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, rawToken string) (*Identity, error)
}

// Service is the authentication core: registration, the three login
// paths, identity linking, and token issuance. It is stateless between
// calls; the store holds the only durable state.
type Service struct {
	users  user.Store
	hasher PasswordHasher
	tokens TokenIssuer
	google IdentityVerifier
	locks  lock.Locker
}

func NewService(
	users user.Store,
	hasher PasswordHasher,
	tokens TokenIssuer,
	google IdentityVerifier,
	locks lock.Locker,
) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		google: google,
		locks:  locks,
	}
}

type RegisterParams struct {
	Email    string
	Mobile   string
	Password string
}

// Result is the outcome of any successful register or login call.
type Result struct {
	Token   string `json:"token"`
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

// Register creates a password account identified by email, mobile, or
// both. Exactly one record is written on success, none on failure.
func (s *Service) Register(ctx context.Context, p RegisterParams) (*Result, error) {
	email := strings.TrimSpace(p.Email)
	mobile := strings.TrimSpace(p.Mobile)

	if email == "" && mobile == "" {
		return nil, authErrors.New(ErrMissingIdentifier)
	}
	if strings.TrimSpace(p.Password) == "" {
		return nil, authErrors.New(ErrMissingPassword)
	}

	if email != "" {
		release := s.locks.Acquire(ctx, "register:email:"+email, identifierLockTTL)
		defer release()
	}
	if mobile != "" {
		release := s.locks.Acquire(ctx, "register:mobile:"+mobile, identifierLockTTL)
		defer release()
	}

	// fast-path checks; the store's unique indexes decide stale ones
	if email != "" {
		exists, err := s.users.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, user.Conflict(user.ErrEmailExists)
		}
	}
	if mobile != "" {
		exists, err := s.users.ExistsByMobile(ctx, mobile)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, user.Conflict(user.ErrMobileExists)
		}
	}

	hash, err := s.hasher.Hash(p.Password)
	if err != nil {
		return nil, errx.Wrap(err, "password hashing failed", errx.TypeInternal)
	}

	now := time.Now().UTC()
	saved, err := s.users.Save(ctx, &user.User{
		Email:        email,
		Mobile:       mobile,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(saved.ID)
	if err != nil {
		return nil, errx.Wrap(err, "token issuance failed", errx.TypeInternal)
	}

	logx.Info("user registered: %s", saved.ID)

	return &Result{
		Token:   token,
		UserID:  saved.ID,
		Message: "Registration successful",
	}, nil
}

// Login runs exactly one authentication path for the given
// credentials; the type switch is exhaustive over the sealed set.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Result, error) {
	switch c := creds.(type) {
	case GoogleToken:
		return s.loginWithGoogle(ctx, c.Token)
	case EmailPassword:
		return s.loginByIdentifier(ctx, s.users.FindByEmail, c.Email, c.Password, ErrInvalidEmailLogin)
	case MobilePassword:
		return s.loginByIdentifier(ctx, s.users.FindByMobile, c.Mobile, c.Password, ErrInvalidMobileLogin)
	default:
		return nil, authErrors.New(ErrMissingLoginField)
	}
}

// loginByIdentifier is the shared email/mobile password path. The
// unknown-identifier and wrong-password outcomes return the same
// error; only a password-less (Google-created) record gets its own.
func (s *Service) loginByIdentifier(
	ctx context.Context,
	find func(ctx context.Context, value string) (*user.User, error),
	value string,
	password string,
	invalid errx.Code,
) (*Result, error) {

	u, err := find(ctx, value)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, authErrors.New(invalid)
	}

	if !u.HasPassword() {
		return nil, authErrors.New(ErrGoogleOnlyAccount)
	}

	if err := s.hasher.Verify(u.PasswordHash, password); err != nil {
		return nil, authErrors.New(invalid)
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, errx.Wrap(err, "token issuance failed", errx.TypeInternal)
	}

	return &Result{
		Token:   token,
		UserID:  u.ID,
		Message: "Login successful",
	}, nil
}

// loginWithGoogle verifies the raw ID token. Every verifier failure
// collapses to the single invalid-token error; the detail is logged,
// never returned.
func (s *Service) loginWithGoogle(ctx context.Context, rawToken string) (*Result, error) {
	identity, err := s.google.VerifyIDToken(ctx, rawToken)
	if err != nil {
		logx.Warn("google token verification failed: %v", err)
		return nil, authErrors.NewWithCause(ErrInvalidGoogleToken, err)
	}

	return s.LoginWithIdentity(ctx, identity)
}

// LoginWithIdentity resolves a verified external identity to an
// account: reuse the record already linked to the subject, or create a
// password-less record on first sight. Racing creators for the same
// subject converge on the winner's record. Also the entry point for
// the OAuth authorization-code callback.
func (s *Service) LoginWithIdentity(ctx context.Context, identity *Identity) (*Result, error) {
	if identity == nil || identity.ProviderUserID == "" {
		return nil, authErrors.New(ErrInvalidGoogleToken)
	}

	u, err := s.users.FindByGoogleID(ctx, identity.ProviderUserID)
	if err != nil {
		return nil, err
	}

	if u == nil {
		u, err = s.linkNewIdentity(ctx, identity)
		if err != nil {
			return nil, err
		}
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, errx.Wrap(err, "token issuance failed", errx.TypeInternal)
	}

	return &Result{
		Token:   token,
		UserID:  u.ID,
		Message: "Google login successful",
	}, nil
}

func (s *Service) linkNewIdentity(ctx context.Context, identity *Identity) (*user.User, error) {
	release := s.locks.Acquire(ctx, "google:"+identity.ProviderUserID, identifierLockTTL)
	defer release()

	// a racing login may have linked the subject while we waited
	u, err := s.users.FindByGoogleID(ctx, identity.ProviderUserID)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}

	// No password hash: password login stays rejected for this record.
	// The verified email is stored without checking it against existing
	// password accounts (see DESIGN.md, open question).
	now := time.Now().UTC()
	saved, err := s.users.Save(ctx, &user.User{
		GoogleID:  identity.ProviderUserID,
		Email:     identity.Email,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if errx.IsCode(err, user.ErrGoogleIDExists) {
		// lost the race past the lock; converge on the winner
		winner, ferr := s.users.FindByGoogleID(ctx, identity.ProviderUserID)
		if ferr != nil {
			return nil, ferr
		}
		if winner == nil {
			return nil, err
		}
		return winner, nil
	}
	if err != nil {
		return nil, err
	}

	logx.Info("google identity linked to new user: %s", saved.ID)
	return saved, nil
}
