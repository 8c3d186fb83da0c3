package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the username is wrong so both
// failure paths pay for one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-the-password"), bcrypt.DefaultCost)

// TokenIssuer signs admin tokens.
type TokenIssuer interface {
	Enabled() bool
	Issue(subject string) (string, error)
	TTL() time.Duration
}

// AdminToken is the result of a successful admin login.
type AdminToken struct {
	Token     string
	Subject   string
	ExpiresAt time.Time
}

// AuthService defines the interface for admin authentication
type AuthService interface {
	Login(ctx context.Context, username, password string) (*AdminToken, error)
}

type authService struct {
	tokens       TokenIssuer
	username     string
	passwordHash []byte
	now          func() time.Time
}

// NewAuthService creates the admin login service. Login is disabled while
// passwordHash is empty or the issuer has no secret.
func NewAuthService(tokens TokenIssuer, username, passwordHash string, opts ...Option) AuthService {
	o := buildOptions(opts)
	return &authService{
		tokens:       tokens,
		username:     username,
		passwordHash: []byte(passwordHash),
		now:          o.now,
	}
}

// Login checks the admin credentials and returns a signed token
func (s *authService) Login(_ context.Context, username, password string) (*AdminToken, error) {
	if len(s.passwordHash) == 0 || !s.tokens.Enabled() {
		return nil, newError(KindUnavailable, "admin login is disabled", nil)
	}

	hash := s.passwordHash
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	if !userOK {
		hash = dummyHash
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil || !userOK {
		return nil, newError(KindUnauthorized, "invalid username or password", nil)
	}

	// Generate JWT token
	token, err := s.tokens.Issue(username)
	if err != nil {
		return nil, newError(KindStore, "failed to issue token", err)
	}

	return &AdminToken{
		Token:     token,
		Subject:   username,
		ExpiresAt: s.now().Add(s.tokens.TTL()).UTC(),
	}, nil
}

// HashPassword returns the bcrypt hash to configure as ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", validationError("password", "password must be at least 8 characters")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
