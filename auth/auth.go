// Package auth issues and verifies bearer tokens and resolves them to a
// caller identity.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coffeeshop-api/models"
	"coffeeshop-api/store"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMissingCredential means no token was presented at all.
	ErrMissingCredential = errors.New("missing credential")
	// ErrInvalidCredential covers bad signatures, malformed tokens and
	// failed logins. Deliberately generic: it never reveals which check
	// failed.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrExpiredCredential means the token verified but is past its expiry.
	ErrExpiredCredential = errors.New("expired credential")
	// ErrUnknownSubject means the token was valid but its user no longer
	// exists (deleted after issuance).
	ErrUnknownSubject = errors.New("unknown subject")
)

// Identity is the minimal caller description attached to a request after
// authentication. It never carries the password hash.
type Identity struct {
	ID       uint        `json:"id"`
	Role     models.Role `json:"role"`
	Username string      `json:"username"`
}

// Claims holds the typed JWT payload.
type Claims struct {
	UserID uint        `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Service authenticates credentials against the user store.
type Service struct {
	users  store.UserStore
	secret []byte
	ttl    time.Duration
}

func NewService(users store.UserStore, secret []byte, ttl time.Duration) *Service {
	return &Service{users: users, secret: secret, ttl: ttl}
}

// Signup registers a new account. Role defaults to customer when empty.
func (s *Service) Signup(ctx context.Context, username, email, password string, role models.Role) (*models.User, error) {
	if role == "" {
		role = models.RoleCustomer
	}
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies email + password and returns a signed token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, ErrInvalidCredential
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredential
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// IssueToken creates a signed JWT for the given user.
func (s *Service) IssueToken(user *models.User) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Authenticate verifies a bearer token and resolves it to a live identity.
// The subject is re-read from the store so a deleted user cannot keep using
// an old token, and a role change takes effect immediately.
func (s *Service) Authenticate(ctx context.Context, tokenStr string) (*Identity, error) {
	if tokenStr == "" {
		return nil, ErrMissingCredential
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredCredential
		}
		return nil, ErrInvalidCredential
	}
	if !token.Valid {
		return nil, ErrInvalidCredential
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnknownSubject
		}
		return nil, err
	}

	return &Identity{ID: user.ID, Role: user.Role, Username: user.Username}, nil
}
