package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"coffeeshop-api/models"
	"coffeeshop-api/store"

	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, ttl time.Duration) (*Service, store.UserStore) {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	users := store.NewUserStore(db)
	return NewService(users, []byte("test-secret"), ttl), users
}

func TestSignupAndLogin(t *testing.T) {
	svc, _ := newService(t, 15*time.Minute)
	ctx := context.Background()

	user, err := svc.Signup(ctx, "alice", "alice@example.com", "s3cretpw", "")
	require.NoError(t, err)
	require.Equal(t, models.RoleCustomer, user.Role, "role defaults to customer")
	require.NotEqual(t, "s3cretpw", user.PasswordHash, "password is stored hashed")

	token, got, err := svc.Login(ctx, "alice@example.com", "s3cretpw")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, user.ID, got.ID)

	ident, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	require.Equal(t, user.ID, ident.ID)
	require.Equal(t, models.RoleCustomer, ident.Role)
	require.Equal(t, "alice", ident.Username)
}

func TestSignupDuplicate(t *testing.T) {
	svc, users := newService(t, 15*time.Minute)
	ctx := context.Background()

	first, err := svc.Signup(ctx, "alice", "alice@example.com", "s3cretpw", "")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "alice2", "alice@example.com", "otherpw", "")
	require.ErrorIs(t, err, store.ErrDuplicate)
	_, err = svc.Signup(ctx, "alice", "alice2@example.com", "otherpw", "")
	require.ErrorIs(t, err, store.ErrDuplicate)

	// existing record untouched
	got, err := users.FindByID(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, first.PasswordHash, got.PasswordHash)
	require.Equal(t, "alice@example.com", got.Email)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newService(t, 15*time.Minute)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "alice@example.com", "s3cretpw", "")
	require.NoError(t, err)

	_, _, wrongPw := svc.Login(ctx, "alice@example.com", "wrong")
	_, _, noUser := svc.Login(ctx, "ghost@example.com", "s3cretpw")

	require.ErrorIs(t, wrongPw, ErrInvalidCredential)
	require.ErrorIs(t, noUser, ErrInvalidCredential)
	require.Equal(t, wrongPw.Error(), noUser.Error(),
		"login failure must not reveal whether the email or the password was wrong")
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	svc, _ := newService(t, 15*time.Minute)
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "")
	require.ErrorIs(t, err, ErrMissingCredential)

	_, err = svc.Authenticate(ctx, "not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidCredential)

	// token signed with a different secret
	other := NewService(nil, []byte("other-secret"), 15*time.Minute)
	forged, err := other.IssueToken(&models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, forged)
	require.ErrorIs(t, err, ErrInvalidCredential)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	svc, _ := newService(t, -1*time.Minute)
	ctx := context.Background()

	user, err := svc.Signup(ctx, "alice", "alice@example.com", "s3cretpw", "")
	require.NoError(t, err)

	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, token)
	require.ErrorIs(t, err, ErrExpiredCredential)
}

func TestAuthenticateUnknownSubject(t *testing.T) {
	svc, users := newService(t, 15*time.Minute)
	ctx := context.Background()

	user, err := svc.Signup(ctx, "alice", "alice@example.com", "s3cretpw", "")
	require.NoError(t, err)
	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	// delete the account after issuance: the token must stop working
	require.NoError(t, users.Delete(ctx, user.ID))
	_, err = svc.Authenticate(ctx, token)
	require.ErrorIs(t, err, ErrUnknownSubject)
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	svc, _ := newService(t, 15*time.Minute)

	_, err := svc.Signup(context.Background(), "bob", "bob@example.com", "s3cretpw", "wizard")
	require.Error(t, err)
}
