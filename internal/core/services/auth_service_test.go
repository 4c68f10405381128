package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"feinkost-backend/internal/adapters/persistence/models"
	"feinkost-backend/internal/config"
	"feinkost-backend/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		Session: config.SessionConfig{Secret: "test-secret"},
	}
}

func newTestAuthService() (*AuthService, *fakeIdentityRepo, *fakeUserRepo, *fakeSessionRepo) {
	identityRepo := newFakeIdentityRepo()
	userRepo := newFakeUserRepo()
	sessionRepo := newFakeSessionRepo()
	svc := NewAuthService(identityRepo, userRepo, sessionRepo, testConfig())
	return svc, identityRepo, userRepo, sessionRepo
}

func registerAndLogin(t *testing.T, svc *AuthService, email, pass string) *LoginResult {
	t.Helper()
	require.NoError(t, svc.Register(context.Background(), &RegisterInput{
		Email:    email,
		Password: pass,
		Name:     "Maria",
	}))
	result, err := svc.Login(context.Background(), &LoginInput{Email: email, Password: pass})
	require.NoError(t, err)
	return result
}

func TestRegisterCreatesIdentityOnly(t *testing.T) {
	svc, identityRepo, userRepo, _ := newTestAuthService()

	err := svc.Register(context.Background(), &RegisterInput{
		Email:    "maria@example.com",
		Password: "geheim123",
		Name:     "Maria",
	})
	require.NoError(t, err)

	require.Len(t, identityRepo.created, 1)
	assert.NotEmpty(t, identityRepo.created[0].SubjectID)
	assert.NotEqual(t, "geheim123", identityRepo.created[0].PasswordHash)

	// The user record appears on first login, not at registration
	assert.Empty(t, userRepo.users)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, identityRepo, _, _ := newTestAuthService()

	err := svc.Register(context.Background(), &RegisterInput{
		Email:    "maria@example.com",
		Password: "kurz",
	})
	assert.ErrorIs(t, err, ErrWeakPassword)
	assert.Empty(t, identityRepo.created)
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	input := &RegisterInput{Email: "maria@example.com", Password: "geheim123"}
	require.NoError(t, svc.Register(context.Background(), input))

	err := svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginUnknownEmailCreatesNothing(t *testing.T) {
	svc, _, userRepo, sessionRepo := newTestAuthService()

	_, err := svc.Login(context.Background(), &LoginInput{
		Email:    "niemand@example.com",
		Password: "geheim123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, userRepo.users)
	assert.Empty(t, sessionRepo.records)
}

func TestLoginWrongPasswordCreatesNothing(t *testing.T) {
	svc, _, userRepo, sessionRepo := newTestAuthService()

	require.NoError(t, svc.Register(context.Background(), &RegisterInput{
		Email:    "maria@example.com",
		Password: "geheim123",
	}))

	_, err := svc.Login(context.Background(), &LoginInput{
		Email:    "maria@example.com",
		Password: "falsches-passwort",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, userRepo.users)
	assert.Empty(t, sessionRepo.records)
}

func TestFirstLoginCreatesCustomerUser(t *testing.T) {
	svc, _, userRepo, sessionRepo := newTestAuthService()

	result := registerAndLogin(t, svc, "maria@example.com", "geheim123")

	require.Len(t, userRepo.users, 1)
	user := userRepo.users[result.User.ID]
	require.NotNil(t, user)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.Equal(t, "Maria", user.Name)
	assert.NotEmpty(t, user.QRCode)

	assert.Equal(t, "/dashboard", result.RedirectTo)
	assert.NotEmpty(t, result.Token)
	assert.Len(t, sessionRepo.records, 1)
}

func TestRepeatLoginKeepsAssignedRole(t *testing.T) {
	svc, _, userRepo, _ := newTestAuthService()

	first := registerAndLogin(t, svc, "maria@example.com", "geheim123")

	// An admin promotes the account between logins
	userRepo.users[first.User.ID].Role = models.RoleEmployee

	second, err := svc.Login(context.Background(), &LoginInput{
		Email:    "maria@example.com",
		Password: "geheim123",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleEmployee, second.User.Role)
	assert.Equal(t, "/employee/scanner", second.RedirectTo)
	assert.Len(t, userRepo.users, 1)
}

func TestReadSessionAnonymous(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	assert.Nil(t, svc.ReadSession(context.Background(), ""))
	assert.Nil(t, svc.ReadSession(context.Background(), "not-a-token"))
}

func TestReadSessionWrongSecret(t *testing.T) {
	svc, _, _, _ := newTestAuthService()
	result := registerAndLogin(t, svc, "maria@example.com", "geheim123")

	other := NewAuthService(newFakeIdentityRepo(), newFakeUserRepo(), newFakeSessionRepo(), &config.Config{
		Session: config.SessionConfig{Secret: "a-different-secret"},
	})
	assert.Nil(t, other.ReadSession(context.Background(), result.Token))
}

func TestReadSessionReturnsUserState(t *testing.T) {
	svc, _, userRepo, _ := newTestAuthService()
	result := registerAndLogin(t, svc, "maria@example.com", "geheim123")

	prize := "10% Rabatt"
	userRepo.users[result.User.ID].LoyaltyStamps = 7
	userRepo.users[result.User.ID].ActivePrize = &prize

	sess := svc.ReadSession(context.Background(), result.Token)
	require.NotNil(t, sess)
	assert.Equal(t, result.User.ID, sess.UserID)
	assert.Equal(t, "maria@example.com", sess.Email)
	assert.Equal(t, "Maria", sess.Name)
	assert.Equal(t, models.RoleCustomer, sess.Role)
	assert.Equal(t, 7, sess.LoyaltyStamps)
	assert.Equal(t, &prize, sess.ActivePrize)
	assert.False(t, sess.Degraded)
}

func TestReadSessionPlaceholderName(t *testing.T) {
	svc, _, userRepo, _ := newTestAuthService()
	result := registerAndLogin(t, svc, "maria@example.com", "geheim123")
	userRepo.users[result.User.ID].Name = ""

	sess := svc.ReadSession(context.Background(), result.Token)
	require.NotNil(t, sess)
	assert.Equal(t, PlaceholderName, sess.Name)
}

func TestReadSessionDegradesWhenUserStoreDown(t *testing.T) {
	svc, _, userRepo, sessionRepo := newTestAuthService()
	result := registerAndLogin(t, svc, "maria@example.com", "geheim123")

	userRepo.getErr = errors.New("connection refused")
	sessionRepo.getErr = errors.New("connection refused")

	sess := svc.ReadSession(context.Background(), result.Token)
	require.NotNil(t, sess, "a store outage must not log the user out")
	assert.True(t, sess.Degraded)
	assert.Equal(t, result.User.ID, sess.UserID)
	assert.Equal(t, models.RoleCustomer, sess.Role)
	assert.Equal(t, PlaceholderName, sess.Name)
	assert.Empty(t, sess.Email)
}

func TestReadSessionNilForDeletedUser(t *testing.T) {
	svc, _, userRepo, _ := newTestAuthService()
	result := registerAndLogin(t, svc, "maria@example.com", "geheim123")

	delete(userRepo.users, result.User.ID)

	assert.Nil(t, svc.ReadSession(context.Background(), result.Token))
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, _, sessionRepo := newTestAuthService()
	result := registerAndLogin(t, svc, "maria@example.com", "geheim123")

	require.NoError(t, svc.Logout(context.Background(), result.Token))

	record := sessionRepo.records[password.HashToken(result.Token)]
	require.NotNil(t, record)
	assert.True(t, record.IsRevoked())
	assert.Nil(t, svc.ReadSession(context.Background(), result.Token))
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	svc, _, _, _ := newTestAuthService()
	first := registerAndLogin(t, svc, "maria@example.com", "geheim123")

	second, err := svc.Login(context.Background(), &LoginInput{
		Email:    "maria@example.com",
		Password: "geheim123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(context.Background(), first.User.ID))

	assert.Nil(t, svc.ReadSession(context.Background(), first.Token))
	assert.Nil(t, svc.ReadSession(context.Background(), second.Token))
}

func TestSessionPurgeRemovesRevokedAndExpired(t *testing.T) {
	svc, _, _, sessionRepo := newTestAuthService()
	result := registerAndLogin(t, svc, "maria@example.com", "geheim123")
	require.NoError(t, svc.Logout(context.Background(), result.Token))

	sessionRepo.records["stale"] = &models.SessionRecord{
		UserID:    result.User.ID,
		TokenHash: "stale",
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	purged, err := sessionRepo.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), purged)
	assert.Empty(t, sessionRepo.records)
}
