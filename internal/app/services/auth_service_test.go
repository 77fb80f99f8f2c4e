package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelichko/postline/internal/app/models/dto"
	"github.com/avelichko/postline/internal/pkg/apperrors"
	"github.com/avelichko/postline/internal/pkg/auth"
)

type tokenRecord struct {
	userID     int64
	expiryDate time.Time
	isRevoked  bool
}

type fakeTokenStore struct {
	tokens map[string]*tokenRecord
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*tokenRecord)}
}

func (f *fakeTokenStore) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	f.tokens[token] = &tokenRecord{userID: userID, expiryDate: expiryDate}
	return nil
}

func (f *fakeTokenStore) GetTokenByValue(ctx context.Context, token string) (int64, time.Time, bool, error) {
	rec, ok := f.tokens[token]
	if !ok {
		return 0, time.Time{}, false, apperrors.ErrTokenNotFound
	}
	return rec.userID, rec.expiryDate, rec.isRevoked, nil
}

func (f *fakeTokenStore) RevokeToken(ctx context.Context, token string) error {
	if rec, ok := f.tokens[token]; ok {
		rec.isRevoked = true
	}
	return nil
}

func newAuthServiceForTest(store *fakeStore, tokens *fakeTokenStore) AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "postline.test",
	})
	return NewAuthService(store, tokens, jwtService)
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username: "leo",
		Email:    "leo@example.com",
		Password: "war-and-peace",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeStore()
	tokens := newFakeTokenStore()
	svc := newAuthServiceForTest(store, tokens)
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, reg.AccessToken)
	assert.NotEmpty(t, reg.RefreshToken)
	assert.Equal(t, "leo", reg.Username)

	// The stored password is a hash, never the plaintext
	user := store.users[reg.UserID]
	require.NotNil(t, user)
	assert.NotEqual(t, "war-and-peace", user.Password)

	login, err := svc.Login(ctx, &dto.LoginRequest{Username: "leo", Password: "war-and-peace"})
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, login.UserID)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	store := newFakeStore()
	svc := newAuthServiceForTest(store, newFakeTokenStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	req := registerRequest()
	req.Email = "other@example.com"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrUsernameAlreadyUsed)
}

func TestLogin_WrongPassword(t *testing.T) {
	store := newFakeStore()
	svc := newAuthServiceForTest(store, newFakeTokenStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "leo", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	store := newFakeStore()
	svc := newAuthServiceForTest(store, newFakeTokenStore())

	// Indistinguishable from a wrong password
	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "nobody", Password: "x"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefreshToken_RotatesAndRevokes(t *testing.T) {
	store := newFakeStore()
	tokens := newFakeTokenStore()
	svc := newAuthServiceForTest(store, tokens)
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, reg.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, reg.RefreshToken, refreshed.RefreshToken)

	// The used token cannot be replayed
	_, err = svc.RefreshToken(ctx, reg.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestRefreshToken_Unknown(t *testing.T) {
	store := newFakeStore()
	svc := newAuthServiceForTest(store, newFakeTokenStore())

	_, err := svc.RefreshToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestRefreshToken_Expired(t *testing.T) {
	store := newFakeStore()
	tokens := newFakeTokenStore()
	svc := newAuthServiceForTest(store, tokens)
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	tokens.tokens[reg.RefreshToken].expiryDate = time.Now().Add(-time.Minute)

	_, err = svc.RefreshToken(ctx, reg.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}
