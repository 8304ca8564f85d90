package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ecofinds/ecofinds-api/internal/config"
	"github.com/ecofinds/ecofinds-api/internal/platform/tokencache"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

// newTestJWTService builds a service with an injectable clock.
func newTestJWTService(secret string, lifetime time.Duration, timeFunc func() time.Time) *hmacJWTService {
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		denylist:      tokencache.NewMemory(time.Minute),
		timeFunc:      timeFunc,
		clockSkew:     2 * time.Minute,
	}
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	deny := tokencache.NewMemory(time.Minute)
	valid := config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60}

	svc, err := NewJWTService(valid, deny)
	require.NoError(t, err)
	assert.NotNil(t, svc)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60}, deny)
	assert.ErrorContains(t, err, "at least 32")

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret}, deny)
	assert.Error(t, err)

	_, err = NewJWTService(valid, nil)
	assert.Error(t, err)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 60 * time.Minute
	userID := uuid.New()
	svc := newTestJWTService(testSecret, lifetime, func() time.Time { return fixedTime })

	token, expiresAt, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, fixedTime.Add(lifetime).Unix(), expiresAt.Unix())

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)

	other, _, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	assert.NotEqual(t, token, other, "each token carries a unique jti")
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 60 * time.Minute
	userID := uuid.New()
	at := func(ts time.Time) func() time.Time { return func() time.Time { return ts } }

	issue := func(t *testing.T, secret string) string {
		t.Helper()
		token, _, err := newTestJWTService(secret, lifetime, at(fixedTime)).
			GenerateToken(context.Background(), userID)
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name      string
		token     func(t *testing.T) string
		validator *hmacJWTService
		wantErr   error
	}{
		{
			name:      "valid token",
			token:     func(t *testing.T) string { return issue(t, testSecret) },
			validator: newTestJWTService(testSecret, lifetime, at(fixedTime.Add(30*time.Minute))),
		},
		{
			name:      "within clock skew after expiry",
			token:     func(t *testing.T) string { return issue(t, testSecret) },
			validator: newTestJWTService(testSecret, lifetime, at(fixedTime.Add(lifetime+time.Minute))),
		},
		{
			name:      "expired token",
			token:     func(t *testing.T) string { return issue(t, testSecret) },
			validator: newTestJWTService(testSecret, lifetime, at(fixedTime.Add(lifetime+5*time.Minute))),
			wantErr:   ErrExpiredToken,
		},
		{
			name:      "issued in the future",
			token:     func(t *testing.T) string { return issue(t, testSecret) },
			validator: newTestJWTService(testSecret, lifetime, at(fixedTime.Add(-10*time.Minute))),
			wantErr:   ErrTokenNotYetValid,
		},
		{
			name:      "wrong secret",
			token:     func(t *testing.T) string { return issue(t, "wrong-secret-that-is-long-enough-for-testing") },
			validator: newTestJWTService(testSecret, lifetime, at(fixedTime)),
			wantErr:   ErrInvalidToken,
		},
		{
			name:      "malformed token",
			token:     func(t *testing.T) string { return "not.a.jwt" },
			validator: newTestJWTService(testSecret, lifetime, at(fixedTime)),
			wantErr:   ErrInvalidToken,
		},
		{
			name:      "empty token",
			token:     func(t *testing.T) string { return "" },
			validator: newTestJWTService(testSecret, lifetime, at(fixedTime)),
			wantErr:   ErrInvalidToken,
		},
		{
			name: "alg none",
			token: func(t *testing.T) string {
				claims := jwtCustomClaims{
					UserID: userID,
					RegisteredClaims: jwt.RegisteredClaims{
						Subject:   userID.String(),
						IssuedAt:  jwt.NewNumericDate(fixedTime),
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(lifetime)),
					},
				}
				s, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
					SignedString(jwt.UnsafeAllowNoneSignatureType)
				require.NoError(t, err)
				return s
			},
			validator: newTestJWTService(testSecret, lifetime, at(fixedTime)),
			wantErr:   ErrInvalidToken,
		},
		{
			name: "HS512 rejected",
			token: func(t *testing.T) string {
				claims := jwtCustomClaims{
					UserID: userID,
					RegisteredClaims: jwt.RegisteredClaims{
						Subject:   userID.String(),
						IssuedAt:  jwt.NewNumericDate(fixedTime),
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(lifetime)),
					},
				}
				s, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
				require.NoError(t, err)
				return s
			},
			validator: newTestJWTService(testSecret, lifetime, at(fixedTime)),
			wantErr:   ErrInvalidToken,
		},
		{
			name: "missing expiry",
			token: func(t *testing.T) string {
				claims := jwtCustomClaims{
					UserID: userID,
					RegisteredClaims: jwt.RegisteredClaims{
						Subject:  userID.String(),
						IssuedAt: jwt.NewNumericDate(fixedTime),
					},
				}
				s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
				require.NoError(t, err)
				return s
			},
			validator: newTestJWTService(testSecret, lifetime, at(fixedTime)),
			wantErr:   ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			claims, err := tt.validator.ValidateToken(context.Background(), tt.token(t))
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, userID, claims.UserID)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrInvalidToken, "every rejection collapses to ErrInvalidToken")
			assert.Nil(t, claims)
		})
	}
}

func TestValidateTokenFlippedSignatureBit(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(testSecret, time.Hour, time.Now)
	token, _, err := svc.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	// Flip a bit in the first character; it carries six full signature bits.
	sig[0] = flipBase64URL(sig[0])
	tampered := strings.Join([]string{parts[0], parts[1], string(sig)}, ".")

	_, err = svc.ValidateToken(context.Background(), tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// flipBase64URL returns a different base64url character whose 6-bit value
// differs from c in exactly one bit.
func flipBase64URL(c byte) byte {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	idx := strings.IndexByte(alphabet, c)
	return alphabet[idx^1]
}

func TestRevokeToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestJWTService(testSecret, time.Hour, time.Now)
	userID := uuid.New()

	token, _, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	other, _, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	require.NoError(t, svc.RevokeToken(ctx, claims))

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrRevokedToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken(ctx, other)
	assert.NoError(t, err, "revoking one token leaves other sessions valid")

	assert.ErrorIs(t, svc.RevokeToken(ctx, nil), ErrInvalidToken)
}

type failingDenylist struct{}

func (failingDenylist) Revoke(context.Context, string, time.Time) error { return errors.New("down") }
func (failingDenylist) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("down")
}

func TestValidateTokenDenylistFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestJWTService(testSecret, time.Hour, time.Now)
	token, _, err := svc.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	svc.denylist = failingDenylist{}
	_, err = svc.ValidateToken(ctx, token)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidToken, "backend failures are not reported as bad credentials")
}
