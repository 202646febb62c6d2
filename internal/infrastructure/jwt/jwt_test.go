package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate_Success(t *testing.T) {
	s := New("super-secret")
	userID := uuid.New()

	tok, err := s.GenerateJWT(userID, "editor", time.Hour)
	require.NoError(t, err, "GenerateJWT should not error")
	require.NotEmpty(t, tok, "token must not be empty")

	claims, err := s.ValidateToken(tok)
	require.NoError(t, err, "ValidateToken should not error for fresh token")
	require.NotNil(t, claims)

	got, err := claims.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, got)
	assert.Equal(t, "editor", claims.Role)
	require.NotNil(t, claims.ExpiresAt)
}

func TestValidateToken_Table(t *testing.T) {
	userID := uuid.New()

	makeToken := func(secret string, exp time.Duration) string {
		tok, err := New(secret).GenerateJWT(userID, "worker", exp)
		require.NoError(t, err)
		return tok
	}

	tokenWithUser := func(secret, user string) string {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
			UserID: user,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
		})
		s, err := tok.SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name   string
		secret string
		token  string
		err    string
	}{
		{name: "valid token", secret: "k1", token: makeToken("k1", 5*time.Minute)},
		{name: "signature mismatch", secret: "k2", token: makeToken("k1", 5*time.Minute), err: "invalid token"},
		{name: "expired token", secret: "k1", token: makeToken("k1", -1*time.Minute), err: "invalid token"},
		{name: "malformed token string", secret: "k1", token: "not-a-jwt", err: "invalid token"},
		{name: "user id is not a uuid", secret: "k1", token: tokenWithUser("k1", "user-42"), err: "invalid user id claim"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := New(tt.secret).ValidateToken(tt.token)
			if tt.err == "" {
				require.NoError(t, err)
				require.NotNil(t, claims)
				assert.Equal(t, userID.String(), claims.UserID)
				assert.Equal(t, "worker", claims.Role)
				return
			}
			require.Error(t, err)
			assert.EqualError(t, err, tt.err)
			assert.Nil(t, claims)
		})
	}
}
