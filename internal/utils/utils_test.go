package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hash)

	require.True(t, VerifyPassword(hash, "s3cret"))
	require.False(t, VerifyPassword(hash, "wrong"))
	require.False(t, VerifyPassword("not-a-hash", "s3cret"))
}

func TestNewAccessToken(t *testing.T) {
	userUID := uuid.New()
	roles := []string{"USER", "ADMIN"}

	access, err := NewAccessToken("secret", userUID, roles, 15)
	require.NoError(t, err)
	require.NotEmpty(t, access.Token)
	require.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), access.Exp, 5*time.Second)

	tok, err := jwt.Parse(access.Token, func(tk *jwt.Token) (interface{}, error) {
		require.IsType(t, &jwt.SigningMethodHMAC{}, tk.Method)
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, userUID.String(), claims["sub"])
	require.Equal(t, []interface{}{"USER", "ADMIN"}, claims["roles"])
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	access, err := NewAccessToken("secret", uuid.New(), []string{"USER"}, 15)
	require.NoError(t, err)

	_, err = jwt.Parse(access.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	})
	require.Error(t, err)
}
