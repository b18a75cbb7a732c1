package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/readdaily/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken("user-123", common.RoleAdmin, secret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, common.RoleAdmin, claims.Role)

	uid, err := GetUserIDFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-123", uid)
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken("u1", common.RoleReader, secret, -1*time.Second)
	require.NoError(t, err)

	_, err = ParseToken(tok, secret)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2", common.RoleReader, []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("wrong-secret"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := GetUserIDFromToken("not.a.jwt", []byte("k"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: "u3"})
	s, err := tok.SignedString(secret)
	require.NoError(t, err)

	_, err = ParseToken(s, secret)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseToken_RequiresUserID(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	s, err := GenerateToken("", common.RoleReader, secret, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(s, secret)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
