package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/scorebook-app/scorebook/internal/config"
	"github.com/scorebook-app/scorebook/internal/logger"
	"github.com/scorebook-app/scorebook/internal/mock"
)

func signedToken(t *testing.T, sub string, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func writeTokenFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte(content+"\n"), 0o600))
	return path
}

func TestFileSessionReadsToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mock.NewMockRemoteTransport(ctrl)

	token := signedToken(t, "42", time.Hour)
	path := writeTokenFile(t, token)

	transport.EXPECT().SetToken(token)

	s := NewFileSession(config.ClientSession{TokenFile: path}, transport, logger.Nop())

	ownerID, err := s.OwnerID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), ownerID)

	got, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, token, got)

	assert.True(t, s.Valid())
}

func TestFileSessionExpiredToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mock.NewMockRemoteTransport(ctrl)
	transport.EXPECT().SetToken(gomock.Any())

	path := writeTokenFile(t, signedToken(t, "42", -time.Minute))
	s := NewFileSession(config.ClientSession{TokenFile: path}, transport, logger.Nop())

	assert.False(t, s.Valid(), "an expired token suspends sync")

	// Identity is still readable; only Valid gates the engine.
	ownerID, err := s.OwnerID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), ownerID)
}

func TestFileSessionMissingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mock.NewMockRemoteTransport(ctrl)

	s := NewFileSession(config.ClientSession{TokenFile: "/nonexistent/token"}, transport, logger.Nop())

	_, err := s.OwnerID()
	assert.ErrorIs(t, err, ErrNoSession)
	assert.False(t, s.Valid())
}

func TestFileSessionEmptyFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mock.NewMockRemoteTransport(ctrl)

	path := writeTokenFile(t, "")
	s := NewFileSession(config.ClientSession{TokenFile: path}, transport, logger.Nop())

	_, err := s.Token()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestFileSessionPicksUpReplacedToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mock.NewMockRemoteTransport(ctrl)

	first := signedToken(t, "42", time.Hour)
	path := writeTokenFile(t, first)

	second := signedToken(t, "7", 2*time.Hour)
	gomock.InOrder(
		transport.EXPECT().SetToken(first),
		transport.EXPECT().SetToken(second),
	)

	s := NewFileSession(config.ClientSession{TokenFile: path}, transport, logger.Nop())

	ownerID, err := s.OwnerID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), ownerID)

	// The auth provider replaces the file (re-login as another account).
	require.NoError(t, os.WriteFile(path, []byte(second), 0o600))

	ownerID, err = s.OwnerID()
	require.NoError(t, err)
	assert.Equal(t, int64(7), ownerID)
}

func TestFileSessionMalformedToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mock.NewMockRemoteTransport(ctrl)

	path := writeTokenFile(t, "not-a-jwt")
	s := NewFileSession(config.ClientSession{TokenFile: path}, transport, logger.Nop())

	_, err := s.OwnerID()
	assert.ErrorIs(t, err, ErrNoSession)
}
