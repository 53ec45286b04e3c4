package service

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/scorebook-app/scorebook/internal/adapter"
	"github.com/scorebook-app/scorebook/internal/config"
	"github.com/scorebook-app/scorebook/internal/logger"
	"github.com/scorebook-app/scorebook/internal/utils"
)

// fileSession reads the bearer token the external auth provider deposits in
// a file. The token is re-read and re-validated lazily: the provider may
// replace the file at any time (re-login, refresh), and the next sync cycle
// simply picks the new token up.
type fileSession struct {
	tokenFile string
	transport adapter.RemoteTransport
	logger    *logger.Logger
	now       func() time.Time

	mu      sync.Mutex
	token   string
	ownerID int64
	expiry  time.Time
}

// NewFileSession constructs a [SessionSource] backed by the token file from
// the session configuration. The transport is handed every fresh token so
// outbound requests always carry current credentials.
func NewFileSession(cfg config.ClientSession, transport adapter.RemoteTransport, logger *logger.Logger) SessionSource {
	return &fileSession{
		tokenFile: cfg.TokenFile,
		transport: transport,
		logger:    logger,
		now:       time.Now,
	}
}

// OwnerID implements [SessionSource].
func (s *fileSession) OwnerID() (int64, error) {
	if err := s.refresh(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ownerID, nil
}

// Token implements [SessionSource].
func (s *fileSession) Token() (string, error) {
	if err := s.refresh(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

// Valid implements [SessionSource].
func (s *fileSession) Valid() bool {
	if err := s.refresh(); err != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now().Before(s.expiry)
}

// refresh re-reads the token file when its content changed and recomputes
// the derived identity and expiry.
func (s *fileSession) refresh() error {
	raw, err := os.ReadFile(s.tokenFile)
	if err != nil {
		return fmt.Errorf("%w: read token file: %w", ErrNoSession, err)
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return fmt.Errorf("%w: token file is empty", ErrNoSession)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if token == s.token {
		return nil
	}

	expiry, err := utils.TokenExpiry(token)
	if err != nil {
		return fmt.Errorf("%w: parse token expiry: %w", ErrNoSession, err)
	}
	ownerID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return fmt.Errorf("%w: parse token subject: %w", ErrNoSession, err)
	}

	s.token = token
	s.ownerID = ownerID
	s.expiry = expiry
	s.transport.SetToken(token)

	s.logger.Info().
		Str("func", "fileSession.refresh").
		Int64("owner_id", ownerID).
		Time("expires_at", expiry).
		Msg("picked up fresh session token")
	return nil
}
