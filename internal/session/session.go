// Package session manages the authenticated session: token persistence
// across restarts and identity claims decoded from the access token.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/social4sports/sportlink/pkg/logger"
)

// tokenFileName is the fixed name the access token is cached under.
const tokenFileName = "authToken"

// ErrNoSession indicates no valid cached session exists.
var ErrNoSession = errors.New("session: no valid cached session")

// Claims are the token claims the client cares about. The token is decoded
// without signature verification: the client is not the token's audience
// verifier, it only needs the subject and expiry.
type Claims struct {
	jwt.RegisteredClaims
}

// Manager owns the access token and the identity derived from it.
type Manager struct {
	path   string
	logger *logger.Logger

	mu     sync.RWMutex
	token  string
	userID string
	expiry time.Time
}

// NewManager creates a session manager persisting under stateDir.
func NewManager(stateDir string, log *logger.Logger) *Manager {
	return &Manager{
		path:   filepath.Join(stateDir, tokenFileName),
		logger: log.WithComponent("session"),
	}
}

// Restore loads a previously cached token. Expired or unparseable tokens are
// discarded and ErrNoSession is returned.
func (m *Manager) Restore() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNoSession
		}
		return fmt.Errorf("failed to read cached token: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if err := m.SetToken(token); err != nil {
		m.Clear()
		return ErrNoSession
	}
	return nil
}

// SetToken installs a new access token, decodes its claims, and caches it on
// disk. Tokens that are expired or carry no subject are rejected.
func (m *Manager) SetToken(token string) error {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("failed to parse token claims: %w", err)
	}
	if claims.Subject == "" {
		return errors.New("token carries no subject")
	}

	var expiry time.Time
	if claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
		if time.Now().After(expiry) {
			return errors.New("token is expired")
		}
	}

	m.mu.Lock()
	m.token = token
	m.userID = claims.Subject
	m.expiry = expiry
	m.mu.Unlock()

	if err := m.persist(token); err != nil {
		m.logger.Warn("failed to cache token", zap.Error(err))
	}
	return nil
}

func (m *Manager) persist(token string) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(m.path, []byte(token), 0o600)
}

// Clear drops the session and removes the cached token.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.token = ""
	m.userID = ""
	m.expiry = time.Time{}
	m.mu.Unlock()

	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		m.logger.Warn("failed to remove cached token", zap.Error(err))
	}
}

// Token returns the current access token, or "" when logged out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.expiry.IsZero() && time.Now().After(m.expiry) {
		return ""
	}
	return m.token
}

// UserID returns the authenticated user's ID, or "" when logged out.
func (m *Manager) UserID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.userID
}

// Authenticated reports whether a usable session is present.
func (m *Manager) Authenticated() bool {
	return m.Token() != ""
}
