package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/marcus/clinic/internal/models"
)

const (
	sessionFile   = ".clinic/session.json"
	sessionPrefix = "ses_"
)

// ErrNoSession is returned when nobody is logged in
var ErrNoSession = errors.New("not logged in: run 'clinic login' first")

// Session is the logged-in user's role and bearer token
type Session struct {
	ID        string      `json:"id"`
	Role      models.Role `json:"role"`
	Token     string      `json:"token"`
	User      string      `json:"user,omitempty"`
	StartedAt time.Time   `json:"started_at"`
}

// Expired reports whether the token's exp claim is in the past. The signature
// is not verified; the backend does that on every request.
func (s *Session) Expired(now time.Time) bool {
	if s.Token == "" {
		return true
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		// Opaque tokens carry no expiry we can read
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}

// generateID creates a new random session ID
func generateID() (string, error) {
	bytes := make([]byte, 3) // 6 hex characters
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return sessionPrefix + hex.EncodeToString(bytes), nil
}

// Store persists the session under a base directory
type Store struct {
	baseDir string
}

// NewStore returns a store rooted at baseDir
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) path() string {
	return filepath.Join(s.baseDir, sessionFile)
}

// Load returns the current session, or ErrNoSession
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("invalid session file: %w", err)
	}
	if sess.Token == "" {
		return nil, ErrNoSession
	}
	return &sess, nil
}

// Active returns the session if it exists and has not expired
func (s *Store) Active(now time.Time) (*Session, error) {
	sess, err := s.Load()
	if err != nil {
		return nil, err
	}
	if sess.Expired(now) {
		return nil, ErrNoSession
	}
	return sess, nil
}

// Start writes a new session for a successful login
func (s *Store) Start(role models.Role, token, user string) (*Session, error) {
	id, err := generateID()
	if err != nil {
		return nil, err
	}

	sess := &Session{
		ID:        id,
		Role:      role,
		Token:     token,
		User:      user,
		StartedAt: time.Now(),
	}
	if err := s.Save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Save writes the session to disk
func (s *Store) Save(sess *Session) error {
	sessionPath := s.path()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(sessionPath), 0755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(sessionPath, data, 0600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}

	return nil
}

// Clear removes the session (logout)
func (s *Store) Clear() error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// Token returns the active bearer token, or "" when logged out
func (s *Store) Token() string {
	sess, err := s.Active(time.Now())
	if err != nil {
		return ""
	}
	return sess.Token
}
