// Package session implements revocable browser sessions. The cookie
// carries a signed JWT whose only payload is a server-side session ID;
// the ID must still be present in the Store for the session to be valid,
// so logout revokes sessions immediately.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the name of the session cookie.
const CookieName = "papertrade_session"

// ErrNotFound is returned when a session ID is absent from the store.
var ErrNotFound = errors.New("session not found")

// ErrInvalidToken is returned for tokens that fail to parse or verify.
var ErrInvalidToken = errors.New("invalid session token")

// Store persists session ID to user ID mappings.
type Store interface {
	Save(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (uint, error)
	Delete(ctx context.Context, sessionID string) error
}

// Claims are the JWT claims carried in the session cookie.
type Claims struct {
	SessionID string `json:"sid"`
	UserID    uint   `json:"user_id"`
	jwt.RegisteredClaims
}

// Manager issues and validates session tokens backed by a Store.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
}

// NewManager creates a session manager.
func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{store: store, secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Create opens a new session for the user and returns the signed cookie token.
func (m *Manager) Create(ctx context.Context, userID uint) (string, error) {
	sessionID := uuid.New().String()

	if err := m.store.Save(ctx, sessionID, userID, m.ttl); err != nil {
		return "", fmt.Errorf("saving session: %w", err)
	}

	claims := &Claims{
		SessionID: sessionID,
		UserID:    userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "papertrade",
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// Validate parses a cookie token and returns the user ID of the session,
// provided the session is still present in the store.
func (m *Manager) Validate(ctx context.Context, token string) (uint, error) {
	claims, err := m.parse(token)
	if err != nil {
		return 0, err
	}

	userID, err := m.store.Get(ctx, claims.SessionID)
	if err != nil {
		return 0, err
	}
	if userID != claims.UserID {
		return 0, ErrInvalidToken
	}
	return userID, nil
}

// Destroy revokes the session referenced by the token. Destroying an
// already-revoked or garbage token is not an error.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	claims, err := m.parse(token)
	if err != nil {
		return nil
	}
	if err := m.store.Delete(ctx, claims.SessionID); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

func (m *Manager) parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
