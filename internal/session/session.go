// Package session gates the clinic back office behind one shared password
// and issues short-lived bearer tokens.
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPassword = errors.New("session: invalid password")
	ErrLockedOut       = errors.New("session: too many attempts")
	ErrInvalidToken    = errors.New("session: invalid token")
)

const subject = "clinic"

// PasswordError reports a wrong password and how many attempts remain
// before the lockout starts. It matches ErrInvalidPassword.
type PasswordError struct {
	Remaining int
}

func (e *PasswordError) Error() string {
	return fmt.Sprintf("%v: %d attempts left", ErrInvalidPassword, e.Remaining)
}

func (e *PasswordError) Is(target error) bool { return target == ErrInvalidPassword }

// Token is an issued bearer token.
type Token struct {
	Value     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Manager checks the shared password and signs tokens. After MaxAttempts
// consecutive failures, logins are refused until Lockout has passed.
type Manager struct {
	PasswordHash string
	Secret       string
	TTL          time.Duration
	MaxAttempts  int
	Lockout      time.Duration
	Now          func() time.Time

	mu          sync.Mutex
	failures    int
	lockedUntil time.Time
}

type claims struct {
	jwt.RegisteredClaims
}

func (m *Manager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m *Manager) limit() int {
	if m.MaxAttempts <= 0 {
		return 10
	}
	return m.MaxAttempts
}

// Remaining reports how many wrong passwords are still allowed before the
// lockout starts.
func (m *Manager) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.limit() - m.failures
}

// HashPassword bcrypt-hashes a plain password for PasswordHash.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// RetryAfter reports how long logins stay locked, zero when unlocked.
func (m *Manager) RetryAfter() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d := m.lockedUntil.Sub(m.now()); d > 0 {
		return d
	}
	return 0
}

// Login verifies password and returns a signed token.
func (m *Manager) Login(password string) (Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Before(m.lockedUntil) {
		return Token{}, ErrLockedOut
	}
	if bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)) != nil {
		m.failures++
		if m.failures >= m.limit() {
			m.failures = 0
			m.lockedUntil = now.Add(m.Lockout)
			return Token{}, ErrLockedOut
		}
		return Token{}, &PasswordError{Remaining: m.limit() - m.failures}
	}
	m.failures = 0
	m.lockedUntil = time.Time{}

	ttl := m.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	expires := now.Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	signed, err := token.SignedString([]byte(m.Secret))
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	return Token{Value: signed, ExpiresAt: expires.Truncate(time.Second)}, nil
}

// Verify checks a token string against the secret and the manager's clock.
func (m *Manager) Verify(tokenString string) error {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return ErrInvalidToken
	}
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(m.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
		jwt.WithSubject(subject),
	)
	if err != nil || !token.Valid {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}
