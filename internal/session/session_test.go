package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }
func (c *clock) add(d time.Duration) { c.t = c.t.Add(d) }

func newManager(t *testing.T, c *clock) *Manager {
	t.Helper()
	hash, err := HashPassword("smile", bcrypt.MinCost)
	require.NoError(t, err)
	return &Manager{
		PasswordHash: hash,
		Secret:       "test-secret",
		TTL:          time.Hour,
		MaxAttempts:  3,
		Lockout:      30 * time.Second,
		Now:          c.now,
	}
}

func TestLoginAndVerify(t *testing.T) {
	c := &clock{t: time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC)}
	m := newManager(t, c)

	tok, err := m.Login("smile")
	require.NoError(t, err)
	assert.Equal(t, c.t.Add(time.Hour), tok.ExpiresAt)
	require.NoError(t, m.Verify(tok.Value))

	c.add(59 * time.Minute)
	require.NoError(t, m.Verify(tok.Value))

	c.add(2 * time.Minute)
	require.ErrorIs(t, m.Verify(tok.Value), ErrInvalidToken)
}

func TestVerifyRejectsForeignTokens(t *testing.T) {
	c := &clock{t: time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC)}
	m := newManager(t, c)

	other := newManager(t, c)
	other.Secret = "other-secret"
	tok, err := other.Login("smile")
	require.NoError(t, err)
	require.ErrorIs(t, m.Verify(tok.Value), ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "clinic",
		ExpiresAt: jwt.NewNumericDate(c.t.Add(time.Hour)),
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	require.ErrorIs(t, m.Verify(unsigned), ErrInvalidToken)

	require.ErrorIs(t, m.Verify(""), ErrInvalidToken)
}

func TestLockoutAfterRepeatedFailures(t *testing.T) {
	c := &clock{t: time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC)}
	m := newManager(t, c)

	_, err := m.Login("wrong")
	require.ErrorIs(t, err, ErrInvalidPassword)
	_, err = m.Login("wrong")
	require.ErrorIs(t, err, ErrInvalidPassword)
	_, err = m.Login("wrong")
	require.ErrorIs(t, err, ErrLockedOut)

	_, err = m.Login("smile")
	require.ErrorIs(t, err, ErrLockedOut)
	assert.Equal(t, 30*time.Second, m.RetryAfter())

	c.add(31 * time.Second)
	assert.Zero(t, m.RetryAfter())
	_, err = m.Login("smile")
	require.NoError(t, err)
}

func TestSuccessResetsFailureCount(t *testing.T) {
	c := &clock{t: time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC)}
	m := newManager(t, c)

	for i := 0; i < 2; i++ {
		_, err := m.Login("wrong")
		require.ErrorIs(t, err, ErrInvalidPassword)
	}
	_, err := m.Login("smile")
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err := m.Login("wrong")
		require.ErrorIs(t, err, ErrInvalidPassword)
	}
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("Bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", tok)

	tok, ok = BearerToken("bearer  xyz ")
	assert.True(t, ok)
	assert.Equal(t, "xyz", tok)

	_, ok = BearerToken("Basic abc")
	assert.False(t, ok)
	_, ok = BearerToken("Bearer ")
	assert.False(t, ok)
}

func TestWrongPasswordReportsRemainingAttempts(t *testing.T) {
	c := &clock{t: time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC)}
	m := newManager(t, c)
	assert.Equal(t, 3, m.Remaining())

	_, err := m.Login("wrong")
	var perr *PasswordError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Remaining)
	assert.Equal(t, 2, m.Remaining())

	_, err = m.Login("wrong")
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Remaining)

	_, err = m.Login("wrong")
	require.ErrorIs(t, err, ErrLockedOut)
	assert.Equal(t, 3, m.Remaining())
}
