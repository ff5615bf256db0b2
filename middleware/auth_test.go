package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-store-cli/models"
)

type roleMap map[string]models.UserRole

func (m roleMap) RoleOf(_ context.Context, login string) (models.UserRole, error) {
	role, ok := m[login]
	if !ok {
		return "", models.ErrNotFound
	}
	return role, nil
}

func TestAuthorize(t *testing.T) {
	roles := roleMap{
		"cust":   models.RoleCustomer,
		"driver": models.RoleDriver,
		"boss":   models.RoleManager,
		"legacy": "chef",
	}
	tests := []struct {
		login string
		cap   Capability
		ok    bool
	}{
		{"cust", CapProfileUpdate, true},
		{"cust", CapMenuUpdate, false},
		{"cust", CapOrderStatusUpdate, false},
		{"driver", CapOrderStatusUpdate, true},
		{"driver", CapUserUpdate, false},
		{"boss", CapMenuUpdate, true},
		{"boss", CapUserUpdate, true},
		{"boss", CapOrderLookupAll, true},
		{"legacy", CapProfileUpdate, false},
		{"ghost", CapProfileUpdate, false},
	}
	for _, tt := range tests {
		t.Run(tt.login+"/"+string(tt.cap), func(t *testing.T) {
			_, err := Authorize(context.Background(), roles, tt.login, tt.cap)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, models.ErrAccessDenied)
			}
		})
	}
}

func TestAuthorizePropagatesStorageErrors(t *testing.T) {
	boom := errors.New("link down")
	_, err := Authorize(context.Background(), failingResolver{boom}, "x", CapMenuUpdate)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, models.ErrAccessDenied)
}

type failingResolver struct{ err error }

func (f failingResolver) RoleOf(context.Context, string) (models.UserRole, error) {
	return "", f.err
}

func TestSessions(t *testing.T) {
	s, err := NewSessions("", time.Minute)
	require.NoError(t, err)

	token, err := s.GenerateToken("alice")
	require.NoError(t, err)

	login, err := s.Identity(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", login)

	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = s.Identity(token)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestSessionsRejectForeignKey(t *testing.T) {
	a, err := NewSessions("key-a", time.Minute)
	require.NoError(t, err)
	b, err := NewSessions("key-b", time.Minute)
	require.NoError(t, err)

	token, err := a.GenerateToken("alice")
	require.NoError(t, err)
	_, err = b.Identity(token)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionExpired)
}
