package credentials

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, ok := s.Access()
	assert.False(t, ok, "new store must be unauthenticated")

	require.NoError(t, s.Save("access-1", "renew-1"))
	access, ok := s.Access()
	assert.True(t, ok)
	assert.Equal(t, "access-1", access)
	renewal, ok := s.Renewal()
	assert.True(t, ok)
	assert.Equal(t, "renew-1", renewal)

	require.NoError(t, s.Clear())
	_, ok = s.Access()
	assert.False(t, ok)
	_, ok = s.Renewal()
	assert.False(t, ok)
}

func TestMemoryStoreRejectsEmptyAccess(t *testing.T) {
	s := NewMemoryStore()
	assert.ErrorIs(t, s.Save("", "renew"), ErrEmptyToken)
}

func TestMemoryStoreWithoutRenewal(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Save("access", ""))

	_, ok := s.Renewal()
	assert.False(t, ok)
	assert.Equal(t, Credentials{Access: "access"}, Snapshot(s))
}

func TestBoltStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.db")

	s, err := OpenBoltStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Save("access-1", "renew-1"))
	require.NoError(t, s.Close())

	reopened, err := OpenBoltStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, Credentials{Access: "access-1", Renewal: "renew-1"}, Snapshot(reopened))
}

func TestBoltStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.db")

	s, err := OpenBoltStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Save("access-1", "renew-1"))
	require.NoError(t, s.Clear())
	require.NoError(t, s.Close())

	reopened, err := OpenBoltStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	_, ok := reopened.Access()
	assert.False(t, ok)
	_, ok = reopened.Renewal()
	assert.False(t, ok)
}

func TestBoltStoreDropsRenewalWhenEmpty(t *testing.T) {
	s, err := OpenBoltStore(filepath.Join(t.TempDir(), "credentials.db"))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save("access-1", "renew-1"))
	require.NoError(t, s.Save("access-2", ""))

	_, ok := s.Renewal()
	assert.False(t, ok)
}

func TestInspect(t *testing.T) {
	exp := time.Now().Add(5 * time.Minute).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"token_type": "access",
		"user_id":    42,
		"exp":        exp.Unix(),
	})
	signed, err := token.SignedString([]byte("server-secret"))
	require.NoError(t, err)

	info, err := Inspect(signed)
	require.NoError(t, err)
	assert.Equal(t, "42", info.UserID)
	assert.Equal(t, "access", info.TokenType)
	assert.True(t, exp.Equal(info.ExpiresAt))
	assert.False(t, info.Expired(time.Now()))
	assert.True(t, info.Expired(exp.Add(time.Second)))
}

func TestInspectRejectsGarbage(t *testing.T) {
	_, err := Inspect("not-a-jwt")
	assert.Error(t, err)
}
