package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.Generate(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestManager_RejectsExpired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	token, err := m.Generate(42)
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.Error(t, err)
}

func TestManager_RejectsTampered(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.Generate(42)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	_, err = m.Verify(tampered)
	assert.Error(t, err)
}

func TestManager_RejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).Generate(7)
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).Verify(token)
	assert.Error(t, err)
}
