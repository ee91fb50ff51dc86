package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGate(t *testing.T) {
	g, err := NewGate("#33", "admin", "secret", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, g.VerifyKey("#33"))
	assert.False(t, g.VerifyKey("#34"))
	assert.False(t, g.VerifyKey(""))

	assert.True(t, g.Login("admin", "secret"))
	assert.False(t, g.Login("admin", "Secret"))
	assert.False(t, g.Login("root", "secret"))
	assert.False(t, g.Login("", ""))
}
