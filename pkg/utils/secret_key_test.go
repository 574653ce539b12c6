package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecretKey(t *testing.T) {
	a, err := GenerateSecretKey()
	require.NoError(t, err)
	b, err := GenerateSecretKey()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, secretKeyLength)

	token, err := GenerateToken(a, "s1", "admin", time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken(b, token)
	assert.Error(t, err)
}
