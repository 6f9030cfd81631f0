package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyKnownKey(t *testing.T) {
	hash, err := HashKey("svc-key-1")
	require.NoError(t, err)

	verifier := NewAPIKeyVerifier([]string{hash})
	assert.NoError(t, verifier.Verify("svc-key-1"))
}

func TestVerifyUnknownKey(t *testing.T) {
	hash, err := HashKey("svc-key-1")
	require.NoError(t, err)

	verifier := NewAPIKeyVerifier([]string{hash})
	assert.ErrorIs(t, verifier.Verify("svc-key-2"), ErrUnknownKey)
}

func TestVerifyNoHashesConfigured(t *testing.T) {
	verifier := NewAPIKeyVerifier(nil)
	assert.ErrorIs(t, verifier.Verify("anything"), ErrUnknownKey)
}
