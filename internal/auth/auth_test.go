package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate_DisabledWhenNoKeyConfigured(t *testing.T) {
	d := Validate("", "")
	require.True(t, d.Allowed)
	require.Equal(t, ReasonOK, d.Reason)

	// Even a garbage header passes when auth is off.
	d = Validate("Bearer whatever", "")
	require.True(t, d.Allowed)
}

func TestValidate_ExactMatch(t *testing.T) {
	d := Validate("Bearer secret", "secret")
	require.True(t, d.Allowed)
	require.Equal(t, ReasonOK, d.Reason)
}

func TestValidate_MissingHeader(t *testing.T) {
	d := Validate("", "secret")
	require.False(t, d.Allowed)
	require.Equal(t, ReasonMissingKey, d.Reason)
}

func TestValidate_WrongShape(t *testing.T) {
	for _, hdr := range []string{
		"secret",        // no scheme
		"Basic secret",  // wrong scheme
		"Bearer",        // no token
		"Bearer ",       // empty token
		"bearer secret", // scheme is case-sensitive
	} {
		d := Validate(hdr, "secret")
		require.False(t, d.Allowed, "header %q should be rejected", hdr)
		require.Equal(t, ReasonMissingKey, d.Reason, "header %q", hdr)
	}
}

func TestValidate_TokenOffByOneChar(t *testing.T) {
	d := Validate("Bearer secret1", "secret")
	require.False(t, d.Allowed)
	require.Equal(t, ReasonBadKey, d.Reason)

	d = Validate("Bearer secre", "secret")
	require.False(t, d.Allowed)
	require.Equal(t, ReasonBadKey, d.Reason)
}

func TestValidate_TokenIsCaseSensitive(t *testing.T) {
	d := Validate("Bearer Secret", "secret")
	require.False(t, d.Allowed)
	require.Equal(t, ReasonBadKey, d.Reason)
}
