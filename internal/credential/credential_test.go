package credential

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mverner/teambook/internal/common"
)

func TestNewSalt_FixedLengthHex(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)
	require.Len(t, salt, 128, "sha512 hex digest length")
	_, err = hex.DecodeString(salt)
	require.NoError(t, err, "salt must be valid hex")

	other, err := NewSalt()
	require.NoError(t, err)
	require.NotEqual(t, salt, other)
}

func TestHashPassword_Deterministic(t *testing.T) {
	h1 := HashPassword("hunter22", "salt")
	h2 := HashPassword("hunter22", "salt")
	require.Equal(t, h1, h2)
	require.Len(t, h1, 128)

	require.NotEqual(t, h1, HashPassword("hunter22", "other-salt"))
	require.NotEqual(t, h1, HashPassword("hunter23", "salt"))
}

func TestCheckLength(t *testing.T) {
	require.NoError(t, CheckLength("12345678", 8))
	err := CheckLength("1234567", 8)
	require.Error(t, err)
	require.True(t, errors.Is(err, common.ErrWeakPassword))
}

func TestCompare_RoundTrip(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)
	stored := HashPassword("correct horse", salt)

	require.True(t, Compare(stored, "correct horse", salt))
	require.False(t, Compare(stored, "correct horsf", salt))
	require.False(t, Compare(stored, "", salt))
	require.False(t, Compare(stored, "correct horse", salt+"x"))
}
