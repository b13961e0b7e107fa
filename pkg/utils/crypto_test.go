package utils

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAuthKey = "put your unique phrase here, it is at least 32 bytes long"

func TestEncryptSecret_RoundTrip(t *testing.T) {
	encrypted, err := EncryptSecret("ghp_exampletoken1234", testAuthKey)
	require.NoError(t, err)
	assert.NotContains(t, encrypted, "ghp_")

	decrypted, err := DecryptSecret(encrypted, testAuthKey)
	require.NoError(t, err)
	assert.Equal(t, "ghp_exampletoken1234", decrypted)
}

func TestEncryptSecret_RandomIV(t *testing.T) {
	first, err := EncryptSecret("same value", testAuthKey)
	require.NoError(t, err)
	second, err := EncryptSecret("same value", testAuthKey)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestEncryptSecret_PayloadLayout(t *testing.T) {
	encrypted, err := EncryptSecret("token", testAuthKey)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encrypted)
	require.NoError(t, err)

	parts := strings.SplitN(string(raw), "::", 2)
	require.Len(t, parts, 2)
	assert.Len(t, parts[1], 16)

	_, err = base64.StdEncoding.DecodeString(parts[0])
	assert.NoError(t, err)
}

func TestEncryptSecret_ShortKey(t *testing.T) {
	encrypted, err := EncryptSecret("token", "short")
	require.NoError(t, err)

	decrypted, err := DecryptSecret(encrypted, "short")
	require.NoError(t, err)
	assert.Equal(t, "token", decrypted)
}

func TestEncryptSecret_Empty(t *testing.T) {
	encrypted, err := EncryptSecret("", testAuthKey)
	require.NoError(t, err)
	assert.Empty(t, encrypted)

	decrypted, err := DecryptSecret("", testAuthKey)
	require.NoError(t, err)
	assert.Empty(t, decrypted)
}

func TestDecryptSecret_Invalid(t *testing.T) {
	_, err := DecryptSecret("not base64 !!", testAuthKey)
	assert.ErrorIs(t, err, ErrInvalidCiphertext)

	noSeparator := base64.StdEncoding.EncodeToString([]byte("abcdef"))
	_, err = DecryptSecret(noSeparator, testAuthKey)
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "", MaskSecret(""))
	assert.Equal(t, "***", MaskSecret("abc"))
	assert.Equal(t, "******7890", MaskSecret("1234567890"))
}
