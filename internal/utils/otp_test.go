package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTPFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9]{6}$`)

	for i := 0; i < 200; i++ {
		otp, err := GenerateOTP()
		require.NoError(t, err)
		assert.Regexp(t, pattern, otp)
	}
}

func TestSecureCompare(t *testing.T) {
	assert.True(t, SecureCompare("483920", "483920"))
	assert.False(t, SecureCompare("483920", "483921"))
	assert.False(t, SecureCompare("483920", "48392"))
	assert.False(t, SecureCompare("", "483920"))
	assert.True(t, SecureCompare("", ""))
}
