package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askfield/user_service/internal/domain"
	"github.com/askfield/user_service/internal/helper/utils"
)

func TestIssueVerificationToken(t *testing.T) {
	user := &domain.User{Email: "a@x.com"}

	raw, err := user.IssueVerificationToken(24 * time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	// only the hash is stored, never the raw value
	assert.NotEqual(t, raw, user.VerificationToken)
	assert.Equal(t, utils.Sha256Hex(raw), user.VerificationToken)

	require.NotNil(t, user.VerificationTokenExpiresAt)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), *user.VerificationTokenExpiresAt, time.Minute)

	assert.True(t, user.VerificationTokenValid(time.Now()))
	assert.False(t, user.VerificationTokenValid(time.Now().Add(25*time.Hour)))
}

func TestReissueOverwritesPriorToken(t *testing.T) {
	user := &domain.User{Email: "a@x.com"}

	first, err := user.IssueVerificationToken(24 * time.Hour)
	require.NoError(t, err)
	firstHash := user.VerificationToken

	second, err := user.IssueVerificationToken(24 * time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, firstHash, user.VerificationToken)
	assert.Equal(t, utils.Sha256Hex(second), user.VerificationToken)
}

func TestConsumeVerification(t *testing.T) {
	user := &domain.User{Email: "a@x.com"}
	_, err := user.IssueVerificationToken(24 * time.Hour)
	require.NoError(t, err)

	user.ConsumeVerification()

	assert.True(t, user.IsVerified)
	assert.Empty(t, user.VerificationToken)
	assert.Nil(t, user.VerificationTokenExpiresAt)
	assert.False(t, user.VerificationTokenValid(time.Now()))
}

func TestPasswordStaging(t *testing.T) {
	user := &domain.User{Email: "a@x.com"}

	_, dirty := user.PendingPassword()
	assert.False(t, dirty)

	user.SetPassword("secret1")
	plain, dirty := user.PendingPassword()
	assert.True(t, dirty)
	assert.Equal(t, "secret1", plain)

	user.ApplyPasswordHash("$2a$10$fakehash")
	assert.Equal(t, "$2a$10$fakehash", user.PasswordHash)

	plain, dirty = user.PendingPassword()
	assert.False(t, dirty)
	assert.Empty(t, plain)
}
