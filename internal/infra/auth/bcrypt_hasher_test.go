package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"accounts/config"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	password := "s3cret-Phrase"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_HashIsSaltedPerCall(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	first, err := hasher.Hash("same-secret")
	assert.NoError(t, err)
	second, err := hasher.Hash("same-secret")
	assert.NoError(t, err)

	// bcrypt salts every call, so equal inputs never produce equal digests.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("same-secret", first))
	assert.True(t, hasher.Check("same-secret", second))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)
	password := "s3cret-Phrase"

	hash, err := hasher.Hash(password)
	assert.NoError(t, err)

	// Test correct password
	assert.True(t, hasher.Check(password, hash))

	// Test incorrect password
	assert.False(t, hasher.Check("wrong-Phrase", hash))

	// Test empty password
	assert.False(t, hasher.Check("", hash))

	// Test with invalid hash
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_CostFromConfig(t *testing.T) {
	cfg := &config.Config{
		Auth: &config.AuthConfig{BcryptCost: 6},
	}
	hasher := NewBcryptHasher(cfg)

	hash, err := hasher.Hash("s3cret-Phrase")
	assert.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, 6, cost)
}

func TestBcryptHasher_DefaultCost(t *testing.T) {
	hasher := NewBcryptHasher(nil)

	hash, err := hasher.Hash("s3cret-Phrase")
	assert.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
