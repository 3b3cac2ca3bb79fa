package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	password := "sup3rsecret"

	hashed, err := HashPassword(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hashed)
	assert.NotEqual(t, password, hashed)
}

func TestCheckPassword(t *testing.T) {
	password := "sup3rsecret"

	hashed, err := HashPassword(password)
	assert.NoError(t, err)

	assert.True(t, CheckPassword(hashed, password))
	assert.False(t, CheckPassword(hashed, "wrong-password"))
	assert.False(t, CheckPassword("not-a-bcrypt-hash", password))
}
