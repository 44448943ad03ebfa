package lock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestDefaultLock(t *testing.T) {
	l := Default()

	assert.True(t, l.Check("1234"))
	assert.False(t, l.Check("12345"))
	assert.False(t, l.Check("123"))
	assert.False(t, l.Check(""))
	assert.False(t, l.Check(" 1234"))
}

func TestLockIsCaseSensitive(t *testing.T) {
	l, err := New("Secret")
	require.NoError(t, err)

	assert.True(t, l.Check("Secret"))
	assert.False(t, l.Check("secret"))
	assert.False(t, l.Check("SECRET"))
}

func TestNewFromHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("open-sesame"), bcrypt.MinCost)
	require.NoError(t, err)

	l, err := NewFromHash(string(hash))
	require.NoError(t, err)
	assert.True(t, l.Check("open-sesame"))
	assert.False(t, l.Check("1234"))
}

func TestNewFromHashRejectsGarbage(t *testing.T) {
	_, err := NewFromHash("not-a-hash")
	assert.Error(t, err)
}
