package api

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidUserID(t *testing.T) {
	assert.True(t, validUserID("alice"))
	assert.True(t, validUserID("5f1c0d2e-aaaa-bbbb-cccc-123456789abc"))
	assert.True(t, validUserID("名前"))

	assert.False(t, validUserID(""))
	assert.False(t, validUserID("   "))
	assert.False(t, validUserID("bad\nid"))
	assert.False(t, validUserID(strings.Repeat("x", maxUserIDLength+1)))
}

func TestRegisterValidators_Idempotent(t *testing.T) {
	assert.NoError(t, registerValidators())
	assert.NoError(t, registerValidators())
}
