package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"inventorywidget/internal/session"
)

func TestManager_UnlockWithoutPinHash(t *testing.T) {
	manager := session.NewManager("test_jwt_secret", "")
	assert.False(t, manager.Authenticated())

	token, err := manager.Unlock("", "Sam")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, manager.Authenticated())
	assert.Equal(t, "Sam", manager.UserName())
	assert.False(t, manager.LastLogin().IsZero())
}

func TestManager_UnlockWithPinHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("4321"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	manager := session.NewManager("test_jwt_secret", string(hash))

	_, err = manager.Unlock("0000", "Sam")
	assert.Error(t, err)
	assert.False(t, manager.Authenticated())

	token, err := manager.Unlock("4321", "Sam")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, manager.Authenticated())
}

func TestManager_TokenRoundTrip(t *testing.T) {
	manager := session.NewManager("test_jwt_secret", "")

	token, err := manager.Unlock("", "Sam")
	assert.NoError(t, err)

	claims, err := manager.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "Sam", claims["name"])
	assert.NotEmpty(t, claims["sid"])
}

func TestManager_RejectsForeignToken(t *testing.T) {
	issuer := session.NewManager("secret_one", "")
	verifier := session.NewManager("secret_two", "")

	token, err := issuer.Unlock("", "Sam")
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestManager_Logout(t *testing.T) {
	manager := session.NewManager("test_jwt_secret", "")

	_, err := manager.Unlock("", "Sam")
	assert.NoError(t, err)
	assert.True(t, manager.Authenticated())

	manager.Logout()
	assert.False(t, manager.Authenticated())
	assert.Empty(t, manager.UserName())
}
