package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserHashesPassword(t *testing.T) {
	u, err := CreateUser("Mechanic Meg", "meg@example.com", "s3cret-pw", ROLE_STAFF)
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pw", u.Password)
	assert.True(t, u.CheckPassword("s3cret-pw"))
	assert.False(t, u.CheckPassword("wrong"))
	assert.True(t, u.IsActive())
	assert.False(t, u.IsOwner())
}

func TestCreateUserValidates(t *testing.T) {
	_, err := CreateUser("x", "not-an-email", "s3cret-pw", ROLE_STAFF)
	assert.Error(t, err)

	_, err = CreateUser("Owner Otto", "otto@example.com", "s3cret-pw", "superadmin")
	assert.Error(t, err)
}

func TestSetPassword(t *testing.T) {
	u := &User{}
	require.NoError(t, u.SetPassword("another-pw"))
	assert.True(t, u.CheckPassword("another-pw"))
}
