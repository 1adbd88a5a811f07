// internal/models/user_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	user := &User{Email: "test@example.com"}

	require.NoError(t, user.SetPassword("correct horse battery staple"))
	assert.NotEqual(t, "correct horse battery staple", user.PasswordHash)

	assert.NoError(t, user.CheckPassword("correct horse battery staple"))
	assert.Error(t, user.CheckPassword("wrong password"))
}

func TestStringListContains(t *testing.T) {
	list := StringList{"Germany", "Japan"}
	assert.True(t, list.Contains("Japan"))
	assert.False(t, list.Contains("France"))
}
