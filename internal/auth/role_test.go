package auth_test

import (
	"encoding/json"
	"testing"

	"github.com/serroba/url-shortener/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	t.Run("parses known roles", func(t *testing.T) {
		user, err := auth.ParseRole("User")
		require.NoError(t, err)
		assert.Equal(t, auth.RoleUser, user)

		admin, err := auth.ParseRole("Admin")
		require.NoError(t, err)
		assert.Equal(t, auth.RoleAdmin, admin)
	})

	t.Run("rejects anything else", func(t *testing.T) {
		for _, s := range []string{"", "user", "root", "ADMIN"} {
			_, err := auth.ParseRole(s)
			assert.ErrorIs(t, err, auth.ErrUnknownRole, s)
		}
	})
}

func TestRole_JSON(t *testing.T) {
	t.Run("encodes as text", func(t *testing.T) {
		b, err := json.Marshal(map[string]auth.Role{"role": auth.RoleAdmin})

		require.NoError(t, err)
		assert.JSONEq(t, `{"role":"Admin"}`, string(b))
	})

	t.Run("refuses to encode the zero role", func(t *testing.T) {
		_, err := json.Marshal(auth.Role(0))

		assert.Error(t, err)
	})

	t.Run("decodes text", func(t *testing.T) {
		var r auth.Role

		require.NoError(t, json.Unmarshal([]byte(`"User"`), &r))
		assert.Equal(t, auth.RoleUser, r)
	})
}

func TestCaller(t *testing.T) {
	t.Run("anonymous caller is not authenticated", func(t *testing.T) {
		assert.False(t, auth.Caller{}.Authenticated())
		assert.False(t, auth.Caller{ID: 3}.Authenticated())
		assert.False(t, auth.Caller{Role: auth.RoleAdmin}.Authenticated())
	})

	t.Run("owner may manage own record", func(t *testing.T) {
		c := auth.Caller{ID: 3, Role: auth.RoleUser}

		assert.True(t, c.CanManage(3))
		assert.False(t, c.CanManage(4))
	})

	t.Run("admin may manage any record", func(t *testing.T) {
		c := auth.Caller{ID: 1, Role: auth.RoleAdmin}

		assert.True(t, c.CanManage(42))
	})

	t.Run("anonymous caller manages nothing", func(t *testing.T) {
		assert.False(t, auth.Caller{}.CanManage(0))
	})
}
