package ragchat_test

import (
	"errors"
	"testing"

	"github.com/CoderFake/ragchat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	t.Parallel()

	l, err := ragchat.ParseLanguage("en")
	require.NoError(t, err)
	assert.Equal(t, ragchat.LanguageEnglish, l)

	_, err = ragchat.ParseLanguage("fr")
	assert.True(t, errors.Is(err, ragchat.ErrValidation))
}

func TestParseThemeMode(t *testing.T) {
	t.Parallel()

	m, err := ragchat.ParseThemeMode("dark")
	require.NoError(t, err)
	assert.Equal(t, ragchat.ThemeDark, m)
	assert.Equal(t, ragchat.ThemeLight, m.Toggle())

	_, err = ragchat.ParseThemeMode("blue")
	assert.ErrorIs(t, err, ragchat.ErrValidation)
}

func TestDefaultState(t *testing.T) {
	t.Parallel()

	s := ragchat.DefaultState()
	assert.Equal(t, ragchat.LanguageVietnamese, s.Language)
	assert.Equal(t, ragchat.ThemeLight, s.Theme)
	assert.False(t, s.Authenticated())
	assert.Equal(t, "anon", s.SessionKey())
	assert.Empty(t, s.CurrentSessionID())
}

func TestState_Sessions(t *testing.T) {
	t.Parallel()

	t.Run("session ids are kept per account", func(t *testing.T) {
		t.Parallel()
		anon := ragchat.DefaultState().WithSessionID("session_anon")

		user := anon
		user.AccessToken = "tok"
		user.User = &ragchat.User{ID: 7, Username: "alice"}
		assert.Equal(t, "user_7", user.SessionKey())
		assert.Empty(t, user.CurrentSessionID())

		user = user.WithSessionID("session_alice")
		assert.Equal(t, "session_alice", user.CurrentSessionID())
		assert.Equal(t, "session_anon", anon.CurrentSessionID())
	})

	t.Run("with session id does not mutate the original", func(t *testing.T) {
		t.Parallel()
		a := ragchat.DefaultState().WithSessionID("one")
		b := a.WithSessionID("two")
		assert.Equal(t, "one", a.CurrentSessionID())
		assert.Equal(t, "two", b.CurrentSessionID())
	})

	t.Run("sign out drops credentials and the user session", func(t *testing.T) {
		t.Parallel()
		s := ragchat.DefaultState().WithSessionID("session_anon")
		s.AccessToken = "a"
		s.RefreshToken = "r"
		s.User = &ragchat.User{ID: 3}
		s.Language = ragchat.LanguageEnglish
		s = s.WithSessionID("session_user")

		out := s.SignedOut()
		assert.False(t, out.Authenticated())
		assert.Empty(t, out.RefreshToken)
		assert.Nil(t, out.User)
		assert.Equal(t, ragchat.LanguageEnglish, out.Language)
		assert.Equal(t, "session_anon", out.CurrentSessionID())
		assert.NotContains(t, out.SessionIDs, "user_3")
		assert.Contains(t, s.SessionIDs, "user_3")
	})
}

func TestUser(t *testing.T) {
	t.Parallel()

	var nobody *ragchat.User
	assert.False(t, nobody.IsAdmin())
	assert.Empty(t, nobody.DisplayName())

	admin := &ragchat.User{Username: "root", Role: ragchat.UserRoleAdmin}
	assert.True(t, admin.IsAdmin())
	assert.Equal(t, "root", admin.DisplayName())

	named := &ragchat.User{Username: "bob", Name: "Bob B", Role: ragchat.UserRoleUser}
	assert.False(t, named.IsAdmin())
	assert.Equal(t, "Bob B", named.DisplayName())
}
