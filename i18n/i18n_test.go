package i18n_test

import (
	"testing"

	"github.com/CoderFake/ragchat"
	"github.com/CoderFake/ragchat/i18n"
	"github.com/stretchr/testify/assert"
)

func TestCatalog(t *testing.T) {
	t.Parallel()

	t.Run("looks up the active language", func(t *testing.T) {
		t.Parallel()
		c := i18n.New(ragchat.LanguageEnglish)
		assert.Equal(t, "Sign in", c.T("login.title"))
		c.SetLanguage(ragchat.LanguageVietnamese)
		assert.Equal(t, "Đăng nhập", c.T("login.title"))
	})

	t.Run("unknown language uses the default", func(t *testing.T) {
		t.Parallel()
		c := i18n.New("fr")
		assert.Equal(t, ragchat.DefaultLanguage, c.Language())
	})

	t.Run("missing key returns the key", func(t *testing.T) {
		t.Parallel()
		c := i18n.New(ragchat.LanguageEnglish)
		assert.Equal(t, "no.such.key", c.T("no.such.key"))
	})

	t.Run("formats arguments", func(t *testing.T) {
		t.Parallel()
		c := i18n.New(ragchat.LanguageEnglish)
		assert.Equal(t, "87% match", c.Tf("sources.match", 87))
		assert.Equal(t, "Sources (2)", c.Tf("sources.title", 2))
	})
}

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tags []string
		want ragchat.Language
	}{
		{"no tags", nil, ragchat.DefaultLanguage},
		{"plain english", []string{"en"}, ragchat.LanguageEnglish},
		{"posix english", []string{"en_US.UTF-8"}, ragchat.LanguageEnglish},
		{"posix vietnamese", []string{"vi_VN.UTF-8"}, ragchat.LanguageVietnamese},
		{"unparseable skipped", []string{"!!", "en-GB"}, ragchat.LanguageEnglish},
		{"first preference wins", []string{"vi", "en"}, ragchat.LanguageVietnamese},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, i18n.Match(tt.tags...))
		})
	}
}
