// Package i18n holds the English and Vietnamese UI strings and picks a
// language from locale tags using golang.org/x/text/language.
package i18n

import (
	"fmt"
	"strings"

	"github.com/CoderFake/ragchat"
	"golang.org/x/text/language"
)

// Catalog looks up UI strings in one language. A key missing from that
// language falls back to Vietnamese, then to the key itself.
type Catalog struct {
	lang ragchat.Language
}

// New returns a catalog for lang. Unknown languages use the default.
func New(lang ragchat.Language) *Catalog {
	c := &Catalog{}
	c.SetLanguage(lang)
	return c
}

// Language returns the active language.
func (c *Catalog) Language() ragchat.Language { return c.lang }

// SetLanguage switches the active language. Unknown languages use the
// default.
func (c *Catalog) SetLanguage(lang ragchat.Language) {
	if _, ok := messages[lang]; !ok {
		lang = ragchat.DefaultLanguage
	}
	c.lang = lang
}

// T returns the string for key.
func (c *Catalog) T(key string) string {
	if s, ok := messages[c.lang][key]; ok {
		return s
	}
	if s, ok := messages[ragchat.DefaultLanguage][key]; ok {
		return s
	}
	return key
}

// Tf formats the string for key with args.
func (c *Catalog) Tf(key string, args ...any) string {
	return fmt.Sprintf(c.T(key), args...)
}

var supported = []language.Tag{language.Vietnamese, language.English}

var matcher = language.NewMatcher(supported)

// Match returns the supported language that best fits the given locale
// tags, most preferred first. POSIX forms such as "vi_VN.UTF-8" are
// accepted. With no usable match it returns ragchat.DefaultLanguage.
func Match(tags ...string) ragchat.Language {
	var parsed []language.Tag
	for _, raw := range tags {
		tag, err := language.Parse(normalize(raw))
		if err != nil {
			continue
		}
		parsed = append(parsed, tag)
	}
	if len(parsed) == 0 {
		return ragchat.DefaultLanguage
	}
	_, index, conf := matcher.Match(parsed...)
	if conf == language.No {
		return ragchat.DefaultLanguage
	}
	if supported[index] == language.English {
		return ragchat.LanguageEnglish
	}
	return ragchat.LanguageVietnamese
}

// normalize turns a POSIX locale like "en_US.UTF-8@euro" into "en-US".
func normalize(s string) string {
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	return strings.ReplaceAll(strings.TrimSpace(s), "_", "-")
}
