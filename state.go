package ragchat

import (
	"fmt"
	"strconv"
)

// Language is a supported UI and answer language.
type Language string

const (
	LanguageEnglish    Language = "en"
	LanguageVietnamese Language = "vi"
)

// DefaultLanguage is used when no preference is stored.
const DefaultLanguage = LanguageVietnamese

// ParseLanguage validates a language code.
func ParseLanguage(s string) (Language, error) {
	switch l := Language(s); l {
	case LanguageEnglish, LanguageVietnamese:
		return l, nil
	}
	return "", fmt.Errorf("unsupported language %q: %w", s, ErrValidation)
}

// ThemeMode is the light or dark colour scheme.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// ParseThemeMode validates a theme name.
func ParseThemeMode(s string) (ThemeMode, error) {
	switch m := ThemeMode(s); m {
	case ThemeLight, ThemeDark:
		return m, nil
	}
	return "", fmt.Errorf("unsupported theme %q: %w", s, ErrValidation)
}

// Toggle returns the other mode.
func (m ThemeMode) Toggle() ThemeMode {
	if m == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// State is the process-wide client state: credentials, the signed-in user,
// preferences, and the chat session id per account. It is owned by a
// StateStore; rendering code never reads it.
type State struct {
	AccessToken  string
	RefreshToken string
	User         *User
	Language     Language
	Theme        ThemeMode
	// SessionIDs maps SessionKey() to the active chat session id.
	SessionIDs map[string]string
}

// DefaultState returns an empty state with default preferences.
func DefaultState() State {
	return State{
		Language:   DefaultLanguage,
		Theme:      ThemeLight,
		SessionIDs: make(map[string]string),
	}
}

// Authenticated reports whether an access token is held.
func (s State) Authenticated() bool { return s.AccessToken != "" }

// SessionKey identifies whose chat session is current: the signed-in user
// or the anonymous visitor.
func (s State) SessionKey() string {
	if s.User != nil && s.User.ID != 0 {
		return "user_" + strconv.Itoa(s.User.ID)
	}
	return "anon"
}

// CurrentSessionID returns the stored session id for SessionKey, if any.
func (s State) CurrentSessionID() string {
	return s.SessionIDs[s.SessionKey()]
}

// WithSessionID returns a copy of s with id stored under SessionKey.
func (s State) WithSessionID(id string) State {
	ids := make(map[string]string, len(s.SessionIDs)+1)
	for k, v := range s.SessionIDs {
		ids[k] = v
	}
	ids[s.SessionKey()] = id
	s.SessionIDs = ids
	return s
}

// SignedOut returns a copy of s without credentials or user. Preferences
// and anonymous sessions are kept.
func (s State) SignedOut() State {
	key := s.SessionKey()
	s.AccessToken = ""
	s.RefreshToken = ""
	s.User = nil
	if key != "anon" {
		ids := make(map[string]string, len(s.SessionIDs))
		for k, v := range s.SessionIDs {
			if k != key {
				ids[k] = v
			}
		}
		s.SessionIDs = ids
	}
	return s
}
