package ragchat

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
)

// SessionTitleWidth is the display width at which session titles are cut.
const SessionTitleWidth = 30

// NewSessionID returns a fresh chat session identifier.
func NewSessionID() string {
	return "session_" + uuid.NewString()
}

// Session is a chat conversation as cached locally.
type Session struct {
	ID        string
	Messages  []Message
	UpdatedAt time.Time
}

// Title returns the first query of the session cut to width display cells,
// or the fallback when the session has no query.
func (s Session) Title(width int, fallback string) string {
	for _, m := range s.Messages {
		if m.Role == RoleQuery {
			content := strings.Join(strings.Fields(m.Content), " ")
			return runewidth.Truncate(content, width, "...")
		}
	}
	return fallback
}

// LastUpdated returns the newest message time, or UpdatedAt when later.
func (s Session) LastUpdated() time.Time {
	latest := s.UpdatedAt
	for _, m := range s.Messages {
		if m.CreatedAt.After(latest) {
			latest = m.CreatedAt
		}
	}
	return latest
}

// SortSessions orders sessions newest first.
func SortSessions(sessions []Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].LastUpdated().After(sessions[j].LastUpdated())
	})
}
