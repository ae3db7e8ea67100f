package ragchat

import "context"

// ChatService sends queries and feedback to the chat backend.
type ChatService interface {
	Send(ctx context.Context, req ChatRequest) (ChatResponse, error)
	History(ctx context.Context, sessionID string, limit int) ([]Message, error)
	Feedback(ctx context.Context, f Feedback) error
}

// AuthService manages accounts and tokens.
type AuthService interface {
	Login(ctx context.Context, c Credentials) (LoginResult, error)
	Register(ctx context.Context, r Registration) (User, error)
	Refresh(ctx context.Context, refreshToken string) (Tokens, error)
	Profile(ctx context.Context) (User, error)
	Users(ctx context.Context) ([]User, error)
	Logout(ctx context.Context) error
}

// DocumentService manages the indexed knowledge base. All methods require
// an admin account.
type DocumentService interface {
	// Documents lists documents; page is 1-based. An empty category lists all.
	Documents(ctx context.Context, page, limit int, category string) (DocumentPage, error)
	Upload(ctx context.Context, u DocumentUpload) (UploadResult, error)
	Delete(ctx context.Context, id string) error
	Reindex(ctx context.Context) error
}

// SettingsService reads and updates server-side indexing settings.
type SettingsService interface {
	Settings(ctx context.Context) (Settings, error)
	UpdateSettings(ctx context.Context, s Settings) error
}

// StateStore owns the process-wide State.
//
// Init loads persisted state, creating defaults when nothing is stored.
// Get returns a copy of the current state. Set replaces it and persists.
// Clear signs out: credentials and the user are removed while language and
// theme preferences survive.
type StateStore interface {
	Init() error
	Get() State
	Set(s State) error
	Clear() error
}

// HistoryStore caches conversations locally for the history view.
type HistoryStore interface {
	Save(ctx context.Context, sessionID string, msgs []Message) error
	Sessions(ctx context.Context) ([]Session, error)
	Messages(ctx context.Context, sessionID string) ([]Message, error)
	DeleteSession(ctx context.Context, sessionID string) error
	Close() error
}
