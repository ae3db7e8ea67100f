// Package mock provides test doubles for ragchat interfaces using function
// fields.
package mock

import (
	"context"

	"github.com/CoderFake/ragchat"
)

// Interface compliance checks.
var (
	_ ragchat.ChatService     = (*ChatService)(nil)
	_ ragchat.AuthService     = (*AuthService)(nil)
	_ ragchat.DocumentService = (*DocumentService)(nil)
	_ ragchat.SettingsService = (*SettingsService)(nil)
	_ ragchat.StateStore      = (*StateStore)(nil)
	_ ragchat.HistoryStore    = (*HistoryStore)(nil)
)

// ChatService is a test double for ragchat.ChatService.
// Set the function fields for the methods you need.
type ChatService struct {
	SendFn     func(ctx context.Context, req ragchat.ChatRequest) (ragchat.ChatResponse, error)
	HistoryFn  func(ctx context.Context, sessionID string, limit int) ([]ragchat.Message, error)
	FeedbackFn func(ctx context.Context, f ragchat.Feedback) error
}

// Send delegates to SendFn.
func (s *ChatService) Send(ctx context.Context, req ragchat.ChatRequest) (ragchat.ChatResponse, error) {
	return s.SendFn(ctx, req)
}

// History delegates to HistoryFn.
func (s *ChatService) History(ctx context.Context, sessionID string, limit int) ([]ragchat.Message, error) {
	return s.HistoryFn(ctx, sessionID, limit)
}

// Feedback delegates to FeedbackFn.
func (s *ChatService) Feedback(ctx context.Context, f ragchat.Feedback) error {
	return s.FeedbackFn(ctx, f)
}

// AuthService is a test double for ragchat.AuthService.
type AuthService struct {
	LoginFn    func(ctx context.Context, c ragchat.Credentials) (ragchat.LoginResult, error)
	RegisterFn func(ctx context.Context, r ragchat.Registration) (ragchat.User, error)
	RefreshFn  func(ctx context.Context, refreshToken string) (ragchat.Tokens, error)
	ProfileFn  func(ctx context.Context) (ragchat.User, error)
	UsersFn    func(ctx context.Context) ([]ragchat.User, error)
	LogoutFn   func(ctx context.Context) error
}

// Login delegates to LoginFn.
func (s *AuthService) Login(ctx context.Context, c ragchat.Credentials) (ragchat.LoginResult, error) {
	return s.LoginFn(ctx, c)
}

// Register delegates to RegisterFn.
func (s *AuthService) Register(ctx context.Context, r ragchat.Registration) (ragchat.User, error) {
	return s.RegisterFn(ctx, r)
}

// Refresh delegates to RefreshFn.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (ragchat.Tokens, error) {
	return s.RefreshFn(ctx, refreshToken)
}

// Profile delegates to ProfileFn.
func (s *AuthService) Profile(ctx context.Context) (ragchat.User, error) {
	return s.ProfileFn(ctx)
}

// Users delegates to UsersFn.
func (s *AuthService) Users(ctx context.Context) ([]ragchat.User, error) {
	return s.UsersFn(ctx)
}

// Logout delegates to LogoutFn.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.LogoutFn(ctx)
}

// DocumentService is a test double for ragchat.DocumentService.
type DocumentService struct {
	DocumentsFn func(ctx context.Context, page, limit int, category string) (ragchat.DocumentPage, error)
	UploadFn    func(ctx context.Context, u ragchat.DocumentUpload) (ragchat.UploadResult, error)
	DeleteFn    func(ctx context.Context, id string) error
	ReindexFn   func(ctx context.Context) error
}

// Documents delegates to DocumentsFn.
func (s *DocumentService) Documents(ctx context.Context, page, limit int, category string) (ragchat.DocumentPage, error) {
	return s.DocumentsFn(ctx, page, limit, category)
}

// Upload delegates to UploadFn.
func (s *DocumentService) Upload(ctx context.Context, u ragchat.DocumentUpload) (ragchat.UploadResult, error) {
	return s.UploadFn(ctx, u)
}

// Delete delegates to DeleteFn.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	return s.DeleteFn(ctx, id)
}

// Reindex delegates to ReindexFn.
func (s *DocumentService) Reindex(ctx context.Context) error {
	return s.ReindexFn(ctx)
}

// SettingsService is a test double for ragchat.SettingsService.
type SettingsService struct {
	SettingsFn       func(ctx context.Context) (ragchat.Settings, error)
	UpdateSettingsFn func(ctx context.Context, s ragchat.Settings) error
}

// Settings delegates to SettingsFn.
func (s *SettingsService) Settings(ctx context.Context) (ragchat.Settings, error) {
	return s.SettingsFn(ctx)
}

// UpdateSettings delegates to UpdateSettingsFn.
func (s *SettingsService) UpdateSettings(ctx context.Context, st ragchat.Settings) error {
	return s.UpdateSettingsFn(ctx, st)
}

// StateStore is a test double for ragchat.StateStore.
type StateStore struct {
	InitFn  func() error
	GetFn   func() ragchat.State
	SetFn   func(s ragchat.State) error
	ClearFn func() error
}

// Init delegates to InitFn.
func (s *StateStore) Init() error { return s.InitFn() }

// Get delegates to GetFn.
func (s *StateStore) Get() ragchat.State { return s.GetFn() }

// Set delegates to SetFn.
func (s *StateStore) Set(st ragchat.State) error { return s.SetFn(st) }

// Clear delegates to ClearFn.
func (s *StateStore) Clear() error { return s.ClearFn() }

// HistoryStore is a test double for ragchat.HistoryStore.
type HistoryStore struct {
	SaveFn          func(ctx context.Context, sessionID string, msgs []ragchat.Message) error
	SessionsFn      func(ctx context.Context) ([]ragchat.Session, error)
	MessagesFn      func(ctx context.Context, sessionID string) ([]ragchat.Message, error)
	DeleteSessionFn func(ctx context.Context, sessionID string) error
	CloseFn         func() error
}

// Save delegates to SaveFn.
func (s *HistoryStore) Save(ctx context.Context, sessionID string, msgs []ragchat.Message) error {
	return s.SaveFn(ctx, sessionID, msgs)
}

// Sessions delegates to SessionsFn.
func (s *HistoryStore) Sessions(ctx context.Context) ([]ragchat.Session, error) {
	return s.SessionsFn(ctx)
}

// Messages delegates to MessagesFn.
func (s *HistoryStore) Messages(ctx context.Context, sessionID string) ([]ragchat.Message, error) {
	return s.MessagesFn(ctx, sessionID)
}

// DeleteSession delegates to DeleteSessionFn.
func (s *HistoryStore) DeleteSession(ctx context.Context, sessionID string) error {
	return s.DeleteSessionFn(ctx, sessionID)
}

// Close delegates to CloseFn.
func (s *HistoryStore) Close() error { return s.CloseFn() }
