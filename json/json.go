// Package json persists client state as a versioned JSON document.
package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/CoderFake/ragchat"
)

// envelope is the v1 wire format for persisted state.
type envelope struct {
	Version      int               `json:"version"`
	AccessToken  string            `json:"access_token,omitempty"`
	RefreshToken string            `json:"refresh_token,omitempty"`
	User         *userDTO          `json:"user,omitempty"`
	Language     string            `json:"language"`
	Theme        string            `json:"theme"`
	SessionIDs   map[string]string `json:"session_ids,omitempty"`
}

type userDTO struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MarshalState serializes a State to JSON in v1 envelope format.
func MarshalState(s ragchat.State) ([]byte, error) {
	env := envelope{
		Version:      1,
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		Language:     string(s.Language),
		Theme:        string(s.Theme),
		SessionIDs:   s.SessionIDs,
	}
	if u := s.User; u != nil {
		env.User = &userDTO{
			ID:        u.ID,
			Username:  u.Username,
			Name:      u.Name,
			Email:     u.Email,
			Role:      string(u.Role),
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		}
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalState deserializes a State from JSON in v1 envelope format.
// Unknown language or theme values fall back to the defaults.
func UnmarshalState(data []byte) (ragchat.State, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return ragchat.State{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return ragchat.State{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	s := ragchat.DefaultState()
	s.AccessToken = env.AccessToken
	s.RefreshToken = env.RefreshToken
	if lang, err := ragchat.ParseLanguage(env.Language); err == nil {
		s.Language = lang
	}
	if mode, err := ragchat.ParseThemeMode(env.Theme); err == nil {
		s.Theme = mode
	}
	for k, v := range env.SessionIDs {
		s.SessionIDs[k] = v
	}
	if u := env.User; u != nil {
		s.User = &ragchat.User{
			ID:        u.ID,
			Username:  u.Username,
			Name:      u.Name,
			Email:     u.Email,
			Role:      ragchat.UserRole(u.Role),
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		}
	}
	return s, nil
}

// Save writes a State to a JSON file, creating parent directories as needed.
// The file is replaced atomically and readable only by the owner since it
// holds tokens.
func Save(path string, s ragchat.State) error {
	data, err := MarshalState(s)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads a State from a JSON file.
func Load(path string) (ragchat.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ragchat.State{}, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalState(data)
}
