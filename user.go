package ragchat

import (
	"fmt"
	"strings"
	"time"
)

// UserRole is the access level of an account.
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

// User is an account on the server.
type User struct {
	ID        int
	Username  string
	Name      string
	Email     string
	Role      UserRole
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the user may manage documents and settings.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}

// DisplayName returns the name if set, otherwise the username.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// Credentials are a username and password pair used to log in.
type Credentials struct {
	Username string
	Password string
}

// Validate checks that both fields are present.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return fmt.Errorf("username is required: %w", ErrValidation)
	}
	if c.Password == "" {
		return fmt.Errorf("password is required: %w", ErrValidation)
	}
	return nil
}

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// Registration is the data needed to create an account.
type Registration struct {
	Username string
	Password string
	Name     string
	Email    string
}

// Validate checks field lengths and, when given, the email shape.
func (r Registration) Validate() error {
	if len(strings.TrimSpace(r.Username)) < minUsernameLen {
		return fmt.Errorf("username must be at least %d characters: %w", minUsernameLen, ErrValidation)
	}
	if len(r.Password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, ErrValidation)
	}
	if r.Email != "" && !validEmail(r.Email) {
		return fmt.Errorf("invalid email %q: %w", r.Email, ErrValidation)
	}
	return nil
}

func validEmail(s string) bool {
	local, domain, ok := strings.Cut(s, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return false
	}
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// Tokens is a bearer token pair issued at login.
type Tokens struct {
	Access  string
	Refresh string
	Type    string
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	User   User
	Tokens Tokens
}
