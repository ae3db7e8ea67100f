package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/CoderFake/ragchat"
)

// Settings returns the current indexing settings.
func (c *Client) Settings(ctx context.Context) (ragchat.Settings, error) {
	var resp settingsDTO
	if err := c.do(ctx, request{method: http.MethodGet, path: "/admin/settings", auth: true}, &resp); err != nil {
		return ragchat.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return resp.settings(), nil
}

// UpdateSettings validates and stores new indexing settings.
func (c *Client) UpdateSettings(ctx context.Context, s ragchat.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	var resp successResponse
	err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/admin/settings",
		body:   settingsDTO(s),
		auth:   true,
	}, &resp)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	if !resp.Success {
		return fmt.Errorf("update settings: %w", &ragchat.APIError{StatusCode: http.StatusOK, Message: resp.Message})
	}
	return nil
}
