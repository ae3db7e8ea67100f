package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/CoderFake/ragchat"
	"github.com/CoderFake/ragchat/ansi"
)

// DefaultHistoryLimit is the number of messages History fetches when limit
// is not positive.
const DefaultHistoryLimit = 50

// Send posts a query and returns the generated answer.
func (c *Client) Send(ctx context.Context, req ragchat.ChatRequest) (ragchat.ChatResponse, error) {
	if strings.TrimSpace(req.Query) == "" {
		return ragchat.ChatResponse{}, fmt.Errorf("query is required: %w", ragchat.ErrValidation)
	}
	var resp chatResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/chat",
		body: chatRequest{
			Query:     req.Query,
			SessionID: req.SessionID,
			Language:  string(req.Language),
		},
		auth: true,
	}, &resp)
	if err != nil {
		return ragchat.ChatResponse{}, fmt.Errorf("send query: %w", err)
	}
	return ragchat.ChatResponse{
		Response:   ansi.Sanitize(resp.Response),
		Sources:    sources(resp.SourceDocuments),
		RouteType:  resp.RouteType,
		QueryID:    string(resp.QueryID),
		ResponseID: string(resp.ResponseID),
	}, nil
}

// History returns the messages of a session, oldest first.
func (c *Client) History(ctx context.Context, sessionID string, limit int) ([]ragchat.Message, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	q := url.Values{}
	if sessionID != "" {
		q.Set("session_id", sessionID)
	}
	q.Set("limit", itoa(limit))

	var resp historyResponse
	err := c.do(ctx, request{method: http.MethodGet, path: "/chat/history", query: q, auth: true}, &resp)
	if err != nil {
		return nil, fmt.Errorf("chat history: %w", err)
	}
	msgs := make([]ragchat.Message, len(resp.History))
	for i, m := range resp.History {
		msgs[i] = m.message()
	}
	return msgs, nil
}

// Feedback records a rating or comment on a response.
func (c *Client) Feedback(ctx context.Context, f ragchat.Feedback) error {
	if err := f.Validate(); err != nil {
		return err
	}
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/chat/feedback",
		body: feedbackRequest{
			ResponseID: f.ResponseID,
			Type:       string(f.Kind),
			Value:      f.Value,
		},
		auth: true,
	}, nil)
	if err != nil {
		return fmt.Errorf("send feedback: %w", err)
	}
	return nil
}
