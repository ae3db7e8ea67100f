package ragchat

import "time"

// Message is one entry of a chat conversation as exchanged with the server.
type Message struct {
	ID        string
	Role      Role
	Content   string
	CreatedAt time.Time
	QueryID   string
	UserID    int
	Sources   []DocumentSource
}

// DocumentSource is a retrieved document that contributed to a response.
type DocumentSource struct {
	ID       string
	Title    string
	Category string
	// RelevanceScore is in [0, 1]; nil when the server did not score it.
	RelevanceScore *float64
}

// ChatRequest is a query sent to the chat endpoint.
type ChatRequest struct {
	Query     string
	SessionID string
	Language  Language
}

// ChatResponse is the server's answer to a ChatRequest.
type ChatResponse struct {
	Response   string
	Sources    []DocumentSource
	RouteType  string
	QueryID    string
	ResponseID string
}

// Message converts the response into a response-role Message stamped with t.
func (r ChatResponse) Message(t time.Time) Message {
	return Message{
		ID:        r.ResponseID,
		Role:      RoleResponse,
		Content:   r.Response,
		CreatedAt: t,
		QueryID:   r.QueryID,
		Sources:   r.Sources,
	}
}
