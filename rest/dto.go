package rest

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/CoderFake/ragchat"
	"github.com/CoderFake/ragchat/ansi"
)

// flexString decodes a JSON string or number into a string. The server
// returns some ids as integers and others as strings.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// flexTime decodes the timestamp layouts the server emits. Unparseable
// values decode to the zero time.
type flexTime time.Time

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	time.RFC1123,
}

func (t *flexTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil || s == "" {
		*t = flexTime{}
		return nil
	}
	for _, layout := range timeLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			*t = flexTime(v)
			return nil
		}
	}
	*t = flexTime{}
	return nil
}

// flexTags decodes tags sent either as an array or a comma-separated string.
type flexTags []string

func (t *flexTags) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*t = nil
		return nil
	}
	*t = splitTags(s)
	return nil
}

func splitTags(s string) []string {
	var tags []string
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

type userDTO struct {
	ID        int      `json:"id"`
	Username  string   `json:"username"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Role      string   `json:"role"`
	CreatedAt flexTime `json:"created_at"`
	UpdatedAt flexTime `json:"updated_at"`
}

func (u userDTO) user() ragchat.User {
	return ragchat.User{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		Role:      ragchat.UserRole(u.Role),
		CreatedAt: time.Time(u.CreatedAt),
		UpdatedAt: time.Time(u.UpdatedAt),
	}
}

type credentialsDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registrationDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

type loginResponse struct {
	User         userDTO `json:"user"`
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	TokenType    string  `json:"token_type"`
}

type registerResponse struct {
	Message string  `json:"message"`
	User    userDTO `json:"user"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type profileResponse struct {
	User userDTO `json:"user"`
}

type usersResponse struct {
	Users []userDTO `json:"users"`
}

type sourceDTO struct {
	ID             flexString `json:"id"`
	Title          string     `json:"title"`
	Category       string     `json:"category"`
	RelevanceScore *float64   `json:"relevance_score"`
}

func sources(in []sourceDTO) []ragchat.DocumentSource {
	if len(in) == 0 {
		return nil
	}
	out := make([]ragchat.DocumentSource, len(in))
	for i, s := range in {
		out[i] = ragchat.DocumentSource{
			ID:             string(s.ID),
			Title:          ansi.Line(s.Title),
			Category:       ansi.Line(s.Category),
			RelevanceScore: s.RelevanceScore,
		}
	}
	return out
}

type chatRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
	Language  string `json:"language,omitempty"`
}

type chatResponse struct {
	Response        string      `json:"response"`
	SourceDocuments []sourceDTO `json:"source_documents"`
	RouteType       string      `json:"route_type"`
	QueryID         flexString  `json:"query_id"`
	ResponseID      flexString  `json:"response_id"`
}

type messageDTO struct {
	ID        flexString  `json:"id"`
	Type      string      `json:"type"`
	Content   string      `json:"content"`
	CreatedAt flexTime    `json:"created_at"`
	QueryID   flexString  `json:"query_id"`
	UserID    int         `json:"user_id"`
	Sources   []sourceDTO `json:"sources"`
}

func (m messageDTO) message() ragchat.Message {
	return ragchat.Message{
		ID:        string(m.ID),
		Role:      ragchat.Role(m.Type),
		Content:   ansi.Sanitize(m.Content),
		CreatedAt: time.Time(m.CreatedAt),
		QueryID:   string(m.QueryID),
		UserID:    m.UserID,
		Sources:   sources(m.Sources),
	}
}

type historyResponse struct {
	History []messageDTO `json:"history"`
}

type feedbackRequest struct {
	ResponseID string `json:"response_id"`
	Type       string `json:"type"`
	Value      string `json:"value,omitempty"`
}

type documentDTO struct {
	ID        flexString `json:"id"`
	Title     string     `json:"title"`
	FilePath  string     `json:"file_path"`
	FileType  string     `json:"file_type"`
	Category  string     `json:"category"`
	Tags      flexTags   `json:"tags"`
	UserID    int        `json:"user_id"`
	CreatedAt flexTime   `json:"created_at"`
	UpdatedAt flexTime   `json:"updated_at"`
}

func (d documentDTO) document() ragchat.Document {
	return ragchat.Document{
		ID:        string(d.ID),
		Title:     ansi.Line(d.Title),
		FilePath:  d.FilePath,
		FileType:  ansi.Line(d.FileType),
		Category:  ansi.Line(d.Category),
		Tags:      []string(d.Tags),
		UserID:    d.UserID,
		CreatedAt: time.Time(d.CreatedAt),
		UpdatedAt: time.Time(d.UpdatedAt),
	}
}

type documentsResponse struct {
	Documents []documentDTO `json:"documents"`
	Total     int           `json:"total"`
	Page      int           `json:"page"`
	Limit     int           `json:"limit"`
}

type uploadResponse struct {
	Status     string     `json:"status"`
	DocumentID flexString `json:"document_id"`
	NumChunks  int        `json:"num_chunks"`
	Filename   string     `json:"filename"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type settingsDTO struct {
	ChunkSize          int      `json:"chunk_size"`
	ChunkOverlap       int      `json:"chunk_overlap"`
	EmbeddingModel     string   `json:"embedding_model,omitempty"`
	LLMProvider        string   `json:"llm_provider,omitempty"`
	SupportedLanguages []string `json:"supported_languages,omitempty"`
}

func (s settingsDTO) settings() ragchat.Settings {
	return ragchat.Settings(s)
}

func itoa(n int) string { return strconv.Itoa(n) }
