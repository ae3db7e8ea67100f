package ragchat

import "fmt"

// Settings are the server-side indexing parameters editable by admins.
type Settings struct {
	ChunkSize          int
	ChunkOverlap       int
	EmbeddingModel     string
	LLMProvider        string
	SupportedLanguages []string
}

// Validate checks chunk geometry and the provider name.
func (s Settings) Validate() error {
	if s.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d: %w", s.ChunkSize, ErrValidation)
	}
	if s.ChunkOverlap < 0 || s.ChunkOverlap >= s.ChunkSize {
		return fmt.Errorf("chunk overlap must be in [0, %d), got %d: %w", s.ChunkSize, s.ChunkOverlap, ErrValidation)
	}
	switch s.LLMProvider {
	case "", "gemini", "ollama":
	default:
		return fmt.Errorf("unknown llm provider %q: %w", s.LLMProvider, ErrValidation)
	}
	return nil
}
