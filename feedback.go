package ragchat

import (
	"fmt"
	"strings"
)

// FeedbackKind is the type of feedback a user leaves on a response.
type FeedbackKind string

const (
	FeedbackThumbsUp   FeedbackKind = "thumbs_up"
	FeedbackThumbsDown FeedbackKind = "thumbs_down"
	FeedbackComment    FeedbackKind = "comment"
)

// Feedback is a rating or comment attached to a response.
type Feedback struct {
	ResponseID string
	Kind       FeedbackKind
	Value      string
}

// Validate checks that the feedback targets a response and that comments
// carry text.
func (f Feedback) Validate() error {
	if f.ResponseID == "" {
		return fmt.Errorf("feedback requires a response id: %w", ErrValidation)
	}
	switch f.Kind {
	case FeedbackThumbsUp, FeedbackThumbsDown:
	case FeedbackComment:
		if strings.TrimSpace(f.Value) == "" {
			return fmt.Errorf("comment must not be empty: %w", ErrValidation)
		}
	default:
		return fmt.Errorf("unknown feedback kind %q: %w", f.Kind, ErrValidation)
	}
	return nil
}
