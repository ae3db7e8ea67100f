package ragchat

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// DefaultCategory is the category assigned to uploads that do not name one.
const DefaultCategory = "general"

// UploadExtensions lists the file types the server accepts for indexing.
var UploadExtensions = []string{".pdf", ".docx", ".txt", ".csv"}

// Document is an indexed file in the knowledge base.
type Document struct {
	ID        string
	Title     string
	FilePath  string
	FileType  string
	Category  string
	Tags      []string
	UserID    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DocumentPage is one page of the document listing. Page is 1-based.
type DocumentPage struct {
	Documents []Document
	Total     int
	Page      int
	Limit     int
}

// Pages returns the number of pages needed for Total documents.
func (p DocumentPage) Pages() int {
	if p.Limit <= 0 || p.Total <= 0 {
		return 1
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

// DocumentUpload describes a local file to upload.
type DocumentUpload struct {
	Path        string
	Title       string
	Category    string
	Tags        []string
	Description string
}

// Normalize fills the title from the file name and the default category.
func (u DocumentUpload) Normalize() DocumentUpload {
	if strings.TrimSpace(u.Title) == "" {
		base := filepath.Base(u.Path)
		u.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if strings.TrimSpace(u.Category) == "" {
		u.Category = DefaultCategory
	}
	return u
}

// Validate checks the path is present and has an accepted extension.
func (u DocumentUpload) Validate() error {
	if u.Path == "" {
		return fmt.Errorf("file path is required: %w", ErrValidation)
	}
	ext := strings.ToLower(filepath.Ext(u.Path))
	for _, allowed := range UploadExtensions {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("unsupported file type %q (want one of %s): %w",
		ext, strings.Join(UploadExtensions, ", "), ErrValidation)
}

// UploadResult is the server's acknowledgement of an upload.
type UploadResult struct {
	Status     string
	DocumentID string
	Chunks     int
	Filename   string
}
