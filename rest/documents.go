package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/CoderFake/ragchat"
)

// DefaultPageSize is the document listing page size used when limit is not
// positive.
const DefaultPageSize = 10

// Documents lists one page of indexed documents.
func (c *Client) Documents(ctx context.Context, page, limit int, category string) (ragchat.DocumentPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	q := url.Values{}
	q.Set("page", itoa(page))
	q.Set("limit", itoa(limit))
	if category != "" {
		q.Set("category", category)
	}

	var resp documentsResponse
	err := c.do(ctx, request{method: http.MethodGet, path: "/admin/documents", query: q, auth: true}, &resp)
	if err != nil {
		return ragchat.DocumentPage{}, fmt.Errorf("list documents: %w", err)
	}
	docs := make([]ragchat.Document, len(resp.Documents))
	for i, d := range resp.Documents {
		docs[i] = d.document()
	}
	result := ragchat.DocumentPage{Documents: docs, Total: resp.Total, Page: resp.Page, Limit: resp.Limit}
	if result.Page == 0 {
		result.Page = page
	}
	if result.Limit == 0 {
		result.Limit = limit
	}
	return result, nil
}

// Upload sends a local file for indexing.
func (c *Client) Upload(ctx context.Context, u ragchat.DocumentUpload) (ragchat.UploadResult, error) {
	u = u.Normalize()
	if err := u.Validate(); err != nil {
		return ragchat.UploadResult{}, err
	}
	body, err := newUploadBody(u)
	if err != nil {
		return ragchat.UploadResult{}, err
	}

	var resp uploadResponse
	err = c.do(ctx, request{method: http.MethodPost, path: "/admin/upload", body: body, auth: true}, &resp)
	if err != nil {
		return ragchat.UploadResult{}, fmt.Errorf("upload %s: %w", filepath.Base(u.Path), err)
	}
	c.logger.Info("document uploaded", "file", resp.Filename, "chunks", resp.NumChunks)
	return ragchat.UploadResult{
		Status:     resp.Status,
		DocumentID: string(resp.DocumentID),
		Chunks:     resp.NumChunks,
		Filename:   resp.Filename,
	}, nil
}

// Delete removes a document and its chunks.
func (c *Client) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("document id is required: %w", ragchat.ErrValidation)
	}
	var resp successResponse
	err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/admin/documents/" + url.PathEscape(id),
		auth:   true,
	}, &resp)
	if err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	if !resp.Success {
		return fmt.Errorf("delete document %s: %w", id, ragchat.ErrNotFound)
	}
	return nil
}

// Reindex rebuilds the vector index from all stored documents.
func (c *Client) Reindex(ctx context.Context) error {
	var resp successResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/admin/reindex", auth: true}, &resp); err != nil {
		return fmt.Errorf("reindex: %w", err)
	}
	if !resp.Success {
		return fmt.Errorf("reindex: %w", &ragchat.APIError{StatusCode: http.StatusOK, Message: resp.Message})
	}
	return nil
}

// multipartBody is an encoded multipart/form-data payload. It is buffered
// so the request can be replayed after a token refresh.
type multipartBody struct {
	data        []byte
	contentType string
}

func newUploadBody(u ragchat.DocumentUpload) (*multipartBody, error) {
	f, err := os.Open(u.Path)
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(u.Path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	fields := []struct{ name, value string }{
		{"title", u.Title},
		{"category", u.Category},
		{"tags", strings.Join(u.Tags, ",")},
		{"description", u.Description},
	}
	for _, field := range fields {
		if err := w.WriteField(field.name, field.value); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return &multipartBody{data: buf.Bytes(), contentType: w.FormDataContentType()}, nil
}
