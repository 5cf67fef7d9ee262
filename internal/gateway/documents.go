// ABOUTME: Document listing, upload, update and batch endpoints
// ABOUTME: Uploads are multipart/form-data against a knowledge base

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
)

// ListDocuments returns documents across knowledge bases, optionally
// filtered by knowledge base ID and search term.
func (c *Client) ListDocuments(ctx context.Context, kbID int, search string) ([]Document, error) {
	query := url.Values{}
	if kbID > 0 {
		query.Set("kb_id", strconv.Itoa(kbID))
	}
	if search != "" {
		query.Set("search", search)
	}

	var docs []Document
	if err := c.get(ctx, "/documents/", query, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// GetDocument fetches a single document by ID.
func (c *Client) GetDocument(ctx context.Context, id int) (*Document, error) {
	var doc Document
	if err := c.get(ctx, "/documents/"+strconv.Itoa(id), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UploadDocument uploads file content into a knowledge base as a multipart
// request. name is the original filename; the backend derives title and file
// type from it unless title is set.
func (c *Client) UploadDocument(ctx context.Context, kbID int, name, title string, content io.Reader) (*Document, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	part, err := mw.CreateFormFile("file", filepath.Base(name))
	if err != nil {
		return nil, fmt.Errorf("creating multipart: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("writing file content: %w", err)
	}
	if title != "" {
		if err := mw.WriteField("title", title); err != nil {
			return nil, fmt.Errorf("writing title field: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart: %w", err)
	}

	path := fmt.Sprintf("/knowledge-bases/%d/documents", kbID)
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.responseError(resp, req.Header.Get("X-Request-ID"))
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	return &doc, nil
}

// UpdateDocument applies a partial metadata update.
func (c *Client) UpdateDocument(ctx context.Context, id int, req DocumentUpdate) (*Document, error) {
	var doc Document
	if err := c.put(ctx, "/documents/"+strconv.Itoa(id), req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteDocument removes a document and its index entries.
func (c *Client) DeleteDocument(ctx context.Context, id int) error {
	return c.del(ctx, "/documents/"+strconv.Itoa(id))
}

// ListDocumentVersions returns a document's revision history.
func (c *Client) ListDocumentVersions(ctx context.Context, id int) ([]DocumentVersion, error) {
	var versions []DocumentVersion
	path := fmt.Sprintf("/documents/%d/versions", id)
	if err := c.get(ctx, path, nil, &versions); err != nil {
		return nil, err
	}
	return versions, nil
}

// RestoreDocumentVersion makes a historical revision the current content of
// the document.
func (c *Client) RestoreDocumentVersion(ctx context.Context, docID, versionID int) error {
	path := fmt.Sprintf("/documents/%d/versions/%d/restore", docID, versionID)
	return c.post(ctx, path, nil, nil)
}

// DocumentDownloadURL resolves the download link for a document's stored
// file.
func (c *Client) DocumentDownloadURL(ctx context.Context, id int) (string, error) {
	var result struct {
		DownloadURL string `json:"download_url"`
	}
	if err := c.get(ctx, "/documents/"+strconv.Itoa(id)+"/download", nil, &result); err != nil {
		return "", err
	}
	return result.DownloadURL, nil
}

// DeleteDocuments removes several documents in one call.
func (c *Client) DeleteDocuments(ctx context.Context, ids []int) error {
	body := struct {
		IDs []int `json:"ids"`
	}{IDs: ids}
	return c.post(ctx, "/documents/batch-delete", body, nil)
}

// DocumentStats returns corpus-wide document statistics.
func (c *Client) DocumentStats(ctx context.Context) (*DocumentStats, error) {
	var stats DocumentStats
	if err := c.get(ctx, "/documents/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
