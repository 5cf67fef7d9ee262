// ABOUTME: Knowledge-base CRUD and statistics endpoints
// ABOUTME: Wraps the /knowledge-bases API surface

package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ListKnowledgeBases returns knowledge bases, optionally filtered by a
// search term.
func (c *Client) ListKnowledgeBases(ctx context.Context, search string) ([]KnowledgeBase, error) {
	var query url.Values
	if search != "" {
		query = url.Values{}
		query.Set("search", search)
	}

	var kbs []KnowledgeBase
	if err := c.get(ctx, "/knowledge-bases/", query, &kbs); err != nil {
		return nil, err
	}
	return kbs, nil
}

// GetKnowledgeBase fetches a single knowledge base by ID.
func (c *Client) GetKnowledgeBase(ctx context.Context, id int) (*KnowledgeBase, error) {
	var kb KnowledgeBase
	if err := c.get(ctx, "/knowledge-bases/"+strconv.Itoa(id), nil, &kb); err != nil {
		return nil, err
	}
	return &kb, nil
}

// CreateKnowledgeBase creates a knowledge base.
func (c *Client) CreateKnowledgeBase(ctx context.Context, req KnowledgeBaseCreate) (*KnowledgeBase, error) {
	var kb KnowledgeBase
	if err := c.post(ctx, "/knowledge-bases/", req, &kb); err != nil {
		return nil, err
	}
	return &kb, nil
}

// UpdateKnowledgeBase applies a partial update.
func (c *Client) UpdateKnowledgeBase(ctx context.Context, id int, req KnowledgeBaseUpdate) (*KnowledgeBase, error) {
	var kb KnowledgeBase
	if err := c.put(ctx, "/knowledge-bases/"+strconv.Itoa(id), req, &kb); err != nil {
		return nil, err
	}
	return &kb, nil
}

// DeleteKnowledgeBase deletes a knowledge base and its documents.
func (c *Client) DeleteKnowledgeBase(ctx context.Context, id int) error {
	return c.del(ctx, "/knowledge-bases/"+strconv.Itoa(id))
}

// KnowledgeBaseStats returns corpus-wide statistics.
func (c *Client) KnowledgeBaseStats(ctx context.Context) (*KnowledgeBaseStats, error) {
	var stats KnowledgeBaseStats
	if err := c.get(ctx, "/knowledge-bases/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// RebuildIndex asks the backend to rebuild a knowledge base's vector index.
// It returns the ID of the background task doing the work.
func (c *Client) RebuildIndex(ctx context.Context, id int) (string, error) {
	var result struct {
		TaskID string `json:"taskId"`
	}
	path := fmt.Sprintf("/knowledge-bases/%d/rebuild-index", id)
	if err := c.post(ctx, path, nil, &result); err != nil {
		return "", err
	}
	return result.TaskID, nil
}

// ListKnowledgeBaseDocuments returns the documents belonging to one
// knowledge base.
func (c *Client) ListKnowledgeBaseDocuments(ctx context.Context, kbID int) ([]Document, error) {
	var docs []Document
	path := fmt.Sprintf("/knowledge-bases/%d/documents", kbID)
	if err := c.get(ctx, path, nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
