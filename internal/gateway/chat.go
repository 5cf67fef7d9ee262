// ABOUTME: Chat session, message and SSE streaming endpoints
// ABOUTME: StreamChat parses text/event-stream frames into StreamEvents

package gateway

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ListChatSessions returns the caller's chat sessions.
func (c *Client) ListChatSessions(ctx context.Context, skip, limit int) ([]ChatSession, error) {
	query := url.Values{}
	if skip > 0 {
		query.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var sessions []ChatSession
	if err := c.get(ctx, "/chat/sessions", query, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// CreateChatSession opens a new session, optionally bound to a knowledge base.
func (c *Client) CreateChatSession(ctx context.Context, req ChatSessionCreate) (*ChatSession, error) {
	var session ChatSession
	if err := c.post(ctx, "/chat/sessions", req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetChatSession fetches one session by ID.
func (c *Client) GetChatSession(ctx context.Context, id int) (*ChatSession, error) {
	var session ChatSession
	if err := c.get(ctx, "/chat/sessions/"+strconv.Itoa(id), nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteChatSession deletes a session and its messages.
func (c *Client) DeleteChatSession(ctx context.Context, id int) error {
	return c.del(ctx, "/chat/sessions/"+strconv.Itoa(id))
}

// ListChatMessages returns the messages of one session in order.
func (c *Client) ListChatMessages(ctx context.Context, sessionID, skip, limit int) ([]ChatMessage, error) {
	query := url.Values{}
	if skip > 0 {
		query.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var messages []ChatMessage
	path := fmt.Sprintf("/chat/sessions/%d/messages", sessionID)
	if err := c.get(ctx, path, query, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendChatMessage posts one turn and waits for the complete answer.
func (c *Client) SendChatMessage(ctx context.Context, sessionID int, req ChatMessageCreate) (*ChatMessage, error) {
	var msg ChatMessage
	path := fmt.Sprintf("/chat/sessions/%d/messages", sessionID)
	if err := c.post(ctx, path, req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListProviders returns the configured LLM providers.
func (c *Client) ListProviders(ctx context.Context) ([]LLMProvider, error) {
	var providers []LLMProvider
	if err := c.get(ctx, "/chat/providers", nil, &providers); err != nil {
		return nil, err
	}
	return providers, nil
}

// StreamChat posts one turn to POST /chat/stream and delivers the answer
// incrementally via handle, one call per server-sent event. It returns when
// the stream ends, the server sends a terminal done/error event, or ctx is
// canceled. An error event is also returned as an error.
func (c *Client) StreamChat(ctx context.Context, req StreamChatRequest, handle func(StreamEvent)) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, "/chat/stream", nil, bytes.NewReader(data))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	// ctx, not the shared client's timeout, bounds the stream's lifetime.
	streamClient := &http.Client{Transport: c.http.Transport}
	resp, err := streamClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.responseError(resp, httpReq.Header.Get("X-Request-ID"))
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var dataLines []string

	flush := func() error {
		if len(dataLines) == 0 {
			return nil
		}
		payload := strings.Join(dataLines, "\n")
		dataLines = nil

		if payload == "[DONE]" {
			handle(StreamEvent{Type: "done"})
			return errStreamDone
		}

		var evt StreamEvent
		if err := json.Unmarshal([]byte(payload), &evt); err != nil {
			return fmt.Errorf("parsing event data: %w", err)
		}
		handle(evt)

		switch evt.Type {
		case "done":
			return errStreamDone
		case "error":
			return &APIError{Status: http.StatusOK, Message: evt.Error}
		}
		return nil
	}

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Text()

		// Empty line signals end of event
		if line == "" {
			if err := flush(); err != nil {
				if err == errStreamDone {
					return nil
				}
				return err
			}
			continue
		}

		if strings.HasPrefix(line, "data:") {
			dataLines = append(dataLines, strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
		// event:/id:/retry: fields are not used by the backend
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading stream: %w", err)
	}

	// Stream closed without a trailing blank line; flush what remains.
	if err := flush(); err != nil && err != errStreamDone {
		return err
	}
	return nil
}

// errStreamDone is an internal marker for normal stream termination.
var errStreamDone = fmt.Errorf("stream done")
