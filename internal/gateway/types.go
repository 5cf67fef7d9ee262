// ABOUTME: Request and response types for the knowledge-base backend API
// ABOUTME: Mirrors the backend's snake_case JSON schemas

package gateway

import "time"

// User is the backend's user record. Roles are embedded; the flat
// permission list is delivered separately by UserPermissions.
type User struct {
	ID          int      `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	FullName    string   `json:"full_name,omitempty"`
	IsActive    bool     `json:"is_active"`
	Roles       []Role   `json:"roles"`
	Permissions []string `json:"permissions,omitempty"`
}

// Role groups permissions under a stable name ("admin", "user", ...).
type Role struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Permissions []Permission `json:"permissions,omitempty"`
}

// Permission is a backend-defined capability identifier, optionally carrying
// the menu entry it gates.
type Permission struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	MenuName    string `json:"menu_name"`
	Description string `json:"description,omitempty"`
	MenuPath    string `json:"menu_path,omitempty"`
	MenuIcon    string `json:"menu_icon,omitempty"`
	ParentID    *int   `json:"parent_id,omitempty"`
	SortOrder   int    `json:"sort_order,omitempty"`
}

// LoginResponse is returned by POST /auth/token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}

// Page is the backend's pagination envelope for admin listings.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// envelope wraps responses the backend delivers as {success, data, message}.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// KnowledgeBase is a retrieval corpus with its indexing configuration.
type KnowledgeBase struct {
	ID             int            `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	Type           string         `json:"type,omitempty"`
	Color          string         `json:"color,omitempty"`
	IsPublic       bool           `json:"is_public"`
	EmbeddingModel string         `json:"embedding_model,omitempty"`
	VectorStore    string         `json:"vector_store,omitempty"`
	Metadata       map[string]any `json:"kb_metadata,omitempty"`
	Tags           []string       `json:"tags,omitempty"`
	Status         string         `json:"status"`
	CreatedBy      *int           `json:"created_by,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      *time.Time     `json:"updated_at,omitempty"`
}

// KnowledgeBaseCreate is the payload for creating a knowledge base.
type KnowledgeBaseCreate struct {
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	Type           string         `json:"type,omitempty"`
	Color          string         `json:"color,omitempty"`
	IsPublic       bool           `json:"is_public"`
	EmbeddingModel string         `json:"embedding_model,omitempty"`
	VectorStore    string         `json:"vector_store,omitempty"`
	Metadata       map[string]any `json:"kb_metadata,omitempty"`
	Tags           []string       `json:"tags,omitempty"`
}

// KnowledgeBaseUpdate carries partial updates; nil fields are left unchanged.
type KnowledgeBaseUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Type        *string  `json:"type,omitempty"`
	IsPublic    *bool    `json:"is_public,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// KnowledgeBaseStats summarizes a knowledge base's contents.
type KnowledgeBaseStats struct {
	KnowledgeBaseCount int `json:"knowledge_base_count"`
	DocumentCount      int `json:"document_count"`
	TotalSize          int `json:"total_size"`
}

// Document is an uploaded file within a knowledge base.
type Document struct {
	ID              int        `json:"id"`
	Title           string     `json:"title"`
	KnowledgeBaseID int        `json:"knowledge_base_id"`
	FilePath        string     `json:"file_path,omitempty"`
	FileType        string     `json:"file_type,omitempty"`
	FileSize        int64      `json:"file_size,omitempty"`
	Status          string     `json:"status"` // processing, completed, failed
	Version         int        `json:"version,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// DocumentVersion is one historical revision of a document.
type DocumentVersion struct {
	ID        int       `json:"id"`
	Version   int       `json:"version"`
	FilePath  string    `json:"file_path"`
	FileSize  int64     `json:"file_size"`
	ChangeLog string    `json:"change_log,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DocumentUpdate carries partial metadata updates for a document.
type DocumentUpdate struct {
	Title    *string        `json:"title,omitempty"`
	Status   *string        `json:"status,omitempty"`
	Metadata map[string]any `json:"doc_metadata,omitempty"`
}

// DocumentStats summarizes the document corpus.
type DocumentStats struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"by_status,omitempty"`
	ByFileType map[string]int `json:"by_file_type,omitempty"`
	TotalSize  int64          `json:"total_size,omitempty"`
}

// ChatSession is one conversation against a knowledge base.
type ChatSession struct {
	ID        int        `json:"id"`
	UserID    int        `json:"user_id"`
	Title     string     `json:"title,omitempty"`
	KBID      *int       `json:"kb_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ChatSessionCreate is the payload for opening a session.
type ChatSessionCreate struct {
	Title string `json:"title,omitempty"`
	KBID  *int   `json:"kb_id,omitempty"`
}

// ChatMessage is one turn in a session; assistant turns may carry the
// retrieval sources used for the answer.
type ChatMessage struct {
	ID        int              `json:"id"`
	SessionID int              `json:"session_id"`
	Role      string           `json:"role"` // user, assistant
	Content   string           `json:"content"`
	Sources   []map[string]any `json:"sources,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// ChatMessageCreate is the payload for a non-streaming chat turn.
type ChatMessageCreate struct {
	Content        string  `json:"content"`
	IncludeHistory bool    `json:"include_history"`
	Provider       string  `json:"provider,omitempty"`
	Model          string  `json:"model,omitempty"`
	Temperature    float64 `json:"temperature,omitempty"`
	MaxTokens      int     `json:"max_tokens,omitempty"`
	TopK           int     `json:"top_k,omitempty"`
}

// StreamChatRequest is the payload for POST /chat/stream.
type StreamChatRequest struct {
	SessionID      int     `json:"session_id"`
	Message        string  `json:"message"`
	IncludeHistory bool    `json:"include_history"`
	Provider       string  `json:"provider,omitempty"`
	Model          string  `json:"model,omitempty"`
	Temperature    float64 `json:"temperature,omitempty"`
	MaxTokens      int     `json:"max_tokens,omitempty"`
	TopK           int     `json:"top_k,omitempty"`
}

// StreamEvent is one parsed server-sent event from the chat stream.
type StreamEvent struct {
	Type    string           `json:"type"` // message, sources, done, error
	Content string           `json:"content,omitempty"`
	Sources []map[string]any `json:"sources,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// LLMProvider describes one configured model backend.
type LLMProvider struct {
	Name      string   `json:"name"`
	Models    []string `json:"models,omitempty"`
	Available bool     `json:"available"`
}

// UserCreate is the payload for creating a user.
type UserCreate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

// UserUpdate carries partial updates for a user.
type UserUpdate struct {
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// RoleCreate is the payload for creating a role.
type RoleCreate struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// RoleUpdate carries partial updates for a role.
type RoleUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// PermissionCreate is the payload for creating a permission.
type PermissionCreate struct {
	Name        string `json:"name"`
	MenuName    string `json:"menu_name"`
	Description string `json:"description,omitempty"`
	MenuPath    string `json:"menu_path,omitempty"`
	MenuIcon    string `json:"menu_icon,omitempty"`
	ParentID    *int   `json:"parent_id,omitempty"`
	SortOrder   int    `json:"sort_order,omitempty"`
}

// ABTest compares two retrieval configurations.
type ABTest struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	TestType      string         `json:"test_type"`
	Status        string         `json:"status"` // draft, running, paused, completed
	ConfigA       map[string]any `json:"config_a"`
	ConfigB       map[string]any `json:"config_b"`
	TrafficSplit  float64        `json:"traffic_split,omitempty"`
	KnowledgeBase *int           `json:"kb_id,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     *time.Time     `json:"updated_at,omitempty"`
}

// ABTestCreate is the payload for creating an A/B test.
type ABTestCreate struct {
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	TestType     string         `json:"test_type"`
	ConfigA      map[string]any `json:"config_a"`
	ConfigB      map[string]any `json:"config_b"`
	TrafficSplit float64        `json:"traffic_split,omitempty"`
	KBID         *int           `json:"kb_id,omitempty"`
}

// ABTestSummary aggregates a test's outcomes.
type ABTestSummary struct {
	TestID        int            `json:"test_id"`
	Interactions  int            `json:"interactions"`
	VariantACount int            `json:"variant_a_count"`
	VariantBCount int            `json:"variant_b_count"`
	Metrics       map[string]any `json:"metrics,omitempty"`
}

// TestQueryRequest runs one query through a test's variants.
type TestQueryRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
}

// TestQueryResponse is the routed answer for a test query.
type TestQueryResponse struct {
	InteractionID string           `json:"interaction_id"`
	Variant       string           `json:"variant"` // "a" or "b"
	Answer        string           `json:"answer"`
	Sources       []map[string]any `json:"sources,omitempty"`
	LatencyMS     int              `json:"latency_ms,omitempty"`
}

// FeedbackRequest records user feedback on a test interaction.
type FeedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}
