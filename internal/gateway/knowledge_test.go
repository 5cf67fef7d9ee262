// ABOUTME: Tests for knowledge-base maintenance endpoints
// ABOUTME: Covers the background index rebuild call

package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebuildIndex(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/knowledge-bases/3/rebuild-index", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"taskId": "task-81f2"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := New(srv.URL)
	taskID, err := client.RebuildIndex(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "task-81f2", taskID)
}
