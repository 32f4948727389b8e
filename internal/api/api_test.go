package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestNormalizeAllowedOrigins(t *testing.T) {
	origins, allowAll := normalizeAllowedOrigins([]string{"http://a.example, http://b.example", " "})
	assert.False(t, allowAll)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, origins)

	origins, allowAll = normalizeAllowedOrigins([]string{"*", "http://a.example"})
	assert.True(t, allowAll)
	assert.Equal(t, []string{"http://a.example"}, origins)

	origins, allowAll = normalizeAllowedOrigins(nil)
	assert.False(t, allowAll)
	assert.Empty(t, origins)
}
