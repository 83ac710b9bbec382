package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabsy-backend/pkg/config"
)

func newTestHandler() *Handler {
	return NewHandler(&config.Config{}, nil, nil, nil, nil, nil, nil)
}

func TestBuildEngineRunsInReleaseMode(t *testing.T) {
	gin.SetMode(gin.DebugMode)

	r := newTestHandler().buildEngine()
	assert.Equal(t, gin.ReleaseMode, gin.Mode())

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tabsy Backend")
}

func TestCORSPreflight(t *testing.T) {
	r := newTestHandler().buildEngine()

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodOptions, "/api/tasks", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
