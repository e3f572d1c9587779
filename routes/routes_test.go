package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"savorly/models"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests exercise the routing layer only: the reserved-word dispatch
// under /recipes/:id and the middleware wiring. Nothing here touches the
// database.

func newTestRouter() *httprouter.Router {
	router := httprouter.New()
	AddRecipeRoutes(router)
	AddUserRoutes(router)
	return router
}

func serve(router *httprouter.Router, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	req.RemoteAddr = "127.0.0.1:9999"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCategoriesRoute(t *testing.T) {
	rec := serve(newTestRouter(), "GET", "/recipes/categories")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.Categories, got)
}

func TestBookmarkCheckRouteRequiresParams(t *testing.T) {
	rec := serve(newTestRouter(), "GET", "/recipes/bookmarks/check")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookmarkListRouteRequiresEmail(t *testing.T) {
	rec := serve(newTestRouter(), "GET", "/recipes/bookmarks")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMalformedRecipeIDRoute(t *testing.T) {
	rec := serve(newTestRouter(), "GET", "/recipes/not-a-valid-id")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReservedSegmentsRejectStrays(t *testing.T) {
	// Only /recipes/top/liked and /recipes/bookmarks/check exist among the
	// three-segment GET paths.
	assert.Equal(t, http.StatusNotFound, serve(newTestRouter(), "GET", "/recipes/other/liked").Code)
	assert.Equal(t, http.StatusNotFound, serve(newTestRouter(), "GET", "/recipes/other/check").Code)
}

func TestMutationsRequireAuth(t *testing.T) {
	router := newTestRouter()
	id := "64f000000000000000000001"

	tests := []struct {
		method string
		target string
	}{
		{"PUT", "/recipes/" + id},
		{"DELETE", "/recipes/" + id},
		{"PATCH", "/recipes/" + id + "/like"},
		{"POST", "/recipes/bookmarks"},
	}
	for _, tt := range tests {
		rec := serve(router, tt.method, tt.target)
		assert.Equalf(t, http.StatusUnauthorized, rec.Code, "%s %s", tt.method, tt.target)
	}
}

func TestUnknownPostSubtree(t *testing.T) {
	// POST /recipes/<id> is not a thing; the auth wrapper answers first.
	rec := serve(newTestRouter(), "POST", "/recipes/64f000000000000000000001")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
