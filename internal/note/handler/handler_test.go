package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jotpad/jotpad/internal/note"
	"github.com/jotpad/jotpad/internal/note/repository"
	"github.com/jotpad/jotpad/internal/note/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(guards ...gin.HandlerFunc) *gin.Engine {
	g := gin.New()
	RegisterNoteRoutes(g, service.New(repository.NewMemoryRepo()), guards...)
	return g
}

func TestCreateAndListNotes(t *testing.T) {
	g := newTestEngine()

	// empty list first
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var list []note.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Empty(t, list)

	// create
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(`{"title":"  hello  ","content":"world"}`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	var created note.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "hello", created.Title)
	assert.Greater(t, created.CreatedAt, int64(0))

	// list contains it
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestCreateNoteRejectsInvalidInput(t *testing.T) {
	g := newTestEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(`{"title":"   ","content":""}`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Errors["title"])
	require.NotEmpty(t, resp.Errors["content"])

	// malformed body is a 400, not a 422
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWriteGuardAppliesToPostOnly(t *testing.T) {
	guard := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no"})
	}
	g := newTestEngine(guard)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(`{"title":"t","content":"c"}`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestWatchStreamsListUpdates(t *testing.T) {
	g := newTestEngine()
	srv := httptest.NewServer(g)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/notes/watch"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// initial snapshot arrives on connect
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var list []note.Note
	require.NoError(t, conn.ReadJSON(&list))
	require.Empty(t, list)

	resp, err := http.Post(srv.URL+"/api/notes", "application/json", strings.NewReader(`{"title":"pushed","content":"c"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, conn.ReadJSON(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "pushed", list[0].Title)
}
