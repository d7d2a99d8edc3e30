package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bagelbot/internal/engine"
	"bagelbot/internal/menu"
	"bagelbot/internal/modifiers"
	"bagelbot/internal/parser"
	"bagelbot/internal/session"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	snap := menu.DefaultSnapshot()
	lookup := menu.NewLookup(snap)
	pricing := menu.NewTablePricing(snap)
	mods := modifiers.NewEngine(pricing, menu.NewIngredientCache(snap))
	pipe := parser.NewPipeline(snap, lookup, nil, 0)
	geo := &engine.StaticGeocoder{Neighborhoods: map[string]string{"williamsburg": "11211"}}
	info := engine.StoreInfo{
		Name:         "Bagel Bros",
		Hours:        "7am to 3pm every day",
		Address:      "123 Bedford Ave",
		DeliveryZips: []string{"11211"},
	}
	eng := engine.New(snap, lookup, pricing, mods, pipe, geo, info)

	store, err := session.Open(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return New(eng, store, nil)
}

func createSession(t *testing.T, s *Server) string {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/sessions", nil)
	s.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body["session_id"])
	return body["session_id"]
}

func sendMessage(t *testing.T, s *Server, id, text string) map[string]interface{} {
	t.Helper()
	payload, _ := json.Marshal(map[string]string{"text": text})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/sessions/"+id+"/messages", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	s.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateSessionAndSendTurn(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s)

	body := sendMessage(t, s, id, "two plain bagels please")
	reply, ok := body["reply"].(string)
	require.True(t, ok)
	assert.Contains(t, reply, "toasted")

	// State persisted between requests.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/sessions/"+id, nil)
	s.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var order map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	items, ok := order["items"].([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 1)
}

func TestMessageRequiresText(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/sessions/"+id+"/messages", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnknownSessionIsNotFound(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/sessions/nope", nil)
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionReport(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s)

	sendMessage(t, s, id, "hi")
	sendMessage(t, s, id, "a plain bagel")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/sessions/"+id+"/report", nil)
	s.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var report map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.EqualValues(t, 2, report["turns"])
	assert.EqualValues(t, 1, report["items_ordered"])
	assert.Equal(t, false, report["completed"])
}
