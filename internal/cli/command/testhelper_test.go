package command

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/yndnr/kvcli/internal/cli/auth"
	"github.com/yndnr/kvcli/internal/cli/config"
	"github.com/yndnr/kvcli/internal/cli/connection"
	"github.com/yndnr/kvcli/internal/cli/prompt"
	"github.com/yndnr/kvcli/internal/core/domain"
)

const (
	testPassword = "secret"
	testToken    = "admin-token"
)

// mockServer is an in-memory record service.
type mockServer struct {
	*httptest.Server

	mu      sync.Mutex
	records []domain.Record
	calls   []string
	// deleteAuth holds the Authorization header of each DELETE.
	deleteAuth []string
	// lastCheckAuth is the Authorization header of the latest admin check.
	lastCheckAuth string
	// healthStatus overrides the /health status when non-zero.
	healthStatus int
}

// newMockServer creates a new mock server seeded with records.
func newMockServer(t *testing.T, records ...domain.Record) *mockServer {
	t.Helper()
	m := &mockServer{records: records}
	m.Server = httptest.NewServer(http.HandlerFunc(m.serve))
	t.Cleanup(m.Close)
	return m
}

func (m *mockServer) serve(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, r.Method+" "+r.URL.Path)

	switch {
	case r.URL.Path == "/health":
		status := http.StatusOK
		if m.healthStatus != 0 {
			status = m.healthStatus
		}
		w.WriteHeader(status)

	case r.URL.Path == "/api/meta":
		jsonResponse(w, http.StatusOK, map[string]any{"service": "records", "version": 2})

	case r.URL.Path == "/api/auth/login":
		var body struct {
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.Password != testPassword {
			errorResponse(w, http.StatusUnauthorized, "Invalid password")
			return
		}
		jsonResponse(w, http.StatusOK, map[string]string{"token": testToken})

	case r.URL.Path == "/api/auth/check-admin":
		m.lastCheckAuth = r.Header.Get("Authorization")
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			errorResponse(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		w.WriteHeader(http.StatusOK)

	case r.URL.Path == "/api/data" && r.Method == http.MethodGet:
		if len(m.records) == 0 {
			errorResponse(w, http.StatusConflict, "No data")
			return
		}
		jsonResponse(w, http.StatusOK, m.records)

	case r.URL.Path == "/api/data" && r.Method == http.MethodPost:
		var rec domain.Record
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			errorResponse(w, http.StatusBadRequest, "bad body")
			return
		}
		if _, ok := m.find(rec.Key); ok {
			errorResponse(w, http.StatusConflict, "Key already in use")
			return
		}
		m.records = append(m.records, rec)
		jsonResponse(w, http.StatusCreated, rec)

	case strings.HasPrefix(r.URL.Path, "/api/data/"):
		key := strings.TrimPrefix(r.URL.Path, "/api/data/")
		i, ok := m.find(key)
		if !ok {
			errorResponse(w, http.StatusNotFound, "Not found")
			return
		}
		switch r.Method {
		case http.MethodGet:
			jsonResponse(w, http.StatusOK, m.records[i])
		case http.MethodDelete:
			m.deleteAuth = append(m.deleteAuth, r.Header.Get("Authorization"))
			m.records = append(m.records[:i], m.records[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}

	default:
		http.NotFound(w, r)
	}
}

func (m *mockServer) find(key string) (int, bool) {
	for i, rec := range m.records {
		if rec.Key == key {
			return i, true
		}
	}
	return 0, false
}

// callsTo counts requests matching "METHOD /path".
func (m *mockServer) callsTo(call string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, c := range m.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (m *mockServer) setHealthStatus(status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthStatus = status
}

func (m *mockServer) totalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockServer) snapshot() []domain.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Record(nil), m.records...)
}

// jsonResponse writes a JSON response.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// errorResponse writes an error response.
func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// newTestEnv wires an Env against server with scripted keyboard input.
func newTestEnv(t *testing.T, server *mockServer, input string) (*Env, *bytes.Buffer) {
	t.Helper()

	cfg := config.Default()
	cfg.Server = server.URL

	session := connection.NewSession(connection.NewHTTPClient(server.URL, connection.Options{}))
	t.Cleanup(session.Close)

	out := &bytes.Buffer{}
	src := prompt.NewByteSource(strings.NewReader(input))
	return NewEnv(session, src, out, cfg, auth.Options{}), out
}
