package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"CAMPUS_EVENTS_BACK-END/internal/config"
	"CAMPUS_EVENTS_BACK-END/internal/dto"
	"CAMPUS_EVENTS_BACK-END/internal/handlers"
	"CAMPUS_EVENTS_BACK-END/internal/routes"
	"CAMPUS_EVENTS_BACK-END/internal/store"
	"CAMPUS_EVENTS_BACK-END/internal/upload"
)

// pngHeader is enough for content sniffing to report image/png
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

type testEnv struct {
	router  http.Handler
	users   *store.MemoryUserStore
	events  *store.MemoryEventStore
	uploads *upload.Store
	cfg     *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithMaxUpload(t, 10<<20)
}

func newTestEnvWithMaxUpload(t *testing.T, maxBytes int64) *testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{
		JWT:    config.JWTConfig{Secret: "test-secret", AccessTokenTTL: 24 * time.Hour},
		Auth:   config.AuthConfig{BcryptCost: bcrypt.MinCost},
		Upload: config.UploadConfig{Dir: t.TempDir(), MaxBytes: maxBytes},
	}

	users := store.NewMemoryUserStore()
	events := store.NewMemoryEventStore()
	uploads, err := upload.NewStore(cfg.Upload.Dir, logger)
	require.NoError(t, err)

	authHandler := handlers.NewAuthHandler(users, &cfg.JWT, cfg.Auth.BcryptCost, logger)
	eventsHandler := handlers.NewEventsHandler(events, uploads, cfg.Upload.MaxBytes, logger)
	healthHandler := handlers.NewHealthHandler(nil)

	return &testEnv{
		router:  routes.Setup(authHandler, eventsHandler, healthHandler, users, cfg),
		users:   users,
		events:  events,
		uploads: uploads,
		cfg:     cfg,
	}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.do(t, req)
}

// doMultipart sends a multipart form with the given text fields and an
// optional image file
func (e *testEnv) doMultipart(t *testing.T, method, path, token string, fields map[string]string, image []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image", "poster.png")
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.do(t, req)
}

// register creates an account through the API and returns its auth response
func (e *testEnv) register(t *testing.T, name, email string) dto.AuthResponse {
	t.Helper()

	rec := e.doJSON(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":       name,
		"email":      email,
		"password":   "hunter22",
		"college_id": "COL-42",
	})
	require.Equal(t, http.StatusCreated, rec.Code, "register failed: %s", rec.Body.String())

	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

// createEvent creates an event through the API and returns its response
func (e *testEnv) createEvent(t *testing.T, token string, overrides map[string]string, image []byte) dto.EventResponse {
	t.Helper()

	fields := map[string]string{
		"title":       "Tech Fest",
		"description": "Annual technology festival",
		"date":        "2024-06-15",
		"time":        "10:00 AM",
		"location":    "Main Auditorium",
		"type":        "Technical",
		"organizer":   "CS Department",
	}
	for k, v := range overrides {
		fields[k] = v
	}

	rec := e.doMultipart(t, http.MethodPost, "/api/events", token, fields, image)
	require.Equal(t, http.StatusCreated, rec.Code, "create event failed: %s", rec.Body.String())

	var resp dto.EventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeEventList(t *testing.T, rec *httptest.ResponseRecorder) dto.EventListResponse {
	t.Helper()
	var resp dto.EventListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}
