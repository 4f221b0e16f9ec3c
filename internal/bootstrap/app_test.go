package bootstrap

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"docmanager-backend/internal/shared/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := Build(config.Config{
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		StagingDir:      t.TempDir(),
		UploadTimeout:   5 * time.Second,
		PresignExpiry:   time.Hour,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(func() { app.Close() })
	return app
}

func TestBuildWiresMemoryBackendsInDev(t *testing.T) {
	app := newTestApp(t)

	if app.DB != nil {
		t.Fatal("expected no database connection without DATABASE_URL")
	}
	if app.Store == nil || app.Router == nil {
		t.Fatal("expected store and router to be wired")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", w.Code)
	}
}

func TestBuildRequiresDatabaseOutsideDev(t *testing.T) {
	_, err := Build(config.Config{Env: "prod", ObjectStoreType: "local"})
	if err == nil {
		t.Fatal("expected error for prod without DATABASE_URL")
	}
}

func TestSignupThenUploadFlow(t *testing.T) {
	app := newTestApp(t)

	// Register a user.
	signup := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(`{"username":"erin","password":"pw123456"}`))
	signup.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, signup)
	if w.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var creds struct {
		UserID int64 `json:"userId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &creds); err != nil {
		t.Fatalf("decode signup: %v", err)
	}

	// Upload a document as that user.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "notes.txt")
	fw.Write([]byte("remember the milk"))
	mw.Close()

	upload := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", &buf)
	upload.Header.Set("Content-Type", mw.FormDataContentType())
	upload.Header.Set("X-User-Id", strconv.FormatInt(creds.UserID, 10))
	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, upload)
	if w.Code != http.StatusOK {
		t.Fatalf("upload: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "File uploaded successfully") {
		t.Fatalf("unexpected upload body: %s", w.Body.String())
	}

	// Query endpoint is available without identity.
	query := httptest.NewRequest(http.MethodGet, "/api/v1/queries/query?query=milk", nil)
	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, query)
	if w.Code != http.StatusOK {
		t.Fatalf("query: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Processed query: milk") {
		t.Fatalf("unexpected query body: %s", w.Body.String())
	}
}

func TestRateLimitKeyedByUser(t *testing.T) {
	app := newTestApp(t)

	listAs := func(userID string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
		req.Header.Set("X-User-Id", userID)
		w := httptest.NewRecorder()
		app.Router.ServeHTTP(w, req)
		return w.Code
	}

	// Drain the first user's bucket. All requests share one client IP, so a
	// limiter keyed by IP would throttle everyone.
	limited := false
	for i := 0; i < 30; i++ {
		switch code := listAs("1"); code {
		case http.StatusOK:
		case http.StatusTooManyRequests:
			limited = true
		default:
			t.Fatalf("request %d: unexpected status %d", i, code)
		}
	}
	if !limited {
		t.Fatal("expected first user to be rate limited after draining the bucket")
	}

	if code := listAs("2"); code != http.StatusOK {
		t.Fatalf("second user: expected 200, got %d", code)
	}
}
