package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shubGupta10/notenest/internal/db"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	handler, err := NewHandler(database, "test-secret", "http://backend", time.UTC, OAuthConfig{EnableDevProvider: true}, false)
	if err != nil {
		t.Fatalf("create handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app
}

func testRequest(t *testing.T, app *fiber.App, method string, path string, token string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode %s %s payload: %v", method, path, err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func decodeJSON(t *testing.T, response *http.Response, out any) {
	t.Helper()
	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// loginTestUser walks the dev consent flow end to end and answers the bearer
// token plus the user id it belongs to.
func loginTestUser(t *testing.T, app *fiber.App, email string, name string) (string, string) {
	t.Helper()

	tokenResponse := testRequest(t, app, http.MethodPost, "/v1/account/tokens/oauth2/dev", "", map[string]any{
		"success": "http://localhost/done",
	})
	if tokenResponse.StatusCode != http.StatusOK {
		t.Fatalf("expected consent url, got status %d", tokenResponse.StatusCode)
	}
	consent := struct {
		URL string `json:"url"`
	}{}
	decodeJSON(t, tokenResponse, &consent)
	if consent.URL == "" {
		t.Fatal("expected a consent url")
	}

	consentURL := consent.URL + "&email=" + url.QueryEscape(email) + "&name=" + url.QueryEscape(name)
	consentResponse := testRequest(t, app, http.MethodGet, consentURL, "", nil)
	consentResponse.Body.Close()
	if consentResponse.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected consent redirect, got status %d", consentResponse.StatusCode)
	}

	redirect, err := url.Parse(consentResponse.Header.Get(fiber.HeaderLocation))
	if err != nil {
		t.Fatalf("parse redirect location: %v", err)
	}
	userID := redirect.Query().Get("userId")
	secret := redirect.Query().Get("secret")
	if userID == "" || secret == "" {
		t.Fatalf("redirect is missing credentials: %q", redirect.String())
	}

	sessionResponse := testRequest(t, app, http.MethodPost, "/v1/account/sessions/token", "", map[string]any{
		"userId": userID,
		"secret": secret,
	})
	if sessionResponse.StatusCode != http.StatusCreated {
		t.Fatalf("expected session creation, got status %d", sessionResponse.StatusCode)
	}
	session := struct {
		Token string `json:"token"`
	}{}
	decodeJSON(t, sessionResponse, &session)
	if session.Token == "" {
		t.Fatal("expected a bearer token")
	}
	return session.Token, userID
}
