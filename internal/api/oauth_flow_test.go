package api

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestDevConsentFlowIssuesSession(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token, userID := loginTestUser(t, app, "mina@example.com", "Mina")

	response := testRequest(t, app, http.MethodGet, "/v1/account", token, nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected the account, got status %d", response.StatusCode)
	}
	account := struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}{}
	decodeJSON(t, response, &account)
	if account.ID != userID || account.Email != "mina@example.com" || account.Name != "Mina" {
		t.Fatalf("unexpected account %+v", account)
	}
}

func TestRepeatLoginKeepsOneUser(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	_, firstID := loginTestUser(t, app, "mina@example.com", "Mina")
	_, secondID := loginTestUser(t, app, "mina@example.com", "Mina K.")

	if firstID != secondID {
		t.Fatalf("expected repeat logins to land on one user, got %q and %q", firstID, secondID)
	}
}

func TestGrantSecretBurnsOnUse(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	tokenResponse := testRequest(t, app, http.MethodPost, "/v1/account/tokens/oauth2/dev", "", map[string]any{
		"success": "http://localhost/done",
	})
	consent := struct {
		URL string `json:"url"`
	}{}
	decodeJSON(t, tokenResponse, &consent)

	consentResponse := testRequest(t, app, http.MethodGet, consent.URL+"&email=mina%40example.com&name=Mina", "", nil)
	consentResponse.Body.Close()
	redirect, err := url.Parse(consentResponse.Header.Get(fiber.HeaderLocation))
	if err != nil {
		t.Fatalf("parse redirect location: %v", err)
	}
	credentials := map[string]any{
		"userId": redirect.Query().Get("userId"),
		"secret": redirect.Query().Get("secret"),
	}

	first := testRequest(t, app, http.MethodPost, "/v1/account/sessions/token", "", credentials)
	first.Body.Close()
	if first.StatusCode != http.StatusCreated {
		t.Fatalf("expected the first redemption to succeed, got %d", first.StatusCode)
	}

	second := testRequest(t, app, http.MethodPost, "/v1/account/sessions/token", "", credentials)
	second.Body.Close()
	if second.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected the replayed secret to be rejected, got %d", second.StatusCode)
	}
}

func TestCreateOAuth2TokenRejectsUnknownProvider(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	response := testRequest(t, app, http.MethodPost, "/v1/account/tokens/oauth2/facebook", "", map[string]any{
		"success": "http://localhost/done",
	})
	response.Body.Close()
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}
}

func TestCreateOAuth2TokenRequiresSuccessURL(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	response := testRequest(t, app, http.MethodPost, "/v1/account/tokens/oauth2/dev", "", map[string]any{})
	response.Body.Close()
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}
}
