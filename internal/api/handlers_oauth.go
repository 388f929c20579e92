package api

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shubGupta10/notenest/internal/models"
	"github.com/shubGupta10/notenest/internal/services"
	"golang.org/x/oauth2"
)

const googleUserinfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

type createOAuthTokenInput struct {
	Success string `json:"success"`
}

// CreateOAuth2Token begins the login flow: it answers with the consent URL
// the app must open. The success URL travels inside a signed state token so
// the callback needs no server-side flow storage.
func (handler *Handler) CreateOAuth2Token(c *fiber.Ctx) error {
	provider := strings.ToLower(strings.TrimSpace(c.Params("provider")))

	input := createOAuthTokenInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	successURL := strings.TrimSpace(input.Success)
	if successURL == "" {
		return apiError(c, fiber.StatusBadRequest, "success url is required")
	}
	if _, err := url.ParseRequestURI(successURL); err != nil {
		return apiError(c, fiber.StatusBadRequest, "success url is invalid")
	}

	state, err := handler.buildOAuthStateToken(provider, successURL)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to start oauth flow")
	}

	switch provider {
	case models.ProviderGoogle:
		if handler.oauth.GoogleClientID == "" {
			return apiError(c, fiber.StatusBadRequest, "provider not configured")
		}
		return c.JSON(fiber.Map{"url": handler.googleOAuthConfig().AuthCodeURL(state)})
	case models.ProviderDev:
		if !handler.oauth.EnableDevProvider {
			return apiError(c, fiber.StatusBadRequest, "provider not configured")
		}
		consentURL := fmt.Sprintf("%s%s?state=%s", handler.baseURL, devConsentPath, url.QueryEscape(state))
		return c.JSON(fiber.Map{"url": consentURL})
	default:
		return apiError(c, fiber.StatusBadRequest, "unknown provider")
	}
}

// OAuth2Callback lands the upstream redirect: it exchanges the code, upserts
// the user, and sends the browser back to the app with a one-time secret.
func (handler *Handler) OAuth2Callback(c *fiber.Ctx) error {
	state, err := handler.parseOAuthStateToken(c.Query("state"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid state")
	}
	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		return apiError(c, fiber.StatusBadRequest, "missing code")
	}

	profile, err := handler.fetchGoogleProfile(c, code)
	if err != nil {
		return apiError(c, fiber.StatusBadGateway, "oauth exchange failed")
	}

	return handler.completeConsent(c, *profile, state.SuccessURL)
}

// DevConsent is the stand-in consent screen for local development and
// tests: it takes the profile straight from the query string.
func (handler *Handler) DevConsent(c *fiber.Ctx) error {
	if !handler.oauth.EnableDevProvider {
		return apiError(c, fiber.StatusNotFound, "not found")
	}

	state, err := handler.parseOAuthStateToken(c.Query("state"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid state")
	}

	email := strings.TrimSpace(c.Query("email"))
	name := strings.TrimSpace(c.Query("name"))
	if email == "" {
		return apiError(c, fiber.StatusBadRequest, "email is required")
	}
	if name == "" {
		name = email
	}

	profile := services.OAuthProfile{
		Name:          name,
		Email:         email,
		EmailVerified: false,
		Provider:      models.ProviderDev,
	}
	return handler.completeConsent(c, profile, state.SuccessURL)
}

func (handler *Handler) completeConsent(c *fiber.Ctx, profile services.OAuthProfile, successURL string) error {
	handler.ensureDependencies()
	user, err := handler.accounts.UpsertOAuthUser(profile)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}

	secret, err := handler.accounts.MintGrant(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create login grant")
	}

	redirect, err := url.Parse(successURL)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid success url")
	}
	query := redirect.Query()
	query.Set("userId", user.ID)
	query.Set("secret", secret)
	redirect.RawQuery = query.Encode()

	return c.Redirect(redirect.String(), fiber.StatusSeeOther)
}

func (handler *Handler) googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     handler.oauth.GoogleClientID,
		ClientSecret: handler.oauth.GoogleClientSecret,
		RedirectURL:  handler.baseURL + oauthCallbackPath,
		Scopes:       []string{"openid", "profile", "email"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.google.com/o/oauth2/v2/auth",
			TokenURL: "https://oauth2.googleapis.com/token",
		},
	}
}

func (handler *Handler) fetchGoogleProfile(c *fiber.Ctx, code string) (*services.OAuthProfile, error) {
	config := handler.googleOAuthConfig()
	token, err := config.Exchange(c.Context(), code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	response, err := config.Client(c.Context(), token).Get(googleUserinfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer response.Body.Close()
	if response.StatusCode != fiber.StatusOK {
		return nil, fmt.Errorf("userinfo status %d", response.StatusCode)
	}

	userinfo := struct {
		Name          string `json:"name"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
	}{}
	if err := json.NewDecoder(response.Body).Decode(&userinfo); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	if userinfo.Email == "" {
		return nil, fmt.Errorf("userinfo has no email")
	}
	if userinfo.Name == "" {
		userinfo.Name = userinfo.Email
	}

	return &services.OAuthProfile{
		Name:          userinfo.Name,
		Email:         userinfo.Email,
		EmailVerified: userinfo.EmailVerified,
		Provider:      models.ProviderGoogle,
	}, nil
}
