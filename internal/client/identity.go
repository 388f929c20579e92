package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shubGupta10/notenest/internal/identity"
)

var _ identity.Provider = (*Client)(nil)

type createTokenRequest struct {
	Success string `json:"success"`
}

type createTokenResponse struct {
	URL string `json:"url"`
}

type createSessionRequest struct {
	UserID string `json:"userId"`
	Secret string `json:"secret"`
}

type sessionEnvelope struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	Provider string    `json:"provider"`
	Expires  time.Time `json:"expires"`
	Token    string    `json:"token"`
}

func (client *Client) CreateOAuth2Token(ctx context.Context, provider string, successURL string) (string, error) {
	response := createTokenResponse{}
	path := "/v1/account/tokens/oauth2/" + url.PathEscape(provider)
	if err := client.do(ctx, http.MethodPost, path, nil, createTokenRequest{Success: successURL}, &response); err != nil {
		return "", err
	}
	if response.URL == "" {
		return "", fmt.Errorf("backend answered without a consent url")
	}
	return response.URL, nil
}

func (client *Client) CreateSession(ctx context.Context, userID string, secret string) (identity.Session, error) {
	envelope := sessionEnvelope{}
	request := createSessionRequest{UserID: userID, Secret: secret}
	if err := client.do(ctx, http.MethodPost, "/v1/account/sessions/token", nil, request, &envelope); err != nil {
		return identity.Session{}, err
	}

	client.SetToken(envelope.Token)
	return toIdentitySession(envelope), nil
}

func (client *Client) DeleteSession(ctx context.Context) error {
	if client.Token() == "" {
		return identity.ErrNoSession
	}
	if err := client.do(ctx, http.MethodDelete, "/v1/account/sessions/current", nil, nil, nil); err != nil {
		if failureStatus(err) == http.StatusUnauthorized {
			client.SetToken("")
			return identity.ErrNoSession
		}
		return err
	}
	client.SetToken("")
	return nil
}

func (client *Client) GetSession(ctx context.Context) (identity.Session, error) {
	if client.Token() == "" {
		return identity.Session{}, identity.ErrNoSession
	}

	envelope := sessionEnvelope{}
	if err := client.do(ctx, http.MethodGet, "/v1/account/sessions/current", nil, nil, &envelope); err != nil {
		if failureStatus(err) == http.StatusUnauthorized {
			return identity.Session{}, identity.ErrNoSession
		}
		return identity.Session{}, err
	}
	return toIdentitySession(envelope), nil
}

func (client *Client) GetAccount(ctx context.Context) (identity.Account, error) {
	account := identity.Account{}
	if err := client.do(ctx, http.MethodGet, "/v1/account", nil, nil, &account); err != nil {
		if failureStatus(err) == http.StatusUnauthorized {
			return identity.Account{}, identity.ErrNoSession
		}
		return identity.Account{}, err
	}
	return account, nil
}

func (client *Client) InitialsAvatarURL(name string) string {
	return client.baseURL + "/v1/avatars/initials?name=" + url.QueryEscape(name)
}

func toIdentitySession(envelope sessionEnvelope) identity.Session {
	return identity.Session{
		ID:       envelope.ID,
		UserID:   envelope.UserID,
		Provider: envelope.Provider,
		Expires:  envelope.Expires,
	}
}
