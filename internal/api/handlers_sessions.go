package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shubGupta10/notenest/internal/models"
	"github.com/shubGupta10/notenest/internal/services"
)

type createSessionInput struct {
	UserID string `json:"userId"`
	Secret string `json:"secret"`
}

// CreateSessionFromToken redeems the one-time secret from the OAuth
// redirect for a session and its bearer token.
func (handler *Handler) CreateSessionFromToken(c *fiber.Ctx) error {
	input := createSessionInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	input.UserID = strings.TrimSpace(input.UserID)
	input.Secret = strings.TrimSpace(input.Secret)
	if input.UserID == "" || input.Secret == "" {
		return apiError(c, fiber.StatusBadRequest, "userId and secret are required")
	}

	handler.ensureDependencies()
	user, err := handler.accounts.UserByID(input.UserID)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	session, err := handler.accounts.RedeemGrant(user.ID, input.Secret, user.Provider)
	if err != nil {
		if errors.Is(err, services.ErrInvalidGrant) {
			return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	token, err := handler.buildSessionToken(session)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	handler.setSessionCookie(c, token, session.ExpiresAt)
	return c.Status(fiber.StatusCreated).JSON(sessionResponse(session, token))
}

func (handler *Handler) GetCurrentSession(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(sessionResponse(session, ""))
}

func (handler *Handler) DeleteCurrentSession(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	if err := handler.accounts.DeleteSession(session.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete session")
	}
	handler.clearSessionCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) GetAccount(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(fiber.Map{
		"id":                user.ID,
		"name":              user.Name,
		"email":             user.Email,
		"emailVerification": user.EmailVerified,
		"registration":      user.CreatedAt,
	})
}

func sessionResponse(session *models.Session, token string) fiber.Map {
	response := fiber.Map{
		"id":       session.ID,
		"userId":   session.UserID,
		"provider": session.Provider,
		"expires":  session.ExpiresAt,
	}
	if token != "" {
		response["token"] = token
	}
	return response
}
