package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func NewHandler(database *gorm.DB, secretKey string, baseURL string, location *time.Location, oauth OAuthConfig, cookieSecure bool) (*Handler, error) {
	if secretKey == "" {
		return nil, errors.New("secret key must not be empty")
	}
	if location == nil {
		location = time.UTC
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(secretKey),
		location:     location,
		cookieSecure: cookieSecure,
		baseURL:      baseURL,
		oauth:        oauth,
	}
	return handler.withDependencies(database), nil
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
