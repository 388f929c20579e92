package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	v1 := app.Group("/v1")
	v1.Get("/avatars/initials", handler.InitialsAvatar)

	account := v1.Group("/account")
	account.Post("/tokens/oauth2/:provider", handler.CreateOAuth2Token)
	account.Get("/tokens/oauth2/callback", handler.OAuth2Callback)
	account.Get("/tokens/consent", handler.DevConsent)
	account.Post("/sessions/token", handler.CreateSessionFromToken)
	account.Get("/sessions/current", handler.AuthRequired, handler.GetCurrentSession)
	account.Delete("/sessions/current", handler.AuthRequired, handler.DeleteCurrentSession)
	account.Get("", handler.AuthRequired, handler.GetAccount)

	documents := v1.Group("/databases/:database/collections/:collection/documents", handler.AuthRequired)
	documents.Get("", handler.ListDocuments)
	documents.Post("", handler.CreateDocument)
	documents.Get("/:id", handler.GetDocument)
	documents.Patch("/:id", handler.UpdateDocument)
	documents.Delete("/:id", handler.DeleteDocument)
}
