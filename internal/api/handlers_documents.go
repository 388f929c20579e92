package api

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shubGupta10/notenest/internal/docstore"
)

type createDocumentInput struct {
	DocumentID  string                `json:"documentId"`
	Fields      map[string]any        `json:"fields"`
	Permissions []docstore.Permission `json:"permissions"`
}

type updateDocumentInput struct {
	Fields map[string]any `json:"fields"`
}

// ListDocuments answers the documents of a collection matching the equality
// filters, reduced to those the caller may read.
func (handler *Handler) ListDocuments(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	filters, err := parseDocumentFilters(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid filter")
	}

	handler.ensureDependencies()
	documents, err := handler.documents.List(c.Context(), c.Params("collection"), filters)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to list documents")
	}

	readable := make([]docstore.Document, 0, len(documents))
	for _, document := range documents {
		if documentAllows(document, docstore.PermissionRead, user.ID) {
			readable = append(readable, document)
		}
	}
	return c.JSON(fiber.Map{"total": len(readable), "documents": readable})
}

func (handler *Handler) CreateDocument(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := createDocumentInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.Fields == nil {
		return apiError(c, fiber.StatusBadRequest, "fields are required")
	}

	documentID := strings.TrimSpace(input.DocumentID)
	if documentID == "" {
		documentID = uuid.NewString()
	}
	permissions := input.Permissions
	if len(permissions) == 0 {
		permissions = docstore.OwnerPermissions(user.ID)
	}

	handler.ensureDependencies()
	document, err := handler.documents.Create(c.Context(), c.Params("collection"), documentID, input.Fields, permissions)
	if err != nil {
		if errors.Is(err, docstore.ErrConflict) {
			return apiError(c, fiber.StatusConflict, "document id already exists")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to create document")
	}
	return c.Status(fiber.StatusCreated).JSON(document)
}

func (handler *Handler) GetDocument(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	document, err := handler.documents.Get(c.Context(), c.Params("collection"), c.Params("id"))
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return apiError(c, fiber.StatusNotFound, "document not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch document")
	}
	if !documentAllows(document, docstore.PermissionRead, user.ID) {
		// Unreadable documents stay invisible rather than acknowledged.
		return apiError(c, fiber.StatusNotFound, "document not found")
	}
	return c.JSON(document)
}

func (handler *Handler) UpdateDocument(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := updateDocumentInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if len(input.Fields) == 0 {
		return apiError(c, fiber.StatusBadRequest, "fields are required")
	}

	handler.ensureDependencies()
	document, err := handler.documents.Get(c.Context(), c.Params("collection"), c.Params("id"))
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return apiError(c, fiber.StatusNotFound, "document not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch document")
	}
	if !documentAllows(document, docstore.PermissionUpdate, user.ID) {
		return apiError(c, fiber.StatusForbidden, "missing update permission")
	}

	updated, err := handler.documents.Update(c.Context(), c.Params("collection"), c.Params("id"), input.Fields)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update document")
	}
	return c.JSON(updated)
}

func (handler *Handler) DeleteDocument(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	document, err := handler.documents.Get(c.Context(), c.Params("collection"), c.Params("id"))
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch document")
	}
	if !documentAllows(document, docstore.PermissionDelete, user.ID) {
		return apiError(c, fiber.StatusForbidden, "missing delete permission")
	}

	if err := handler.documents.Delete(c.Context(), c.Params("collection"), c.Params("id")); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete document")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Filters arrive as repeated filter=field=value parameters with the value
// JSON-encoded, so filter=status=true matches a boolean and
// filter=name="Water" a string. A bare value falls back to a plain string.
func parseDocumentFilters(c *fiber.Ctx) (map[string]any, error) {
	filters := map[string]any{}
	for _, raw := range c.Request().URI().QueryArgs().PeekMulti("filter") {
		parts := strings.SplitN(string(raw), "=", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
			return nil, errors.New("filter must look like field=value")
		}

		var value any
		if err := json.Unmarshal([]byte(parts[1]), &value); err != nil {
			value = parts[1]
		}
		filters[strings.TrimSpace(parts[0])] = value
	}
	return filters, nil
}

func documentAllows(document docstore.Document, action string, userID string) bool {
	for _, permission := range document.Permissions {
		if permission.Action == action && permission.UserID == userID {
			return true
		}
	}
	return false
}
