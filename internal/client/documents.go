package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shubGupta10/notenest/internal/docstore"
)

const databaseID = "default"

var _ docstore.Store = (*Client)(nil)

type listDocumentsResponse struct {
	Total     int                 `json:"total"`
	Documents []docstore.Document `json:"documents"`
}

type createDocumentRequest struct {
	DocumentID  string                `json:"documentId,omitempty"`
	Fields      map[string]any        `json:"fields"`
	Permissions []docstore.Permission `json:"permissions,omitempty"`
}

type updateDocumentRequest struct {
	Fields map[string]any `json:"fields"`
}

func documentsPath(collection string) string {
	return fmt.Sprintf("/v1/databases/%s/collections/%s/documents", databaseID, url.PathEscape(collection))
}

func (client *Client) List(ctx context.Context, collection string, filters map[string]any) ([]docstore.Document, error) {
	query := url.Values{}
	for field, value := range filters {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode filter %s: %w", field, err)
		}
		query.Add("filter", field+"="+string(encoded))
	}

	response := listDocumentsResponse{}
	if err := client.do(ctx, http.MethodGet, documentsPath(collection), query, nil, &response); err != nil {
		return nil, err
	}
	return response.Documents, nil
}

func (client *Client) Get(ctx context.Context, collection string, documentID string) (docstore.Document, error) {
	document := docstore.Document{}
	err := client.do(ctx, http.MethodGet, documentsPath(collection)+"/"+url.PathEscape(documentID), nil, nil, &document)
	if err != nil {
		if failureStatus(err) == http.StatusNotFound {
			return docstore.Document{}, docstore.ErrNotFound
		}
		return docstore.Document{}, err
	}
	return document, nil
}

func (client *Client) Create(ctx context.Context, collection string, documentID string, fields map[string]any, permissions []docstore.Permission) (docstore.Document, error) {
	request := createDocumentRequest{
		DocumentID:  documentID,
		Fields:      fields,
		Permissions: permissions,
	}

	document := docstore.Document{}
	err := client.do(ctx, http.MethodPost, documentsPath(collection), nil, request, &document)
	if err != nil {
		if failureStatus(err) == http.StatusConflict {
			return docstore.Document{}, docstore.ErrConflict
		}
		return docstore.Document{}, err
	}
	return document, nil
}

func (client *Client) Update(ctx context.Context, collection string, documentID string, fields map[string]any) (docstore.Document, error) {
	document := docstore.Document{}
	err := client.do(ctx, http.MethodPatch, documentsPath(collection)+"/"+url.PathEscape(documentID), nil, updateDocumentRequest{Fields: fields}, &document)
	if err != nil {
		if failureStatus(err) == http.StatusNotFound {
			return docstore.Document{}, docstore.ErrNotFound
		}
		return docstore.Document{}, err
	}
	return document, nil
}

func (client *Client) Delete(ctx context.Context, collection string, documentID string) error {
	return client.do(ctx, http.MethodDelete, documentsPath(collection)+"/"+url.PathEscape(documentID), nil, nil, nil)
}
