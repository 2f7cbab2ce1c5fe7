// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

package vip

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arcadia-gg/arcadia/internal/platform/middleware"
	requestutil "github.com/arcadia-gg/arcadia/internal/platform/request"
	"github.com/arcadia-gg/arcadia/internal/platform/respond"
	"github.com/arcadia-gg/arcadia/internal/platform/validate"
	"github.com/arcadia-gg/arcadia/pkg/pagination"
)

// Handler implements the relationship HTTP endpoints.
type Handler struct {
	vipService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{vipService: service}
}

// Routes returns a [chi.Router] configured with the relationship routes.
//
// Every endpoint requires an authenticated device; the guard runs once at the
// group level so handlers can read the claims unconditionally.
//
// # Endpoints
//   - POST / : Adds (or re-tags) a VIP; reconciles both directions.
//   - GET  / : Lists the caller's own rows, paginated.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireDevice)

	router.Post("/", handler.request)
	router.Get("/", handler.list)

	return router
}

// requestBody represents the JSON payload for adding a VIP.
type requestBody struct {
	ReceiverID string `json:"receiver_id"`
	Tag        string `json:"tag"`
}

// request handles POST /api/v1/vips requests.
//
// # Returns
//   - Writes HTTP 201 Created with the caller's reconciled row.
//   - Writes HTTP 401 Unauthorized without a signed-in session.
//   - Writes HTTP 422 on malformed receiver ID or oversized tag.
func (handler *Handler) request(writer http.ResponseWriter, request *http.Request) {
	claims := requestutil.Device(request)

	var input requestBody
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	vip, err := handler.vipService.Request(request.Context(), claims.DeviceID, input.ReceiverID, input.Tag)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, vip)
}

// list handles GET /api/v1/vips requests.
//
// # Returns
//   - Writes HTTP 200 OK with one page of the caller's rows and pagination
//     metadata.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	claims := requestutil.Device(request)

	params := pagination.FromRequest(request)

	vips, meta, err := handler.vipService.ListSent(request.Context(), claims.DeviceID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, vips, meta)
}
