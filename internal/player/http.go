// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

// HTTP delivery layer for the identity domain.
//
// # Architecture
//
// Handlers act as the "gatekeepers" to the system. They are responsible for:
//   - JSON Request parsing and strict input validation.
//   - Mapping HTTP contexts to service layer method calls.
//   - Standardizing JSON response formats via the [respond] package.
//
// They contain NO business logic or database queries.

package player

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/arcadia-gg/arcadia/internal/platform/constants"
	"github.com/arcadia-gg/arcadia/internal/platform/ctxutil"
	"github.com/arcadia-gg/arcadia/internal/platform/middleware"
	requestutil "github.com/arcadia-gg/arcadia/internal/platform/request"
	"github.com/arcadia-gg/arcadia/internal/platform/respond"
	"github.com/arcadia-gg/arcadia/internal/platform/validate"
	"github.com/arcadia-gg/arcadia/pkg/uuidgen"
)

// TokenIssuer defines the contract for minting device tokens.
type TokenIssuer interface {
	// GenerateDeviceToken creates a signed JWT string for the given connection
	// identity.
	GenerateDeviceToken(deviceID string, timeToLive time.Duration) (string, error)
}

// Handler implements the identity-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the device lifecycle entry
// points (handshake, connect/disconnect hooks, profile, public cards).
type Handler struct {
	playerService *Service
	tokenIssuer   TokenIssuer
	random        uuidgen.ByteSource
}

// NewHandler constructs a new [Handler] with its service dependencies.
func NewHandler(service *Service, issuer TokenIssuer) *Handler {
	return &Handler{
		playerService: service,
		tokenIssuer:   issuer,
		random:        uuidgen.SystemSource{},
	}
}

// AuthRoutes returns a [chi.Router] with the anonymous bootstrap endpoint.
//
// # Endpoints
//   - POST /handshake : Issues a device token for a fresh connection identity.
func (handler *Handler) AuthRoutes() chi.Router {
	router := chi.NewRouter()

	router.Post("/handshake", handler.handshake)

	return router
}

// SessionRoutes returns a [chi.Router] with the session lifecycle endpoints.
//
// Every endpoint requires an authenticated device; the guard runs once at the
// group level so handlers can read the claims unconditionally.
//
// # Endpoints
//   - POST /connect    : Signs the caller's session in.
//   - POST /disconnect : Signs the caller's session out (always 204).
//   - GET  /           : Returns the caller's own session.
func (handler *Handler) SessionRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireDevice)

	router.Post("/connect", handler.connect)
	router.Post("/disconnect", handler.disconnect)
	router.Get("/", handler.session)

	return router
}

// PlayerRoutes returns a [chi.Router] with the player-scoped endpoints.
//
// The /me endpoints require an authenticated device; the card endpoint is
// public, so the guard wraps only the owner-scoped group.
//
// # Endpoints
//   - GET /me                : Returns the caller's private player record.
//   - PUT /me/profile        : Sets the caller's display name and avatar.
//   - GET /{playerID}/card   : Returns any player's public card.
func (handler *Handler) PlayerRoutes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireDevice)
		owner.Get("/me", handler.me)
		owner.Put("/me/profile", handler.upsertProfile)
	})

	router.Get("/{playerID}/card", handler.card)

	return router
}

// handshakeResponse is the JSON payload returned by a successful handshake.
type handshakeResponse struct {
	SessionKey string `json:"session_key"`
	Token      string `json:"token"`
	ExpiresIn  int64  `json:"expires_in"`
}

// handshake handles POST /api/v1/auth/handshake requests.
//
// # Returns
//   - Writes HTTP 201 Created with a fresh connection identity and its token.
//
// Clients call this once per installation and persist the token; the session
// key it binds becomes their caller identity for every subsequent request.
func (handler *Handler) handshake(writer http.ResponseWriter, request *http.Request) {
	connectionID := uuidgen.NewV4(handler.random)

	token, err := handler.tokenIssuer.GenerateDeviceToken(connectionID, constants.DeviceTokenTTL)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, handshakeResponse{
		SessionKey: connectionID,
		Token:      token,
		ExpiresIn:  int64(constants.DeviceTokenTTL.Seconds()),
	})
}

// connect handles POST /api/v1/session/connect requests.
//
// # Returns
//   - Writes HTTP 200 OK with the online [Session].
//   - Writes HTTP 401 Unauthorized without a valid device token.
func (handler *Handler) connect(writer http.ResponseWriter, request *http.Request) {
	claims := requestutil.Device(request)

	session, err := handler.playerService.SignIn(request.Context(), claims.DeviceID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

// disconnect handles POST /api/v1/session/disconnect requests.
//
// # Returns
//   - Writes HTTP 204 No Content, always. Disconnect is fire-and-forget from
//     the client's perspective; failures are logged server-side only.
//   - Writes HTTP 401 Unauthorized without a valid device token.
func (handler *Handler) disconnect(writer http.ResponseWriter, request *http.Request) {
	claims := requestutil.Device(request)

	if err := handler.playerService.SignOut(request.Context(), claims.DeviceID); err != nil {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "sign_out_failed",
			slog.String("session_id", claims.DeviceID),
			slog.Any("error", err),
		)
	}

	respond.NoContent(writer)
}

// session handles GET /api/v1/session requests.
func (handler *Handler) session(writer http.ResponseWriter, request *http.Request) {
	claims := requestutil.Device(request)

	session, err := handler.playerService.Session(request.Context(), claims.DeviceID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

// me handles GET /api/v1/players/me requests.
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims := requestutil.Device(request)

	player, err := handler.playerService.Me(request.Context(), claims.DeviceID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, player)
}

// profileRequest represents the JSON payload for a profile upsert.
type profileRequest struct {
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
}

// upsertProfile handles PUT /api/v1/players/me/profile requests.
//
// # Returns
//   - Writes HTTP 200 OK with the updated [Player].
//   - Writes HTTP 422 if either field is outside its 8..64 byte bounds.
//   - Writes HTTP 409 Conflict if the display name is taken.
func (handler *Handler) upsertProfile(writer http.ResponseWriter, request *http.Request) {
	claims := requestutil.Device(request)

	var input profileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	player, err := handler.playerService.UpsertProfile(request.Context(), claims.DeviceID, input.DisplayName, input.Avatar)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, player)
}

// card handles GET /api/v1/players/{playerID}/card requests.
//
// The card is public: no session is required, only a syntactically valid
// player identifier.
func (handler *Handler) card(writer http.ResponseWriter, request *http.Request) {
	playerID := requestutil.Param(request, "playerID")

	card, err := handler.playerService.Card(request.Context(), playerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, card)
}
