// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arcadia-gg/arcadia/internal/platform/ctxutil"
	"github.com/arcadia-gg/arcadia/internal/platform/sec"
	"github.com/arcadia-gg/arcadia/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Device extracts the authenticated device claims from the request context.

Returns nil if the request is not authenticated. Authenticated route groups
mount [middleware.RequireDevice], so handlers registered behind the guard
always receive non-nil claims.
*/
func Device(request *http.Request) *sec.DeviceClaims {
	return ctxutil.GetDevice(request.Context())
}
