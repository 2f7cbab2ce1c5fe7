// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-gg/arcadia/internal/platform/ctxutil"
	"github.com/arcadia-gg/arcadia/internal/platform/middleware"
	"github.com/arcadia-gg/arcadia/internal/platform/sec"
)

// stubVerifier returns canned claims without touching real key material.
type stubVerifier struct {
	claims *sec.DeviceClaims
	err    error
}

func (s *stubVerifier) VerifyToken(_ string) (*sec.DeviceClaims, error) {
	return s.claims, s.err
}

// errorCode decodes the standard error envelope and returns its code field.
func errorCode(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()

	var envelope struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
	return envelope.Code
}

/*
TestAuthenticate covers the three Authorization header outcomes: absent
(anonymous passthrough), malformed, and a verified bearer token.
*/
func TestAuthenticate(t *testing.T) {
	t.Run("anonymous_passthrough", func(t *testing.T) {
		chain := middleware.Authenticate(&stubVerifier{})(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Nil(t, ctxutil.GetDevice(request.Context()))
			writer.WriteHeader(http.StatusOK)
		}))

		recorder := httptest.NewRecorder()
		chain.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("malformed_header", func(t *testing.T) {
		chain := middleware.Authenticate(&stubVerifier{})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not run")
		}))

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Token abc")

		recorder := httptest.NewRecorder()
		chain.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "UNAUTHORIZED", errorCode(t, recorder))
	})

	t.Run("rejected_token", func(t *testing.T) {
		verifier := &stubVerifier{err: errors.New("expired")}
		chain := middleware.Authenticate(verifier)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not run")
		}))

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Bearer bad-token")

		recorder := httptest.NewRecorder()
		chain.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("injects_claims", func(t *testing.T) {
		verifier := &stubVerifier{claims: &sec.DeviceClaims{DeviceID: "conn-1"}}
		chain := middleware.Authenticate(verifier)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetDevice(request.Context())
			require.NotNil(t, claims)
			assert.Equal(t, "conn-1", claims.DeviceID)
			writer.WriteHeader(http.StatusOK)
		}))

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Bearer good-token")

		recorder := httptest.NewRecorder()
		chain.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

/*
TestRequireDevice verifies the route-group guard: anonymous requests are
rejected with 401 before the handler runs, authenticated ones pass through.
*/
func TestRequireDevice(t *testing.T) {
	t.Run("blocks_anonymous", func(t *testing.T) {
		guarded := middleware.RequireDevice(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not run")
		}))

		recorder := httptest.NewRecorder()
		guarded.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "UNAUTHORIZED", errorCode(t, recorder))
	})

	t.Run("passes_authenticated", func(t *testing.T) {
		called := false
		guarded := middleware.RequireDevice(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			called = true
			writer.WriteHeader(http.StatusNoContent)
		}))

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := ctxutil.WithDevice(request.Context(), &sec.DeviceClaims{DeviceID: "conn-1"})

		recorder := httptest.NewRecorder()
		guarded.ServeHTTP(recorder, request.WithContext(ctx))

		assert.True(t, called)
		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})
}
