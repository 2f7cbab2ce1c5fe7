// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/arcadia-gg/arcadia/internal/platform/ctxkey"
	"github.com/arcadia-gg/arcadia/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithDevice returns a new context with the provided device claims attached.
func WithDevice(ctx context.Context, device *sec.DeviceClaims) context.Context {
	return context.WithValue(ctx, ctxkey.KeyDevice, device)
}

// GetDevice retrieves the [*sec.DeviceClaims] from the [context.Context].
func GetDevice(ctx context.Context) *sec.DeviceClaims {
	claims, ok := ctx.Value(ctxkey.KeyDevice).(*sec.DeviceClaims)
	if !ok {
		return nil
	}
	return claims
}
