// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arcadia-gg/arcadia/internal/platform/ctxutil"
	"github.com/arcadia-gg/arcadia/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Device verifies that DeviceClaims can be stored in context.
*/
func TestContext_Device(t *testing.T) {
	ctx := context.Background()
	claims := &sec.DeviceClaims{
		DeviceID: "device-123",
	}

	// 1. Initially should be nil
	assert.Nil(t, ctxutil.GetDevice(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithDevice(ctx, claims)
	assert.Equal(t, claims, ctxutil.GetDevice(ctx))
}
