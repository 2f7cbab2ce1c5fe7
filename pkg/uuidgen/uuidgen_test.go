// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

package uuidgen_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-gg/arcadia/pkg/uuidgen"
)

// countingSource yields 0x00, 0x01, 0x02, ... for byte-exact fixtures.
type countingSource struct {
	next byte
}

func (s *countingSource) Byte() byte {
	b := s.next
	s.next++
	return b
}

func TestNewV4_MarkerBits(t *testing.T) {
	id := uuidgen.NewV4(&countingSource{})
	require.Len(t, id, 36)

	// Byte 6 occupies text positions 14-15, byte 8 positions 19-20.
	assert.Equal(t, byte('4'), id[14], "high nibble of byte 6 must be 0100")
	assert.Contains(t, "89ab", string(id[19]), "top two bits of byte 8 must be 10")
}

func TestNewV4_Fixture(t *testing.T) {
	id := uuidgen.NewV4(&countingSource{})
	assert.Equal(t, "00010203-0405-4607-8809-0a0b0c0d0e0f", id)
}

func TestNewV7_Fixture(t *testing.T) {
	at := time.UnixMilli(1752115008844)
	id := uuidgen.NewV7(at, &countingSource{})
	assert.Equal(t, "0197f231-554c-7001-8203-040506070809", id)
}

func TestNewV7_MarkerBits(t *testing.T) {
	id := uuidgen.NewV7(time.Now(), uuidgen.SystemSource{})
	require.Len(t, id, 36)

	assert.Equal(t, byte('7'), id[14], "high nibble of byte 6 must be 0111")
	assert.Contains(t, "89ab", string(id[19]), "top two bits of byte 8 must be 10")
}

func TestNewV7_TimestampRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		millis int64
	}{
		{"epoch", 0},
		{"known_instant", 1752115008844},
		{"recent", 1767225600000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := uuidgen.NewV7(time.UnixMilli(tt.millis), uuidgen.SystemSource{})

			// The top 48 bits render as the first 12 hex digits (text positions
			// 0-7 and 9-12 around the first dash).
			var decoded int64
			for _, c := range id[:13] {
				if c == '-' {
					continue
				}
				decoded <<= 4
				switch {
				case c >= '0' && c <= '9':
					decoded |= int64(c - '0')
				default:
					decoded |= int64(c-'a') + 10
				}
			}

			assert.Equal(t, tt.millis, decoded)
		})
	}
}

func TestNewV7_SortsByCreationTime(t *testing.T) {
	earlier := uuidgen.NewV7(time.UnixMilli(1000), uuidgen.SystemSource{})
	later := uuidgen.NewV7(time.UnixMilli(2000), uuidgen.SystemSource{})

	assert.Less(t, earlier, later)
}
