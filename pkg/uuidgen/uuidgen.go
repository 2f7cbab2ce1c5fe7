// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

/*
Package uuidgen allocates the platform's 128-bit identifiers in two flavors.

Flavors:

  - Random (v4): uniformly random bits, for values that only need uniqueness
    (e.g. the degraded display-name fallback, handshake identities).
  - Ordered (v7): top 48 bits carry a millisecond timestamp, so values sort
    by creation time. This is the mandatory flavor for primary keys — it keeps
    PostgreSQL B-tree indexes append-friendly and avoids the fragmentation
    common with purely random keys.

Both flavors carry the standard version/variant marker bits and render in the
canonical lower-case hyphenated 8-4-4-4-12 text form (via [uuid.UUID.String]),
byte-for-byte reproducible from the injected randomness. Generation never
fails; output is purely a function of the source and, for v7, the clock.
*/
package uuidgen

import (
	"encoding/binary"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// ByteSource yields one uniformly-distributed byte per call.
//
// It is deliberately a single-byte interface: identifier layout consumes the
// stream byte-by-byte, which lets tests drive generation with fixed sequences
// and reproduce byte-exact outputs.
type ByteSource interface {
	Byte() byte
}

// SystemSource is the production [ByteSource], backed by math/rand/v2's
// process-global generator. Identifier randomness has no secrecy requirement,
// only uniformity, so the non-cryptographic source is sufficient.
type SystemSource struct{}

// Byte returns one random byte.
func (SystemSource) Byte() byte {
	return byte(rand.Uint32())
}

// # Allocation

// NewV4 allocates a random-flavored identifier from src.
//
// Layout: 128 random bits with the high nibble of byte 6 forced to 0100
// (version 4) and the top two bits of byte 8 forced to 10 (RFC 4122 variant).
func NewV4(src ByteSource) string {
	var raw [16]byte
	for i := range raw {
		raw[i] = src.Byte()
	}

	raw[6] = (raw[6] & 0x0f) | 0x40
	raw[8] = (raw[8] & 0x3f) | 0x80

	return uuid.UUID(raw).String()
}

// NewV7 allocates an ordered-flavored identifier for the given instant.
//
// Layout: the top 6 bytes hold at's Unix millisecond timestamp big-endian;
// the remaining bytes are random, with the high nibble of byte 6 forced to
// 0111 (version 7) and the top two bits of byte 8 forced to 10. Decoding the
// top 48 bits recovers the timestamp.
func NewV7(at time.Time, src ByteSource) string {
	var raw [16]byte

	var stamp [8]byte
	binary.BigEndian.PutUint64(stamp[:], uint64(at.UnixMilli())<<16)
	copy(raw[:6], stamp[:6])

	for i := 6; i < 16; i++ {
		raw[i] = src.Byte()
	}

	raw[6] = (raw[6] & 0x0f) | 0x70
	raw[8] = (raw[8] & 0x3f) | 0x80

	return uuid.UUID(raw).String()
}
