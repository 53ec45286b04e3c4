// Package utils provides general-purpose helper utilities used across the
// sync core: canonical payload hashing, HTTP client initialization, JWT
// token inspection, and UUID generation.
package utils

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// CanonicalHash computes a SHA-256 digest over the canonical JSON form of
// payload and returns it hex-encoded.
//
// The payload is decoded and re-encoded before hashing so that the digest is
// independent of object key order: encoding/json always writes map keys in
// sorted order. Two payloads that differ only in field ordering therefore
// produce the same hash, which is what the facade's no-op write suppression
// relies on. A naive hash over the raw bytes would not give this property.
//
// Returns an error if payload is not valid JSON.
func CanonicalHash(payload []byte) (string, error) {
	canonical, err := CanonicalJSON(payload)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// CanonicalJSON returns the canonical re-encoding of the given JSON document:
// object keys sorted, insignificant whitespace removed. Numbers pass through
// json.Number so that re-encoding does not change their representation.
func CanonicalJSON(payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return []byte("null"), nil
	}

	var value any
	if err := unmarshalWithNumbers(payload, &value); err != nil {
		return nil, fmt.Errorf("decode payload for canonicalization: %w", err)
	}

	canonical, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("re-encode canonical payload: %w", err)
	}

	return canonical, nil
}

// PayloadsEqual reports whether two JSON payloads are structurally equal,
// ignoring object key order and formatting. Invalid JSON on either side
// compares unequal.
func PayloadsEqual(a, b []byte) bool {
	ha, err := CanonicalHash(a)
	if err != nil {
		return false
	}
	hb, err := CanonicalHash(b)
	if err != nil {
		return false
	}
	return ha == hb
}

func unmarshalWithNumbers(payload []byte, out *any) error {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	return dec.Decode(out)
}
