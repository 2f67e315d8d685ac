// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

// DatasetScope is the scope of the key that may replace the baseline dataset.
const DatasetScope = "dataset"

var ErrInvalidAdminKey = errors.New("invalid admin key")

// GenerateAdminKey creates an HMAC-based admin key for a scope.
// This is deterministic and verifiable
func GenerateAdminKey(scope, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(scope))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks if the provided admin key is valid for the scope
func ValidateAdminKey(scope, adminKey, salt string) error {
	if adminKey == "" {
		return ErrInvalidAdminKey
	}
	expected := GenerateAdminKey(scope, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// HashIP creates a one-way hash of an IP address for audit logs
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// First 16 hex chars (64 bits)
	return hex.EncodeToString(sum[:8])
}
