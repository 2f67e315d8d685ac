// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the admin key check for dataset administration.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(auth.DatasetScope, salt)
	err := auth.ValidateAdminKey(auth.DatasetScope, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same scope and salt always produce the same key, so nothing is stored.
Print it with `seatsim admin-key`; clients send it in X-Admin-Key.

# IP Hashing

Admin actions are logged with a salted client IP hash instead of the address:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
