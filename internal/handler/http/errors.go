// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced while parsing the "Authorization" header in the
// authentication middleware. Match with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader means the request carried no
	// "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader means the header was present but did not
	// split into a scheme and a token value.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken means the scheme prefix was there but the token value
	// itself was empty.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)
