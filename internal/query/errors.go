// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import "errors"

var (
	// ErrStorageUnavailable wraps any failure of the record provider. It is
	// propagated unchanged and never retried here.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrProviderRequired is returned when NewExecutor gets a nil provider.
	ErrProviderRequired = errors.New("record provider required")
)
