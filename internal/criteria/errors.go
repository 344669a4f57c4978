// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package criteria

import "errors"

// ErrInvalidSearchCriteria marks malformed search input: bad ranges,
// unknown enum tokens, an unknown sort key, or page bounds out of range.
// It is a client error and is never retried.
var ErrInvalidSearchCriteria = errors.New("invalid search criteria")
