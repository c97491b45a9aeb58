// Package sentinel holds infrastructure facts that stores return, optionally
// wrapped, so callers can branch on them without knowing the storage engine.
// Validation failures belong in pkg/domain-errors instead.
package sentinel

import "errors"

// ErrNotFound means the row or key does not exist, or no longer matches the
// state the caller expected.
var ErrNotFound = errors.New("not found")
