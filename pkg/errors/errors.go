package errors

import "errors"

// ErrConflict marks a storage race: the record or counter was modified by a
// concurrent operation and the transaction aborted. Callers may retry once.
var ErrConflict = errors.New("record modified by a concurrent operation")
