package commons

import "errors"

// ErrRecordNotFound is the storage-level not-found sentinel. Services map it
// to the appropriate domain error before it crosses the usecase boundary.
var ErrRecordNotFound = errors.New("record not found")
