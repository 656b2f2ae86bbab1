package xmldoc

import "errors"

var (
	// ErrStorageUnavailable indicates the backing document could not be read
	// or written. Fatal to the operation; callers decide whether to retry.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrCodec indicates a stored numeric or timestamp field is not
	// parseable. This is on-disk corruption and is propagated rather than
	// defaulted, since a corrupt identifier breaks the uniqueness invariant.
	ErrCodec = errors.New("malformed stored value")

	// ErrNotFound indicates the requested record is absent.
	ErrNotFound = errors.New("record not found")

	// ErrConflict indicates the document changed on disk between load and
	// save of a mutation.
	ErrConflict = errors.New("document changed since load")
)
