package sources

import "errors"

var (
	// ErrNotImplemented signals a source type variant with no adapter behaviour
	ErrNotImplemented = errors.New("source type not implemented")

	// ErrSourceUnavailable signals that the remote root folder for a source
	// could not be resolved; the source is skipped, siblings continue
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrSourceKeyNotFound signals an unknown source key
	ErrSourceKeyNotFound = errors.New("source key not found")
)
