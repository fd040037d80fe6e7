package domain

import "errors"

var (
	// ErrInvalidQuery signals a search request that failed validation.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidCatalog signals an import payload that failed validation.
	ErrInvalidCatalog = errors.New("invalid catalog")
	// ErrImportNotSupported signals that the configured store is read-only.
	ErrImportNotSupported = errors.New("import not supported by store")
)
