package rsvped

import "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidQuery       = domain.ErrInvalidQuery
	ErrInvalidCatalog     = domain.ErrInvalidCatalog
	ErrImportNotSupported = domain.ErrImportNotSupported
)
