package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrClosed      = errors.New("catalog closed")
	ErrLoadCatalog = errors.New("load catalog failed")
)
