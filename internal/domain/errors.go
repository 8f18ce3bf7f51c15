package domain

import "errors"

// Sentinel errors for catalog and gallery operations
var (
	// ErrNetworkFailure indicates a remote call failed, timed out, or returned garbage
	ErrNetworkFailure = errors.New("catalog request failed")

	// ErrNotFound indicates the requested photo does not exist
	ErrNotFound = errors.New("photo not found")

	// ErrAuthFailed indicates the catalog rejected the access key
	ErrAuthFailed = errors.New("access key was rejected")

	// ErrInvalidDimensions indicates a zero or degenerate intrinsic image size
	ErrInvalidDimensions = errors.New("invalid image dimensions")

	// ErrConfigurationMissing indicates a required setting is absent at startup
	ErrConfigurationMissing = errors.New("required configuration is missing")
)
