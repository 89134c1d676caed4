package catalog

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Error codes for catalog loading.
const (
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeUnsupported = "UNSUPPORTED_FORMAT"
	ErrCodeParse       = "PARSE_ERROR"
	ErrCodeSchema      = "SCHEMA_ERROR"
	ErrCodeInvalid     = "INVALID_CATALOG"
)

// LoadError represents an error that occurred while loading a catalog.
type LoadError struct {
	Code    string
	Message string
	File    string    // source file, if known
	Line    int       // YAML line, if known
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %s", e.File, e.Line, e.Code, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s: %s", e.File, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ResolveError is returned when a selection cannot be resolved against a
// product.
type ResolveError struct {
	Product  string
	Property string
	Message  string
}

func (e *ResolveError) Error() string {
	if e.Property != "" {
		return fmt.Sprintf("resolve %s: property %s: %s", e.Product, e.Property, e.Message)
	}
	return fmt.Sprintf("resolve %s: %s", e.Product, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(code string, err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: code, Message: err.Error()}
	}

	// Return first error with position info
	first := errs[0]
	loadErr := &LoadError{Code: code, Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		loadErr.Pos = positions[0]
	}
	return loadErr
}
