package cart

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes transition errors.
type ErrorCode string

const (
	// CodeInvalidQuantity indicates a quantity that is negative, zero where
	// a positive amount is required, not an integer, or above MaxQuantity.
	CodeInvalidQuantity ErrorCode = "INVALID_QUANTITY"

	// CodeEmptyKey indicates a transition was given an empty product key.
	CodeEmptyKey ErrorCode = "EMPTY_KEY"

	// CodeEmptyCurrency indicates SetCurrency was given an empty code.
	CodeEmptyCurrency ErrorCode = "EMPTY_CURRENCY"

	// CodeUnknownAction indicates Reduce received an unsupported action.
	CodeUnknownAction ErrorCode = "UNKNOWN_ACTION"
)

// Error is returned by transitions that reject their input.
// The transition always returns the unchanged input state alongside it.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Op is the transition that rejected the input ("add", "update", ...).
	Op string

	// Key is the product key involved, if any.
	Key string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s: %s (op=%s, key=%s)", e.Code, e.Message, e.Op, e.Key)
	}
	return fmt.Sprintf("%s: %s (op=%s)", e.Code, e.Message, e.Op)
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not a *Error.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// IsInvalidQuantity returns true if err is an invalid quantity error.
func IsInvalidQuantity(err error) bool {
	return CodeOf(err) == CodeInvalidQuantity
}

func invalidQuantity(op, key string, quantity int64) *Error {
	return &Error{
		Code:    CodeInvalidQuantity,
		Op:      op,
		Key:     key,
		Message: fmt.Sprintf("quantity %d is not allowed", quantity),
	}
}

func emptyKey(op string) *Error {
	return &Error{Code: CodeEmptyKey, Op: op, Message: "product key is required"}
}
