package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to API callers. Storage failures outside this
// set propagate as-is and map to a generic 500.
var (
	ErrEmptyOrder     = errors.New("order has no positions")
	ErrNotOwner       = errors.New("you are not the owner")
	ErrDuplicateShop  = errors.New("you already own a shop")
	ErrWrongUserType  = errors.New("only sellers can own a shop")
	ErrNoShop         = errors.New("you have no shop yet")
	ErrLinkResolution = errors.New("no resource found for that public url")
	ErrDownload       = errors.New("could not download the catalog file")
	ErrFileWrite      = errors.New("could not store the catalog file")
)

// InsufficientStockError reports the first order line that asked for
// more units than the listing has. The whole batch is rejected.
type InsufficientStockError struct {
	ProductInfoID string
	Requested     int
	Available     int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.ProductInfoID, e.Requested, e.Available)
}

// UnknownCategoryError rejects an operation referencing a category
// name with no exact canonical match.
type UnknownCategoryError struct{ Name string }

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category %q: check the canonical capitalization", e.Name)
}

type UnknownParameterError struct{ Name string }

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("unknown parameter %q: check the canonical capitalization", e.Name)
}

// ParseError wraps a malformed catalog document failure.
type ParseError struct{ Err error }

func (e *ParseError) Error() string { return "malformed catalog document: " + e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }
