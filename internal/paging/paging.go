// Package paging drives list and describe operations that return a continuation token.
//
// A Fetcher calls a single-page function repeatedly, hands every page to a consumer and
// stops when the token runs out, when an optional item cap is reached, or after one page
// when the caller controls paging. Two loops are provided: FetchAll for operations with
// no item cap and FetchLimited for operations that honour an emit limit.
package paging

import (
	"context"
	"errors"
	"fmt"
)

// Page is one response of a paged operation.
type Page[T any] struct {
	Items     []T
	NextToken *string
	// Response is the raw SDK output the page was built from.
	Response any
}

// PageFunc fetches one page. token is nil for the first page of a fresh listing and
// pageSize is nil when the service default should apply.
type PageFunc[T any] func(ctx context.Context, token *string, pageSize *int32) (Page[T], error)

// Consumer receives pages in order. A returned error stops the loop and is passed back
// to the caller unchanged.
type Consumer[T any] func(Page[T]) error

// Limits is the page size range a service accepts for one operation.
type Limits struct {
	MinPageSize int32
	MaxPageSize int32
}

// Options are the caller-facing paging controls.
type Options struct {
	// StartingToken resumes a listing. Setting it puts the caller in control of paging.
	StartingToken *string
	// MaxItems caps the total number of items across all pages.
	MaxItems *int32
	// PageSize is a per-request hint.
	PageSize *int32
	// NoAutoIteration fetches a single page and returns.
	NoAutoIteration bool
}

// UserControlled reports whether exactly one page must be fetched.
func (o Options) UserControlled() bool {
	return o.NoAutoIteration || o.StartingToken != nil
}

var (
	ErrInvalidMaxItems = errors.New("invalid max items")
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrCapUnsupported  = errors.New("max items is not supported by this operation")
)

// Validate rejects options the loop cannot honour. capped is true for operations
// driven by FetchLimited.
func (o Options) Validate(limits Limits, capped bool) error {
	limits = limits.normalize()
	if o.MaxItems != nil {
		if !capped {
			return ErrCapUnsupported
		}
		if *o.MaxItems < 1 {
			return fmt.Errorf("%w: %d must be positive", ErrInvalidMaxItems, *o.MaxItems)
		}
		// A cap below the service minimum would need a request the service rejects.
		if *o.MaxItems < limits.MinPageSize {
			return fmt.Errorf("%w: %d is below the service minimum of %d", ErrInvalidMaxItems, *o.MaxItems, limits.MinPageSize)
		}
	}
	if o.PageSize != nil {
		if *o.PageSize < limits.MinPageSize || (limits.MaxPageSize > 0 && *o.PageSize > limits.MaxPageSize) {
			return fmt.Errorf("%w: %d outside [%d, %d]", ErrInvalidPageSize, *o.PageSize, limits.MinPageSize, limits.MaxPageSize)
		}
	}
	return nil
}

func (l Limits) normalize() Limits {
	if l.MinPageSize < 1 {
		l.MinPageSize = 1
	}
	return l
}

// HasToken reports whether a continuation token asks for another page.
func HasToken(token *string) bool {
	return token != nil && *token != ""
}
