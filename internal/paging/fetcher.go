package paging

import (
	"context"
	"errors"
	"time"

	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"
)

// Fetcher runs the paging loop for one operation.
type Fetcher[T any] struct {
	operation string
	limits    Limits
	logger    zerolog.Logger
}

// NewFetcher creates a fetcher for the named operation. The operation name labels logs
// and metrics.
func NewFetcher[T any](operation string, limits Limits, logger zerolog.Logger) *Fetcher[T] {
	return &Fetcher[T]{
		operation: operation,
		limits:    limits.normalize(),
		logger:    logger.With().Str("operation", operation).Logger(),
	}
}

// iteration is the loop state of a single Fetch call.
type iteration struct {
	cursor    *string
	remaining *int32
	manual    bool
	retrieved int
	pages     int
}

func newIteration(opts Options, capped bool) *iteration {
	it := &iteration{
		cursor: opts.StartingToken,
		manual: opts.UserControlled(),
	}
	if capped && opts.MaxItems != nil {
		remaining := *opts.MaxItems
		it.remaining = &remaining
	}
	return it
}

// FetchAll follows continuation tokens until the service stops returning one. Every
// fetch error is returned to the caller.
func (f *Fetcher[T]) FetchAll(ctx context.Context, opts Options, invoke PageFunc[T], onPage Consumer[T]) error {
	it := newIteration(opts, false)
	for {
		page, err := f.fetchPage(ctx, invoke, it, opts.PageSize)
		if err != nil {
			f.surface(err, it)
			return err
		}
		it.cursor = page.NextToken
		if err := onPage(page); err != nil {
			return err
		}
		if it.manual || !HasToken(it.cursor) {
			break
		}
	}
	f.done(it)
	return nil
}

// FetchLimited follows continuation tokens while honouring opts.MaxItems. The requested
// page size never exceeds the remaining cap, and the loop stops once the remaining cap
// drops below the service minimum page size.
//
// A fetch error after some items were delivered under a cap is logged and dropped: the
// pages already handed to onPage stand and the call returns nil. Cancellation of ctx is
// always returned.
func (f *Fetcher[T]) FetchLimited(ctx context.Context, opts Options, invoke PageFunc[T], onPage Consumer[T]) error {
	it := newIteration(opts, true)
	for {
		page, err := f.fetchPage(ctx, invoke, it, f.requestSize(opts.PageSize, it.remaining))
		if err != nil {
			if it.retrieved == 0 || it.remaining == nil || ctx.Err() != nil {
				f.surface(err, it)
				return err
			}
			f.suppress(err, it)
			break
		}
		if it.remaining != nil {
			*it.remaining -= int32(len(page.Items))
		}
		it.cursor = page.NextToken
		if err := onPage(page); err != nil {
			return err
		}
		if !f.more(it) {
			break
		}
	}
	f.done(it)
	return nil
}

func (f *Fetcher[T]) more(it *iteration) bool {
	if it.manual || !HasToken(it.cursor) {
		return false
	}
	return it.remaining == nil || *it.remaining >= f.limits.MinPageSize
}

// requestSize clamps the page size to min(MaxPageSize, hint, remaining).
func (f *Fetcher[T]) requestSize(hint *int32, remaining *int32) *int32 {
	if remaining == nil {
		return hint
	}
	size := *remaining
	if f.limits.MaxPageSize > 0 && size > f.limits.MaxPageSize {
		size = f.limits.MaxPageSize
	}
	if hint != nil && *hint < size {
		size = *hint
	}
	return &size
}

func (f *Fetcher[T]) fetchPage(ctx context.Context, invoke PageFunc[T], it *iteration, pageSize *int32) (Page[T], error) {
	event := f.logger.Debug().Int("page", it.pages+1).Bool("has_token", HasToken(it.cursor))
	if pageSize != nil {
		event = event.Int32("page_size", *pageSize)
	}
	event.Msg("Fetching page")

	start := time.Now()
	page, err := invoke(ctx, it.cursor, pageSize)
	pageDurationSeconds.WithLabelValues(f.operation).Observe(time.Since(start).Seconds())
	if err != nil {
		return page, err
	}

	it.pages++
	it.retrieved += len(page.Items)
	pagesFetchedTotal.WithLabelValues(f.operation).Inc()
	itemsReceivedTotal.WithLabelValues(f.operation).Add(float64(len(page.Items)))

	f.logger.Debug().
		Int("page", it.pages).
		Int("items", len(page.Items)).
		Bool("more", HasToken(page.NextToken)).
		Msg("Received page")
	return page, nil
}

func (f *Fetcher[T]) surface(err error, it *iteration) {
	fetchErrorsTotal.WithLabelValues(f.operation, "surfaced").Inc()
	withErrorCode(f.logger.Debug().Err(err), err).
		Int("pages", it.pages).
		Int("retrieved", it.retrieved).
		Msg("Page fetch failed")
}

func (f *Fetcher[T]) suppress(err error, it *iteration) {
	fetchErrorsTotal.WithLabelValues(f.operation, "suppressed").Inc()
	withErrorCode(f.logger.Warn().Err(err), err).
		Int("pages", it.pages).
		Int("retrieved", it.retrieved).
		Msg("Page fetch failed after partial results, returning what was retrieved")
}

func (f *Fetcher[T]) done(it *iteration) {
	event := f.logger.Debug().Int("pages", it.pages).Int("retrieved", it.retrieved)
	if it.remaining != nil {
		event = event.Int32("remaining", *it.remaining)
	}
	event.Msg("Fetch complete")
}

func withErrorCode(event *zerolog.Event, err error) *zerolog.Event {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return event.Str("error_code", apiErr.ErrorCode())
	}
	return event
}
