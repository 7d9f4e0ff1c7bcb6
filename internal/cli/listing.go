package cli

import (
	"fmt"

	"awsls/internal/output"
	"awsls/internal/paging"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/cobra"
)

// pagingFlags are the flags shared by every listing command.
type pagingFlags struct {
	startingToken string
	maxItems      int32
	pageSize      int32
	noPaginate    bool
	selection     string
}

func addPagingFlags(cmd *cobra.Command, flags *pagingFlags, capped bool) {
	cmd.Flags().StringVar(&flags.startingToken, "starting-token", "", "Continue a previous listing from this token (fetches a single page)")
	cmd.Flags().Int32Var(&flags.pageSize, "page-size", 0, "Number of results to request per call")
	cmd.Flags().BoolVar(&flags.noPaginate, "no-paginate", false, "Fetch a single page and print the next token, if any")
	cmd.Flags().StringVar(&flags.selection, "select", output.SelectItems, "What to print for each page: items, '*' for the raw response, token, or a command specific field")
	if capped {
		cmd.Flags().Int32Var(&flags.maxItems, "max-items", 0, "Maximum number of results to return across all pages")
	}
}

// options converts the flags into paging options. Flags the user did not set stay nil.
func (f *pagingFlags) options(cmd *cobra.Command) paging.Options {
	opts := paging.Options{NoAutoIteration: f.noPaginate}
	if cmd.Flags().Changed("starting-token") {
		opts.StartingToken = aws.String(f.startingToken)
	}
	if cmd.Flags().Changed("max-items") {
		opts.MaxItems = aws.Int32(f.maxItems)
	}
	if cmd.Flags().Changed("page-size") {
		opts.PageSize = aws.Int32(f.pageSize)
	}
	return opts
}

// listing describes one paged operation exposed as a command.
type listing[T any] struct {
	operation string
	limits    paging.Limits
	// capped selects the emit limit loop and enables --max-items.
	capped    bool
	selectors output.Selectors[T]
}

// run validates the flags, drives the fetch loop and prints every page as it arrives.
func (l listing[T]) run(cmd *cobra.Command, s *Session, flags *pagingFlags, invoke paging.PageFunc[T]) error {
	opts := flags.options(cmd)
	if err := opts.Validate(l.limits, l.capped); err != nil {
		return err
	}
	selectors := l.selectors
	if selectors == nil {
		selectors = output.NewSelectors[T](nil)
	}
	selector, err := selectors.Resolve(flags.selection)
	if err != nil {
		return err
	}

	var (
		next      *string
		emitted   int32
		truncated bool
	)
	onPage := func(page paging.Page[T]) error {
		next = page.NextToken
		// Some requests cannot carry a page size (EC2 with instance ids), so a page may
		// hold more items than the cap has left.
		if opts.MaxItems != nil {
			left := *opts.MaxItems - emitted
			if left < 0 {
				left = 0
			}
			if int32(len(page.Items)) > left {
				page.Items = page.Items[:left]
				truncated = true
			}
			emitted += int32(len(page.Items))
		}
		for _, v := range selector(page) {
			if err := s.printer.Print(v); err != nil {
				return err
			}
		}
		return nil
	}

	fetcher := paging.NewFetcher[T](l.operation, l.limits, s.logger)
	if l.capped {
		err = fetcher.FetchLimited(cmd.Context(), opts, invoke, onPage)
	} else {
		err = fetcher.FetchAll(cmd.Context(), opts, invoke, onPage)
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w", l.operation, err)
	}

	// A pending token means the listing stopped before the end and can be resumed.
	if paging.HasToken(next) {
		if truncated {
			s.logger.Warn().Str("operation", l.operation).Msg("Results were cut to --max-items inside a page, no resumable token")
			return nil
		}
		fmt.Fprintf(s.stderr, "NextToken: %s\n", *next)
	}
	return nil
}
