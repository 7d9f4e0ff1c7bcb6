package output

import (
	"fmt"
	"sort"
	"strings"

	"awsls/internal/paging"
)

// Selector projects a page into the values to print.
type Selector[T any] func(paging.Page[T]) []any

// Selectors maps --select names to projections.
type Selectors[T any] map[string]Selector[T]

const (
	SelectItems    = "items"
	SelectResponse = "*"
	SelectToken    = "token"
)

// NewSelectors returns the projections every listing supports, extended by extra.
func NewSelectors[T any](extra Selectors[T]) Selectors[T] {
	s := Selectors[T]{
		SelectItems:    Items[T],
		SelectResponse: Response[T],
		SelectToken:    Token[T],
	}
	for name, sel := range extra {
		s[name] = sel
	}
	return s
}

// Resolve looks up a projection by name. An empty name selects items.
func (s Selectors[T]) Resolve(name string) (Selector[T], error) {
	if name == "" {
		name = SelectItems
	}
	sel, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("invalid --select value %q (valid: %s)", name, strings.Join(s.Names(), ", "))
	}
	return sel, nil
}

// Names returns the selector names in sorted order.
func (s Selectors[T]) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Items emits every item of the page.
func Items[T any](p paging.Page[T]) []any {
	out := make([]any, len(p.Items))
	for i, item := range p.Items {
		out[i] = item
	}
	return out
}

// Response emits the raw service response.
func Response[T any](p paging.Page[T]) []any {
	if p.Response == nil {
		return nil
	}
	return []any{p.Response}
}

// Token emits the page's continuation token when there is one.
func Token[T any](p paging.Page[T]) []any {
	if !paging.HasToken(p.NextToken) {
		return nil
	}
	return []any{*p.NextToken}
}

// Field emits one value per item.
func Field[T any](f func(T) any) Selector[T] {
	return func(p paging.Page[T]) []any {
		out := make([]any, 0, len(p.Items))
		for _, item := range p.Items {
			out = append(out, f(item))
		}
		return out
	}
}
