package ocean

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// ErrNoMoreItems is returned by PageIterator.Next after the collection is
// exhausted.
var ErrNoMoreItems = errors.New("no more items")

// PageFetch returns one page of a collection by 1-based page number.
// Resource clients provide implementations that decode their named
// top-level array.
type PageFetch[T any] func(ctx context.Context, page int) (*Page[T], error)

// NextPage extracts the page number addressed by the "next" link.
// The second return is false on the last page.
func (l Links) NextPage() (int, bool, error) {
	if l.Pages == nil || l.Pages.Next == "" {
		return 0, false, nil
	}

	parsed, err := url.Parse(l.Pages.Next)
	if err != nil {
		return 0, false, fmt.Errorf("parsing next page link %q: %w", l.Pages.Next, err)
	}

	raw := parsed.Query().Get("page")
	if raw == "" {
		return 0, false, nil
	}

	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("parsing page number %q: %w", raw, err)
	}

	return page, true, nil
}

// CollectAll follows the collection's pagination links from the first page
// and returns every element. It terminates when the server stops returning
// a next link, or when a next link fails to advance the page number.
func CollectAll[T any](ctx context.Context, fetch PageFetch[T]) ([]T, error) {
	var all []T

	page := 1

	for {
		resp, err := fetch(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", page, err)
		}

		all = append(all, resp.Items...)

		next, ok, err := resp.Links.NextPage()
		if err != nil {
			return nil, err
		}

		if !ok || next <= page {
			return all, nil
		}

		page = next
	}
}

// FindFirst walks the collection page by page and returns the first
// element satisfying the predicate, short-circuiting the remaining pages.
// The second return is false when no element matches.
func FindFirst[T any](ctx context.Context, fetch PageFetch[T], predicate func(T) bool) (T, bool, error) {
	var zero T

	page := 1

	for {
		resp, err := fetch(ctx, page)
		if err != nil {
			return zero, false, fmt.Errorf("fetching page %d: %w", page, err)
		}

		for _, item := range resp.Items {
			if predicate(item) {
				return item, true, nil
			}
		}

		next, ok, err := resp.Links.NextPage()
		if err != nil {
			return zero, false, err
		}

		if !ok || next <= page {
			return zero, false, nil
		}

		page = next
	}
}

// PageIterator yields the elements of a paginated collection one at a
// time, fetching pages lazily.
type PageIterator[T any] struct {
	ctx     context.Context
	fetch   PageFetch[T]
	buffer  []T
	page    int
	done    bool
	started bool
}

// NewPageIterator creates an iterator over the collection served by fetch.
func NewPageIterator[T any](ctx context.Context, fetch PageFetch[T]) *PageIterator[T] {
	return &PageIterator[T]{ctx: ctx, fetch: fetch, page: 1}
}

// HasNext reports whether another element is available. It may fetch the
// next page to find out.
func (it *PageIterator[T]) HasNext() bool {
	if len(it.buffer) > 0 {
		return true
	}

	if it.done {
		return false
	}

	if err := it.fill(); err != nil {
		it.done = true

		return false
	}

	return len(it.buffer) > 0
}

// Next returns the next element, or ErrNoMoreItems once exhausted.
func (it *PageIterator[T]) Next() (T, error) {
	var zero T

	if len(it.buffer) == 0 && !it.done {
		if err := it.fill(); err != nil {
			return zero, err
		}
	}

	if len(it.buffer) == 0 {
		return zero, ErrNoMoreItems
	}

	item := it.buffer[0]
	it.buffer = it.buffer[1:]

	return item, nil
}

func (it *PageIterator[T]) fill() error {
	if it.done {
		return nil
	}

	resp, err := it.fetch(it.ctx, it.page)
	if err != nil {
		return fmt.Errorf("fetching page %d: %w", it.page, err)
	}

	it.started = true
	it.buffer = append(it.buffer, resp.Items...)

	next, ok, err := resp.Links.NextPage()
	if err != nil {
		return err
	}

	if !ok || next <= it.page {
		it.done = true

		return nil
	}

	it.page = next

	return nil
}
