package shipengine

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
)

// Page is one page of a list response.
type Page[T any] struct {
	Items       []T
	CurrentPage int
	// TotalPages below 1 is treated as 1.
	TotalPages int
}

// ListFunc fetches a single page. params carries the page number under "page".
type ListFunc[T any] func(ctx context.Context, params Params, opts ...RequestOption) (*Page[T], error)

// IterateAll returns a lazy sequence over every item of every page,
// starting at params["page"] or 1. Pages are fetched one at a time and
// only when the previous page's items have been consumed. Iteration
// stops after the last page or at the first empty page. An error is
// yielded once and ends the sequence. Each range over the result starts
// again from the first page.
func IterateAll[T any](ctx context.Context, list ListFunc[T], params Params, opts ...RequestOption) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		page, err := startPage(params)
		if err != nil {
			yield(zero, err)
			return
		}

		for {
			if err := ctx.Err(); err != nil {
				yield(zero, err)
				return
			}

			p, err := list(ctx, params.With("page", page), opts...)
			if err != nil {
				yield(zero, err)
				return
			}
			if p == nil || len(p.Items) == 0 {
				return
			}

			for _, item := range p.Items {
				if !yield(item, nil) {
					return
				}
			}

			if page >= max(p.TotalPages, 1) {
				return
			}
			page++
		}
	}
}

// ForEach calls fn for every item of IterateAll in page order. It stops
// at the first error from a page fetch or from fn.
func ForEach[T any](ctx context.Context, list ListFunc[T], params Params, fn func(T) error, opts ...RequestOption) error {
	for item, err := range IterateAll(ctx, list, params, opts...) {
		if err != nil {
			return err
		}
		if err := fn(item); err != nil {
			return err
		}
	}
	return nil
}

// Collect drains seq into a slice.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var items []T
	for item, err := range seq {
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}
	return items, nil
}

func startPage(params Params) (int, error) {
	v, ok := params["page"]
	if !ok || v == nil {
		return 1, nil
	}
	if err := RequirePositiveInteger("page", v); err != nil {
		return 0, err
	}
	n, err := toInt(v)
	if err != nil {
		return 0, InvalidFieldValue("page must be a whole number.")
	}
	return n, nil
}

// PageFromBody reads a ShipEngine list response of the form
// {"<collectionKey>": [...], "page": n, "pages": m}.
func PageFromBody(body Body, collectionKey string) (*Page[Body], error) {
	raw, ok := body[collectionKey]
	if !ok || raw == nil {
		return &Page[Body]{CurrentPage: intField(body, "page", 1), TotalPages: intField(body, "pages", 1)}, nil
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, InvariantError(fmt.Sprintf("list response field %q is %T, not an array", collectionKey, raw))
	}

	items := make([]Body, 0, len(list))
	for i, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			return nil, InvariantError(fmt.Sprintf("list response item %d of %q is %T, not an object", i, collectionKey, entry))
		}
		items = append(items, Body(m))
	}

	return &Page[Body]{
		Items:       items,
		CurrentPage: intField(body, "page", 1),
		TotalPages:  intField(body, "pages", 1),
	}, nil
}

// BodyLister adapts a raw list endpoint into a ListFunc over its collection.
func BodyLister(r Requester, path, collectionKey string) ListFunc[Body] {
	return func(ctx context.Context, params Params, opts ...RequestOption) (*Page[Body], error) {
		body, err := r.Get(ctx, path, params, opts...)
		if err != nil {
			return nil, err
		}
		return PageFromBody(body, collectionKey)
	}
}

func intField(m Body, key string, fallback int) int {
	v, ok := m[key]
	if !ok || v == nil {
		return fallback
	}
	n, err := toInt(v)
	if err != nil {
		return fallback
	}
	return n
}

func toInt(v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int32:
		return int(x), nil
	case int64:
		return int(x), nil
	case float64:
		return int(x), nil
	case json.Number:
		n, err := x.Int64()
		return int(n), err
	}
	return 0, fmt.Errorf("unsupported number type %T", v)
}
