package shipengine

import (
	"context"
	"iter"
	"net/url"
	"strings"
)

// pathf joins escaped segments onto a base path after validating that
// each identifier is present and not blank.
func pathf(base string, ids ...pathID) (string, error) {
	var b strings.Builder
	b.WriteString(base)
	for _, id := range ids {
		if id.field != "" {
			if err := RequireNonWhitespaceString(id.field, id.value); err != nil {
				return "", err
			}
			b.WriteString("/")
			b.WriteString(url.PathEscape(id.value))
			continue
		}
		b.WriteString("/")
		b.WriteString(id.value)
	}
	return b.String(), nil
}

// pathID is a path segment. Segments with a field name are caller
// supplied identifiers; the rest are literals.
type pathID struct {
	field string
	value string
}

func id(field, value string) pathID { return pathID{field: field, value: value} }

func lit(segment string) pathID { return pathID{value: segment} }

// pagedList is a GET list endpoint whose items live under key.
type pagedList struct {
	r    Requester
	path string
	key  string
}

// sized defaults page_size to the effective configuration's page size.
func (l pagedList) sized(params Params, opts []RequestOption) (Params, error) {
	if params.Has("page_size") {
		return params, nil
	}
	cfg, err := l.r.Effective(opts...)
	if err != nil {
		return nil, err
	}
	return params.With("page_size", cfg.PageSize()), nil
}

// fetch returns the raw page body.
func (l pagedList) fetch(ctx context.Context, params Params, opts []RequestOption) (Body, error) {
	params, err := l.sized(params, opts)
	if err != nil {
		return nil, err
	}
	return l.r.Get(ctx, l.path, params, opts...)
}

func (l pagedList) page(ctx context.Context, params Params, opts ...RequestOption) (*Page[Body], error) {
	params, err := l.sized(params, opts)
	if err != nil {
		return nil, err
	}
	return BodyLister(l.r, l.path, l.key)(ctx, params, opts...)
}

func (l pagedList) all(ctx context.Context, params Params, opts []RequestOption) iter.Seq2[Body, error] {
	return IterateAll(ctx, l.page, params, opts...)
}

func (l pagedList) each(ctx context.Context, params Params, fn func(Body) error, opts []RequestOption) error {
	return ForEach(ctx, l.page, params, fn, opts...)
}

// getList decodes an endpoint that responds with a bare JSON array.
func getList(ctx context.Context, r Requester, method, path string, in any, opts []RequestOption) ([]Body, error) {
	var out []Body
	if err := r.Do(ctx, method, path, in, &out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
