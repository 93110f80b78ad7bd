package shipengine

import (
	"context"
	"iter"
)

// ManifestsService creates and lists end of day manifests.
type ManifestsService struct {
	r    Requester
	list pagedList
}

func newManifestsService(r Requester) *ManifestsService {
	return &ManifestsService{r: r, list: pagedList{r: r, path: "/v1/manifests", key: "manifests"}}
}

// List returns one page of manifests.
func (s *ManifestsService) List(ctx context.Context, params Params, opts ...RequestOption) (Body, error) {
	return s.list.fetch(ctx, params, opts)
}

// ListAll iterates over manifests across all pages.
func (s *ManifestsService) ListAll(ctx context.Context, params Params, opts ...RequestOption) iter.Seq2[Body, error] {
	return s.list.all(ctx, params, opts)
}

// ListEach calls fn for every manifest across all pages.
func (s *ManifestsService) ListEach(ctx context.Context, params Params, fn func(Body) error, opts ...RequestOption) error {
	return s.list.each(ctx, params, fn, opts)
}

// Create requests a manifest.
func (s *ManifestsService) Create(ctx context.Context, params Params, opts ...RequestOption) (Body, error) {
	return s.r.Post(ctx, "/v1/manifests", params, opts...)
}

// Get returns a manifest by ID.
func (s *ManifestsService) Get(ctx context.Context, manifestID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/manifests", id("manifest_id", manifestID))
	if err != nil {
		return nil, err
	}
	return s.r.Get(ctx, path, nil, opts...)
}

// GetRequest returns the status of a manifest request.
func (s *ManifestsService) GetRequest(ctx context.Context, requestID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/manifests/requests", id("manifest_request_id", requestID))
	if err != nil {
		return nil, err
	}
	return s.r.Get(ctx, path, nil, opts...)
}

// Pages returns the single page lister.
func (s *ManifestsService) Pages() ListFunc[Body] {
	return s.list.page
}
