package shipengine

import (
	"context"
	"iter"
)

// BatchesService groups shipments so their labels can be purchased together.
type BatchesService struct {
	r    Requester
	list pagedList
}

func newBatchesService(r Requester) *BatchesService {
	return &BatchesService{r: r, list: pagedList{r: r, path: "/v1/batches", key: "batches"}}
}

// List returns one page of batches.
func (s *BatchesService) List(ctx context.Context, params Params, opts ...RequestOption) (Body, error) {
	return s.list.fetch(ctx, params, opts)
}

// ListAll iterates over batches across all pages.
func (s *BatchesService) ListAll(ctx context.Context, params Params, opts ...RequestOption) iter.Seq2[Body, error] {
	return s.list.all(ctx, params, opts)
}

// ListEach calls fn for every batch across all pages.
func (s *BatchesService) ListEach(ctx context.Context, params Params, fn func(Body) error, opts ...RequestOption) error {
	return s.list.each(ctx, params, fn, opts)
}

// Create creates a batch.
func (s *BatchesService) Create(ctx context.Context, params Params, opts ...RequestOption) (Body, error) {
	return s.r.Post(ctx, "/v1/batches", params, opts...)
}

// Get returns a batch by ID.
func (s *BatchesService) Get(ctx context.Context, batchID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/batches", id("batch_id", batchID))
	if err != nil {
		return nil, err
	}
	return s.r.Get(ctx, path, nil, opts...)
}

// GetByExternalID returns a batch by its external ID.
func (s *BatchesService) GetByExternalID(ctx context.Context, externalBatchID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/batches/external_batch_id", id("external_batch_id", externalBatchID))
	if err != nil {
		return nil, err
	}
	return s.r.Get(ctx, path, nil, opts...)
}

// Delete deletes a batch.
func (s *BatchesService) Delete(ctx context.Context, batchID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/batches", id("batch_id", batchID))
	if err != nil {
		return nil, err
	}
	return s.r.Delete(ctx, path, nil, opts...)
}

// AddShipments adds shipments or rates to a batch.
func (s *BatchesService) AddShipments(ctx context.Context, batchID string, params Params, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/batches", id("batch_id", batchID), lit("add"))
	if err != nil {
		return nil, err
	}
	return s.r.Post(ctx, path, params, opts...)
}

// RemoveShipments removes shipments or rates from a batch.
func (s *BatchesService) RemoveShipments(ctx context.Context, batchID string, params Params, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/batches", id("batch_id", batchID), lit("remove"))
	if err != nil {
		return nil, err
	}
	return s.r.Post(ctx, path, params, opts...)
}

// Process purchases labels for every shipment in a batch.
func (s *BatchesService) Process(ctx context.Context, batchID string, params Params, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/batches", id("batch_id", batchID), lit("process"), lit("labels"))
	if err != nil {
		return nil, err
	}
	return s.r.Post(ctx, path, params, opts...)
}

// Errors returns the errors recorded while processing a batch.
func (s *BatchesService) Errors(ctx context.Context, batchID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/batches", id("batch_id", batchID), lit("errors"))
	if err != nil {
		return nil, err
	}
	return s.r.Get(ctx, path, nil, opts...)
}

// Pages returns the single page lister.
func (s *BatchesService) Pages() ListFunc[Body] {
	return s.list.page
}
