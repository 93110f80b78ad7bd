package shipengine

import (
	"context"
	"iter"
)

// LabelsService purchases, lists and voids shipping labels.
type LabelsService struct {
	r    Requester
	list pagedList
}

func newLabelsService(r Requester) *LabelsService {
	return &LabelsService{r: r, list: pagedList{r: r, path: "/v1/labels", key: "labels"}}
}

// CreateFromRate purchases a label for a previously quoted rate.
func (s *LabelsService) CreateFromRate(ctx context.Context, rateID string, params Params, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/labels/rates", id("rate_id", rateID))
	if err != nil {
		return nil, err
	}
	return s.r.Post(ctx, path, params, opts...)
}

// CreateFromShipmentDetails purchases a label from full shipment details.
func (s *LabelsService) CreateFromShipmentDetails(ctx context.Context, params Params, opts ...RequestOption) (Body, error) {
	return s.r.Post(ctx, "/v1/labels", params, opts...)
}

// CreateFromShipment purchases a label for an existing shipment.
func (s *LabelsService) CreateFromShipment(ctx context.Context, shipmentID string, params Params, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/labels/shipment", id("shipment_id", shipmentID))
	if err != nil {
		return nil, err
	}
	return s.r.Post(ctx, path, params, opts...)
}

// CreateReturn creates a return label for labelID.
func (s *LabelsService) CreateReturn(ctx context.Context, labelID string, params Params, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/labels", id("label_id", labelID), lit("return"))
	if err != nil {
		return nil, err
	}
	return s.r.Post(ctx, path, params, opts...)
}

// Void voids a label.
func (s *LabelsService) Void(ctx context.Context, labelID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/labels", id("label_id", labelID), lit("void"))
	if err != nil {
		return nil, err
	}
	return s.r.Put(ctx, path, nil, opts...)
}

// Get returns a label by ID.
func (s *LabelsService) Get(ctx context.Context, labelID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/labels", id("label_id", labelID))
	if err != nil {
		return nil, err
	}
	return s.r.Get(ctx, path, nil, opts...)
}

// GetByExternalShipmentID returns the label for an external shipment ID.
func (s *LabelsService) GetByExternalShipmentID(ctx context.Context, externalShipmentID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/labels/external_shipment_id", id("external_shipment_id", externalShipmentID))
	if err != nil {
		return nil, err
	}
	return s.r.Get(ctx, path, nil, opts...)
}

// List returns one page of labels.
func (s *LabelsService) List(ctx context.Context, params Params, opts ...RequestOption) (Body, error) {
	return s.list.fetch(ctx, params, opts)
}

// ListAll iterates over labels across all pages.
func (s *LabelsService) ListAll(ctx context.Context, params Params, opts ...RequestOption) iter.Seq2[Body, error] {
	return s.list.all(ctx, params, opts)
}

// ListEach calls fn for every label across all pages.
func (s *LabelsService) ListEach(ctx context.Context, params Params, fn func(Body) error, opts ...RequestOption) error {
	return s.list.each(ctx, params, fn, opts)
}

// Pages exposes the single page list call for use with IterateAll.
func (s *LabelsService) Pages() ListFunc[Body] {
	return s.list.page
}
