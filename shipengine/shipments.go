package shipengine

import (
	"context"
	"iter"
	"net/http"
)

// ShipmentsService manages shipments and their tags.
type ShipmentsService struct {
	r    Requester
	list pagedList
}

func newShipmentsService(r Requester) *ShipmentsService {
	return &ShipmentsService{r: r, list: pagedList{r: r, path: "/v1/shipments", key: "shipments"}}
}

// List returns one page of shipments.
func (s *ShipmentsService) List(ctx context.Context, params Params, opts ...RequestOption) (Body, error) {
	return s.list.fetch(ctx, params, opts)
}

// ListAll iterates over shipments across all pages.
func (s *ShipmentsService) ListAll(ctx context.Context, params Params, opts ...RequestOption) iter.Seq2[Body, error] {
	return s.list.all(ctx, params, opts)
}

// ListEach calls fn for every shipment across all pages.
func (s *ShipmentsService) ListEach(ctx context.Context, params Params, fn func(Body) error, opts ...RequestOption) error {
	return s.list.each(ctx, params, fn, opts)
}

// Create creates one or more shipments.
func (s *ShipmentsService) Create(ctx context.Context, params Params, opts ...RequestOption) (Body, error) {
	return s.r.Post(ctx, "/v1/shipments", params, opts...)
}

// Get returns a shipment by ID.
func (s *ShipmentsService) Get(ctx context.Context, shipmentID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/shipments", id("shipment_id", shipmentID))
	if err != nil {
		return nil, err
	}
	return s.r.Get(ctx, path, nil, opts...)
}

// GetByExternalID returns a shipment by its external ID.
func (s *ShipmentsService) GetByExternalID(ctx context.Context, externalShipmentID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/shipments/external_shipment_id", id("external_shipment_id", externalShipmentID))
	if err != nil {
		return nil, err
	}
	return s.r.Get(ctx, path, nil, opts...)
}

// Update replaces a shipment.
func (s *ShipmentsService) Update(ctx context.Context, shipmentID string, params Params, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/shipments", id("shipment_id", shipmentID))
	if err != nil {
		return nil, err
	}
	return s.r.Put(ctx, path, params, opts...)
}

// Cancel cancels a shipment.
func (s *ShipmentsService) Cancel(ctx context.Context, shipmentID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/shipments", id("shipment_id", shipmentID), lit("cancel"))
	if err != nil {
		return nil, err
	}
	return s.r.Put(ctx, path, nil, opts...)
}

// Parse extracts shipment details from unstructured text.
func (s *ShipmentsService) Parse(ctx context.Context, params Params, opts ...RequestOption) (Body, error) {
	return s.r.Put(ctx, "/v1/shipments/recognize", params, opts...)
}

// Rates returns the rates quoted for a shipment.
func (s *ShipmentsService) Rates(ctx context.Context, shipmentID string, params Params, opts ...RequestOption) ([]Body, error) {
	path, err := pathf("/v1/shipments", id("shipment_id", shipmentID), lit("rates"))
	if err != nil {
		return nil, err
	}
	return getList(ctx, s.r, http.MethodGet, path, params, opts)
}

// Tags lists the tags on a shipment.
func (s *ShipmentsService) Tags(ctx context.Context, shipmentID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/shipments", id("shipment_id", shipmentID), lit("tags"))
	if err != nil {
		return nil, err
	}
	return s.r.Get(ctx, path, nil, opts...)
}

// AddTag tags a shipment.
func (s *ShipmentsService) AddTag(ctx context.Context, shipmentID, tagName string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/shipments", id("shipment_id", shipmentID), lit("tags"), id("tag_name", tagName))
	if err != nil {
		return nil, err
	}
	return s.r.Post(ctx, path, nil, opts...)
}

// RemoveTag removes a tag from a shipment.
func (s *ShipmentsService) RemoveTag(ctx context.Context, shipmentID, tagName string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/shipments", id("shipment_id", shipmentID), lit("tags"), id("tag_name", tagName))
	if err != nil {
		return nil, err
	}
	return s.r.Delete(ctx, path, nil, opts...)
}

// UpdateTags replaces tags on several shipments at once.
func (s *ShipmentsService) UpdateTags(ctx context.Context, params Params, opts ...RequestOption) (Body, error) {
	return s.r.Put(ctx, "/v1/shipments/tags", params, opts...)
}

// Pages returns the underlying ListFunc, one request per call.
func (s *ShipmentsService) Pages() ListFunc[Body] {
	return s.list.page
}
