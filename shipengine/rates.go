package shipengine

import (
	"context"
	"net/http"
)

// RatesService quotes shipping rates.
type RatesService struct {
	r Requester
}

// GetWithShipmentDetails quotes rates for a shipment described in params.
func (s *RatesService) GetWithShipmentDetails(ctx context.Context, params Params, opts ...RequestOption) (Body, error) {
	if err := RequireStruct("shipment details", params); err != nil {
		return nil, err
	}
	return s.r.Post(ctx, "/v1/rates", params, opts...)
}

// Estimate returns rate estimates without creating a shipment.
func (s *RatesService) Estimate(ctx context.Context, params Params, opts ...RequestOption) ([]Body, error) {
	return getList(ctx, s.r, http.MethodPost, "/v1/rates/estimate", params, opts)
}

// Get returns a previously quoted rate.
func (s *RatesService) Get(ctx context.Context, rateID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/rates", id("rate_id", rateID))
	if err != nil {
		return nil, err
	}
	return s.r.Get(ctx, path, nil, opts...)
}

// Bulk quotes rates for several shipments at once.
func (s *RatesService) Bulk(ctx context.Context, params Params, opts ...RequestOption) ([]Body, error) {
	return getList(ctx, s.r, http.MethodPost, "/v1/rates/bulk", params, opts)
}

// AddressesService validates and parses postal addresses.
type AddressesService struct {
	r Requester
}

// Validate validates one or more addresses. Nil fields are dropped from
// each address before sending.
func (s *AddressesService) Validate(ctx context.Context, addresses []Params, opts ...RequestOption) ([]Body, error) {
	if err := RequireArray("addresses", addresses); err != nil {
		return nil, err
	}
	payload := make([]Params, 0, len(addresses))
	for _, addr := range addresses {
		compact := make(Params, len(addr))
		for k, v := range addr {
			if v != nil {
				compact[k] = v
			}
		}
		payload = append(payload, compact)
	}
	return getList(ctx, s.r, http.MethodPost, "/v1/addresses/validate", payload, opts)
}

// Parse extracts a structured address from free form text in params["text"].
func (s *AddressesService) Parse(ctx context.Context, params Params, opts ...RequestOption) (Body, error) {
	return s.r.Put(ctx, "/v1/addresses/recognize", params, opts...)
}
