package shipengine

import "context"

const ltlBase = "/v-beta/ltl"

// LTLService quotes and schedules less-than-truckload freight.
type LTLService struct {
	r Requester
}

// Carriers lists the connected LTL carriers.
func (s *LTLService) Carriers(ctx context.Context, opts ...RequestOption) (Body, error) {
	return s.r.Get(ctx, ltlBase+"/carriers", nil, opts...)
}

// Quote requests a freight quote from a carrier.
func (s *LTLService) Quote(ctx context.Context, carrierID string, params Params, opts ...RequestOption) (Body, error) {
	path, err := pathf(ltlBase+"/quotes", id("carrier_id", carrierID))
	if err != nil {
		return nil, err
	}
	return s.r.Post(ctx, path, params, opts...)
}

// Quotes lists previous quotes.
func (s *LTLService) Quotes(ctx context.Context, params Params, opts ...RequestOption) (Body, error) {
	return s.r.Get(ctx, ltlBase+"/quotes", params, opts...)
}

// GetQuote returns a quote by ID.
func (s *LTLService) GetQuote(ctx context.Context, quoteID string, opts ...RequestOption) (Body, error) {
	path, err := pathf(ltlBase+"/quotes", id("quote_id", quoteID))
	if err != nil {
		return nil, err
	}
	return s.r.Get(ctx, path, nil, opts...)
}

// SchedulePickup schedules a freight pickup.
func (s *LTLService) SchedulePickup(ctx context.Context, params Params, opts ...RequestOption) (Body, error) {
	return s.r.Post(ctx, ltlBase+"/pickups", params, opts...)
}

// Pickup returns a freight pickup by ID.
func (s *LTLService) Pickup(ctx context.Context, pickupID string, opts ...RequestOption) (Body, error) {
	path, err := pathf(ltlBase+"/pickups", id("pickup_id", pickupID))
	if err != nil {
		return nil, err
	}
	return s.r.Get(ctx, path, nil, opts...)
}

// UpdatePickup changes a freight pickup.
func (s *LTLService) UpdatePickup(ctx context.Context, pickupID string, params Params, opts ...RequestOption) (Body, error) {
	path, err := pathf(ltlBase+"/pickups", id("pickup_id", pickupID))
	if err != nil {
		return nil, err
	}
	return s.r.Put(ctx, path, params, opts...)
}

// CancelPickup cancels a freight pickup.
func (s *LTLService) CancelPickup(ctx context.Context, pickupID string, opts ...RequestOption) (Body, error) {
	path, err := pathf(ltlBase+"/pickups", id("pickup_id", pickupID))
	if err != nil {
		return nil, err
	}
	return s.r.Delete(ctx, path, nil, opts...)
}

// Track returns freight tracking details.
func (s *LTLService) Track(ctx context.Context, params Params, opts ...RequestOption) (Body, error) {
	return s.r.Get(ctx, ltlBase+"/tracking", params, opts...)
}

// ServicePointsService finds carrier drop off and pickup locations.
type ServicePointsService struct {
	r Requester
}

// List searches for service points near an address or coordinates.
func (s *ServicePointsService) List(ctx context.Context, params Params, opts ...RequestOption) (Body, error) {
	return s.r.Post(ctx, "/v1/service_points/list", params, opts...)
}

// Get returns a single service point.
func (s *ServicePointsService) Get(ctx context.Context, carrierCode, countryCode, servicePointID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/service_points",
		id("carrier_code", carrierCode),
		id("country_code", countryCode),
		id("service_point_id", servicePointID),
	)
	if err != nil {
		return nil, err
	}
	return s.r.Get(ctx, path, nil, opts...)
}
