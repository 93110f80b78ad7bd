package shipengine

import "context"

// TrackingService reads tracking events and manages tracking webhooks.
type TrackingService struct {
	r Requester
}

// ByLabel returns tracking information for a label purchased through ShipEngine.
func (s *TrackingService) ByLabel(ctx context.Context, labelID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/labels", id("label_id", labelID), lit("track"))
	if err != nil {
		return nil, err
	}
	return s.r.Get(ctx, path, nil, opts...)
}

// Track returns tracking information for any package by carrier code and tracking number.
func (s *TrackingService) Track(ctx context.Context, carrierCode, trackingNumber string, opts ...RequestOption) (Body, error) {
	params, err := trackingParams(carrierCode, trackingNumber)
	if err != nil {
		return nil, err
	}
	return s.r.Get(ctx, "/v1/tracking", params, opts...)
}

// Start subscribes to tracking updates for a package.
func (s *TrackingService) Start(ctx context.Context, carrierCode, trackingNumber string, opts ...RequestOption) (Body, error) {
	params, err := trackingParams(carrierCode, trackingNumber)
	if err != nil {
		return nil, err
	}
	return s.r.Post(ctx, "/v1/tracking/start", params, opts...)
}

// Stop unsubscribes from tracking updates for a package.
func (s *TrackingService) Stop(ctx context.Context, carrierCode, trackingNumber string, opts ...RequestOption) (Body, error) {
	params, err := trackingParams(carrierCode, trackingNumber)
	if err != nil {
		return nil, err
	}
	return s.r.Post(ctx, "/v1/tracking/stop", params, opts...)
}

func trackingParams(carrierCode, trackingNumber string) (Params, error) {
	if err := RequireNonWhitespaceString("carrier_code", carrierCode); err != nil {
		return nil, err
	}
	if err := RequireNonWhitespaceString("tracking_number", trackingNumber); err != nil {
		return nil, err
	}
	return Params{"carrier_code": carrierCode, "tracking_number": trackingNumber}, nil
}
