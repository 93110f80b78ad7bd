package shipengine

import "context"

// CarriersService reads and funds the carrier accounts connected to ShipEngine.
type CarriersService struct {
	r Requester
}

// List returns every connected carrier.
func (s *CarriersService) List(ctx context.Context, opts ...RequestOption) (Body, error) {
	return s.r.Get(ctx, "/v1/carriers", nil, opts...)
}

// Get returns a carrier by ID.
func (s *CarriersService) Get(ctx context.Context, carrierID string, opts ...RequestOption) (Body, error) {
	return s.get(ctx, carrierID, "", opts)
}

// Disconnect removes a carrier from the account.
func (s *CarriersService) Disconnect(ctx context.Context, carrierID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/carriers", id("carrier_id", carrierID))
	if err != nil {
		return nil, err
	}
	return s.r.Delete(ctx, path, nil, opts...)
}

// AddFunds adds funds to a carrier balance. params holds currency and amount.
func (s *CarriersService) AddFunds(ctx context.Context, carrierID string, params Params, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/carriers", id("carrier_id", carrierID), lit("add_funds"))
	if err != nil {
		return nil, err
	}
	return s.r.Put(ctx, path, params, opts...)
}

// Services lists the services a carrier offers.
func (s *CarriersService) Services(ctx context.Context, carrierID string, opts ...RequestOption) (Body, error) {
	return s.get(ctx, carrierID, "services", opts)
}

// Packages lists the package types a carrier accepts.
func (s *CarriersService) Packages(ctx context.Context, carrierID string, opts ...RequestOption) (Body, error) {
	return s.get(ctx, carrierID, "packages", opts)
}

// Options lists the advanced options a carrier supports.
func (s *CarriersService) Options(ctx context.Context, carrierID string, opts ...RequestOption) (Body, error) {
	return s.get(ctx, carrierID, "options", opts)
}

func (s *CarriersService) get(ctx context.Context, carrierID, sub string, opts []RequestOption) (Body, error) {
	segments := []pathID{id("carrier_id", carrierID)}
	if sub != "" {
		segments = append(segments, lit(sub))
	}
	path, err := pathf("/v1/carriers", segments...)
	if err != nil {
		return nil, err
	}
	return s.r.Get(ctx, path, nil, opts...)
}

// CarrierAccountsService connects and configures carrier accounts.
type CarrierAccountsService struct {
	r Requester
}

// Connect connects a carrier account.
func (s *CarrierAccountsService) Connect(ctx context.Context, carrierName string, params Params, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/connections/carriers", id("carrier_name", carrierName))
	if err != nil {
		return nil, err
	}
	return s.r.Post(ctx, path, params, opts...)
}

// Disconnect disconnects a carrier account.
func (s *CarrierAccountsService) Disconnect(ctx context.Context, carrierName, carrierID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/connections/carriers", id("carrier_name", carrierName), id("carrier_id", carrierID))
	if err != nil {
		return nil, err
	}
	return s.r.Delete(ctx, path, nil, opts...)
}

// Settings returns a carrier account's settings.
func (s *CarrierAccountsService) Settings(ctx context.Context, carrierName, carrierID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/connections/carriers", id("carrier_name", carrierName), id("carrier_id", carrierID), lit("settings"))
	if err != nil {
		return nil, err
	}
	return s.r.Get(ctx, path, nil, opts...)
}

// UpdateSettings replaces a carrier account's settings.
func (s *CarrierAccountsService) UpdateSettings(ctx context.Context, carrierName, carrierID string, params Params, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/connections/carriers", id("carrier_name", carrierName), id("carrier_id", carrierID), lit("settings"))
	if err != nil {
		return nil, err
	}
	return s.r.Put(ctx, path, params, opts...)
}
