package shipengine

import "context"

// WarehousesService manages ship-from locations.
type WarehousesService struct {
	r Requester
}

// List returns every warehouse.
func (s *WarehousesService) List(ctx context.Context, opts ...RequestOption) (Body, error) {
	return s.r.Get(ctx, "/v1/warehouses", nil, opts...)
}

// Create creates a warehouse.
func (s *WarehousesService) Create(ctx context.Context, params Params, opts ...RequestOption) (Body, error) {
	return s.r.Post(ctx, "/v1/warehouses", params, opts...)
}

// Get returns a warehouse by ID.
func (s *WarehousesService) Get(ctx context.Context, warehouseID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/warehouses", id("warehouse_id", warehouseID))
	if err != nil {
		return nil, err
	}
	return s.r.Get(ctx, path, nil, opts...)
}

// Update replaces a warehouse.
func (s *WarehousesService) Update(ctx context.Context, warehouseID string, params Params, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/warehouses", id("warehouse_id", warehouseID))
	if err != nil {
		return nil, err
	}
	return s.r.Put(ctx, path, params, opts...)
}

// UpdateSettings updates a warehouse's settings.
func (s *WarehousesService) UpdateSettings(ctx context.Context, warehouseID string, params Params, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/warehouses", id("warehouse_id", warehouseID), lit("settings"))
	if err != nil {
		return nil, err
	}
	return s.r.Put(ctx, path, params, opts...)
}

// Delete deletes a warehouse.
func (s *WarehousesService) Delete(ctx context.Context, warehouseID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/warehouses", id("warehouse_id", warehouseID))
	if err != nil {
		return nil, err
	}
	return s.r.Delete(ctx, path, nil, opts...)
}

// PackageTypesService manages custom package types.
type PackageTypesService struct {
	r Requester
}

// List returns every custom package type.
func (s *PackageTypesService) List(ctx context.Context, opts ...RequestOption) (Body, error) {
	return s.r.Get(ctx, "/v1/packages", nil, opts...)
}

// Create creates a package type.
func (s *PackageTypesService) Create(ctx context.Context, params Params, opts ...RequestOption) (Body, error) {
	return s.r.Post(ctx, "/v1/packages", params, opts...)
}

// Get returns a package type by ID.
func (s *PackageTypesService) Get(ctx context.Context, packageID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/packages", id("package_id", packageID))
	if err != nil {
		return nil, err
	}
	return s.r.Get(ctx, path, nil, opts...)
}

// Update replaces a package type.
func (s *PackageTypesService) Update(ctx context.Context, packageID string, params Params, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/packages", id("package_id", packageID))
	if err != nil {
		return nil, err
	}
	return s.r.Put(ctx, path, params, opts...)
}

// Delete deletes a package type.
func (s *PackageTypesService) Delete(ctx context.Context, packageID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/packages", id("package_id", packageID))
	if err != nil {
		return nil, err
	}
	return s.r.Delete(ctx, path, nil, opts...)
}
