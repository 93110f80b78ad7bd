package shipengine

import (
	"context"
	"iter"
)

// PickupsService schedules carrier package pickups.
type PickupsService struct {
	r    Requester
	list pagedList
}

func newPickupsService(r Requester) *PickupsService {
	return &PickupsService{r: r, list: pagedList{r: r, path: "/v1/pickups", key: "pickups"}}
}

// List returns one page of pickups.
func (s *PickupsService) List(ctx context.Context, params Params, opts ...RequestOption) (Body, error) {
	return s.list.fetch(ctx, params, opts)
}

// ListAll iterates over pickups across all pages.
func (s *PickupsService) ListAll(ctx context.Context, params Params, opts ...RequestOption) iter.Seq2[Body, error] {
	return s.list.all(ctx, params, opts)
}

// ListEach calls fn for every pickup across all pages.
func (s *PickupsService) ListEach(ctx context.Context, params Params, fn func(Body) error, opts ...RequestOption) error {
	return s.list.each(ctx, params, fn, opts)
}

// Schedule schedules a pickup.
func (s *PickupsService) Schedule(ctx context.Context, params Params, opts ...RequestOption) (Body, error) {
	return s.r.Post(ctx, "/v1/pickups", params, opts...)
}

// Get returns a pickup by ID.
func (s *PickupsService) Get(ctx context.Context, pickupID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/pickups", id("pickup_id", pickupID))
	if err != nil {
		return nil, err
	}
	return s.r.Get(ctx, path, nil, opts...)
}

// Delete cancels a scheduled pickup.
func (s *PickupsService) Delete(ctx context.Context, pickupID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/pickups", id("pickup_id", pickupID))
	if err != nil {
		return nil, err
	}
	return s.r.Delete(ctx, path, nil, opts...)
}

func (s *PickupsService) Pages() ListFunc[Body] {
	return s.list.page
}
