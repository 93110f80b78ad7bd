package shipengine

import "context"

// AccountService manages account settings and label images.
type AccountService struct {
	r Requester
}

// Settings returns the account settings.
func (s *AccountService) Settings(ctx context.Context, opts ...RequestOption) (Body, error) {
	return s.r.Get(ctx, "/v1/account/settings", nil, opts...)
}

// UpdateSettings updates the account settings.
func (s *AccountService) UpdateSettings(ctx context.Context, params Params, opts ...RequestOption) (Body, error) {
	return s.r.Put(ctx, "/v1/account/settings", params, opts...)
}

// Images lists the custom label images.
func (s *AccountService) Images(ctx context.Context, opts ...RequestOption) (Body, error) {
	return s.r.Get(ctx, "/v1/account/settings/images", nil, opts...)
}

// Image returns one label image.
func (s *AccountService) Image(ctx context.Context, imageID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/account/settings/images", id("label_image_id", imageID))
	if err != nil {
		return nil, err
	}
	return s.r.Get(ctx, path, nil, opts...)
}

// CreateImage uploads a label image.
func (s *AccountService) CreateImage(ctx context.Context, params Params, opts ...RequestOption) (Body, error) {
	return s.r.Post(ctx, "/v1/account/settings/images", params, opts...)
}

// UpdateImage updates a label image.
func (s *AccountService) UpdateImage(ctx context.Context, imageID string, params Params, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/account/settings/images", id("label_image_id", imageID))
	if err != nil {
		return nil, err
	}
	return s.r.Put(ctx, path, params, opts...)
}

// DeleteImage deletes a label image.
func (s *AccountService) DeleteImage(ctx context.Context, imageID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/account/settings/images", id("label_image_id", imageID))
	if err != nil {
		return nil, err
	}
	return s.r.Delete(ctx, path, nil, opts...)
}

// TokensService issues short lived tokens.
type TokensService struct {
	r Requester
}

// Ephemeral returns a short lived token for client side use.
func (s *TokensService) Ephemeral(ctx context.Context, opts ...RequestOption) (Body, error) {
	return s.r.Post(ctx, "/v1/tokens/ephemeral", nil, opts...)
}
