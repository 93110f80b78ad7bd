package shipengine

import (
	"context"
	"net/http"
)

// WebhooksService manages webhook subscriptions. Delivery is not handled here.
type WebhooksService struct {
	r Requester
}

// List returns every webhook.
func (s *WebhooksService) List(ctx context.Context, opts ...RequestOption) ([]Body, error) {
	return getList(ctx, s.r, http.MethodGet, "/v1/environment/webhooks", nil, opts)
}

// Create subscribes a URL to an event.
func (s *WebhooksService) Create(ctx context.Context, params Params, opts ...RequestOption) (Body, error) {
	return s.r.Post(ctx, "/v1/environment/webhooks", params, opts...)
}

// Get returns a webhook by ID.
func (s *WebhooksService) Get(ctx context.Context, webhookID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/environment/webhooks", id("webhook_id", webhookID))
	if err != nil {
		return nil, err
	}
	return s.r.Get(ctx, path, nil, opts...)
}

// Update changes a webhook's URL.
func (s *WebhooksService) Update(ctx context.Context, webhookID string, params Params, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/environment/webhooks", id("webhook_id", webhookID))
	if err != nil {
		return nil, err
	}
	return s.r.Put(ctx, path, params, opts...)
}

// Delete removes a webhook.
func (s *WebhooksService) Delete(ctx context.Context, webhookID string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/environment/webhooks", id("webhook_id", webhookID))
	if err != nil {
		return nil, err
	}
	return s.r.Delete(ctx, path, nil, opts...)
}

// TagsService manages account level shipment tags.
type TagsService struct {
	r Requester
}

// List returns every tag.
func (s *TagsService) List(ctx context.Context, opts ...RequestOption) (Body, error) {
	return s.r.Get(ctx, "/v1/tags", nil, opts...)
}

// Create creates a tag.
func (s *TagsService) Create(ctx context.Context, tagName string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/tags", id("tag_name", tagName))
	if err != nil {
		return nil, err
	}
	return s.r.Post(ctx, path, nil, opts...)
}

// Delete deletes a tag.
func (s *TagsService) Delete(ctx context.Context, tagName string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/tags", id("tag_name", tagName))
	if err != nil {
		return nil, err
	}
	return s.r.Delete(ctx, path, nil, opts...)
}

// Rename renames a tag.
func (s *TagsService) Rename(ctx context.Context, tagName, newTagName string, opts ...RequestOption) (Body, error) {
	path, err := pathf("/v1/tags", id("tag_name", tagName), id("new_tag_name", newTagName))
	if err != nil {
		return nil, err
	}
	return s.r.Put(ctx, path, nil, opts...)
}
