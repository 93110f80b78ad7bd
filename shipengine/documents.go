package shipengine

import (
	"context"
	"net/http"
	"strings"
)

// DocumentsService combines label documents.
type DocumentsService struct {
	r Requester
}

// CombinedLabels merges several labels into one document.
func (s *DocumentsService) CombinedLabels(ctx context.Context, params Params, opts ...RequestOption) (Body, error) {
	return s.r.Post(ctx, "/v1/documents/combined_labels", params, opts...)
}

// DownloadsService fetches label and document files.
type DownloadsService struct {
	r Requester
}

// Download returns the raw bytes at a download subpath, such as the tail
// of a label_download href after /v1/downloads/.
func (s *DownloadsService) Download(ctx context.Context, subpath string, opts ...RequestOption) ([]byte, error) {
	if err := RequireNonWhitespaceString("subpath", subpath); err != nil {
		return nil, err
	}
	var data []byte
	path := "/v1/downloads/" + strings.TrimLeft(subpath, "/")
	if err := s.r.Do(ctx, http.MethodGet, path, nil, &data, opts...); err != nil {
		return nil, err
	}
	return data, nil
}

// InsuranceService manages the Shipsurance connection and balance.
type InsuranceService struct {
	r Requester
}

// Balance returns the insurance balance.
func (s *InsuranceService) Balance(ctx context.Context, opts ...RequestOption) (Body, error) {
	return s.r.Get(ctx, "/v1/insurance/shipsurance/balance", nil, opts...)
}

// AddFunds adds funds to the insurance balance.
func (s *InsuranceService) AddFunds(ctx context.Context, params Params, opts ...RequestOption) (Body, error) {
	return s.r.Patch(ctx, "/v1/insurance/shipsurance/add_funds", params, opts...)
}

// Connect connects a Shipsurance account.
func (s *InsuranceService) Connect(ctx context.Context, opts ...RequestOption) (Body, error) {
	return s.r.Post(ctx, "/v1/connections/insurance/shipsurance", nil, opts...)
}

// Disconnect disconnects the Shipsurance account.
func (s *InsuranceService) Disconnect(ctx context.Context, opts ...RequestOption) (Body, error) {
	return s.r.Delete(ctx, "/v1/connections/insurance/shipsurance", nil, opts...)
}
