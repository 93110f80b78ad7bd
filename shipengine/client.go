package shipengine

// Client is the entry point of the SDK. It holds one Executor shared by
// every resource service.
type Client struct {
	executor *Executor

	Account         *AccountService
	Addresses       *AddressesService
	Batches         *BatchesService
	CarrierAccounts *CarrierAccountsService
	Carriers        *CarriersService
	Documents       *DocumentsService
	Downloads       *DownloadsService
	Insurance       *InsuranceService
	Labels          *LabelsService
	LTL             *LTLService
	Manifests       *ManifestsService
	Pickups         *PickupsService
	PackageTypes    *PackageTypesService
	Rates           *RatesService
	ServicePoints   *ServicePointsService
	Shipments       *ShipmentsService
	Tags            *TagsService
	Tokens          *TokensService
	Tracking        *TrackingService
	Warehouses      *WarehousesService
	Webhooks        *WebhooksService
}

// NewClient validates the configuration built from apiKey and o and
// returns a ready Client. No request is made.
func NewClient(apiKey string, o Overrides, opts ...ExecutorOption) (*Client, error) {
	cfg, err := NewConfiguration(apiKey, o)
	if err != nil {
		return nil, err
	}
	return NewClientFromConfig(cfg, opts...), nil
}

// NewClientFromConfig returns a Client for an already validated configuration.
func NewClientFromConfig(cfg Configuration, opts ...ExecutorOption) *Client {
	e := NewExecutor(cfg, opts...)
	return &Client{
		executor:        e,
		Account:         &AccountService{r: e},
		Addresses:       &AddressesService{r: e},
		Batches:         newBatchesService(e),
		CarrierAccounts: &CarrierAccountsService{r: e},
		Carriers:        &CarriersService{r: e},
		Documents:       &DocumentsService{r: e},
		Downloads:       &DownloadsService{r: e},
		Insurance:       &InsuranceService{r: e},
		Labels:          newLabelsService(e),
		LTL:             &LTLService{r: e},
		Manifests:       newManifestsService(e),
		Pickups:         newPickupsService(e),
		PackageTypes:    &PackageTypesService{r: e},
		Rates:           &RatesService{r: e},
		ServicePoints:   &ServicePointsService{r: e},
		Shipments:       newShipmentsService(e),
		Tags:            &TagsService{r: e},
		Tokens:          &TokensService{r: e},
		Tracking:        &TrackingService{r: e},
		Warehouses:      &WarehousesService{r: e},
		Webhooks:        &WebhooksService{r: e},
	}
}

// Config returns the client's base configuration.
func (c *Client) Config() Configuration {
	return c.executor.Config()
}

// Executor returns the executor used by every service, for endpoints
// that have no dedicated method.
func (c *Client) Executor() *Executor {
	return c.executor
}
