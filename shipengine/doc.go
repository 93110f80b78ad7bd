// Package shipengine provides a client for the ShipEngine shipping API.
//
// Every call flows through one Executor: the base Configuration is merged
// with any per-call overrides, the request is sent with the API key and
// JSON headers, rate limited responses are retried, and failed responses
// are turned into a typed *Error.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := shipengine.NewClient("TEST_xxx", shipengine.Overrides{
//		Retries: shipengine.Some(2),
//		Logger:  shipengine.Some(&logger),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	label, err := client.Labels.Get(ctx, "se-123",
//		shipengine.WithTimeout(10*time.Second),
//	)
//
//	// Iterate over every label, one page at a time
//	for label, err := range client.Labels.ListAll(ctx, shipengine.Params{"label_status": "completed"}) {
//		if err != nil {
//			return err
//		}
//		fmt.Println(label["label_id"])
//	}
//
// # Configuration
//
// Configuration is immutable. Merge returns a new value and validates it,
// so an invalid override fails before any request is sent. Overrides uses
// Optional fields: only fields wrapped with Some take part in a merge.
//
// # Retries
//
// Only HTTP 429 responses are retried, for GET, DELETE, HEAD, OPTIONS, PUT
// and POST. Retried attempts carry a Retries header with the configured
// budget. The wait honours Retry-After.
//
// # Error Handling
//
// Failed responses are returned as *Error with a Kind:
//
//   - KindValidation, KindBusinessRules, KindAccountStatus, KindSecurity
//   - KindSystem, and its specializations KindRateLimit and KindTimeout
//   - KindUnknown for unrecognized error types and bodies without errors
//
// Use errors.Is with the package sentinels:
//
//	if errors.Is(err, shipengine.ErrRateLimited) {
//		var apiErr *shipengine.Error
//		errors.As(err, &apiErr)
//		fmt.Println("gave up after", apiErr.Retries, "retries")
//	}
//
// Network failures and malformed success bodies are returned as
// *TransportError and never classified as API errors.
package shipengine
