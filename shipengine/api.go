package shipengine

import "context"

// Requester is the transport used by the resource services.
// *Executor implements it.
type Requester interface {
	Get(ctx context.Context, path string, params Params, opts ...RequestOption) (Body, error)
	Post(ctx context.Context, path string, params Params, opts ...RequestOption) (Body, error)
	Put(ctx context.Context, path string, params Params, opts ...RequestOption) (Body, error)
	Patch(ctx context.Context, path string, params Params, opts ...RequestOption) (Body, error)
	Delete(ctx context.Context, path string, params Params, opts ...RequestOption) (Body, error)
	Do(ctx context.Context, method, path string, in, out any, opts ...RequestOption) error
	Effective(opts ...RequestOption) (Configuration, error)
}

var _ Requester = (*Executor)(nil)
