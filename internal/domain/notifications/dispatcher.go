package notifications

import "context"

// Result reports a delivery attempt. Dispatchers never return an error:
// failures come back in the Result so batch callers keep looping.
type Result struct {
	Delivered bool   `json:"delivered"`
	Detail    string `json:"detail"`
}

type Dispatcher interface {
	Send(ctx context.Context, to, subject, htmlBody string) Result
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(ctx context.Context, to, subject, htmlBody string) Result

func (f DispatcherFunc) Send(ctx context.Context, to, subject, htmlBody string) Result {
	return f(ctx, to, subject, htmlBody)
}
