package op

import "context"

// CancelToken is a shared, set-once cancellation signal. The owner sets it,
// the worker polls it between steps. It wraps a context so a future operation
// kind can compose deadline-based cancellation onto the same mechanism.
type CancelToken struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func NewCancelToken() *CancelToken {
	ctx, cancel := context.WithCancel(context.Background())
	return &CancelToken{ctx: ctx, cancel: cancel}
}

// Cancel requests cancellation. Safe to call more than once; never reset.
func (t *CancelToken) Cancel() {
	t.cancel()
}

func (t *CancelToken) Cancelled() bool {
	return t.ctx.Err() != nil
}

func (t *CancelToken) Done() <-chan struct{} {
	return t.ctx.Done()
}
