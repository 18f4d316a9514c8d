package service

import "context"

// Dispatcher is the async-job surface services depend on.
// *worker.Dispatcher satisfies it in production; tests plug in a recorder.
type Dispatcher interface {
	EnqueueEmail(ctx context.Context, payload interface{}) error
	EnqueueCierrePDF(ctx context.Context, payload interface{}) error
}
