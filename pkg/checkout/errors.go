package checkout

import (
	"fmt"
)

// ValidationError reports a local, pre-network failure the user can correct
// inline. No request has been sent when it is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// SyncError reports a failure mirroring the cart server-side. The submission
// is aborted before any order is created.
type SyncError struct {
	Err error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("failed syncing cart with error=%s", e.Err.Error())
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// OrderError reports a failed order creation. The cart is left untouched so
// the user can retry; note a retry after a transient failure may create a
// duplicate order, since no idempotency key is sent.
type OrderError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *OrderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("order creation failed: %s", e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("order creation failed with error=%s", e.Err.Error())
	}
	return fmt.Sprintf("order creation failed with status=%d", e.StatusCode)
}

func (e *OrderError) Unwrap() error {
	return e.Err
}
