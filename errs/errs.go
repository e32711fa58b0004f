// Package errs holds the sentinel errors for the taxonomy in spec.md §7.
//
// UnknownOrder never reaches this package's callers as a Go error — it is
// always converted into an outbound OrderCancelReject before it can
// escape the matching engine (spec.md §7, "domain errors ... become
// outbound reject messages"). InvalidOrder and InvalidState are
// programmer/input errors and are returned to the caller, wrapped with
// context, without mutating engine state.
package errs

import "github.com/pkg/errors"

var (
	// ErrInvalidOrder marks a malformed inbound NewOrderSingle: a
	// non-positive orderQty, or a Limit order with a non-positive price.
	ErrInvalidOrder = errors.New("invalid order")

	// ErrInvalidState marks a precondition violated inside
	// WorkingOrder.Execute (closed order, zero/negative fill quantity, or
	// an overfill). Indicates a caller bug, not a market condition.
	ErrInvalidState = errors.New("invalid working order state")
)

// Wrap attaches context to one of the sentinel errors above while
// preserving errors.Is/errors.Cause compatibility.
func Wrap(sentinel error, context string) error {
	return errors.Wrap(sentinel, context)
}
