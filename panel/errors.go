package panel

import (
	"errors"
	"fmt"
)

// Reason tells the caller why a request was refused before reaching the host.
type Reason string

const (
	ReasonEmptyCart            Reason = "EMPTY_CART"
	ReasonMissingName          Reason = "MISSING_NAME"
	ReasonInvalidAmount        Reason = "INVALID_AMOUNT"
	ReasonAmountExceedsBalance Reason = "AMOUNT_EXCEEDS_BALANCE"
	ReasonUnknownStatus        Reason = "UNKNOWN_STATUS"
	ReasonUnknownItem          Reason = "UNKNOWN_ITEM"
	ReasonUnknownOrder         Reason = "UNKNOWN_ORDER"
	ReasonUnknownFilter        Reason = "UNKNOWN_FILTER"
	ReasonCheckoutInFlight     Reason = "CHECKOUT_IN_FLIGHT"
)

// ValidationError is a local rejection. No host request was made and no state changed.
type ValidationError struct {
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches on Reason so errors.Is works against the Err* values below.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Reason == e.Reason
}

var (
	ErrEmptyCart            = &ValidationError{Reason: ReasonEmptyCart, Message: "cart is empty"}
	ErrMissingName          = &ValidationError{Reason: ReasonMissingName, Message: "order name is required"}
	ErrInvalidAmount        = &ValidationError{Reason: ReasonInvalidAmount, Message: "amount must be a positive number"}
	ErrAmountExceedsBalance = &ValidationError{Reason: ReasonAmountExceedsBalance, Message: "amount exceeds balance"}
	ErrUnknownStatus        = &ValidationError{Reason: ReasonUnknownStatus, Message: "unknown order status"}
	ErrUnknownItem          = &ValidationError{Reason: ReasonUnknownItem, Message: "item is not in the catalog"}
	ErrUnknownOrder         = &ValidationError{Reason: ReasonUnknownOrder, Message: "order not found"}
	ErrUnknownFilter        = &ValidationError{Reason: ReasonUnknownFilter, Message: "filter is not offered in this mode"}
	ErrCheckoutInFlight     = &ValidationError{Reason: ReasonCheckoutInFlight, Message: "an order is already being submitted"}
)

// ErrUnknownEvent is returned by the dispatcher for tags nobody registered.
var ErrUnknownEvent = errors.New("unknown event")

// Generic messages used when the host refuses without saying why.
const (
	msgStatusUpdateFailed = "failed to update order status"
	msgWithdrawFailed     = "withdrawal failed"
)

// HostError means the host answered and said no.
type HostError struct {
	Op      string
	Message string
}

func (e *HostError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// TransportError means the host never gave a usable answer.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ReasonOf extracts the validation reason from err, if it is a local rejection.
func ReasonOf(err error) (Reason, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Reason, true
	}
	return "", false
}

func IsHostError(err error) bool {
	var h *HostError
	return errors.As(err, &h)
}

func IsTransport(err error) bool {
	var t *TransportError
	return errors.As(err, &t)
}

// classify wraps a raw error from a Host call. Host errors pass through untouched.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var h *HostError
	if errors.As(err, &h) {
		return err
	}
	return &TransportError{Op: op, Err: err}
}
