package pos

import "errors"

var (
	// user-input errors, rejected synchronously with state unchanged
	ErrEmptyItemName = errors.New("item name is required")
	ErrInvalidPrice  = errors.New("price must be greater than 0")
	ErrEmptyCart     = errors.New("cart must have at least one item")

	// recoverable business errors
	ErrPromotionNotFound = errors.New("promotion code not found")
	ErrPromotionInactive = errors.New("promotion code is expired or no longer valid")

	// settlement state machine
	ErrWrongPhase         = errors.New("operation not allowed in current checkout phase")
	ErrMethodUnavailable  = errors.New("payment method not available for this order")
	ErrSettlementInFlight = errors.New("settlement already in progress")
	ErrCustomerRequired   = errors.New("customer details are required to send the bill")
	ErrNoGuestDetected    = errors.New("no in-house guest detected for room charge")

	// order edit reconciliation
	ErrNoChanges    = errors.New("edit has no new items and no removals")
	ErrEditInFlight = errors.New("edit save already in progress")
)
