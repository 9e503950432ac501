package pos

import (
	"context"
	"sync"
)

// Checkout phases. The only backward edge is an explicit back/cancel to
// Building; Settled is terminal.
type Phase string

const (
	PhaseBuilding             Phase = "building"
	PhaseChoosingMethod       Phase = "choosing_method"
	PhaseAwaitingConfirmation Phase = "awaiting_confirmation"
	PhaseSettled              Phase = "settled"
)

type Method string

const (
	MethodCash       Method = "cash"
	MethodCard       Method = "card"
	MethodUPI        Method = "upi"
	MethodRoomCharge Method = "room_charge"
)

// Settlement drives one cart from building through method choice to a
// confirmed, persisted order. Nothing is persisted until Confirm succeeds.
type Settlement struct {
	cart     *Cart
	store    OrderStore
	notifier Notifier

	mu       sync.Mutex
	phase    Phase
	method   Method
	guest    *GuestContext
	tableID  *uint
	sendBill bool
	busy     bool
}

func NewSettlement(cart *Cart, store OrderStore, notifier Notifier) *Settlement {
	return &Settlement{
		cart:     cart,
		store:    store,
		notifier: notifier,
		phase:    PhaseBuilding,
	}
}

// AttachGuest records the in-house guest detected for this session's
// table/room context. A nil guest withdraws the room_charge option.
func (s *Settlement) AttachGuest(guest *GuestContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guest = guest
}

// SetTable links the session to a seating context for the order record.
func (s *Settlement) SetTable(tableID *uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tableID = tableID
}

// EnableSendBill toggles bill delivery; confirming with it on requires a
// customer ref on the cart.
func (s *Settlement) EnableSendBill(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendBill = enabled
}

func (s *Settlement) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Settlement) Method() Method {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.method
}

func (s *Settlement) Guest() *GuestContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.guest
}

// Begin -> Building to ChoosingMethod. The at-least-one-line rule is only
// enforced at the final confirm step.
func (s *Settlement) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseBuilding {
		return ErrWrongPhase
	}
	s.phase = PhaseChoosingMethod
	return nil
}

// AvailableMethods always offers cash, card and upi; room_charge is added
// only when a guest reservation was detected.
func (s *Settlement) AvailableMethods() []Method {
	s.mu.Lock()
	defer s.mu.Unlock()
	methods := []Method{MethodCash, MethodCard, MethodUPI}
	if s.guest != nil {
		methods = append(methods, MethodRoomCharge)
	}
	return methods
}

// ChooseMethod -> ChoosingMethod to AwaitingConfirmation.
func (s *Settlement) ChooseMethod(method Method) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseChoosingMethod {
		return ErrWrongPhase
	}
	switch method {
	case MethodCash, MethodCard, MethodUPI:
	case MethodRoomCharge:
		if s.guest == nil {
			return ErrMethodUnavailable
		}
	default:
		return ErrMethodUnavailable
	}
	s.method = method
	s.phase = PhaseAwaitingConfirmation
	return nil
}

// Back returns to Building without side effects. Allowed from any
// non-terminal phase; a no-op while a confirm is in flight.
func (s *Settlement) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseSettled {
		return ErrWrongPhase
	}
	if s.busy {
		return ErrSettlementInFlight
	}
	s.phase = PhaseBuilding
	s.method = ""
	return nil
}

// Confirm validates the cart, re-derives totals and hands the finalized
// payload to the order store. Success settles and clears the cart; failure
// keeps the phase at AwaitingConfirmation so the caller can retry. The busy
// flag rejects overlapping confirms (double-click protection); there is no
// automatic retry.
func (s *Settlement) Confirm(ctx context.Context) (uint, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return 0, ErrSettlementInFlight
	}
	if s.phase != PhaseAwaitingConfirmation {
		s.mu.Unlock()
		return 0, ErrWrongPhase
	}
	if s.cart.Len() == 0 {
		s.mu.Unlock()
		return 0, ErrEmptyCart
	}
	if s.sendBill && s.cart.Customer() == nil {
		s.mu.Unlock()
		return 0, ErrCustomerRequired
	}
	if s.method == MethodRoomCharge && s.guest == nil {
		s.mu.Unlock()
		return 0, ErrNoGuestDetected
	}

	totals := s.cart.Totals()
	payload := OrderPayload{
		Lines:    s.cart.Lines(),
		Subtotal: totals.Subtotal,
		Discount: totals.Discount,
		Total:    totals.Total,
		Method:   s.method,
		TableID:  s.tableID,
	}
	if p := s.cart.Promotion(); p != nil {
		id := p.ID
		payload.PromotionID = &id
	}
	if s.sendBill {
		payload.Customer = s.cart.Customer()
	}
	if s.method == MethodRoomCharge {
		payload.Reservation = s.guest
	}

	s.busy = true
	s.mu.Unlock()

	orderID, err := s.store.CreateOrder(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		emit(s.notifier, Outcome{Kind: OutcomeSettlementFailed, Message: err.Error()})
		return 0, err
	}

	s.phase = PhaseSettled
	s.cart.Clear()
	emit(s.notifier, Outcome{Kind: OutcomeSettlementSucceeded, OrderID: orderID})
	return orderID, nil
}
