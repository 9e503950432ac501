package pos

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Promotion is the resolved view of a discount code. Exactly one of
// DiscountPercentage or DiscountAmount is set.
type Promotion struct {
	ID                 uint             `json:"id"`
	Name               string           `json:"name"`
	Code               string           `json:"code"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	DiscountAmount     *decimal.Decimal `json:"discount_amount,omitempty"`
}

// PromotionLookup resolves a normalized code against the promotions store.
// Implementations return ErrPromotionNotFound or ErrPromotionInactive for
// the recoverable cases.
type PromotionLookup interface {
	ResolvePromotion(ctx context.Context, code string) (*Promotion, error)
}

// PromotionResolver validates and applies promotion codes to a cart.
type PromotionResolver struct {
	lookup   PromotionLookup
	notifier Notifier
}

func NewPromotionResolver(lookup PromotionLookup, notifier Notifier) *PromotionResolver {
	return &PromotionResolver{lookup: lookup, notifier: notifier}
}

// NormalizeCode -> trim + uppercase, applied before any lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Apply resolves code and sets it as the cart's promotion. At most one
// promotion is active at a time; applying a new one replaces, never stacks.
// On not-found/inactive the cart is left untouched and the sentinel error is
// returned for the caller to surface.
func (r *PromotionResolver) Apply(ctx context.Context, cart *Cart, code string) (*Promotion, error) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return nil, ErrPromotionNotFound
	}

	promo, err := r.lookup.ResolvePromotion(ctx, normalized)
	if err != nil {
		if errors.Is(err, ErrPromotionNotFound) || errors.Is(err, ErrPromotionInactive) {
			emit(r.notifier, Outcome{Kind: OutcomePromotionInvalid, Message: err.Error()})
		}
		return nil, err
	}

	cart.promotion = promo
	emit(r.notifier, Outcome{Kind: OutcomePromotionApplied, Message: promo.Name})
	return promo, nil
}

// Remove clears the applied promotion unconditionally.
func (r *PromotionResolver) Remove(cart *Cart) {
	cart.promotion = nil
}
