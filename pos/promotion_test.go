package pos

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeLookup struct {
	promos map[string]*Promotion
	errs   map[string]error
	seen   []string
}

func (f *fakeLookup) ResolvePromotion(_ context.Context, code string) (*Promotion, error) {
	f.seen = append(f.seen, code)
	if err, ok := f.errs[code]; ok {
		return nil, err
	}
	if p, ok := f.promos[code]; ok {
		return p, nil
	}
	return nil, ErrPromotionNotFound
}

type fakeNotifier struct {
	outcomes []Outcome
}

func (f *fakeNotifier) Notify(o Outcome) {
	f.outcomes = append(f.outcomes, o)
}

func save10() *Promotion {
	return &Promotion{ID: 1, Name: "Ten Percent Off", Code: "SAVE10", DiscountPercentage: decPtr(decimal.NewFromInt(10))}
}

func flat50() *Promotion {
	return &Promotion{ID: 2, Name: "Flat Fifty", Code: "FLAT50", DiscountAmount: decPtr(decimal.NewFromInt(50))}
}

func TestApplyNormalizesCodeBeforeLookup(t *testing.T) {
	lookup := &fakeLookup{promos: map[string]*Promotion{"SAVE10": save10()}}
	resolver := NewPromotionResolver(lookup, nil)
	cart := NewCart()

	promo, err := resolver.Apply(context.Background(), cart, "  save10 ")

	assert.NoError(t, err)
	assert.Equal(t, []string{"SAVE10"}, lookup.seen)
	assert.Equal(t, "SAVE10", promo.Code)
	assert.Equal(t, promo, cart.Promotion())
}

func TestApplyBlankCodeIsNotFound(t *testing.T) {
	lookup := &fakeLookup{}
	resolver := NewPromotionResolver(lookup, nil)

	_, err := resolver.Apply(context.Background(), NewCart(), "   ")

	assert.ErrorIs(t, err, ErrPromotionNotFound)
	assert.Empty(t, lookup.seen)
}

func TestApplyLeavesCartUntouchedOnFailure(t *testing.T) {
	lookup := &fakeLookup{
		promos: map[string]*Promotion{"SAVE10": save10()},
		errs:   map[string]error{"EXPIRED": ErrPromotionInactive},
	}
	notifier := &fakeNotifier{}
	resolver := NewPromotionResolver(lookup, notifier)
	cart := NewCart()

	_, err := resolver.Apply(context.Background(), cart, "SAVE10")
	assert.NoError(t, err)

	_, err = resolver.Apply(context.Background(), cart, "EXPIRED")
	assert.ErrorIs(t, err, ErrPromotionInactive)
	assert.Equal(t, "SAVE10", cart.Promotion().Code)

	_, err = resolver.Apply(context.Background(), cart, "NOPE")
	assert.ErrorIs(t, err, ErrPromotionNotFound)
	assert.Equal(t, "SAVE10", cart.Promotion().Code)
}

func TestApplyReplacesNeverStacks(t *testing.T) {
	lookup := &fakeLookup{promos: map[string]*Promotion{"SAVE10": save10(), "FLAT50": flat50()}}
	resolver := NewPromotionResolver(lookup, nil)
	cart := NewCart()
	for i := 0; i < 25; i++ {
		cart.AddCatalogItem(teaItem()) // 25 x 20 = 500
	}

	_, err := resolver.Apply(context.Background(), cart, "FLAT50")
	assert.NoError(t, err)
	_, err = resolver.Apply(context.Background(), cart, "SAVE10")
	assert.NoError(t, err)

	totals := cart.Totals()
	// 10% of 500, not 10% plus the flat 50
	assert.True(t, totals.Discount.Equal(decimal.NewFromInt(50)), "got %s", totals.Discount)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(450)), "got %s", totals.Total)
	assert.Equal(t, "SAVE10", cart.Promotion().Code)
}

func TestApplyEmitsOutcomes(t *testing.T) {
	lookup := &fakeLookup{
		promos: map[string]*Promotion{"SAVE10": save10()},
		errs:   map[string]error{"EXPIRED": ErrPromotionInactive},
	}
	notifier := &fakeNotifier{}
	resolver := NewPromotionResolver(lookup, notifier)
	cart := NewCart()

	_, _ = resolver.Apply(context.Background(), cart, "SAVE10")
	_, _ = resolver.Apply(context.Background(), cart, "EXPIRED")
	_, _ = resolver.Apply(context.Background(), cart, "UNKNOWN")

	assert.Len(t, notifier.outcomes, 3)
	assert.Equal(t, OutcomePromotionApplied, notifier.outcomes[0].Kind)
	assert.Equal(t, OutcomePromotionInvalid, notifier.outcomes[1].Kind)
	assert.Equal(t, OutcomePromotionInvalid, notifier.outcomes[2].Kind)
}

func TestRemoveClearsPromotion(t *testing.T) {
	lookup := &fakeLookup{promos: map[string]*Promotion{"SAVE10": save10()}}
	resolver := NewPromotionResolver(lookup, nil)
	cart := NewCart()
	cart.AddCatalogItem(teaItem())

	_, _ = resolver.Apply(context.Background(), cart, "SAVE10")
	resolver.Remove(cart)

	assert.Nil(t, cart.Promotion())
	assert.True(t, cart.Totals().Discount.IsZero())
}
