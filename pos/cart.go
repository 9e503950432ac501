package pos

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogItem is the read-only view of a menu item the cart snapshots from.
type CatalogItem struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

// Line is one working order line. Name and UnitPrice are copied at add-time;
// catalog changes never retroactively alter a cart.
type Line struct {
	ID           string          `json:"id"`
	SourceItemID uint            `json:"source_item_id,omitempty"`
	Name         string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	IsCustom     bool            `json:"is_custom"`
	Note         string          `json:"note,omitempty"`
}

// LineTotal -> unit price x quantity
func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CustomerRef identifies who receives the bill, when send-bill is enabled.
type CustomerRef struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Cart is the in-memory working order for one POS session. It is owned by
// exactly one session; callers are expected to serialize access.
type Cart struct {
	lines     []*Line
	promotion *Promotion
	customer  *CustomerRef
}

func NewCart() *Cart {
	return &Cart{}
}

// AddCatalogItem merges into an existing non-custom line with the same
// source item (quantity +1) or appends a fresh line with quantity 1.
func (c *Cart) AddCatalogItem(item CatalogItem) *Line {
	for _, l := range c.lines {
		if !l.IsCustom && l.SourceItemID == item.ID {
			l.Quantity++
			return l
		}
	}
	line := &Line{
		ID:           uuid.NewString(),
		SourceItemID: item.ID,
		Name:         item.Name,
		UnitPrice:    item.Price,
		Quantity:     1,
	}
	c.lines = append(c.lines, line)
	return line
}

// AddCustomItem appends an ad-hoc line. Custom adds are always independent,
// even when the name matches an existing line.
func (c *Cart) AddCustomItem(name string, price decimal.Decimal) (*Line, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyItemName
	}
	if !price.IsPositive() {
		return nil, ErrInvalidPrice
	}
	line := &Line{
		ID:        uuid.NewString(),
		Name:      name,
		UnitPrice: price,
		Quantity:  1,
		IsCustom:  true,
	}
	c.lines = append(c.lines, line)
	return line, nil
}

// Increment raises a line's quantity by 1. Unknown line IDs are a no-op:
// they come from stale UI references, not business-rule violations.
func (c *Cart) Increment(lineID string) {
	if l := c.find(lineID); l != nil {
		l.Quantity++
	}
}

// Decrement lowers a line's quantity by 1; at 0 the line is removed so the
// cart never holds zero-quantity lines.
func (c *Cart) Decrement(lineID string) {
	l := c.find(lineID)
	if l == nil {
		return
	}
	l.Quantity--
	if l.Quantity <= 0 {
		c.Remove(lineID)
	}
}

// Remove drops a line unconditionally. Unknown IDs are a no-op.
func (c *Cart) Remove(lineID string) {
	for i, l := range c.lines {
		if l.ID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetNote attaches free text to a line; totals are unaffected.
func (c *Cart) SetNote(lineID, note string) {
	if l := c.find(lineID); l != nil {
		l.Note = note
	}
}

// SetCustomer records who the bill should be sent to.
func (c *Cart) SetCustomer(ref CustomerRef) {
	c.customer = &ref
}

func (c *Cart) ClearCustomer() {
	c.customer = nil
}

// Clear empties all lines and drops the applied promotion and customer ref.
func (c *Cart) Clear() {
	c.lines = nil
	c.promotion = nil
	c.customer = nil
}

// Lines returns a snapshot copy in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, *l)
	}
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) Promotion() *Promotion {
	return c.promotion
}

func (c *Cart) Customer() *CustomerRef {
	return c.customer
}

func (c *Cart) find(lineID string) *Line {
	for _, l := range c.lines {
		if l.ID == lineID {
			return l
		}
	}
	return nil
}
