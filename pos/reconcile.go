package pos

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

// ExistingItem is a read-only snapshot of a line already persisted
// server-side. Removal marks it for deletion; it is never mutated in place.
type ExistingItem struct {
	ItemID    uint            `json:"item_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	IsCustom  bool            `json:"is_custom"`
	Note      string          `json:"note,omitempty"`
}

// OrderEditor buffers mid-service edits to an already-persisted order.
// Existing items and the new-items buffer are never merged client-side; the
// save sends distinct delete and insert sets so concurrent edits by other
// staff are not clobbered by a full-list overwrite.
type OrderEditor struct {
	orderID  uint
	store    OrderStore
	notifier Notifier

	mu       sync.Mutex
	existing []ExistingItem
	removed  map[uint]bool
	buffer   *Cart
	busy     bool
}

func NewOrderEditor(orderID uint, existing []ExistingItem, store OrderStore, notifier Notifier) *OrderEditor {
	snapshot := make([]ExistingItem, len(existing))
	copy(snapshot, existing)
	return &OrderEditor{
		orderID:  orderID,
		store:    store,
		notifier: notifier,
		existing: snapshot,
		removed:  make(map[uint]bool),
		buffer:   NewCart(),
	}
}

func (e *OrderEditor) OrderID() uint {
	return e.orderID
}

// AddCatalogItem adds to the new-items buffer with the same merge rule as
// the cart: a repeated catalog item increments rather than duplicates.
func (e *OrderEditor) AddCatalogItem(item CatalogItem) *Line {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buffer.AddCatalogItem(item)
}

func (e *OrderEditor) AddCustomItem(name string, price decimal.Decimal) (*Line, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buffer.AddCustomItem(name, price)
}

func (e *OrderEditor) Increment(lineID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buffer.Increment(lineID)
}

func (e *OrderEditor) Decrement(lineID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buffer.Decrement(lineID)
}

func (e *OrderEditor) Remove(lineID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buffer.Remove(lineID)
}

// RemoveExisting marks an already-persisted item for deletion. Unknown item
// IDs are a no-op. The buffer is untouched.
func (e *OrderEditor) RemoveExisting(itemID uint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, it := range e.existing {
		if it.ItemID == itemID {
			e.removed[itemID] = true
			return
		}
	}
}

// RestoreExisting clears a pending removal mark.
func (e *OrderEditor) RestoreExisting(itemID uint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.removed, itemID)
}

// Existing returns the snapshot lines that are not marked for deletion.
func (e *OrderEditor) Existing() []ExistingItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]ExistingItem, 0, len(e.existing))
	for _, it := range e.existing {
		if !e.removed[it.ItemID] {
			out = append(out, it)
		}
	}
	return out
}

// Buffer returns the not-yet-persisted new lines.
func (e *OrderEditor) Buffer() []Line {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buffer.Lines()
}

// PendingRemovals returns the item IDs marked for deletion.
func (e *OrderEditor) PendingRemovals() []uint {
	e.mu.Lock()
	defer e.mu.Unlock()
	ids := make([]uint, 0, len(e.removed))
	for _, it := range e.existing {
		if e.removed[it.ItemID] {
			ids = append(ids, it.ItemID)
		}
	}
	return ids
}

// HasChanges reports whether a save would do anything.
func (e *OrderEditor) HasChanges() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buffer.Len() > 0 || len(e.removed) > 0
}

// Save issues the deletions and insertions in one collaborator call. A no-op
// edit is rejected. Only a successful round-trip clears the buffer and the
// removal marks; on failure both are preserved so the user can retry without
// re-entering anything.
func (e *OrderEditor) Save(ctx context.Context) error {
	e.mu.Lock()
	if e.busy {
		e.mu.Unlock()
		return ErrEditInFlight
	}
	if e.buffer.Len() == 0 && len(e.removed) == 0 {
		e.mu.Unlock()
		return ErrNoChanges
	}

	change := ItemChangeSet{ToInsert: e.buffer.Lines()}
	for _, it := range e.existing {
		if e.removed[it.ItemID] {
			change.ToDelete = append(change.ToDelete, it.ItemID)
		}
	}

	e.busy = true
	e.mu.Unlock()

	err := e.store.UpdateOrderItems(ctx, e.orderID, change)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.busy = false
	if err != nil {
		return err
	}

	kept := e.existing[:0]
	for _, it := range e.existing {
		if !e.removed[it.ItemID] {
			kept = append(kept, it)
		}
	}
	e.existing = kept
	e.removed = make(map[uint]bool)
	e.buffer = NewCart()
	emit(e.notifier, Outcome{Kind: OutcomeEditSaved, OrderID: e.orderID})
	return nil
}
