package pos

import (
	"context"

	"github.com/shopspring/decimal"
)

// CatalogLookup populates the add-item search; read-only.
type CatalogLookup interface {
	SearchCatalog(ctx context.Context, query string) ([]CatalogItem, error)
}

// GuestContext is the detected in-house guest for the current table/room
// context. Its presence gates the room_charge method.
type GuestContext struct {
	ReservationID uint   `json:"reservation_id"`
	RoomID        uint   `json:"room_id"`
	RoomName      string `json:"room_name"`
	GuestName     string `json:"guest_name"`
}

// GuestDetector is supplied by the surrounding table/room-context layer.
type GuestDetector interface {
	DetectActiveGuest(ctx context.Context, tableID uint) (*GuestContext, error)
}

// OrderPayload is the finalized order handed to the persistence collaborator.
// Totals are re-derived from the cart at confirm time, never trusted from
// stale UI state.
type OrderPayload struct {
	Lines       []Line          `json:"lines"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
	PromotionID *uint           `json:"promotion_id,omitempty"`
	Method      Method          `json:"method"`
	TableID     *uint           `json:"table_id,omitempty"`
	Customer    *CustomerRef    `json:"customer,omitempty"`
	Reservation *GuestContext   `json:"reservation,omitempty"`
}

// ItemChangeSet carries an order edit as distinct delete and insert sets, so
// a save never overwrites lines some other terminal touched concurrently.
type ItemChangeSet struct {
	ToDelete []uint `json:"to_delete"`
	ToInsert []Line `json:"to_insert"`
}

// OrderStore persists orders. Both calls are atomic at the collaborator
// boundary: all-or-nothing.
type OrderStore interface {
	CreateOrder(ctx context.Context, payload OrderPayload) (uint, error)
	UpdateOrderItems(ctx context.Context, orderID uint, change ItemChangeSet) error
}
