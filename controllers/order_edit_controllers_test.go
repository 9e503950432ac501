package controllers_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudipjangam/tasty-bite-pos/models"
	"github.com/sudipjangam/tasty-bite-pos/pos"
	"github.com/sudipjangam/tasty-bite-pos/services"
)

type editSnapshot struct {
	OrderID  uint `json:"order_id"`
	Existing []struct {
		ItemID   uint   `json:"item_id"`
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	} `json:"existing"`
	NewItems []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	} `json:"new_items"`
	PendingRemovals []uint `json:"pending_removals"`
	HasChanges      bool   `json:"has_changes"`
}

// seedOrder persists an order with Tea x2 and a custom Samosa through the
// order service, returning the order ID.
func (ts *testServer) seedOrder(t *testing.T) uint {
	t.Helper()
	menu := ts.seedMenu(t, "Tea", 20)
	svc := services.NewOrderService(ts.db)
	orderID, err := svc.CreateOrder(context.Background(), pos.OrderPayload{
		Lines: []pos.Line{
			{ID: "l1", SourceItemID: menu.ID, Name: "Tea", UnitPrice: decimal.NewFromInt(20), Quantity: 2},
			{ID: "l2", Name: "Samosa", UnitPrice: decimal.NewFromInt(15), Quantity: 1, IsCustom: true},
		},
		Subtotal: decimal.NewFromInt(55),
		Discount: decimal.Zero,
		Total:    decimal.NewFromInt(55),
		Method:   pos.MethodCash,
	})
	require.NoError(t, err)
	return orderID
}

func TestOpenEditSnapshotsPersistedItems(t *testing.T) {
	ts := newTestServer(t)
	orderID := ts.seedOrder(t)

	w, envelope := ts.do(t, http.MethodPost, fmt.Sprintf("/orders/%d/edit", orderID), nil)
	require.Equal(t, http.StatusCreated, w.Code)
	view := decodeData[editSnapshot](t, envelope)

	assert.Equal(t, orderID, view.OrderID)
	require.Len(t, view.Existing, 2)
	assert.Empty(t, view.NewItems)
	assert.False(t, view.HasChanges)
}

func TestOpenEditUnknownOrder(t *testing.T) {
	ts := newTestServer(t)

	w, _ := ts.do(t, http.MethodPost, "/orders/9999/edit", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReopenReturnsSameEditor(t *testing.T) {
	ts := newTestServer(t)
	orderID := ts.seedOrder(t)

	ts.do(t, http.MethodPost, fmt.Sprintf("/orders/%d/edit", orderID), nil)
	ts.do(t, http.MethodPost, fmt.Sprintf("/orders/%d/edit/custom-items", orderID),
		map[string]any{"name": "Lassi", "price": "40"})

	// re-opening must not discard the buffered Lassi
	w, envelope := ts.do(t, http.MethodPost, fmt.Sprintf("/orders/%d/edit", orderID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decodeData[editSnapshot](t, envelope)
	require.Len(t, view.NewItems, 1)
	assert.Equal(t, "Lassi", view.NewItems[0].Name)
}

func TestEditBufferAndRemovalMarks(t *testing.T) {
	ts := newTestServer(t)
	orderID := ts.seedOrder(t)

	_, envelope := ts.do(t, http.MethodPost, fmt.Sprintf("/orders/%d/edit", orderID), nil)
	view := decodeData[editSnapshot](t, envelope)
	samosaID := view.Existing[1].ItemID

	w, envelope := ts.do(t, http.MethodDelete,
		fmt.Sprintf("/orders/%d/edit/existing/%d", orderID, samosaID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	view = decodeData[editSnapshot](t, envelope)
	assert.Len(t, view.Existing, 1)
	assert.Equal(t, []uint{samosaID}, view.PendingRemovals)
	assert.True(t, view.HasChanges)

	w, envelope = ts.do(t, http.MethodPost,
		fmt.Sprintf("/orders/%d/edit/existing/%d/restore", orderID, samosaID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	view = decodeData[editSnapshot](t, envelope)
	assert.Len(t, view.Existing, 2)
	assert.False(t, view.HasChanges)
}

func TestSaveEditRejectsNoChanges(t *testing.T) {
	ts := newTestServer(t)
	orderID := ts.seedOrder(t)
	ts.do(t, http.MethodPost, fmt.Sprintf("/orders/%d/edit", orderID), nil)

	w, _ := ts.do(t, http.MethodPost, fmt.Sprintf("/orders/%d/edit/save", orderID), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveEditAppliesChangeSetAndDropsEditor(t *testing.T) {
	ts := newTestServer(t)
	orderID := ts.seedOrder(t)

	_, envelope := ts.do(t, http.MethodPost, fmt.Sprintf("/orders/%d/edit", orderID), nil)
	view := decodeData[editSnapshot](t, envelope)
	samosaID := view.Existing[1].ItemID

	ts.do(t, http.MethodDelete, fmt.Sprintf("/orders/%d/edit/existing/%d", orderID, samosaID), nil)
	ts.do(t, http.MethodPost, fmt.Sprintf("/orders/%d/edit/custom-items", orderID),
		map[string]any{"name": "Lassi", "price": "40"})

	w, _ := ts.do(t, http.MethodPost, fmt.Sprintf("/orders/%d/edit/save", orderID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// editor dropped after a successful save
	w, _ = ts.do(t, http.MethodGet, fmt.Sprintf("/orders/%d/edit", orderID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// persisted rows: Tea survives, Samosa gone, Lassi inserted
	var items []models.OrderItem
	require.NoError(t, ts.db.Where("order_id = ?", orderID).Order("id asc").Find(&items).Error)
	require.Len(t, items, 2)
	assert.Equal(t, "Tea", items[0].Name)
	assert.Equal(t, "Lassi", items[1].Name)

	// totals recomputed: 2x20 + 40
	var order models.Order
	require.NoError(t, ts.db.First(&order, orderID).Error)
	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(80)), "got %s", order.Subtotal)
}

func TestCancelEditDiscardsWork(t *testing.T) {
	ts := newTestServer(t)
	orderID := ts.seedOrder(t)
	ts.do(t, http.MethodPost, fmt.Sprintf("/orders/%d/edit", orderID), nil)
	ts.do(t, http.MethodPost, fmt.Sprintf("/orders/%d/edit/custom-items", orderID),
		map[string]any{"name": "Lassi", "price": "40"})

	w, _ := ts.do(t, http.MethodDelete, fmt.Sprintf("/orders/%d/edit", orderID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// fresh open shows a clean snapshot
	_, envelope := ts.do(t, http.MethodPost, fmt.Sprintf("/orders/%d/edit", orderID), nil)
	view := decodeData[editSnapshot](t, envelope)
	assert.Empty(t, view.NewItems)

	// nothing leaked into the persisted order
	var count int64
	require.NoError(t, ts.db.Model(&models.OrderItem{}).Where("order_id = ?", orderID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestEditLineCommandsOperateOnBufferOnly(t *testing.T) {
	ts := newTestServer(t)
	orderID := ts.seedOrder(t)
	ts.do(t, http.MethodPost, fmt.Sprintf("/orders/%d/edit", orderID), nil)

	_, envelope := ts.do(t, http.MethodPost, fmt.Sprintf("/orders/%d/edit/custom-items", orderID),
		map[string]any{"name": "Lassi", "price": "40"})
	view := decodeData[editSnapshot](t, envelope)
	lineID := view.NewItems[0].ID

	_, envelope = ts.do(t, http.MethodPost,
		fmt.Sprintf("/orders/%d/edit/items/%s/increment", orderID, lineID), nil)
	view = decodeData[editSnapshot](t, envelope)
	assert.Equal(t, 2, view.NewItems[0].Quantity)
	// persisted Tea line untouched
	assert.Equal(t, 2, view.Existing[0].Quantity)

	_, envelope = ts.do(t, http.MethodDelete,
		fmt.Sprintf("/orders/%d/edit/items/%s", orderID, lineID), nil)
	view = decodeData[editSnapshot](t, envelope)
	assert.Empty(t, view.NewItems)
	assert.Len(t, view.Existing, 2)
}
