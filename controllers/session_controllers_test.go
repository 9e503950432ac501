package controllers_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudipjangam/tasty-bite-pos/models"
)

func TestCreateSessionWithoutBody(t *testing.T) {
	ts := newTestServer(t)

	session := ts.createSession(t, nil)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "building", session.Phase)
	assert.Empty(t, session.Lines)
	assert.Equal(t, []string{"cash", "card", "upi"}, session.AvailableMethods)
}

func TestCreateSessionDetectsInHouseGuest(t *testing.T) {
	ts := newTestServer(t)
	room := models.Room{RoomNumber: "101", Name: "Deluxe 101"}
	require.NoError(t, ts.db.Create(&room).Error)
	now := time.Now()
	require.NoError(t, ts.db.Create(&models.Reservation{
		RoomID: room.ID, GuestName: "Ravi",
		Status: models.ReservationCheckedIn, CheckInAt: &now,
	}).Error)
	table := models.Table{TableNumber: "R101", RoomID: &room.ID}
	require.NoError(t, ts.db.Create(&table).Error)

	session := ts.createSession(t, map[string]any{"table_id": table.ID})

	require.NotNil(t, session.Guest)
	assert.Equal(t, "Ravi", session.Guest.GuestName)
	assert.Contains(t, session.AvailableMethods, "room_charge")
}

func TestGetSessionUnknownID(t *testing.T) {
	ts := newTestServer(t)

	w, _ := ts.do(t, http.MethodGet, "/pos/sessions/no-such-id", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddItemMergesRepeatedMenu(t *testing.T) {
	ts := newTestServer(t)
	tea := ts.seedMenu(t, "Tea", 20)
	session := ts.createSession(t, nil)
	path := fmt.Sprintf("/pos/sessions/%s/items", session.ID)

	for i := 0; i < 3; i++ {
		w, _ := ts.do(t, http.MethodPost, path, map[string]any{"menu_id": tea.ID})
		require.Equal(t, http.StatusOK, w.Code)
	}

	_, envelope := ts.do(t, http.MethodGet, "/pos/sessions/"+session.ID, nil)
	view := decodeData[sessionSnapshot](t, envelope)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 3, view.Lines[0].Quantity)
	assert.True(t, view.Totals.Subtotal.Equal(decimal.NewFromInt(60)))
}

func TestAddItemUnknownMenu(t *testing.T) {
	ts := newTestServer(t)
	session := ts.createSession(t, nil)

	w, _ := ts.do(t, http.MethodPost, fmt.Sprintf("/pos/sessions/%s/items", session.ID),
		map[string]any{"menu_id": 9999})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddCustomItemValidation(t *testing.T) {
	ts := newTestServer(t)
	session := ts.createSession(t, nil)
	path := fmt.Sprintf("/pos/sessions/%s/custom-items", session.ID)

	w, _ := ts.do(t, http.MethodPost, path, map[string]any{"name": "Chef Special", "price": "0"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, envelope := ts.do(t, http.MethodPost, path, map[string]any{"name": "Chef Special", "price": "80"})
	require.Equal(t, http.StatusOK, w.Code)
	view := decodeData[sessionSnapshot](t, envelope)
	require.Len(t, view.Lines, 1)
	assert.True(t, view.Lines[0].IsCustom)
}

func TestLineCommandsAndNotes(t *testing.T) {
	ts := newTestServer(t)
	tea := ts.seedMenu(t, "Tea", 20)
	session := ts.createSession(t, nil)

	_, envelope := ts.do(t, http.MethodPost,
		fmt.Sprintf("/pos/sessions/%s/items", session.ID), map[string]any{"menu_id": tea.ID})
	view := decodeData[sessionSnapshot](t, envelope)
	lineID := view.Lines[0].ID

	w, _ := ts.do(t, http.MethodPost,
		fmt.Sprintf("/pos/sessions/%s/items/%s/increment", session.ID, lineID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, envelope = ts.do(t, http.MethodPatch,
		fmt.Sprintf("/pos/sessions/%s/items/%s/note", session.ID, lineID),
		map[string]any{"note": "less sugar"})
	require.Equal(t, http.StatusOK, w.Code)
	view = decodeData[sessionSnapshot](t, envelope)
	assert.Equal(t, 2, view.Lines[0].Quantity)
	assert.Equal(t, "less sugar", view.Lines[0].Note)

	// decrement to zero removes the line
	ts.do(t, http.MethodPost, fmt.Sprintf("/pos/sessions/%s/items/%s/decrement", session.ID, lineID), nil)
	_, envelope = ts.do(t, http.MethodPost,
		fmt.Sprintf("/pos/sessions/%s/items/%s/decrement", session.ID, lineID), nil)
	view = decodeData[sessionSnapshot](t, envelope)
	assert.Empty(t, view.Lines)
}

func TestApplyPromotionRecoverableFailure(t *testing.T) {
	ts := newTestServer(t)
	tea := ts.seedMenu(t, "Tea", 20)
	session := ts.createSession(t, nil)
	ts.do(t, http.MethodPost, fmt.Sprintf("/pos/sessions/%s/items", session.ID),
		map[string]any{"menu_id": tea.ID})

	w, _ := ts.do(t, http.MethodPost,
		fmt.Sprintf("/pos/sessions/%s/promotion", session.ID), map[string]any{"code": "NOSUCH"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// cart untouched, still usable
	_, envelope := ts.do(t, http.MethodGet, "/pos/sessions/"+session.ID, nil)
	view := decodeData[sessionSnapshot](t, envelope)
	assert.Nil(t, view.Promotion)
	assert.True(t, view.Totals.Total.Equal(decimal.NewFromInt(20)))
}

func TestApplyPromotionNormalizesAndReplaces(t *testing.T) {
	ts := newTestServer(t)
	tea := ts.seedMenu(t, "Tea", 20)
	ts.seedPercentPromotion(t, "SAVE10", 10)
	ts.seedPercentPromotion(t, "SAVE20", 20)
	session := ts.createSession(t, nil)
	ts.do(t, http.MethodPost, fmt.Sprintf("/pos/sessions/%s/items", session.ID),
		map[string]any{"menu_id": tea.ID})

	w, _ := ts.do(t, http.MethodPost,
		fmt.Sprintf("/pos/sessions/%s/promotion", session.ID), map[string]any{"code": "  save10 "})
	require.Equal(t, http.StatusOK, w.Code)

	w, envelope := ts.do(t, http.MethodPost,
		fmt.Sprintf("/pos/sessions/%s/promotion", session.ID), map[string]any{"code": "SAVE20"})
	require.Equal(t, http.StatusOK, w.Code)
	view := decodeData[sessionSnapshot](t, envelope)
	require.NotNil(t, view.Promotion)
	assert.Equal(t, "SAVE20", view.Promotion.Code)
	assert.True(t, view.Totals.Discount.Equal(decimal.NewFromInt(4)), "got %s", view.Totals.Discount)
}

func TestRemovePromotion(t *testing.T) {
	ts := newTestServer(t)
	tea := ts.seedMenu(t, "Tea", 20)
	ts.seedPercentPromotion(t, "SAVE10", 10)
	session := ts.createSession(t, nil)
	ts.do(t, http.MethodPost, fmt.Sprintf("/pos/sessions/%s/items", session.ID),
		map[string]any{"menu_id": tea.ID})
	ts.do(t, http.MethodPost, fmt.Sprintf("/pos/sessions/%s/promotion", session.ID),
		map[string]any{"code": "SAVE10"})

	w, envelope := ts.do(t, http.MethodDelete,
		fmt.Sprintf("/pos/sessions/%s/promotion", session.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decodeData[sessionSnapshot](t, envelope)
	assert.Nil(t, view.Promotion)
	assert.True(t, view.Totals.Discount.IsZero())
}

func TestCartMutationsRejectedOutsideBuilding(t *testing.T) {
	ts := newTestServer(t)
	tea := ts.seedMenu(t, "Tea", 20)
	session := ts.createSession(t, nil)
	ts.do(t, http.MethodPost, fmt.Sprintf("/pos/sessions/%s/items", session.ID),
		map[string]any{"menu_id": tea.ID})

	w, _ := ts.do(t, http.MethodPost, fmt.Sprintf("/pos/sessions/%s/checkout", session.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = ts.do(t, http.MethodPost, fmt.Sprintf("/pos/sessions/%s/items", session.ID),
		map[string]any{"menu_id": tea.ID})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = ts.do(t, http.MethodPost, fmt.Sprintf("/pos/sessions/%s/promotion", session.ID),
		map[string]any{"code": "SAVE10"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestConcurrentCartCommandsAreSerialized(t *testing.T) {
	ts := newTestServer(t)
	tea := ts.seedMenu(t, "Tea", 20)
	session := ts.createSession(t, nil)
	addPath := fmt.Sprintf("/pos/sessions/%s/items", session.ID)

	// double-fired add-item requests land on per-request goroutines; every
	// one must merge into the single Tea line without a lost update
	const adds = 20
	var wg sync.WaitGroup
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w, _ := ts.do(t, http.MethodPost, addPath, map[string]any{"menu_id": tea.ID})
			assert.Equal(t, http.StatusOK, w.Code)
		}()
	}
	wg.Wait()

	_, envelope := ts.do(t, http.MethodGet, "/pos/sessions/"+session.ID, nil)
	view := decodeData[sessionSnapshot](t, envelope)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, adds, view.Lines[0].Quantity)

	// same for quantity bumps on an existing line
	const bumps = 10
	incPath := fmt.Sprintf("/pos/sessions/%s/items/%s/increment", session.ID, view.Lines[0].ID)
	for i := 0; i < bumps; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w, _ := ts.do(t, http.MethodPost, incPath, nil)
			assert.Equal(t, http.StatusOK, w.Code)
		}()
	}
	wg.Wait()

	_, envelope = ts.do(t, http.MethodGet, "/pos/sessions/"+session.ID, nil)
	view = decodeData[sessionSnapshot](t, envelope)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, adds+bumps, view.Lines[0].Quantity)
}

func TestCloseSession(t *testing.T) {
	ts := newTestServer(t)
	session := ts.createSession(t, nil)

	w, _ := ts.do(t, http.MethodDelete, "/pos/sessions/"+session.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = ts.do(t, http.MethodGet, "/pos/sessions/"+session.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
