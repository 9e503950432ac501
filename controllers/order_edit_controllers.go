package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sudipjangam/tasty-bite-pos/models"
	"github.com/sudipjangam/tasty-bite-pos/pos"
	"github.com/sudipjangam/tasty-bite-pos/services"
	"github.com/sudipjangam/tasty-bite-pos/utils"
)

var ErrNoOpenEdit = errors.New("no open edit for this order")

// OrderEditController reconciles mid-service edits to persisted orders:
// new items buffer plus existing-item removal marks, saved as distinct
// delete and insert sets.
type OrderEditController struct {
	DB       *gorm.DB
	Sessions *services.SessionManager
	Catalog  *services.CatalogService
	Orders   *services.OrderService
	Notifier pos.Notifier
}

func NewOrderEditController(db *gorm.DB, sessions *services.SessionManager, catalog *services.CatalogService, orders *services.OrderService, notifier pos.Notifier) *OrderEditController {
	return &OrderEditController{
		DB:       db,
		Sessions: sessions,
		Catalog:  catalog,
		Orders:   orders,
		Notifier: notifier,
	}
}

type editorView struct {
	OrderID         uint               `json:"order_id"`
	Existing        []pos.ExistingItem `json:"existing"`
	NewItems        []pos.Line         `json:"new_items"`
	PendingRemovals []uint             `json:"pending_removals"`
	HasChanges      bool               `json:"has_changes"`
}

func editorViewOf(e *pos.OrderEditor) editorView {
	return editorView{
		OrderID:         e.OrderID(),
		Existing:        e.Existing(),
		NewItems:        e.Buffer(),
		PendingRemovals: e.PendingRemovals(),
		HasChanges:      e.HasChanges(),
	}
}

func (ec *OrderEditController) orderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return 0, false
	}
	return uint(id), true
}

func (ec *OrderEditController) editor(c *gin.Context) (*pos.OrderEditor, bool) {
	id, ok := ec.orderID(c)
	if !ok {
		return nil, false
	}
	e, ok := ec.Sessions.GetEditor(id)
	if !ok {
		utils.RespondError(c, http.StatusNotFound, ErrNoOpenEdit)
		return nil, false
	}
	return e, true
}

// OpenEdit -> snapshot the persisted items and open an editor. Re-opening
// returns the already-open editor so buffered work is not lost.
func (ec *OrderEditController) OpenEdit(c *gin.Context) {
	id, ok := ec.orderID(c)
	if !ok {
		return
	}

	if existing, open := ec.Sessions.GetEditor(id); open {
		utils.RespondJSON(c, http.StatusOK, "Edit already open", editorViewOf(existing))
		return
	}

	var order models.Order
	if err := ec.DB.Preload("OrderItems").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	snapshot := make([]pos.ExistingItem, 0, len(order.OrderItems))
	for _, it := range order.OrderItems {
		snapshot = append(snapshot, pos.ExistingItem{
			ItemID:    it.ID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			IsCustom:  it.IsCustom,
			Note:      it.Notes,
		})
	}

	editor := pos.NewOrderEditor(order.ID, snapshot, ec.Orders, ec.Notifier)
	ec.Sessions.PutEditor(editor)
	utils.RespondJSON(c, http.StatusCreated, "Edit opened", editorViewOf(editor))
}

// GetEdit -> current editor state.
func (ec *OrderEditController) GetEdit(c *gin.Context) {
	e, ok := ec.editor(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Edit state", editorViewOf(e))
}

// CancelEdit -> discard buffered items and removal marks.
func (ec *OrderEditController) CancelEdit(c *gin.Context) {
	e, ok := ec.editor(c)
	if !ok {
		return
	}
	ec.Sessions.DeleteEditor(e.OrderID())
	utils.RespondJSON(c, http.StatusOK, "Edit cancelled", gin.H{"order_id": e.OrderID()})
}

// AddItem -> add a catalog item to the new-items buffer (merge rule applies
// within the buffer only).
func (ec *OrderEditController) AddItem(c *gin.Context) {
	e, ok := ec.editor(c)
	if !ok {
		return
	}

	type reqBody struct {
		MenuID uint `json:"menu_id" binding:"required"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := ec.Catalog.GetCatalogItem(c.Request.Context(), req.MenuID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	e.AddCatalogItem(*item)
	utils.RespondJSON(c, http.StatusOK, "Item buffered", editorViewOf(e))
}

func (ec *OrderEditController) AddCustomItem(c *gin.Context) {
	e, ok := ec.editor(c)
	if !ok {
		return
	}

	type reqBody struct {
		Name  string          `json:"name" binding:"required"`
		Price decimal.Decimal `json:"price"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if _, err := e.AddCustomItem(req.Name, req.Price); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Custom item buffered", editorViewOf(e))
}

func (ec *OrderEditController) IncrementItem(c *gin.Context) {
	e, ok := ec.editor(c)
	if !ok {
		return
	}
	e.Increment(c.Param("line_id"))
	utils.RespondJSON(c, http.StatusOK, "Item incremented", editorViewOf(e))
}

func (ec *OrderEditController) DecrementItem(c *gin.Context) {
	e, ok := ec.editor(c)
	if !ok {
		return
	}
	e.Decrement(c.Param("line_id"))
	utils.RespondJSON(c, http.StatusOK, "Item decremented", editorViewOf(e))
}

func (ec *OrderEditController) RemoveItem(c *gin.Context) {
	e, ok := ec.editor(c)
	if !ok {
		return
	}
	e.Remove(c.Param("line_id"))
	utils.RespondJSON(c, http.StatusOK, "Item removed from buffer", editorViewOf(e))
}

// RemoveExisting -> mark an already-persisted item for deletion.
func (ec *OrderEditController) RemoveExisting(c *gin.Context) {
	e, ok := ec.editor(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid item id"))
		return
	}
	e.RemoveExisting(uint(itemID))
	utils.RespondJSON(c, http.StatusOK, "Item marked for removal", editorViewOf(e))
}

// RestoreExisting -> undo a pending removal mark.
func (ec *OrderEditController) RestoreExisting(c *gin.Context) {
	e, ok := ec.editor(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid item id"))
		return
	}
	e.RestoreExisting(uint(itemID))
	utils.RespondJSON(c, http.StatusOK, "Removal mark cleared", editorViewOf(e))
}

// SaveEdit -> issue the deletions and insertions in one call. On failure
// the buffer and marks survive so the edit can be retried as-is.
func (ec *OrderEditController) SaveEdit(c *gin.Context) {
	e, ok := ec.editor(c)
	if !ok {
		return
	}

	if err := e.Save(c.Request.Context()); err != nil {
		switch {
		case errors.Is(err, pos.ErrNoChanges):
			utils.RespondError(c, http.StatusBadRequest, err)
		case errors.Is(err, pos.ErrEditInFlight):
			utils.RespondError(c, http.StatusConflict, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	// Drop the editor: a later re-open re-reads the fresh item list with
	// the server-assigned IDs for the just-inserted rows.
	ec.Sessions.DeleteEditor(e.OrderID())
	utils.InfoLogger.Printf("Order #%d edit saved", e.OrderID())
	utils.RespondJSON(c, http.StatusOK, "Edit saved", gin.H{"order_id": e.OrderID()})
}
