package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sudipjangam/tasty-bite-pos/pos"
	"github.com/sudipjangam/tasty-bite-pos/services"
	"github.com/sudipjangam/tasty-bite-pos/utils"
)

var ErrSessionNotFound = errors.New("pos session not found")

// SessionController exposes the cart command surface for one POS terminal
// session. The cart itself lives server-side in the session manager.
type SessionController struct {
	Sessions     *services.SessionManager
	Catalog      *services.CatalogService
	Promotions   *services.PromotionService
	Reservations *services.ReservationService
	Orders       *services.OrderService
	Notifier     pos.Notifier
}

func NewSessionController(
	sessions *services.SessionManager,
	catalog *services.CatalogService,
	promotions *services.PromotionService,
	reservations *services.ReservationService,
	orders *services.OrderService,
	notifier pos.Notifier,
) *SessionController {
	return &SessionController{
		Sessions:     sessions,
		Catalog:      catalog,
		Promotions:   promotions,
		Reservations: reservations,
		Orders:       orders,
		Notifier:     notifier,
	}
}

// sessionView is the snapshot the terminal renders after every command.
type sessionView struct {
	ID               string            `json:"id"`
	Phase            pos.Phase         `json:"phase"`
	Lines            []pos.Line        `json:"lines"`
	Totals           pos.Totals        `json:"totals"`
	TotalDisplay     string            `json:"total_display"`
	Promotion        *pos.Promotion    `json:"promotion,omitempty"`
	Customer         *pos.CustomerRef  `json:"customer,omitempty"`
	Guest            *pos.GuestContext `json:"guest,omitempty"`
	AvailableMethods []pos.Method      `json:"available_methods"`
}

func viewOf(s *services.POSSession) sessionView {
	totals := s.Cart.Totals()
	return sessionView{
		ID:               s.ID,
		Phase:            s.Settlement.Phase(),
		Lines:            s.Cart.Lines(),
		Totals:           totals,
		TotalDisplay:     utils.FormatCurrency(totals.Total),
		Promotion:        s.Cart.Promotion(),
		Customer:         s.Cart.Customer(),
		Guest:            s.Settlement.Guest(),
		AvailableMethods: s.Settlement.AvailableMethods(),
	}
}

func (sc *SessionController) session(c *gin.Context) (*services.POSSession, bool) {
	s, ok := sc.Sessions.Get(c.Param("session_id"))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, ErrSessionNotFound)
		return nil, false
	}
	return s, true
}

// requireBuilding rejects cart mutations once checkout has begun; the
// terminal must go back to Building first.
func requireBuilding(c *gin.Context, s *services.POSSession) bool {
	if s.Settlement.Phase() != pos.PhaseBuilding {
		utils.RespondError(c, http.StatusConflict, pos.ErrWrongPhase)
		return false
	}
	return true
}

// CreateSession -> open a cart for a terminal, optionally bound to a table.
// Guest detection runs once here so the room_charge gate is known up front.
func (sc *SessionController) CreateSession(c *gin.Context) {
	type reqBody struct {
		TableID *uint `json:"table_id"`
	}
	var req reqBody
	// an empty body is fine: a walk-in session has no table context
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session := sc.Sessions.Create(sc.Orders, sc.Promotions, sc.Notifier, req.TableID)
	session.Lock()
	defer session.Unlock()

	if req.TableID != nil {
		guest, err := sc.Reservations.DetectActiveGuest(c.Request.Context(), *req.TableID)
		if err != nil {
			utils.ErrorLogger.Printf("Guest detection failed for table %d: %v", *req.TableID, err)
		} else if guest != nil {
			session.Settlement.AttachGuest(guest)
			utils.InfoLogger.Printf("Session %s: in-house guest %s (room %s)", session.ID, guest.GuestName, guest.RoomName)
		}
	}

	utils.RespondJSON(c, http.StatusCreated, "POS session created", viewOf(session))
}

// GetSession -> current cart snapshot.
func (sc *SessionController) GetSession(c *gin.Context) {
	s, ok := sc.session(c)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()
	utils.RespondJSON(c, http.StatusOK, "POS session", viewOf(s))
}

// CloseSession -> clear the cart and drop the session.
func (sc *SessionController) CloseSession(c *gin.Context) {
	s, ok := sc.session(c)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()
	s.Cart.Clear()
	sc.Sessions.Delete(s.ID)
	utils.RespondJSON(c, http.StatusOK, "POS session closed", gin.H{"session_id": s.ID})
}

// AddItem -> add a catalog item; same item merges into the existing line.
func (sc *SessionController) AddItem(c *gin.Context) {
	s, ok := sc.session(c)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()
	if !requireBuilding(c, s) {
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

	item, err := sc.Catalog.GetCatalogItem(c.Request.Context(), req.MenuID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	s.Cart.AddCatalogItem(*item)
	utils.RespondJSON(c, http.StatusOK, "Item added", viewOf(s))
}

// AddCustomItem -> ad-hoc line, never merged with existing lines.
func (sc *SessionController) AddCustomItem(c *gin.Context) {
	s, ok := sc.session(c)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()
	if !requireBuilding(c, s) {
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

	if _, err := s.Cart.AddCustomItem(req.Name, req.Price); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Custom item added", viewOf(s))
}

// IncrementItem / DecrementItem / RemoveItem operate by line id. A stale
// line id is a no-op, mirrored to the client as the unchanged snapshot.
func (sc *SessionController) IncrementItem(c *gin.Context) {
	s, ok := sc.session(c)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()
	if !requireBuilding(c, s) {
		return
	}
	s.Cart.Increment(c.Param("line_id"))
	utils.RespondJSON(c, http.StatusOK, "Item incremented", viewOf(s))
}

func (sc *SessionController) DecrementItem(c *gin.Context) {
	s, ok := sc.session(c)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()
	if !requireBuilding(c, s) {
		return
	}
	s.Cart.Decrement(c.Param("line_id"))
	utils.RespondJSON(c, http.StatusOK, "Item decremented", viewOf(s))
}

func (sc *SessionController) RemoveItem(c *gin.Context) {
	s, ok := sc.session(c)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()
	if !requireBuilding(c, s) {
		return
	}
	s.Cart.Remove(c.Param("line_id"))
	utils.RespondJSON(c, http.StatusOK, "Item removed", viewOf(s))
}

// SetItemNote -> attach kitchen notes to a line.
func (sc *SessionController) SetItemNote(c *gin.Context) {
	s, ok := sc.session(c)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()
	if !requireBuilding(c, s) {
		return
	}

	type reqBody struct {
		Note string `json:"note"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	s.Cart.SetNote(c.Param("line_id"), req.Note)
	utils.RespondJSON(c, http.StatusOK, "Note updated", viewOf(s))
}

// SetCustomer -> record the bill recipient and toggle send-bill.
func (sc *SessionController) SetCustomer(c *gin.Context) {
	s, ok := sc.session(c)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()

	type reqBody struct {
		Name     string `json:"name" binding:"required"`
		Phone    string `json:"phone"`
		Email    string `json:"email"`
		SendBill bool   `json:"send_bill"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	s.Cart.SetCustomer(pos.CustomerRef{Name: req.Name, Phone: req.Phone, Email: req.Email})
	s.Settlement.EnableSendBill(req.SendBill)
	utils.RespondJSON(c, http.StatusOK, "Customer updated", viewOf(s))
}

// ApplyPromotion -> resolve and apply a code. Not-found/inactive codes leave
// the cart untouched and come back as a recoverable 422.
func (sc *SessionController) ApplyPromotion(c *gin.Context) {
	s, ok := sc.session(c)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()
	if !requireBuilding(c, s) {
		return
	}

	type reqBody struct {
		Code string `json:"code" binding:"required"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	_, err := s.Resolver.Apply(c.Request.Context(), s.Cart, req.Code)
	if err != nil {
		if errors.Is(err, pos.ErrPromotionNotFound) || errors.Is(err, pos.ErrPromotionInactive) {
			utils.RespondError(c, http.StatusUnprocessableEntity, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Promotion applied", viewOf(s))
}

func (sc *SessionController) RemovePromotion(c *gin.Context) {
	s, ok := sc.session(c)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()
	if !requireBuilding(c, s) {
		return
	}
	s.Resolver.Remove(s.Cart)
	utils.RespondJSON(c, http.StatusOK, "Promotion removed", viewOf(s))
}
