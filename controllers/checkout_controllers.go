package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sudipjangam/tasty-bite-pos/pos"
	"github.com/sudipjangam/tasty-bite-pos/services"
	"github.com/sudipjangam/tasty-bite-pos/utils"
)

// CheckoutController drives the settlement state machine of a session:
// Building -> ChoosingMethod -> AwaitingConfirmation -> Settled.
type CheckoutController struct {
	Sessions *services.SessionManager
}

func NewCheckoutController(sessions *services.SessionManager) *CheckoutController {
	return &CheckoutController{Sessions: sessions}
}

func (cc *CheckoutController) session(c *gin.Context) (*services.POSSession, bool) {
	s, ok := cc.Sessions.Get(c.Param("session_id"))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, ErrSessionNotFound)
		return nil, false
	}
	return s, true
}

// Begin -> enter method choice. Reports which payment paths are open;
// room_charge shows up only when an in-house guest was detected.
func (cc *CheckoutController) Begin(c *gin.Context) {
	s, ok := cc.session(c)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()
	if err := s.Settlement.Begin(); err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Checkout started", viewOf(s))
}

// ChooseMethod -> lock in a payment method.
func (cc *CheckoutController) ChooseMethod(c *gin.Context) {
	s, ok := cc.session(c)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()

	type reqBody struct {
		Method string `json:"method" binding:"required"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := s.Settlement.ChooseMethod(pos.Method(req.Method)); err != nil {
		switch {
		case errors.Is(err, pos.ErrMethodUnavailable):
			utils.RespondError(c, http.StatusUnprocessableEntity, err)
		default:
			utils.RespondError(c, http.StatusConflict, err)
		}
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment method selected", viewOf(s))
}

// Back -> abandon checkout and return to building. Nothing was persisted.
func (cc *CheckoutController) Back(c *gin.Context) {
	s, ok := cc.session(c)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()
	if err := s.Settlement.Back(); err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Returned to cart", viewOf(s))
}

// Confirm -> persist the order. On failure the phase is preserved so the
// terminal can retry; the busy flag swallows double-clicks.
func (cc *CheckoutController) Confirm(c *gin.Context) {
	s, ok := cc.session(c)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()

	orderID, err := s.Settlement.Confirm(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, pos.ErrEmptyCart), errors.Is(err, pos.ErrCustomerRequired):
			utils.RespondError(c, http.StatusBadRequest, err)
		case errors.Is(err, pos.ErrWrongPhase),
			errors.Is(err, pos.ErrSettlementInFlight),
			errors.Is(err, pos.ErrNoGuestDetected):
			utils.RespondError(c, http.StatusConflict, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.InfoLogger.Printf("Session %s settled as order #%d", s.ID, orderID)
	utils.RespondJSON(c, http.StatusOK, "Order settled", gin.H{
		"order_id": orderID,
		"session":  viewOf(s),
	})
}
