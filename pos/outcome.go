package pos

// Outcome kinds surfaced to the UI shell. The core emits these through the
// Notifier; it never renders anything itself.
const (
	OutcomePromotionApplied    = "promotion_applied"
	OutcomePromotionInvalid    = "promotion_invalid"
	OutcomeSettlementSucceeded = "settlement_succeeded"
	OutcomeSettlementFailed    = "settlement_failed"
	OutcomeEditSaved           = "edit_saved"
)

type Outcome struct {
	Kind      string `json:"kind"`
	SessionID string `json:"session_id,omitempty"`
	OrderID   uint   `json:"order_id,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Notifier fans semantic outcomes out to the surrounding shell.
type Notifier interface {
	Notify(outcome Outcome)
}

// emit is nil-safe; a core wired without a notifier simply stays quiet.
func emit(n Notifier, o Outcome) {
	if n != nil {
		n.Notify(o)
	}
}
