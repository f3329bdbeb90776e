package domain

// Action is a tagged request routed to the handlers of the current mode.
// The same shape is used for actions and transitions; the mode's tables decide
// which one handles it.
type Action struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// NewAction builds an Action with an optional payload.
func NewAction(actionType string, payload any) Action {
	return Action{Type: actionType, Payload: payload}
}

// HandlerKind reports which table of a mode handles an action type.
type HandlerKind int

const (
	KindNone       HandlerKind = iota // Not declared in the mode
	KindAction                        // Replaces data, keeps mode
	KindTransition                    // May replace mode and data
)

// String returns the lowercase name of the kind.
func (k HandlerKind) String() string {
	switch k {
	case KindAction:
		return "action"
	case KindTransition:
		return "transition"
	default:
		return "none"
	}
}
