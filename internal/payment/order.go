package payment

import "github.com/cockroachdb/errors"

// State of a payment order. Succeeded and Failed are terminal and absorbing.
type State string

const (
	StateInitiated             State = "INITIATED"
	StateAwaitingGatewayResult State = "AWAITING_GATEWAY_RESULT"
	StateSucceeded             State = "SUCCEEDED"
	StateFailed                State = "FAILED"
)

// ErrTerminalState is returned when a transition is attempted out of a
// terminal state.
var ErrTerminalState = errors.New("payment order is in a terminal state")

var transitions = map[State][]State{
	StateInitiated:             {StateAwaitingGatewayResult, StateFailed},
	StateAwaitingGatewayResult: {StateSucceeded, StateFailed},
}

// Order is a payment order correlated with the gateway by ID. The ID appears
// in exactly one initiation call and keys every subsequent status query.
// Orders are not persisted locally; the gateway's record is authoritative and
// the lifecycle is re-derived from it on each reconciliation.
type Order struct {
	ID          string
	OwnerName   string
	Phone       string
	AmountMinor int64
	State       State
}

// Transition moves the order to next. Re-asserting the current state is a
// no-op; any other transition out of a terminal state fails.
func (o *Order) Transition(next State) error {
	if next == o.State {
		return nil
	}
	allowed, ok := transitions[o.State]
	if !ok {
		return errors.Wrapf(ErrTerminalState, "%s -> %s", o.State, next)
	}
	for _, s := range allowed {
		if s == next {
			o.State = next
			return nil
		}
	}
	return errors.Newf("invalid payment state transition %s -> %s", o.State, next)
}
