package service

import "fmt"

// CheckoutState is the position of a single checkout run.
type CheckoutState string

const (
	StateIdle       CheckoutState = "idle"
	StateValidating CheckoutState = "validating"
	StatePriced     CheckoutState = "priced"
	StateCommitting CheckoutState = "committing"
	StateShipping   CheckoutState = "shipping"
	StateReporting  CheckoutState = "reporting"
	StateDone       CheckoutState = "done"
	StateRejected   CheckoutState = "rejected"
)

var checkoutStateTransitionChart = CheckoutStateTransitionChart{
	StateIdle:       {StateValidating},
	StateValidating: {StatePriced, StateRejected},
	StatePriced:     {StateCommitting, StateRejected},
	StateCommitting: {StateShipping},
	StateShipping:   {StateReporting},
	StateReporting:  {StateDone},
}

type CheckoutStateTransitionChart map[CheckoutState][]CheckoutState

func (s CheckoutStateTransitionChart) Allowed(from, to CheckoutState) bool {
	list, exists := s[from]
	if !exists {
		return false
	}
	for _, state := range list {
		if state == to {
			return true
		}
	}
	return false
}

// checkoutRun tracks one pass through the chart.
type checkoutRun struct {
	state CheckoutState
	trace []CheckoutState
}

func newCheckoutRun() *checkoutRun {
	return &checkoutRun{state: StateIdle, trace: []CheckoutState{StateIdle}}
}

func (r *checkoutRun) advance(to CheckoutState) {
	if !checkoutStateTransitionChart.Allowed(r.state, to) {
		panic(fmt.Sprintf("checkout: illegal transition %s -> %s", r.state, to))
	}
	r.state = to
	r.trace = append(r.trace, to)
}
