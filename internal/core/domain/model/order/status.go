package order

import (
	"fmt"
	"strings"

	"warehouse/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions (see Transition):
//
//	Pending ──Process──> Processing
//	   │                     │
//	   └──Prepare──┬─────────┘
//	               v
//	        Ready for Pickup ──Claim──> Out for Delivery ──Deliver──────> Delivered
//	                                         │   ^
//	                                         │   └─ReportOutForDelivery
//	                                         └──────FailDelivery──────> Failed Delivery
//
// Delivered and Failed Delivery are terminal. A failed delivery is never
// offered for claiming again.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// Pending is the status of a freshly checked-out order.
	Pending

	// Processing means warehouse staff have started picking the order.
	Processing

	// ReadyForPickup orders are visible to drivers and can be claimed.
	ReadyForPickup

	// OutForDelivery orders have exactly one assigned driver.
	OutForDelivery

	// Delivered is terminal.
	Delivered

	// FailedDelivery is terminal.
	FailedDelivery
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		Processing:     "Processing",
		ReadyForPickup: "Ready for Pickup",
		OutForDelivery: "Out for Delivery",
		Delivered:      "Delivered",
		FailedDelivery: "Failed Delivery",
	}
}

// ParseStatus converts the persisted or client supplied label into a Status.
// Matching ignores case and surrounding whitespace.
//
// Example:
//
//	status, err := order.ParseStatus("ready for pickup") // ReadyForPickup
func ParseStatus(s string) (Status, error) {
	trimmed := strings.TrimSpace(s)
	for status, label := range getStatusStrings() {
		if status != Unknown && strings.EqualFold(label, trimmed) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > FailedDelivery {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the label used in storage and in API payloads.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == FailedDelivery
}

// Action is a command applied to an order's status.
type Action int

const (
	ActionProcess Action = iota + 1
	ActionPrepare
	ActionClaim
	ActionReportOutForDelivery
	ActionDeliver
	ActionFailDelivery
)

func (a Action) String() string {
	switch a {
	case ActionProcess:
		return "process"
	case ActionPrepare:
		return "prepare"
	case ActionClaim:
		return "claim"
	case ActionReportOutForDelivery:
		return "report out for delivery"
	case ActionDeliver:
		return "deliver"
	case ActionFailDelivery:
		return "fail delivery"
	default:
		return "unknown action"
	}
}

type transitionKey struct {
	from   Status
	action Action
}

// getTransitions is the single table of legal (status, action) pairs.
func getTransitions() map[transitionKey]Status {
	return map[transitionKey]Status{
		{Pending, ActionProcess}:                     Processing,
		{Pending, ActionPrepare}:                     ReadyForPickup,
		{Processing, ActionPrepare}:                  ReadyForPickup,
		{ReadyForPickup, ActionClaim}:                OutForDelivery,
		{OutForDelivery, ActionReportOutForDelivery}: OutForDelivery,
		{OutForDelivery, ActionDeliver}:              Delivered,
		{OutForDelivery, ActionFailDelivery}:         FailedDelivery,
	}
}

// Transition returns the status reached by applying action, or an
// InvalidStateError when the pair is not in the transition table.
//
// Example:
//
//	next, err := order.ReadyForPickup.Transition(order.ActionClaim) // OutForDelivery
//	_, err = order.Delivered.Transition(order.ActionClaim)          // invalid state
func (s Status) Transition(action Action) (Status, error) {
	next, ok := getTransitions()[transitionKey{from: s, action: action}]
	if !ok {
		return Unknown, errs.NewInvalidStateErrorWithCause(
			"order status",
			s,
			fmt.Errorf("cannot %s an order in status %s", action, s),
		)
	}
	return next, nil
}

// CanTransition reports whether action is legal from s.
func (s Status) CanTransition(action Action) bool {
	_, ok := getTransitions()[transitionKey{from: s, action: action}]
	return ok
}
