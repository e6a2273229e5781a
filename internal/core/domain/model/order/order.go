package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrTooManyAssignments guards the at-most-one-driver invariant.
	ErrTooManyAssignments = errors.New("order cannot have more than one assigned driver")
)

// Order is the aggregate root of the order lifecycle: checkout, warehouse
// preparation, driver claim and delivery outcome.
//
// Invariants:
//   - at least one item, all snapshotted at checkout
//   - at most one assignment at any time
//   - status only changes through the transition table in Status.Transition
//   - an assignment exists exactly when the order has been claimed
//
// Version is bumped by repositories on every successful write and is used
// as the compare-and-swap token that serialises concurrent claims.
type Order struct {
	id               kernel.UUID
	customerID       kernel.UUID
	customerName     string
	items            []Item
	billing          Billing
	shipping         ShippingInfo
	status           Status
	assignments      []Assignment
	preparationNotes string
	version          int64
	createdAt        time.Time
	updatedAt        time.Time

	events []Event

	isConstructed bool
}

// NewOrder creates a Pending order from checkout data and prices it with
// NewBilling.
//
// Example:
//
//	item, _ := order.NewItem(productID, "Shelf bracket", 4, decimal.RequireFromString("2.50"))
//	shipping, _ := order.NewShippingInfo("Ann Lee", "555-0100", "", "1 Dock Rd", "Toronto", "", "CA")
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, "Ann Lee", []order.Item{item}, shipping, time.Now())
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	customerName string,
	items []Item,
	shipping ShippingInfo,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customerID, customerName),
		o.setItems(items),
		o.setShipping(shipping),
	); err != nil {
		return nil, err
	}

	o.billing = NewBilling(o.items)
	o.raise(EventPlaced, nil, "", now)
	return o, nil
}

// Snapshot carries the persisted state of an order into RestoreOrder.
type Snapshot struct {
	ID               kernel.UUID
	CustomerID       kernel.UUID
	CustomerName     string
	Items            []Item
	Billing          Billing
	Shipping         ShippingInfo
	Status           Status
	Assignments      []Assignment
	PreparationNotes string
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RestoreOrder rebuilds an aggregate from storage. Legacy rows without a
// customer name or shipping details are accepted; the structural invariants
// are still checked.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		customerName:     s.CustomerName,
		billing:          s.Billing,
		shipping:         s.Shipping,
		preparationNotes: s.PreparationNotes,
		version:          s.Version,
		createdAt:        s.CreatedAt,
		updatedAt:        s.UpdatedAt,
		isConstructed:    true,
	}

	var errList []error
	errList = append(errList, o.setID(s.ID))
	if err := s.CustomerID.Validate(); err != nil {
		errList = append(errList, err)
	}
	o.customerID = s.CustomerID
	errList = append(errList, o.setItems(s.Items))
	if err := s.Status.Validate(); err != nil {
		errList = append(errList, err)
	}
	o.status = s.Status
	if len(s.Assignments) > 1 {
		errList = append(errList, ErrTooManyAssignments)
	}
	o.assignments = append([]Assignment(nil), s.Assignments...)

	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate ensures the order was built by a constructor and still holds the
// single-assignment invariant.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	if len(o.assignments) > 1 {
		return ErrTooManyAssignments
	}
	return nil
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) CustomerID() kernel.UUID { return o.customerID }
func (o *Order) CustomerName() string { return o.customerName }
func (o *Order) Billing() Billing { return o.billing }
func (o *Order) Shipping() ShippingInfo { return o.shipping }
func (o *Order) Status() Status { return o.status }
func (o *Order) PreparationNotes() string { return o.preparationNotes }
func (o *Order) Version() int64 { return o.version }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }
func (o *Order) IsEqual(other *Order) bool { return other != nil && o.id.IsEqual(other.id) }
func (o *Order) Items() []Item { return append([]Item(nil), o.items...) }
func (o *Order) Assignments() []Assignment { return append([]Assignment(nil), o.assignments...) }
func (o *Order) HasAssignedDriver() bool { return len(o.assignments) > 0 }

// AssignedDriver returns the driver holding the order, or nil.
func (o *Order) AssignedDriver() *kernel.UUID {
	if len(o.assignments) == 0 {
		return nil
	}
	id := o.assignments[0].driverID
	return &id
}

// IsAssignedTo reports whether driverID holds the order.
func (o *Order) IsAssignedTo(driverID kernel.UUID) bool {
	return o.assignmentIndex(driverID) >= 0
}

// IncrementVersion is called by repositories after a successful write.
func (o *Order) IncrementVersion() {
	o.version++
}

// Process moves a Pending order to Processing.
func (o *Order) Process(now time.Time) error {
	next, err := o.status.Transition(ActionProcess)
	if err != nil {
		return err
	}
	o.status = next
	o.updatedAt = now
	o.raise(EventStatusChanged, nil, "", now)
	return nil
}

// Prepare marks a Pending or Processing order as Ready for Pickup. Non-empty
// notes replace the previous preparation notes.
func (o *Order) Prepare(notes string, now time.Time) error {
	next, err := o.status.Transition(ActionPrepare)
	if err != nil {
		return err
	}
	o.status = next
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		o.preparationNotes = trimmed
	}
	o.updatedAt = now
	o.raise(EventStatusChanged, nil, o.preparationNotes, now)
	return nil
}

// ChangeStatus applies a warehouse-side status change requested by target
// status. Only Processing and Ready for Pickup can be requested this way;
// the delivery states belong to the driver workflow.
func (o *Order) ChangeStatus(target Status, notes string, now time.Time) error {
	switch target {
	case Processing:
		return o.Process(now)
	case ReadyForPickup:
		return o.Prepare(notes, now)
	default:
		return errs.NewInvalidStateErrorWithCause(
			"target status",
			target,
			fmt.Errorf("%s cannot be set by a warehouse status change", target),
		)
	}
}

// Claim assigns the order to driverID.
//
// Business rules:
//   - an order Out for Delivery with a driver fails with a ConflictError
//   - any other order that is not Ready for Pickup fails with an
//     InvalidStateError, including finished ones
//   - legacy billing is back-filled
//   - the single assignment starts as Out for Delivery with no delivery time
//
// The aggregate is left unmodified when an error is returned.
func (o *Order) Claim(driverID kernel.UUID, now time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if o.status == OutForDelivery && len(o.assignments) > 0 {
		return errs.NewConflictErrorWithCause("order", o.id.String(), errors.New("order is already claimed"))
	}
	next, err := o.status.Transition(ActionClaim)
	if err != nil {
		return err
	}
	if len(o.assignments) > 0 {
		return errs.NewConflictErrorWithCause("order", o.id.String(), errors.New("order is already claimed"))
	}

	o.billing = o.billing.Backfill()
	o.assignments = []Assignment{{
		driverID:       driverID,
		deliveryStatus: DeliveryOutForDelivery,
		assignedAt:     now,
	}}
	o.status = next
	o.updatedAt = now
	o.raise(EventClaimed, &driverID, "", now)
	return nil
}

// UpdateDelivery records the outcome reported by the assigned driver and
// maps it onto the order status. It returns true when the reported status
// is terminal (Delivered or Not Delivered), meaning the driver is free.
//
// A driver that is not assigned gets a ForbiddenError and nothing changes.
func (o *Order) UpdateDelivery(
	driverID kernel.UUID,
	deliveryStatus DeliveryStatus,
	notes string,
	now time.Time,
) (bool, error) {
	if err := deliveryStatus.Validate(); err != nil {
		return false, err
	}
	idx := o.assignmentIndex(driverID)
	if idx < 0 {
		return false, errs.NewForbiddenError("driver is not assigned to this order")
	}
	next, err := o.status.Transition(deliveryStatus.action())
	if err != nil {
		return false, err
	}

	o.billing = o.billing.Backfill()
	deliveredAt := now
	o.assignments[idx].deliveryStatus = deliveryStatus
	o.assignments[idx].deliveryTime = &deliveredAt
	o.assignments[idx].notes = strings.TrimSpace(notes)
	o.status = next
	o.updatedAt = now
	o.raise(EventDeliveryUpdated, &driverID, o.assignments[idx].notes, now)
	return deliveryStatus.IsTerminal(), nil
}

// BackfillBilling fills missing subtotal and tax from the total amount.
func (o *Order) BackfillBilling() {
	o.billing = o.billing.Backfill()
}

func (o *Order) assignmentIndex(driverID kernel.UUID) int {
	for i, a := range o.assignments {
		if a.driverID.IsEqual(driverID) {
			return i
		}
	}
	return -1
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customerID kernel.UUID, customerName string) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(customerName) == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	o.customerID = customerID
	o.customerName = strings.TrimSpace(customerName)
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = append([]Item(nil), items...)
	return nil
}

func (o *Order) setShipping(shipping ShippingInfo) error {
	if err := shipping.Validate(); err != nil {
		return err
	}
	o.shipping = shipping
	return nil
}
