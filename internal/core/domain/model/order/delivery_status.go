package order

import (
	"fmt"
	"strings"

	"warehouse/internal/pkg/errs"
)

// DeliveryStatus is the outcome a driver reports on their assignment.
type DeliveryStatus int

const (
	DeliveryUnknown DeliveryStatus = iota
	DeliveryOutForDelivery
	DeliveryDelivered
	DeliveryNotDelivered
)

func getDeliveryStatusStrings() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		DeliveryUnknown:        "Unknown",
		DeliveryOutForDelivery: "Out for Delivery",
		DeliveryDelivered:      "Delivered",
		DeliveryNotDelivered:   "Not Delivered",
	}
}

// ParseDeliveryStatus accepts "Out for Delivery", "Delivered" or
// "Not Delivered", case-insensitively.
func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	trimmed := strings.TrimSpace(s)
	for status, label := range getDeliveryStatusStrings() {
		if status != DeliveryUnknown && strings.EqualFold(label, trimmed) {
			return status, nil
		}
	}
	return DeliveryUnknown, errs.NewValueIsInvalidErrorWithCause(
		"deliveryStatus",
		fmt.Errorf("%q is not a valid delivery status", s),
	)
}

func (d DeliveryStatus) String() string {
	if str, ok := getDeliveryStatusStrings()[d]; ok {
		return str
	}
	return "Unknown"
}

func (d DeliveryStatus) Validate() error {
	if d <= DeliveryUnknown || d > DeliveryNotDelivered {
		return errs.NewValueIsInvalidErrorWithCause("deliveryStatus", fmt.Errorf("%d is not a valid delivery status", d))
	}
	return nil
}

// IsTerminal reports whether the driver is done with the order.
func (d DeliveryStatus) IsTerminal() bool {
	return d == DeliveryDelivered || d == DeliveryNotDelivered
}

// action maps the reported outcome onto the order status machine:
// Delivered -> Delivered, Not Delivered -> Failed Delivery,
// Out for Delivery -> Out for Delivery.
func (d DeliveryStatus) action() Action {
	switch d {
	case DeliveryDelivered:
		return ActionDeliver
	case DeliveryNotDelivered:
		return ActionFailDelivery
	default:
		return ActionReportOutForDelivery
	}
}
