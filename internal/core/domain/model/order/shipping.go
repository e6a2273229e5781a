package order

import (
	"errors"
	"strings"

	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var ErrShippingInfoIsNotConstructed = errors.New("ShippingInfo must be created via NewShippingInfo constructor")

// ShippingInfo is the delivery contact captured at checkout.
type ShippingInfo struct {
	fullName   string
	phone      string
	email      string
	address    string
	city       string
	postalCode string
	country    string
	guard      guard.ConstructorGuard
}

// NewShippingInfo requires phone, address and city; the remaining fields are
// optional and stored as given after trimming.
func NewShippingInfo(fullName, phone, email, address, city, postalCode, country string) (ShippingInfo, error) {
	info := ShippingInfo{
		fullName:   strings.TrimSpace(fullName),
		phone:      strings.TrimSpace(phone),
		email:      strings.TrimSpace(email),
		address:    strings.TrimSpace(address),
		city:       strings.TrimSpace(city),
		postalCode: strings.TrimSpace(postalCode),
		country:    strings.TrimSpace(country),
		guard:      guard.NewConstructorGuard(),
	}

	var errList []error
	if info.phone == "" {
		errList = append(errList, errs.NewValueIsRequiredError("shipping phone"))
	}
	if info.address == "" {
		errList = append(errList, errs.NewValueIsRequiredError("shipping address"))
	}
	if info.city == "" {
		errList = append(errList, errs.NewValueIsRequiredError("shipping city"))
	}
	if err := errors.Join(errList...); err != nil {
		return ShippingInfo{}, err
	}

	return info, nil
}

// RestoreShippingInfo rebuilds stored shipping details without the required
// field checks; legacy orders may lack some of them.
func RestoreShippingInfo(fullName, phone, email, address, city, postalCode, country string) ShippingInfo {
	return ShippingInfo{
		fullName:   fullName,
		phone:      phone,
		email:      email,
		address:    address,
		city:       city,
		postalCode: postalCode,
		country:    country,
		guard:      guard.NewConstructorGuard(),
	}
}

func (s ShippingInfo) Validate() error {
	return s.guard.Validate(ErrShippingInfoIsNotConstructed)
}

func (s ShippingInfo) FullName() string { return s.fullName }
func (s ShippingInfo) Phone() string { return s.phone }
func (s ShippingInfo) Email() string { return s.email }
func (s ShippingInfo) Address() string { return s.address }
func (s ShippingInfo) City() string { return s.city }
func (s ShippingInfo) PostalCode() string { return s.postalCode }
func (s ShippingInfo) Country() string { return s.country }
