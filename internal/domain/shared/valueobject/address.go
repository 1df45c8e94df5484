package valueobject

import (
	"regexp"
	"strings"
)

// bdMobilePattern matches Bangladeshi mobile numbers, with or without the
// +88 country prefix: 01[3-9] followed by eight digits.
var bdMobilePattern = regexp.MustCompile(`^(?:\+?88)?01[3-9][0-9]{8}$`)

// AddressInfo is a value object holding the delivery address captured at
// checkout. It is frozen onto the order together with the line items.
type AddressInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}

// NewAddressInfo creates a validated AddressInfo
func NewAddressInfo(name, phone, address, city, pincode string) (AddressInfo, error) {
	info := AddressInfo{
		Name:    strings.TrimSpace(name),
		Phone:   strings.TrimSpace(phone),
		Address: strings.TrimSpace(address),
		City:    strings.TrimSpace(city),
		Pincode: strings.TrimSpace(pincode),
	}
	if err := info.Validate(); err != nil {
		return AddressInfo{}, err
	}
	return info, nil
}

// Validate checks that every required field is present and the phone number
// is a valid Bangladeshi mobile number
func (a AddressInfo) Validate() error {
	if a.Name == "" {
		return newAddressError("recipient name is required")
	}
	if a.Phone == "" {
		return newAddressError("phone number is required")
	}
	if !bdMobilePattern.MatchString(a.Phone) {
		return newAddressError("phone number is not a valid mobile number")
	}
	if a.Address == "" {
		return newAddressError("street address is required")
	}
	if a.City == "" {
		return newAddressError("city is required")
	}
	if a.Pincode == "" {
		return newAddressError("pincode is required")
	}
	return nil
}

// IsZero returns true if no field has been set
func (a AddressInfo) IsZero() bool {
	return a == AddressInfo{}
}

// AddressError indicates an invalid or incomplete delivery address
type AddressError struct {
	Reason string
}

// Error implements the error interface
func (e *AddressError) Error() string {
	return "invalid address: " + e.Reason
}

func newAddressError(reason string) *AddressError {
	return &AddressError{Reason: reason}
}
