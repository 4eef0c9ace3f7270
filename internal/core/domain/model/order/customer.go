package order

import (
	"errors"
	"strings"

	"marketplace/internal/pkg/errs"
)

// ErrCustomerIsNotConstructed is returned when a Customer instance was not
// created through NewCustomer.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer")

// Customer is the contact and delivery information snapshot attached to an
// order at checkout. It is a value object: immutable, compared by value, and
// frozen on the order regardless of later profile changes.
type Customer struct {
	name    string
	email   string
	phone   string
	address string

	isConstructed bool
}

// NewCustomer creates a customer snapshot. All fields are required and are
// trimmed of surrounding whitespace before validation.
func NewCustomer(name, email, phone, address string) (Customer, error) {
	c := Customer{
		name:          strings.TrimSpace(name),
		email:         strings.TrimSpace(email),
		phone:         strings.TrimSpace(phone),
		address:       strings.TrimSpace(address),
		isConstructed: true,
	}

	var err error
	if c.name == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("customer name"))
	}
	if c.email == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("customer email"))
	}
	if c.phone == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("customer phone"))
	}
	if c.address == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("customer address"))
	}
	if err != nil {
		return Customer{}, err
	}

	return c, nil
}

// Validate ensures the Customer instance was properly constructed.
func (c Customer) Validate() error {
	if !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

// Name returns the customer's display name.
func (c Customer) Name() string {
	return c.name
}

// Email returns the customer's email address.
func (c Customer) Email() string {
	return c.email
}

// Phone returns the customer's phone number.
func (c Customer) Phone() string {
	return c.phone
}

// Address returns the delivery address.
func (c Customer) Address() string {
	return c.address
}
