package order

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrLineItemIsNotConstructed is returned when a LineItem instance was not
// created through NewLineItem.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem")

// LineItem is one cart line frozen onto an order: a menu item reference, its
// unit price at order time, and a quantity. Line items are immutable after
// order creation; later menu price changes never affect existing orders.
type LineItem struct {
	itemID    string
	name      string
	unitPrice kernel.Money
	quantity  int

	isConstructed bool
}

// NewLineItem creates a line item snapshot. The item reference and name are
// required, the unit price must be non-negative, and quantity must be
// positive.
func NewLineItem(itemID, name string, unitPrice kernel.Money, quantity int) (LineItem, error) {
	li := LineItem{
		itemID:        strings.TrimSpace(itemID),
		name:          strings.TrimSpace(name),
		unitPrice:     unitPrice,
		quantity:      quantity,
		isConstructed: true,
	}

	var err error
	if li.itemID == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("item id"))
	}
	if li.name == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("item name"))
	}
	if priceErr := unitPrice.Validate(); priceErr != nil {
		err = errors.Join(err, priceErr)
	}
	if quantity <= 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		))
	}
	if err != nil {
		return LineItem{}, err
	}

	return li, nil
}

// Validate ensures the LineItem instance was properly constructed.
func (li LineItem) Validate() error {
	if !li.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

// ItemID returns the referenced menu item identifier.
func (li LineItem) ItemID() string {
	return li.itemID
}

// Name returns the menu item name at order time.
func (li LineItem) Name() string {
	return li.name
}

// UnitPrice returns the per-unit price at order time.
func (li LineItem) UnitPrice() kernel.Money {
	return li.unitPrice
}

// Quantity returns the ordered quantity.
func (li LineItem) Quantity() int {
	return li.quantity
}

// LineTotal returns unit price times quantity.
func (li LineItem) LineTotal() kernel.Money {
	return kernel.NewMoneyFromCents(li.unitPrice.Cents() * int64(li.quantity))
}

// SubtotalOf sums the line totals of a cart. Used by the checkout flow to
// derive the subtotal the fee snapshot is computed from.
func SubtotalOf(items []LineItem) kernel.Money {
	var sum kernel.Money
	for _, li := range items {
		sum = sum.Add(li.LineTotal())
	}
	return sum
}
