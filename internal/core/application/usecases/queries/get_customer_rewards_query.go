package queries

import (
	"errors"
	"strings"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetCustomerRewardsQueryIsNotConstructed = errors.New(
	"GetCustomerRewardsQuery must be created via NewGetCustomerRewardsQuery constructor",
)

// GetCustomerRewardsQuery retrieves a customer's reward points balance and
// the delivered orders it derives from. Customers are identified by the
// email they checked out with.
type GetCustomerRewardsQuery struct { //nolint:recvcheck //using for validation
	email string

	guard guard.ConstructorGuard
}

// NewGetCustomerRewardsQuery creates a rewards query for the given customer
// email.
func NewGetCustomerRewardsQuery(email string) (GetCustomerRewardsQuery, error) {
	q := GetCustomerRewardsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setEmail(email); err != nil {
		return GetCustomerRewardsQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCustomerRewardsQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerRewardsQueryIsNotConstructed)
}

// Email returns the customer email the balance is computed for.
func (q GetCustomerRewardsQuery) Email() string {
	return q.email
}

func (q *GetCustomerRewardsQuery) setEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	q.email = email
	return nil
}

// RewardOrderView is one delivered order contributing to the balance.
type RewardOrderView struct {
	ShortID      string
	TotalCents   int64
	PointsEarned int
	DeliveredAgo string
}

// GetCustomerRewardsQueryResponse is the rewards payload: the balance plus
// the contributing orders, newest first. An unknown email yields a zero
// balance, not an error.
type GetCustomerRewardsQueryResponse struct {
	Email  string
	Points int
	Orders []RewardOrderView
}
