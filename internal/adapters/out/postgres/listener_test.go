package postgres

import (
	"testing"

	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/assert"
)

func TestChangeHub_DeliversToAllSubscribers(t *testing.T) {
	hub := newChangeHub()

	var first, second []ports.OrderChange
	hub.subscribe(func(c ports.OrderChange) { first = append(first, c) })
	hub.subscribe(func(c ports.OrderChange) { second = append(second, c) })

	hub.deliver(ports.OrderChange{OrderID: "a", Op: "INSERT"})
	hub.deliver(ports.OrderChange{OrderID: "a", Op: "UPDATE"})

	assert.Len(t, first, 2)
	assert.Len(t, second, 2)
	assert.Equal(t, "INSERT", first[0].Op)
	assert.Equal(t, "UPDATE", second[1].Op)
}

func TestChangeHub_UnsubscribeStopsDelivery(t *testing.T) {
	hub := newChangeHub()

	var got []ports.OrderChange
	unsubscribe := hub.subscribe(func(c ports.OrderChange) { got = append(got, c) })

	hub.deliver(ports.OrderChange{OrderID: "a", Op: "INSERT"})
	unsubscribe()
	hub.deliver(ports.OrderChange{OrderID: "a", Op: "UPDATE"})

	assert.Len(t, got, 1)
}

func TestChangeHub_UnsubscribeTwiceIsSafe(t *testing.T) {
	hub := newChangeHub()

	unsubscribe := hub.subscribe(func(ports.OrderChange) {})
	unsubscribe()
	assert.NotPanics(t, func() { unsubscribe() })
}
