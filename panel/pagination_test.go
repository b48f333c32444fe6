package panel

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-order-panel/models"
)

func completedOrders(n int) []models.Order {
	out := make([]models.Order, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, order(fmt.Sprintf("c%02d", i), models.StatusCompleted))
	}
	return out
}

func TestPage(t *testing.T) {
	s := newTestSession(t, newFakeHost())
	openStaffPanel(s, nil, completedOrders(12))

	assert.Equal(t, 3, s.TotalPages())
	assert.Equal(t, []string{"c01", "c02", "c03", "c04", "c05"}, ids(s.Page(1)))
	assert.Equal(t, []string{"c11", "c12"}, ids(s.Page(3)))
	assert.Equal(t, ids(s.Page(1)), ids(s.Page(0)))
	assert.Equal(t, ids(s.Page(1)), ids(s.Page(-4)))
	assert.Equal(t, ids(s.Page(3)), ids(s.Page(99)))
}

func TestPageEmptyCollection(t *testing.T) {
	s := newTestSession(t, newFakeHost())
	openStaffPanel(s, nil, nil)

	assert.Equal(t, 0, s.TotalPages())
	assert.Empty(t, s.Page(1))
	assert.Equal(t, 1, s.CurrentPage())
	assert.Equal(t, 1, s.NextPage())
	assert.Equal(t, 1, s.PrevPage())
}

func TestPageNavigationSaturates(t *testing.T) {
	s := newTestSession(t, newFakeHost())
	openStaffPanel(s, nil, completedOrders(11))

	assert.Equal(t, 1, s.PrevPage())
	assert.Equal(t, 2, s.NextPage())
	assert.Equal(t, 3, s.NextPage())
	assert.Equal(t, 3, s.NextPage())
	assert.Equal(t, []string{"c11"}, ids(s.CurrentPageOrders()))

	assert.Equal(t, 1, s.GoToPage(-1))
	assert.Equal(t, 3, s.GoToPage(50))
	assert.Equal(t, 2, s.GoToPage(2))
}

func TestCurrentPageFollowsShrinkingCollection(t *testing.T) {
	s := newTestSession(t, newFakeHost())
	openStaffPanel(s, nil, completedOrders(12))
	s.GoToPage(3)

	s.ApplyOrdersUpdate(models.OrdersUpdatedPayload{CompletedOrders: orders(completedOrders(6))})

	assert.Equal(t, 2, s.CurrentPage())
	assert.Equal(t, []string{"c06"}, ids(s.CurrentPageOrders()))
	assert.Equal(t, 1, s.PrevPage())
}
