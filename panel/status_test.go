package panel

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-order-panel/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.OrderStatus
		want     bool
	}{
		{models.StatusPending, models.StatusInPreparation, true},
		{models.StatusInPreparation, models.StatusCompleted, true},
		{models.StatusPending, models.StatusCompleted, false},
		{models.StatusPending, models.StatusPending, false},
		{models.StatusInPreparation, models.StatusPending, false},
		{models.StatusCompleted, models.StatusPending, false},
		{models.StatusCompleted, models.StatusInPreparation, false},
		{models.StatusCompleted, models.StatusCompleted, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestChangeStatusUnknownStatus(t *testing.T) {
	host := newFakeHost()
	s := newTestSession(t, host)
	openStaffPanel(s, []models.Order{order("a", models.StatusPending)}, nil)

	err := s.ChangeStatus(context.Background(), "a", "cancelled")

	assert.ErrorIs(t, err, ErrUnknownStatus)
	assert.Zero(t, host.statusCount())
	assert.Equal(t, models.StatusPending, s.OpenOrders()[0].Status)
}

func TestChangeStatusAcceptsLegacyValue(t *testing.T) {
	host := newFakeHost()
	s := newTestSession(t, host)
	openStaffPanel(s, []models.Order{order("a", models.StatusPending)}, nil)

	require.NoError(t, s.ChangeStatus(context.Background(), "a", "em_preparo"))

	require.Len(t, host.statusReqs, 1)
	assert.Equal(t, models.StatusInPreparation, host.statusReqs[0].Status)
	assert.Equal(t, models.StatusInPreparation, s.OpenOrders()[0].Status)
}

func TestChangeStatusCompletionMovesOrder(t *testing.T) {
	s := newTestSession(t, newFakeHost())
	openStaffPanel(s,
		[]models.Order{order("a", models.StatusPending), order("b", models.StatusInPreparation)},
		[]models.Order{order("x", models.StatusCompleted)},
	)

	require.NoError(t, s.ChangeStatus(context.Background(), "b", models.StatusCompleted))

	open := s.OpenOrders()
	require.Len(t, open, 1)
	assert.Equal(t, "a", open[0].ID)
	completed := s.CompletedOrders()
	require.Len(t, completed, 2)
	assert.Equal(t, "b", completed[1].ID, "completed orders are appended")
	assert.Equal(t, models.StatusCompleted, completed[1].Status)
}

func TestChangeStatusReopensCompletedOrder(t *testing.T) {
	s := newTestSession(t, newFakeHost())
	openStaffPanel(s, nil, []models.Order{order("x", models.StatusCompleted)})

	require.NoError(t, s.ChangeStatus(context.Background(), "x", models.StatusPending))

	assert.Empty(t, s.CompletedOrders())
	open := s.OpenOrders()
	require.Len(t, open, 1)
	assert.Equal(t, models.StatusPending, open[0].Status)
}

func TestChangeStatusNonAdjacentIsStillSent(t *testing.T) {
	host := newFakeHost()
	s := newTestSession(t, host)
	openStaffPanel(s, []models.Order{order("a", models.StatusPending)}, nil)

	require.NoError(t, s.ChangeStatus(context.Background(), "a", models.StatusCompleted))

	assert.Equal(t, 1, host.statusCount())
	assert.Empty(t, s.OpenOrders())
	assert.Len(t, s.CompletedOrders(), 1)
}

func TestChangeStatusHostRejects(t *testing.T) {
	tests := []struct {
		name    string
		ack     models.AckResponse
		wantMsg string
	}{
		{"with reason", models.AckResponse{Success: false, Error: "order locked"}, "order locked"},
		{"without reason", models.AckResponse{Success: false}, msgStatusUpdateFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := newFakeHost()
			host.statusAck = tt.ack
			s := newTestSession(t, host)
			openStaffPanel(s, []models.Order{order("a", models.StatusPending)}, nil)

			err := s.ChangeStatus(context.Background(), "a", models.StatusInPreparation)

			var hostErr *HostError
			require.ErrorAs(t, err, &hostErr)
			assert.Equal(t, tt.wantMsg, hostErr.Message)
			assert.Equal(t, models.StatusPending, s.OpenOrders()[0].Status)
		})
	}
}

func TestChangeStatusTransportFailure(t *testing.T) {
	host := newFakeHost()
	host.statusErr = errConnLost
	s := newTestSession(t, host)
	openStaffPanel(s, []models.Order{order("a", models.StatusInPreparation)}, nil)

	err := s.ChangeStatus(context.Background(), "a", models.StatusCompleted)

	assert.True(t, IsTransport(err))
	assert.Len(t, s.OpenOrders(), 1)
	assert.Empty(t, s.CompletedOrders())
}

func TestChangeStatusInsertsOrderKnownOnlyFromDetail(t *testing.T) {
	s := newTestSession(t, newFakeHost())
	openStaffPanel(s, []models.Order{order("a", models.StatusInPreparation)}, nil)
	require.NoError(t, s.OpenDetail("a"))

	// A push drops the order while its detail view is still open.
	s.ApplyOrdersUpdate(models.OrdersUpdatedPayload{OpenOrders: orders([]models.Order{})})
	require.Empty(t, s.OpenOrders())

	require.NoError(t, s.ChangeStatus(context.Background(), "a", models.StatusCompleted))

	completed := s.CompletedOrders()
	require.Len(t, completed, 1)
	assert.Equal(t, "a", completed[0].ID)
	detail, ok := s.Detail()
	require.True(t, ok)
	assert.Equal(t, models.StatusCompleted, detail.Status)
}

func TestChangeStatusRefreshesDetail(t *testing.T) {
	s := newTestSession(t, newFakeHost())
	openStaffPanel(s, []models.Order{order("a", models.StatusPending)}, nil)
	require.NoError(t, s.OpenDetail("a"))

	require.NoError(t, s.ChangeStatus(context.Background(), "a", models.StatusInPreparation))

	detail, ok := s.Detail()
	require.True(t, ok)
	assert.Equal(t, models.StatusInPreparation, detail.Status)
}

func TestCompleteOrderClosesDetail(t *testing.T) {
	s := newTestSession(t, newFakeHost())
	openStaffPanel(s, []models.Order{order("a", models.StatusInPreparation)}, nil)
	require.NoError(t, s.OpenDetail("a"))

	require.NoError(t, s.CompleteOrder(context.Background(), "a"))

	_, ok := s.Detail()
	assert.False(t, ok)
	assert.Len(t, s.CompletedOrders(), 1)
}

func TestCompleteOrderLeavesReopenedDetail(t *testing.T) {
	host := newFakeHost()
	s := newTestSession(t, host)
	openStaffPanel(s, []models.Order{
		order("a", models.StatusInPreparation),
		order("b", models.StatusPending),
	}, nil)
	require.NoError(t, s.OpenDetail("a"))

	// The user opens another order while the completion is in flight.
	host.onStatus = func() {
		require.NoError(t, s.OpenDetail("b"))
	}

	require.NoError(t, s.CompleteOrder(context.Background(), "a"))

	detail, ok := s.Detail()
	require.True(t, ok)
	assert.Equal(t, "b", detail.ID)
}

func TestCompleteOrderFailureKeepsDetail(t *testing.T) {
	host := newFakeHost()
	host.statusAck = models.AckResponse{Success: false}
	s := newTestSession(t, host)
	openStaffPanel(s, []models.Order{order("a", models.StatusInPreparation)}, nil)
	require.NoError(t, s.OpenDetail("a"))

	require.Error(t, s.CompleteOrder(context.Background(), "a"))

	_, ok := s.Detail()
	assert.True(t, ok)
}

func TestOpenDetail(t *testing.T) {
	s := newTestSession(t, newFakeHost())
	openStaffPanel(s,
		[]models.Order{order("a", models.StatusPending)},
		[]models.Order{order("x", models.StatusCompleted)},
	)

	assert.ErrorIs(t, s.OpenDetail("missing"), ErrUnknownOrder)

	require.NoError(t, s.OpenDetail("x"))
	detail, ok := s.Detail()
	require.True(t, ok)
	assert.Equal(t, "x", detail.ID)

	s.CloseDetail()
	_, ok = s.Detail()
	assert.False(t, ok)
}

func TestOrdersStayPartitionedDuringConcurrentCompletion(t *testing.T) {
	const n = 30
	s := newTestSession(t, newFakeHost())
	var open []models.Order
	for i := 0; i < n; i++ {
		open = append(open, order(fmt.Sprintf("o%d", i), models.StatusInPreparation))
	}
	openStaffPanel(s, open, nil)

	stop := make(chan struct{})
	readerDone := make(chan error, 1)
	go func() {
		for {
			openNow, completedNow := s.Orders()
			seen := map[string]int{}
			for _, o := range openNow {
				seen[o.ID]++
			}
			for _, o := range completedNow {
				seen[o.ID]++
			}
			for i := 0; i < n; i++ {
				id := fmt.Sprintf("o%d", i)
				if seen[id] != 1 {
					readerDone <- fmt.Errorf("order %s seen %d times", id, seen[id])
					return
				}
			}
			select {
			case <-stop:
				readerDone <- nil
				return
			default:
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			assert.NoError(t, s.ChangeStatus(context.Background(), id, models.StatusCompleted))
		}(fmt.Sprintf("o%d", i))
	}
	wg.Wait()
	close(stop)

	require.NoError(t, <-readerDone)
	openNow, completedNow := s.Orders()
	assert.Empty(t, openNow)
	assert.Len(t, completedNow, n)
}
