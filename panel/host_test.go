package panel

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"go-order-panel/models"
)

var errConnLost = errors.New("connection lost")

// fakeHost records every request and answers with whatever the test configured.
type fakeHost struct {
	mu sync.Mutex

	drafts       []models.OrderDraft
	statusReqs   []models.StatusUpdateRequest
	withdrawals  []decimal.Decimal
	statsCalls   int
	balanceCalls int

	submitAck   models.Order
	submitErr   error
	submitGate  chan struct{}
	submitEnter chan struct{}

	statusAck models.AckResponse
	statusErr error
	onStatus  func()

	stats      models.DashboardStats
	statsErr   error
	balance    decimal.Decimal
	balanceErr error

	withdrawAck models.AckResponse
	withdrawErr error
	onWithdraw  func()
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		submitAck:   models.Order{ID: "order-1"},
		statusAck:   models.AckResponse{Success: true},
		withdrawAck: models.AckResponse{Success: true},
	}
}

func (h *fakeHost) SubmitOrder(ctx context.Context, draft models.OrderDraft) (models.Order, error) {
	h.mu.Lock()
	h.drafts = append(h.drafts, draft)
	enter, gate := h.submitEnter, h.submitGate
	h.mu.Unlock()

	if enter != nil {
		enter <- struct{}{}
	}
	if gate != nil {
		<-gate
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.submitErr != nil {
		return models.Order{}, h.submitErr
	}
	ack := h.submitAck
	ack.Name = draft.Name
	ack.Items = draft.Items
	ack.Total = draft.Total
	ack.Status = draft.Status
	ack.Timestamp = draft.Timestamp
	return ack, nil
}

func (h *fakeHost) UpdateOrderStatus(ctx context.Context, req models.StatusUpdateRequest) (models.AckResponse, error) {
	h.mu.Lock()
	h.statusReqs = append(h.statusReqs, req)
	hook := h.onStatus
	h.mu.Unlock()

	if hook != nil {
		hook()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.statusAck, h.statusErr
}

func (h *fakeHost) GetDashboardStats(ctx context.Context) (models.DashboardStats, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statsCalls++
	return h.stats, h.statsErr
}

func (h *fakeHost) GetBankBalance(ctx context.Context) (decimal.Decimal, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.balanceCalls++
	return h.balance, h.balanceErr
}

func (h *fakeHost) WithdrawBank(ctx context.Context, amount decimal.Decimal) (models.AckResponse, error) {
	h.mu.Lock()
	hook := h.onWithdraw
	h.mu.Unlock()

	if hook != nil {
		hook()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.withdrawals = append(h.withdrawals, amount)
	if h.withdrawErr == nil && h.withdrawAck.Success {
		h.balance = h.balance.Sub(amount)
	}
	return h.withdrawAck, h.withdrawErr
}

func (h *fakeHost) submitCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.drafts)
}

func (h *fakeHost) statusCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.statusReqs)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var testCatalog = []models.CatalogItem{
	{Index: "burger", Label: "Burger", Type: "food", Price: dec("5.50")},
	{Index: "soda", Label: "Soda", Type: "drink", Price: dec("1.25")},
	{Index: "lollipop", Label: "Lollipop", Type: "candy", Price: dec("0.75")},
	{Index: "repairkit", Label: "Repair Kit", Type: "utils", Price: dec("40")},
}

func order(id string, status models.OrderStatus) models.Order {
	return models.Order{
		ID:        id,
		Name:      "Table " + id,
		Items:     []models.CartLine{{CatalogItem: testCatalog[0], Quantity: 1}},
		Total:     dec("5.50"),
		Status:    status,
		Timestamp: "2024-03-10T12:00:00Z",
	}
}

func orders(open []models.Order) *[]models.Order {
	return &open
}

var fixedNow = time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T, host Host, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewSession(host, opts...)
}

// openStaffPanel opens a restaurant panel with the test catalog and the given collections.
func openStaffPanel(s *Session, open, completed []models.Order) {
	s.OpenPanel(models.OpenPanelPayload{
		Items:           mustCatalogJSON(testCatalog),
		IsStaff:         true,
		Mode:            ModeRestaurant,
		OpenOrders:      orders(open),
		CompletedOrders: orders(completed),
	})
}

func mustCatalogJSON(items []models.CatalogItem) json.RawMessage {
	b, err := json.Marshal(items)
	if err != nil {
		panic(err)
	}
	return b
}
