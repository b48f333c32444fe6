package panel

import (
	"context"

	"github.com/shopspring/decimal"

	"go-order-panel/models"
)

// Host is the authority the panel talks to. Every call is fire-and-await; the panel never
// retries on its own.
//
// Implementations report a refusal that the host explained as *HostError and anything
// else (dropped connection, timeout, malformed reply) as a plain error.
type Host interface {
	SubmitOrder(ctx context.Context, draft models.OrderDraft) (models.Order, error)
	UpdateOrderStatus(ctx context.Context, req models.StatusUpdateRequest) (models.AckResponse, error)
	GetDashboardStats(ctx context.Context) (models.DashboardStats, error)
	GetBankBalance(ctx context.Context) (decimal.Decimal, error)
	WithdrawBank(ctx context.Context, amount decimal.Decimal) (models.AckResponse, error)
}
