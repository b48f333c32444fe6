package panel

import (
	"github.com/shopspring/decimal"

	"go-order-panel/models"
)

// PanelView is what every panel user sees.
type PanelView struct {
	Mode         string               `json:"mode"`
	IsStaff      bool                 `json:"isStaff"`
	Filters      []string             `json:"filters"`
	Filter       string               `json:"filter"`
	Catalog      []models.CatalogItem `json:"catalog"`
	Cart         []models.CartLine    `json:"cart"`
	CartTotal    decimal.Decimal      `json:"cartTotal"`
	OrderName    string               `json:"orderName"`
	CheckoutOpen bool                 `json:"checkoutOpen"`
	Notification *models.Notification `json:"notification,omitempty"`
}

// OrdersView is the staff order management tab.
type OrdersView struct {
	Open        []models.Order `json:"openOrders"`
	Completed   []models.Order `json:"completedOrders"`
	Page        int            `json:"page"`
	TotalPages  int            `json:"totalPages"`
	Detail      *models.Order  `json:"detail,omitempty"`
	TodaysCount int            `json:"todaysCompleted"`
}

// DashboardView is the staff management tab.
type DashboardView struct {
	Stats        *models.DashboardStats `json:"stats,omitempty"`
	Shares       *models.StatShares     `json:"shares,omitempty"`
	Balance      decimal.Decimal        `json:"balance"`
	QuickAmounts []models.QuickAmount   `json:"quickAmounts"`
	WithdrawOpen bool                   `json:"withdrawOpen"`
}

func (s *Session) PanelView() PanelView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := PanelView{
		Mode:         s.mode,
		IsStaff:      s.staff,
		Filters:      append([]string(nil), s.filters...),
		Filter:       s.filter,
		Catalog:      s.filteredCatalogLocked(),
		Cart:         append([]models.CartLine(nil), s.cart...),
		CartTotal:    cartTotal(s.cart),
		OrderName:    s.orderName,
		CheckoutOpen: s.checkoutOpen,
	}
	if s.notification != nil {
		n := *s.notification
		v.Notification = &n
	}
	return v
}

func (s *Session) OrdersView() OrdersView {
	today := len(s.TodaysCompletedOrders())

	s.mu.Lock()
	defer s.mu.Unlock()
	pages := totalPages(len(s.completed))
	v := OrdersView{
		Open:        models.CloneOrders(s.open),
		Completed:   s.pageLocked(s.page),
		Page:        clampPage(s.page, pages),
		TotalPages:  pages,
		TodaysCount: today,
	}
	if s.detail != nil {
		d := s.detail.Clone()
		v.Detail = &d
	}
	return v
}

func (s *Session) DashboardView() DashboardView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := DashboardView{
		Balance:      s.balance,
		QuickAmounts: QuickAmountsFor(s.balance),
		WithdrawOpen: s.withdrawOpen,
	}
	if s.stats != nil {
		stats := *s.stats
		shares := ComputeShares(stats)
		v.Stats = &stats
		v.Shares = &shares
	}
	return v
}
