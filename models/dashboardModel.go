package models

import "github.com/shopspring/decimal"

// DashboardStats is computed by the host; the panel never recomputes any of it.
type DashboardStats struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TodayRevenue      decimal.Decimal `json:"todayRevenue"`
	MonthRevenue      decimal.Decimal `json:"monthRevenue"`
	TotalOrders       int             `json:"totalOrders"`
	PendingOrders     int             `json:"pendingOrders"`
	CompletedOrders   int             `json:"completedOrders"`
	InProgressOrders  int             `json:"inProgressOrders"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

// StatShares holds the percentages shown next to the dashboard bars.
type StatShares struct {
	Pending      decimal.Decimal `json:"pending"`
	InProgress   decimal.Decimal `json:"inProgress"`
	Completed    decimal.Decimal `json:"completed"`
	TodayRevenue decimal.Decimal `json:"todayRevenue"`
	MonthRevenue decimal.Decimal `json:"monthRevenue"`
}

type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

type WithdrawRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// QuickAmount is one of the preset withdrawal shortcuts.
type QuickAmount struct {
	Percent int             `json:"percent"`
	Amount  decimal.Decimal `json:"amount"`
}
