package panel

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-order-panel/models"
)

var hundred = decimal.NewFromInt(100)

// RefreshStats replaces the held stats with the host's. On failure the previous stats stay.
func (s *Session) RefreshStats(ctx context.Context) (models.DashboardStats, error) {
	stats, err := s.host.GetDashboardStats(ctx)
	if err != nil {
		err = classify(models.OpGetDashboardStats, err)
		s.logger.Error("failed to load dashboard stats", zap.Error(err))
		return models.DashboardStats{}, err
	}

	s.mu.Lock()
	s.stats = &stats
	s.mu.Unlock()

	s.emit(ChangeDashboard)
	return stats, nil
}

// RefreshBalance replaces the held balance with the host's. On failure the previous balance stays.
func (s *Session) RefreshBalance(ctx context.Context) (decimal.Decimal, error) {
	balance, err := s.host.GetBankBalance(ctx)
	if err != nil {
		err = classify(models.OpGetBankBalance, err)
		s.logger.Error("failed to load balance", zap.Error(err))
		return decimal.Zero, err
	}

	s.mu.Lock()
	s.balance = balance
	s.mu.Unlock()

	s.emit(ChangeBalance)
	return balance, nil
}

// DashboardRefreshError reports which half of a dashboard refresh failed. The half that
// succeeded has already been applied.
type DashboardRefreshError struct {
	Stats   error
	Balance error
}

func (e *DashboardRefreshError) Error() string {
	return errors.Join(e.Stats, e.Balance).Error()
}

func (e *DashboardRefreshError) Unwrap() []error {
	var errs []error
	for _, err := range []error{e.Stats, e.Balance} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Partial reports whether exactly one half failed.
func (e *DashboardRefreshError) Partial() bool {
	return (e.Stats == nil) != (e.Balance == nil)
}

// RefreshDashboard loads stats and balance concurrently. Failures come back as
// *DashboardRefreshError.
func (s *Session) RefreshDashboard(ctx context.Context) error {
	var (
		wg                   sync.WaitGroup
		statsErr, balanceErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, statsErr = s.RefreshStats(ctx)
	}()
	go func() {
		defer wg.Done()
		_, balanceErr = s.RefreshBalance(ctx)
	}()
	wg.Wait()
	if statsErr == nil && balanceErr == nil {
		return nil
	}
	return &DashboardRefreshError{Stats: statsErr, Balance: balanceErr}
}

func (s *Session) Stats() (models.DashboardStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stats == nil {
		return models.DashboardStats{}, false
	}
	return *s.stats, true
}

func (s *Session) Balance() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

// TodaysCompletedOrders returns completed orders stamped on today's local date.
// Orders whose timestamp does not parse are left out.
func (s *Session) TodaysCompletedOrders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	y, m, d := now.Date()
	var out []models.Order
	for _, o := range s.completed {
		if o.Status != models.StatusCompleted {
			continue
		}
		at, err := o.CreatedAt()
		if err != nil {
			continue
		}
		oy, om, od := at.In(now.Location()).Date()
		if oy == y && om == m && od == d {
			out = append(out, o.Clone())
		}
	}
	return out
}

// ComputeShares derives the dashboard percentages. Order shares are 0 when there are no
// orders; revenue shares are capped at 100.
func ComputeShares(stats models.DashboardStats) models.StatShares {
	var shares models.StatShares
	if stats.TotalOrders > 0 {
		total := decimal.NewFromInt(int64(stats.TotalOrders))
		shares.Pending = percent(decimal.NewFromInt(int64(stats.PendingOrders)), total)
		shares.InProgress = percent(decimal.NewFromInt(int64(stats.InProgressOrders)), total)
		shares.Completed = percent(decimal.NewFromInt(int64(stats.CompletedOrders)), total)
	}
	if stats.TotalRevenue.IsPositive() {
		shares.TodayRevenue = decimal.Min(percent(stats.TodayRevenue, stats.TotalRevenue), hundred)
		shares.MonthRevenue = decimal.Min(percent(stats.MonthRevenue, stats.TotalRevenue), hundred)
	}
	return shares
}

func percent(part, total decimal.Decimal) decimal.Decimal {
	return part.Mul(hundred).Div(total).Round(2)
}
