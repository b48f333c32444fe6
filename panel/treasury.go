package panel

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-order-panel/models"
)

var quickPercents = []int{25, 50, 75, 100}

// QuickAmounts returns the preset withdrawal amounts for the known balance, rounded to cents.
func (s *Session) QuickAmounts() []models.QuickAmount {
	return QuickAmountsFor(s.Balance())
}

func QuickAmountsFor(balance decimal.Decimal) []models.QuickAmount {
	out := make([]models.QuickAmount, 0, len(quickPercents))
	for _, p := range quickPercents {
		amount := balance.Mul(decimal.NewFromInt(int64(p))).Div(hundred).Round(2)
		out = append(out, models.QuickAmount{Percent: p, Amount: amount})
	}
	return out
}

// ParseAmount reads a user-typed amount. Anything that is not a finite number is rejected.
func ParseAmount(text string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}

func (s *Session) OpenWithdraw() {
	s.setWithdrawOpen(true)
}

func (s *Session) CloseWithdraw() {
	s.setWithdrawOpen(false)
}

func (s *Session) WithdrawOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.withdrawOpen
}

func (s *Session) setWithdrawOpen(open bool) {
	s.mu.Lock()
	s.withdrawOpen = open
	s.mu.Unlock()

	s.emit(ChangeTreasury)
}

// Withdraw asks the host to move amount out of the treasury. Amounts up to and including
// the known balance are accepted locally.
func (s *Session) Withdraw(ctx context.Context, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(s.Balance()) {
		return ErrAmountExceedsBalance
	}

	s.mu.Lock()
	gen := s.panelGen
	s.mu.Unlock()

	log := s.logger.With(zap.String("amount", amount.StringFixed(2)))
	ack, err := s.host.WithdrawBank(ctx, amount)
	if err != nil {
		err = classify(models.OpWithdrawBank, err)
		log.Error("withdrawal failed", zap.Error(err))
		return err
	}
	if !ack.Success {
		msg := ack.Error
		if msg == "" {
			msg = msgWithdrawFailed
		}
		log.Warn("host rejected withdrawal", zap.String("reason", msg))
		return &HostError{Op: models.OpWithdrawBank, Message: msg}
	}

	log.Info("withdrawal confirmed")

	s.mu.Lock()
	current := s.panelGen == gen
	if current {
		s.withdrawOpen = false
	}
	s.mu.Unlock()
	if !current {
		log.Info("panel reopened while withdrawing, leaving the treasury view alone")
		return nil
	}
	s.emit(ChangeTreasury)

	if _, err := s.RefreshBalance(ctx); err != nil {
		log.Warn("balance refresh after withdrawal failed", zap.Error(err))
	}
	return nil
}
