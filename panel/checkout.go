package panel

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-order-panel/models"
)

func (s *Session) SetOrderName(name string) {
	s.mu.Lock()
	s.orderName = name
	s.mu.Unlock()

	s.emit(ChangeCheckout)
}

func (s *Session) OrderName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderName
}

func (s *Session) OpenCheckout() error {
	s.mu.Lock()
	if len(s.cart) == 0 {
		s.mu.Unlock()
		return ErrEmptyCart
	}
	s.checkoutOpen = true
	s.mu.Unlock()

	s.emit(ChangeCheckout)
	return nil
}

func (s *Session) CloseCheckout() {
	s.mu.Lock()
	s.checkoutOpen = false
	s.mu.Unlock()

	s.emit(ChangeCheckout)
}

func (s *Session) CheckoutOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkoutOpen
}

// Submit sends the cart to the host as a new order. On acknowledgement the cart, the
// name and the checkout view are cleared, unless the panel was reopened meanwhile; the
// order itself shows up through a later ordersUpdated push.
func (s *Session) Submit(ctx context.Context) (models.Order, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return models.Order{}, ErrCheckoutInFlight
	}
	if len(s.cart) == 0 {
		s.mu.Unlock()
		return models.Order{}, ErrEmptyCart
	}
	name := strings.TrimSpace(s.orderName)
	if name == "" {
		s.mu.Unlock()
		return models.Order{}, ErrMissingName
	}
	draft := models.OrderDraft{
		Name:      name,
		Items:     append([]models.CartLine(nil), s.cart...),
		Total:     cartTotal(s.cart),
		Status:    models.StatusPending,
		Timestamp: s.now().UTC().Format(time.RFC3339Nano),
	}
	s.submitting = true
	gen := s.panelGen
	s.mu.Unlock()

	ack, err := s.host.SubmitOrder(ctx, draft)

	s.mu.Lock()
	s.submitting = false
	if err != nil {
		s.mu.Unlock()
		err = classify(models.OpSubmitOrder, err)
		s.logger.Error("order submission failed", zap.String("name", name), zap.Error(err))
		return models.Order{}, err
	}
	current := s.panelGen == gen
	if current {
		s.cart = nil
		s.orderName = ""
		s.checkoutOpen = false
	}
	s.mu.Unlock()

	if ack.ID == "" {
		s.logger.Warn("host acknowledged order without an id", zap.String("name", name))
	}
	s.logger.Info("order submitted",
		zap.String("order_id", ack.ID),
		zap.String("name", name),
		zap.String("total", draft.Total.StringFixed(2)),
	)
	if !current {
		s.logger.Info("panel reopened while submitting, keeping the new cart", zap.String("order_id", ack.ID))
		return ack, nil
	}
	s.emit(ChangeCart, ChangeCheckout)
	return ack, nil
}
