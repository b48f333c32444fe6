package panel

import (
	"context"

	"go.uber.org/zap"

	"go-order-panel/models"
)

// CanTransition reports whether to is the next step after from.
// completed is terminal.
func CanTransition(from, to models.OrderStatus) bool {
	next, ok := NextStatus(from)
	return ok && next == to
}

// NextStatus returns the status an order advances to from s.
func NextStatus(s models.OrderStatus) (models.OrderStatus, bool) {
	switch s {
	case models.StatusPending:
		return models.StatusInPreparation, true
	case models.StatusInPreparation:
		return models.StatusCompleted, true
	}
	return "", false
}

// ChangeStatus asks the host to move orderID to status and mirrors the change locally once
// the host confirms. Non-adjacent transitions are logged but still sent.
func (s *Session) ChangeStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	status = models.NormalizeStatus(string(status))
	if !status.Valid() {
		return ErrUnknownStatus
	}

	s.mu.Lock()
	current, found := s.lookupLocked(orderID)
	s.mu.Unlock()

	log := s.logger.With(zap.String("order_id", orderID), zap.String("status", string(status)))
	if found && !CanTransition(current.Status, status) {
		log.Warn("non-adjacent status transition", zap.String("from", string(current.Status)))
	}

	ack, err := s.host.UpdateOrderStatus(ctx, models.StatusUpdateRequest{OrderID: orderID, Status: status})
	if err != nil {
		err = classify(models.OpUpdateOrderStatus, err)
		log.Error("status update failed", zap.Error(err))
		return err
	}
	if !ack.Success {
		msg := ack.Error
		if msg == "" {
			msg = msgStatusUpdateFailed
		}
		log.Warn("host rejected status update", zap.String("reason", msg))
		return &HostError{Op: models.OpUpdateOrderStatus, Message: msg}
	}

	s.mu.Lock()
	s.applyStatusLocked(orderID, status)
	s.mu.Unlock()

	log.Info("order status updated")
	s.emit(ChangeOrders, ChangeDetail)
	return nil
}

// CompleteOrder marks the order completed and closes the detail view, unless the view was
// reopened while the request was in flight.
func (s *Session) CompleteOrder(ctx context.Context, orderID string) error {
	s.mu.Lock()
	gen := s.detailGen
	s.mu.Unlock()

	if err := s.ChangeStatus(ctx, orderID, models.StatusCompleted); err != nil {
		return err
	}

	s.mu.Lock()
	closed := false
	if s.detail != nil && s.detailGen == gen {
		s.detail = nil
		s.detailGen++
		closed = true
	}
	s.mu.Unlock()

	if closed {
		s.emit(ChangeDetail)
	}
	return nil
}

// applyStatusLocked keeps the two collections disjoint and partitioned by status.
func (s *Session) applyStatusLocked(orderID string, status models.OrderStatus) {
	if i := indexOf(s.open, orderID); i >= 0 {
		order := s.open[i].Clone()
		order.Status = status
		if status.IsOpen() {
			s.open = replaceAt(s.open, i, order)
		} else {
			s.open = removeAt(s.open, i)
			s.completed = appendOrder(s.completed, order)
		}
	} else if i := indexOf(s.completed, orderID); i >= 0 {
		order := s.completed[i].Clone()
		order.Status = status
		if status.IsOpen() {
			s.completed = removeAt(s.completed, i)
			s.open = appendOrder(s.open, order)
		} else {
			s.completed = replaceAt(s.completed, i, order)
		}
	} else if s.detail != nil && s.detail.ID == orderID {
		order := s.detail.Clone()
		order.Status = status
		if status.IsOpen() {
			s.open = appendOrder(s.open, order)
		} else {
			s.completed = appendOrder(s.completed, order)
		}
	}

	if s.detail != nil && s.detail.ID == orderID {
		d := s.detail.Clone()
		d.Status = status
		s.detail = &d
	}
}

func (s *Session) OpenDetail(orderID string) error {
	s.mu.Lock()
	order, ok := s.lookupLocked(orderID)
	if !ok {
		s.mu.Unlock()
		return ErrUnknownOrder
	}
	s.detail = &order
	s.detailGen++
	s.mu.Unlock()

	s.emit(ChangeDetail)
	return nil
}

func (s *Session) CloseDetail() {
	s.mu.Lock()
	if s.detail == nil {
		s.mu.Unlock()
		return
	}
	s.detail = nil
	s.detailGen++
	s.mu.Unlock()

	s.emit(ChangeDetail)
}

// Detail returns the order shown in the detail view, if any.
func (s *Session) Detail() (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detail == nil {
		return models.Order{}, false
	}
	return s.detail.Clone(), true
}

// Orders returns both collections taken in one critical section.
func (s *Session) Orders() (open, completed []models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneOrders(s.open), models.CloneOrders(s.completed)
}

func (s *Session) OpenOrders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneOrders(s.open)
}

func (s *Session) CompletedOrders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneOrders(s.completed)
}

// lookupLocked searches open then completed and returns a copy.
func (s *Session) lookupLocked(orderID string) (models.Order, bool) {
	if i := indexOf(s.open, orderID); i >= 0 {
		return s.open[i].Clone(), true
	}
	if i := indexOf(s.completed, orderID); i >= 0 {
		return s.completed[i].Clone(), true
	}
	return models.Order{}, false
}

func indexOf(orders []models.Order, id string) int {
	for i := range orders {
		if orders[i].ID == id {
			return i
		}
	}
	return -1
}

// The helpers below never write into the backing array of their input, so slices handed
// out earlier stay intact.

func removeAt(orders []models.Order, i int) []models.Order {
	out := make([]models.Order, 0, len(orders)-1)
	out = append(out, orders[:i]...)
	return append(out, orders[i+1:]...)
}

func replaceAt(orders []models.Order, i int, order models.Order) []models.Order {
	out := append([]models.Order(nil), orders...)
	out[i] = order
	return out
}

func appendOrder(orders []models.Order, order models.Order) []models.Order {
	out := make([]models.Order, 0, len(orders)+1)
	out = append(out, orders...)
	return append(out, order)
}
