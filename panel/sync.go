package panel

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-order-panel/models"
)

// OpenPanel resets the session from an openPanel push. The notification slot is left alone.
func (s *Session) OpenPanel(p models.OpenPanelPayload) {
	items, err := models.ParseCatalog(p.Items)
	if err != nil {
		s.logger.Error("failed to parse catalog items", zap.Error(err), zap.ByteString("items", p.Items))
		items = nil
	}
	catalog := s.sanitizeCatalog(items)

	mode := NormalizeMode(p.PanelMode())
	filters, filter := filtersFor(mode)

	var open, completed []models.Order
	if p.OpenOrders != nil {
		open = models.CloneOrders(*p.OpenOrders)
	}
	if p.CompletedOrders != nil {
		completed = models.CloneOrders(*p.CompletedOrders)
	}

	s.mu.Lock()
	s.panelGen++
	s.staff = p.Staff()
	s.mode = mode
	s.filters = filters
	s.filter = filter
	s.catalog = catalog
	s.cart = nil
	s.orderName = ""
	s.checkoutOpen = false
	s.open = open
	s.completed = completed
	s.page = 1
	s.detail = nil
	s.detailGen++
	s.stats = nil
	s.balance = decimal.Zero
	s.withdrawOpen = false
	s.mu.Unlock()

	s.logger.Info("panel opened",
		zap.String("mode", mode),
		zap.Bool("staff", p.Staff()),
		zap.Int("catalog_items", len(catalog)),
		zap.Int("open_orders", len(open)),
		zap.Int("completed_orders", len(completed)),
	)
	s.emit(ChangePanel, ChangeCatalog, ChangeCart, ChangeCheckout, ChangeOrders,
		ChangeDetail, ChangeDashboard, ChangeBalance, ChangeTreasury)
}

// ApplyOrdersUpdate replaces each collection present in the push. Ids in a replaced
// collection are dropped from the other one, so the last push wins.
func (s *Session) ApplyOrdersUpdate(p models.OrdersUpdatedPayload) {
	if p.OpenOrders == nil && p.CompletedOrders == nil {
		return
	}

	var open, completed []models.Order
	if p.OpenOrders != nil {
		open = models.CloneOrders(*p.OpenOrders)
		s.warnMisplaced("open", open, true)
	}
	if p.CompletedOrders != nil {
		completed = models.CloneOrders(*p.CompletedOrders)
		s.warnMisplaced("completed", completed, false)
	}

	s.mu.Lock()
	if p.OpenOrders != nil {
		s.open = open
		if p.CompletedOrders == nil {
			s.completed = without(s.completed, idsOf(open))
		}
	}
	if p.CompletedOrders != nil {
		s.completed = completed
		if p.OpenOrders == nil {
			s.open = without(s.open, idsOf(completed))
		}
	}
	detailChanged := false
	if s.detail != nil {
		if fresh, ok := findPushed(s.detail.ID, open, completed); ok {
			s.detail = &fresh
			detailChanged = true
		}
	}
	s.mu.Unlock()

	if detailChanged {
		s.emit(ChangeOrders, ChangeDetail)
		return
	}
	s.emit(ChangeOrders)
}

func (s *Session) warnMisplaced(collection string, orders []models.Order, wantOpen bool) {
	for _, o := range orders {
		if o.Status.IsOpen() != wantOpen {
			s.logger.Warn("pushed order status does not match its collection",
				zap.String("collection", collection),
				zap.String("order_id", o.ID),
				zap.String("status", string(o.Status)),
			)
		}
	}
}

func findPushed(id string, snapshots ...[]models.Order) (models.Order, bool) {
	for _, orders := range snapshots {
		if i := indexOf(orders, id); i >= 0 {
			return orders[i].Clone(), true
		}
	}
	return models.Order{}, false
}

func idsOf(orders []models.Order) map[string]struct{} {
	ids := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		ids[o.ID] = struct{}{}
	}
	return ids
}

func without(orders []models.Order, ids map[string]struct{}) []models.Order {
	if len(ids) == 0 {
		return orders
	}
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if _, drop := ids[o.ID]; !drop {
			out = append(out, o)
		}
	}
	return out
}
