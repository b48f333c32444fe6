package panel

import (
	"github.com/shopspring/decimal"

	"go-order-panel/models"
)

// AddToCart resolves index against the catalog and merges quantity into the cart.
func (s *Session) AddToCart(index string, quantity int) error {
	s.mu.Lock()
	item, ok := s.findItemLocked(index)
	s.mu.Unlock()
	if !ok {
		return ErrUnknownItem
	}
	s.AddItem(item, quantity)
	return nil
}

// AddItem merges quantity into the line for item, appending one if needed.
// Non-positive quantities are ignored.
func (s *Session) AddItem(item models.CatalogItem, quantity int) {
	if quantity <= 0 {
		return
	}

	s.mu.Lock()
	merged := false
	for i := range s.cart {
		if s.cart[i].Index == item.Index {
			s.cart[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.cart = append(s.cart, models.CartLine{CatalogItem: item, Quantity: quantity})
	}
	s.mu.Unlock()

	s.emit(ChangeCart)
}

// SetLineQuantity sets the quantity of an existing line; n <= 0 removes it.
func (s *Session) SetLineQuantity(index string, n int) {
	if n <= 0 {
		s.RemoveLine(index)
		return
	}

	s.mu.Lock()
	changed := false
	for i := range s.cart {
		if s.cart[i].Index == index {
			s.cart[i].Quantity = n
			changed = true
			break
		}
	}
	s.mu.Unlock()

	if changed {
		s.emit(ChangeCart)
	}
}

func (s *Session) RemoveLine(index string) {
	s.mu.Lock()
	removed := false
	for i := range s.cart {
		if s.cart[i].Index == index {
			s.cart = append(s.cart[:i:i], s.cart[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if removed {
		s.emit(ChangeCart)
	}
}

func (s *Session) Cart() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CartLine(nil), s.cart...)
}

func (s *Session) CartTotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cartTotal(s.cart)
}

func cartTotal(lines []models.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}
