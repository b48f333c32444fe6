package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending       OrderStatus = "pending"
	StatusInPreparation OrderStatus = "in_preparation"
	StatusCompleted     OrderStatus = "completed"
)

// legacyStatuses maps the values older hosts still emit.
var legacyStatuses = map[string]OrderStatus{
	"pendente":   StatusPending,
	"em_preparo": StatusInPreparation,
	"concluido":  StatusCompleted,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInPreparation, StatusCompleted:
		return true
	}
	return false
}

// IsOpen reports whether orders in this status belong to the open collection.
func (s OrderStatus) IsOpen() bool {
	return s == StatusPending || s == StatusInPreparation
}

func (s OrderStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInPreparation:
		return "In Preparation"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

func (s *OrderStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = NormalizeStatus(raw)
	return nil
}

// NormalizeStatus folds legacy wire values into the canonical ones. Unknown values pass through
// unchanged so callers can reject them.
func NormalizeStatus(raw string) OrderStatus {
	if s, ok := legacyStatuses[raw]; ok {
		return s
	}
	return OrderStatus(raw)
}

type CartLine struct {
	CatalogItem
	Quantity int `json:"quantity" validate:"min=1"`
}

// Subtotal is price × quantity for the line.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Order struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Items     []CartLine      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
	Timestamp string          `json:"timestamp"`
	Submitter
}

// Clone returns a copy that shares no slices with o.
func (o Order) Clone() Order {
	c := o
	c.Items = append([]CartLine(nil), o.Items...)
	c.Submitter = o.Submitter.clone()
	return c
}

// CreatedAt parses the ISO timestamp the order was submitted with.
func (o Order) CreatedAt() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, o.Timestamp)
}

// OrderDraft is the submitOrder request body. The host answers with the same fields plus an id.
type OrderDraft struct {
	Name      string          `json:"name" validate:"required"`
	Items     []CartLine      `json:"items" validate:"required,min=1,dive"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
	Timestamp string          `json:"timestamp"`
}

func CloneOrders(orders []Order) []Order {
	if orders == nil {
		return nil
	}
	out := make([]Order, len(orders))
	for i, o := range orders {
		out[i] = o.Clone()
	}
	return out
}
