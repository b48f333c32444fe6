package models

import "encoding/json"

// Bodies accepted by the panel API.

type FilterRequest struct {
	Filter string `json:"filter"`
}

type AddCartItemRequest struct {
	Index    string `json:"index" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type CartQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type OrderNameRequest struct {
	Name string `json:"name"`
}

type StatusChangeRequest struct {
	Status OrderStatus `json:"status" validate:"required"`
}

type PageRequest struct {
	Action string `json:"action" validate:"required,oneof=next prev goto"`
	Page   int    `json:"page"`
}

type WithdrawAmountRequest struct {
	Amount AmountText `json:"amount" validate:"required"`
}

// AmountText is an amount as the user typed it. It accepts a JSON string or number and is
// parsed later so malformed input can be reported as an invalid amount.
type AmountText string

func (a *AmountText) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = AmountText(s)
		return nil
	}
	*a = AmountText(b)
	return nil
}
