package models

import "encoding/json"

// Pushed by the host.
const (
	EventOpenPanel         = "openPanel"
	EventOrdersUpdated     = "ordersUpdated"
	EventOrderNotification = "orderNotification"

	// Names used by hosts built against the first panel release.
	LegacyEventOpenPanel         = "openPainel"
	LegacyEventOrdersUpdated     = "updateOrders"
	LegacyEventOrderNotification = "showOrderNotification"
)

// Requests issued to the host.
const (
	OpSubmitOrder       = "submitOrder"
	OpUpdateOrderStatus = "updateOrderStatus"
	OpGetDashboardStats = "getDashboardStats"
	OpGetBankBalance    = "getBankBalance"
	OpWithdrawBank      = "withdrawBank"
)

// Message is the single frame shape on every channel: host pushes, host request/reply pairs
// (correlated by ID) and UI broadcasts.
type Message struct {
	Event   string          `json:"event"`
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func NewMessage(event string, payload interface{}) (Message, error) {
	msg := Message{Event: event}
	if payload == nil {
		return msg, nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return msg, err
	}
	msg.Payload = b
	return msg, nil
}

type OpenPanelPayload struct {
	Items           json.RawMessage `json:"items"`
	IsStaff         bool            `json:"isStaff"`
	IsEmployee      bool            `json:"isEmployee,omitempty"`
	OpenOrders      *[]Order        `json:"openOrders,omitempty"`
	CompletedOrders *[]Order        `json:"completedOrders,omitempty"`
	Mode            string          `json:"mode,omitempty"`
	PainelType      string          `json:"painelType,omitempty"`
}

func (p OpenPanelPayload) Staff() bool {
	return p.IsStaff || p.IsEmployee
}

func (p OpenPanelPayload) PanelMode() string {
	if p.Mode != "" {
		return p.Mode
	}
	return p.PainelType
}

// OrdersUpdatedPayload is partial: a nil field leaves that collection alone.
type OrdersUpdatedPayload struct {
	OpenOrders      *[]Order `json:"openOrders,omitempty"`
	CompletedOrders *[]Order `json:"completedOrders,omitempty"`
}

type NotificationPayload struct {
	Message     string `json:"message"`
	SourceLabel string `json:"sourceLabel"`
	Restaurant  string `json:"restaurant,omitempty"`
}

func (p NotificationPayload) Source() string {
	if p.SourceLabel != "" {
		return p.SourceLabel
	}
	return p.Restaurant
}

type StatusUpdateRequest struct {
	OrderID string      `json:"orderId" validate:"required"`
	Status  OrderStatus `json:"status" validate:"required"`
}

// AckResponse is how the host answers state-changing requests.
type AckResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
