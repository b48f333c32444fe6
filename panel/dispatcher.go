package panel

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"go-order-panel/models"
)

// HandlerFunc processes the payload of one pushed event.
type HandlerFunc func(payload json.RawMessage) error

// Dispatcher routes pushed messages to handlers by event tag.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
	logger   *zap.Logger
}

func NewDispatcher(logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		handlers: make(map[string]HandlerFunc),
		logger:   logger,
	}
}

// Handle registers fn for event, replacing any previous handler.
func (d *Dispatcher) Handle(event string, fn HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[event] = fn
}

func (d *Dispatcher) Dispatch(msg models.Message) error {
	d.mu.RLock()
	fn, ok := d.handlers[msg.Event]
	d.mu.RUnlock()

	if !ok {
		d.logger.Warn("no handler for event", zap.String("event", msg.Event))
		return fmt.Errorf("%w: %q", ErrUnknownEvent, msg.Event)
	}
	if err := fn(msg.Payload); err != nil {
		d.logger.Error("event handler failed", zap.String("event", msg.Event), zap.Error(err))
		return err
	}
	return nil
}

// Run dispatches messages from inbox one at a time until ctx is done or inbox is closed.
// Handler errors are logged and do not stop the loop.
func (d *Dispatcher) Run(ctx context.Context, inbox <-chan models.Message) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-inbox:
			if !ok {
				return nil
			}
			_ = d.Dispatch(msg)
		}
	}
}

// Register wires the session's push handlers, under both the current and legacy event names.
func (s *Session) Register(d *Dispatcher) {
	for _, event := range []string{models.EventOpenPanel, models.LegacyEventOpenPanel} {
		d.Handle(event, s.handleOpenPanel)
	}
	for _, event := range []string{models.EventOrdersUpdated, models.LegacyEventOrdersUpdated} {
		d.Handle(event, s.handleOrdersUpdated)
	}
	for _, event := range []string{models.EventOrderNotification, models.LegacyEventOrderNotification} {
		d.Handle(event, s.handleNotification)
	}
}

func (s *Session) handleOpenPanel(payload json.RawMessage) error {
	var p models.OpenPanelPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("decode %s: %w", models.EventOpenPanel, err)
	}
	s.OpenPanel(p)
	return nil
}

func (s *Session) handleOrdersUpdated(payload json.RawMessage) error {
	var p models.OrdersUpdatedPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("decode %s: %w", models.EventOrdersUpdated, err)
	}
	s.ApplyOrdersUpdate(p)
	return nil
}

func (s *Session) handleNotification(payload json.RawMessage) error {
	var p models.NotificationPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("decode %s: %w", models.EventOrderNotification, err)
	}
	s.Notify(p.Message, p.Source())
	return nil
}
