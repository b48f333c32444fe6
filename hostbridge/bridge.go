package hostbridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-order-panel/models"
	"go-order-panel/panel"
)

const (
	DefaultTimeout   = 10 * time.Second
	defaultInboxSize = 64
	writeWait        = 5 * time.Second
)

var (
	ErrClosed  = errors.New("host connection closed")
	ErrTimeout = errors.New("host did not reply in time")
)

type Options struct {
	// Timeout bounds each Call. Zero means DefaultTimeout.
	Timeout   time.Duration
	Header    http.Header
	Logger    *zap.Logger
	InboxSize int
}

// Bridge is a websocket connection to the host. Replies are matched to calls by id;
// every other frame is a push and goes to Inbox.
type Bridge struct {
	conn    *websocket.Conn
	logger  *zap.Logger
	timeout time.Duration

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]chan models.Message
	closed  bool

	inbox chan models.Message
	done  chan struct{}
}

var _ panel.Host = (*Bridge)(nil)

func Dial(ctx context.Context, url string, opts Options) (*Bridge, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, opts.Header)
	if err != nil {
		return nil, fmt.Errorf("dial host %s: %w", url, err)
	}
	b := newBridge(conn, opts)
	go b.readLoop()
	return b, nil
}

func newBridge(conn *websocket.Conn, opts Options) *Bridge {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.InboxSize <= 0 {
		opts.InboxSize = defaultInboxSize
	}
	return &Bridge{
		conn:    conn,
		logger:  opts.Logger,
		timeout: opts.Timeout,
		pending: make(map[string]chan models.Message),
		inbox:   make(chan models.Message, opts.InboxSize),
		done:    make(chan struct{}),
	}
}

// Inbox delivers pushed messages. It is closed when the connection drops.
func (b *Bridge) Inbox() <-chan models.Message {
	return b.inbox
}

// Done is closed when the connection drops.
func (b *Bridge) Done() <-chan struct{} {
	return b.done
}

func (b *Bridge) Close() error {
	b.writeMu.Lock()
	_ = b.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	b.writeMu.Unlock()
	return b.conn.Close()
}

// Call sends op with req as payload and waits for the matching reply, decoding its payload
// into resp when resp is non-nil. A reply carrying an error is returned as *panel.HostError.
func (b *Bridge) Call(ctx context.Context, op string, req, resp interface{}) error {
	msg, err := models.NewMessage(op, req)
	if err != nil {
		return fmt.Errorf("encode %s: %w", op, err)
	}
	msg.ID = uuid.NewString()

	reply := make(chan models.Message, 1)
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	b.pending[msg.ID] = reply
	b.mu.Unlock()
	defer b.forget(msg.ID)

	if err := b.write(msg); err != nil {
		return fmt.Errorf("write %s: %w", op, err)
	}

	timer := time.NewTimer(b.timeout)
	defer timer.Stop()

	select {
	case m, ok := <-reply:
		if !ok {
			return ErrClosed
		}
		if m.Error != "" {
			return &panel.HostError{Op: op, Message: m.Error}
		}
		if resp != nil && len(m.Payload) > 0 {
			if err := json.Unmarshal(m.Payload, resp); err != nil {
				return fmt.Errorf("decode %s reply: %w", op, err)
			}
		}
		return nil
	case <-timer.C:
		b.logger.Warn("host call timed out", zap.String("op", op), zap.String("id", msg.ID), zap.Duration("timeout", b.timeout))
		return ErrTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bridge) write(msg models.Message) error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	if err := b.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return b.conn.WriteJSON(msg)
}

func (b *Bridge) forget(id string) {
	b.mu.Lock()
	delete(b.pending, id)
	b.mu.Unlock()
}

func (b *Bridge) readLoop() {
	defer b.shutdown()

	for {
		_, data, err := b.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				b.logger.Error("host connection lost", zap.Error(err))
			} else {
				b.logger.Info("host connection closed")
			}
			return
		}

		var msg models.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			b.logger.Warn("discarding malformed frame from host", zap.Error(err), zap.Int("bytes", len(data)))
			continue
		}

		if msg.ID != "" {
			b.mu.Lock()
			reply, ok := b.pending[msg.ID]
			delete(b.pending, msg.ID)
			b.mu.Unlock()
			if ok {
				reply <- msg
				continue
			}
		}
		b.inbox <- msg
	}
}

// shutdown fails every pending call and closes the push channel.
func (b *Bridge) shutdown() {
	b.mu.Lock()
	b.closed = true
	for id, reply := range b.pending {
		close(reply)
		delete(b.pending, id)
	}
	b.mu.Unlock()

	close(b.inbox)
	close(b.done)
}

func (b *Bridge) SubmitOrder(ctx context.Context, draft models.OrderDraft) (models.Order, error) {
	var order models.Order
	err := b.Call(ctx, models.OpSubmitOrder, draft, &order)
	return order, err
}

func (b *Bridge) UpdateOrderStatus(ctx context.Context, req models.StatusUpdateRequest) (models.AckResponse, error) {
	var ack models.AckResponse
	err := b.Call(ctx, models.OpUpdateOrderStatus, req, &ack)
	return ack, err
}

func (b *Bridge) GetDashboardStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	err := b.Call(ctx, models.OpGetDashboardStats, nil, &stats)
	return stats, err
}

func (b *Bridge) GetBankBalance(ctx context.Context) (decimal.Decimal, error) {
	var res models.BalanceResponse
	err := b.Call(ctx, models.OpGetBankBalance, nil, &res)
	return res.Balance, err
}

func (b *Bridge) WithdrawBank(ctx context.Context, amount decimal.Decimal) (models.AckResponse, error) {
	var ack models.AckResponse
	err := b.Call(ctx, models.OpWithdrawBank, models.WithdrawRequest{Amount: amount}, &ack)
	return ack, err
}
