package panel

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-order-panel/models"
)

// ChangeKind names the slice of state a mutation touched. UI broadcasts use it as the event tag.
type ChangeKind string

const (
	ChangePanel        ChangeKind = "panel"
	ChangeCatalog      ChangeKind = "catalog"
	ChangeCart         ChangeKind = "cart"
	ChangeCheckout     ChangeKind = "checkout"
	ChangeOrders       ChangeKind = "orders"
	ChangeDetail       ChangeKind = "detail"
	ChangeDashboard    ChangeKind = "dashboard"
	ChangeBalance      ChangeKind = "balance"
	ChangeTreasury     ChangeKind = "treasury"
	ChangeNotification ChangeKind = "notification"
)

const DefaultNotificationTTL = 5 * time.Second

// Listener is called after a change has been committed. It runs outside the session lock.
type Listener func(ChangeKind)

// Option configures a Session in NewSession.
type Option func(*Session)

// WithLogger sets the session logger. A nil logger keeps the no-op default.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces time.Now, mostly for tests that care about "today".
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithNotificationTTL sets how long a notification stays up. Non-positive values are ignored.
func WithNotificationTTL(ttl time.Duration) Option {
	return func(s *Session) {
		if ttl > 0 {
			s.notificationTTL = ttl
		}
	}
}

// Session is the state of one panel. All fields are guarded by mu; host calls are made
// with mu released and their results applied in a fresh critical section.
type Session struct {
	mu sync.Mutex

	host            Host
	logger          *zap.Logger
	now             func() time.Time
	notificationTTL time.Duration

	// panelGen changes on every panel open. Host results captured under an older value
	// belong to a view that is no longer displayed.
	panelGen uint64

	staff   bool
	mode    string
	filters []string
	filter  string
	catalog []models.CatalogItem

	cart         []models.CartLine
	orderName    string
	checkoutOpen bool
	submitting   bool

	open      []models.Order
	completed []models.Order
	page      int

	detail    *models.Order
	detailGen uint64

	stats        *models.DashboardStats
	balance      decimal.Decimal
	withdrawOpen bool

	notification *models.Notification
	notifySeq    uint64
	notifyTimer  *time.Timer

	listeners []Listener
}

func NewSession(host Host, opts ...Option) *Session {
	s := &Session{
		host:            host,
		logger:          zap.NewNop(),
		now:             time.Now,
		notificationTTL: DefaultNotificationTTL,
		page:            1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn for every committed change.
func (s *Session) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// emit must be called without mu held.
func (s *Session) emit(kinds ...ChangeKind) {
	s.mu.Lock()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, kind := range kinds {
		for _, fn := range listeners {
			fn(kind)
		}
	}
}

func (s *Session) IsStaff() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.staff
}

func (s *Session) Mode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}
