package httpx

import (
	"sync"
	"time"

	"github.com/jcmexdev/storefront-aggregator/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/storefront-aggregator/internal/storefront/core/ports"
)

// DefaultNotificationTTL is how long a transient notification stays
// visible before it is implicitly cleared.
const DefaultNotificationTTL = 5 * time.Second

// Notification is the currently visible transient message.
type Notification struct {
	Message  string         `json:"message"`
	Severity ports.Severity `json:"severity"`
}

// StateShell is the in-process stand-in for the browser presentation
// shell: it records whatever the coordinator renders and owns the
// single-slot transient notification, so the real UI (out of scope) can
// poll the current picture over HTTP.
type StateShell struct {
	mu  sync.Mutex
	ttl time.Duration

	products           []entity.Product
	productPlaceholder string
	orders             []entity.Order
	orderPlaceholder   string
	cartItems          []entity.CartItem
	cartTotal          float64

	// formVersion increments on every ResetProductForm; a polling UI
	// clears its inputs when the version moves.
	formVersion int

	note    *Notification
	noteGen uint64
}

var _ ports.Shell = (*StateShell)(nil)

// NewStateShell returns a shell whose notifications stay visible for ttl.
// A non-positive ttl selects DefaultNotificationTTL.
func NewStateShell(ttl time.Duration) *StateShell {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &StateShell{ttl: ttl}
}

func (s *StateShell) RenderProductList(products []entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.productPlaceholder = ""
}

func (s *StateShell) RenderProductListPlaceholder(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = nil
	s.productPlaceholder = message
}

func (s *StateShell) RenderOrderList(orders []entity.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = orders
	s.orderPlaceholder = ""
}

func (s *StateShell) RenderOrderListPlaceholder(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = nil
	s.orderPlaceholder = message
}

func (s *StateShell) RenderCart(items []entity.CartItem, total float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartItems = items
	s.cartTotal = total
}

// Notify replaces the visible notification (overlapping notifications are
// not queued) and restarts the visibility timer. The expiry closure only
// clears the notification it timed, so a newer message survives an older
// timer firing.
func (s *StateShell) Notify(message string, severity ports.Severity) {
	s.mu.Lock()
	s.noteGen++
	gen := s.noteGen
	s.note = &Notification{Message: message, Severity: severity}
	ttl := s.ttl
	s.mu.Unlock()

	time.AfterFunc(ttl, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.noteGen == gen {
			s.note = nil
		}
	})
}

func (s *StateShell) ResetProductForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formVersion++
}

// Notification returns the currently visible message, nil when none.
func (s *StateShell) Notification() *Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.note == nil {
		return nil
	}
	note := *s.note
	return &note
}

// Snapshot returns the full rendered state for the polling UI.
func (s *StateShell) Snapshot() StateResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := StateResponse{
		ProductList: ProductListView{
			Products:    s.products,
			Placeholder: s.productPlaceholder,
		},
		OrderList: OrderListView{
			Orders:      s.orders,
			Placeholder: s.orderPlaceholder,
		},
		Cart: CartView{
			Items: s.cartItems,
			Total: s.cartTotal,
		},
		FormVersion: s.formVersion,
	}
	if s.note != nil {
		note := *s.note
		state.Notification = &note
	}
	return state
}
