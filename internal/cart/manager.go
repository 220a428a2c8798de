// Package cart keeps a local copy of the remote shopping cart consistent
// under user edits. Item-level mutations are optimistic and server
// authoritative: the local list updates immediately, and a failed remote call
// triggers a full reload so server truth wins. Clearing the cart is the one
// client-authoritative operation; it empties the local list no matter what
// the backend says.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/tayyabfareed009/Ecommerce-Application/internal/domain"
)

var (
	// ErrEmptyCart is returned by PlaceOrder before any network activity
	// when there is nothing to order.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrItemNotFound means the item ID is not in the local list.
	ErrItemNotFound = errors.New("item not found in cart")

	// ErrCancelled means the user declined the confirmation prompt.
	ErrCancelled = errors.New("cancelled by user")
)

// API is the slice of the backend client the manager needs.
type API interface {
	FetchCart(ctx context.Context) ([]domain.LineItem, error)
	UpdateQuantity(ctx context.Context, itemID string, quantity int) error
	RemoveItem(ctx context.Context, itemID string) error
	ClearCart(ctx context.Context) error
	PlaceOrder(ctx context.Context, req domain.OrderRequest) (string, error)
}

// Manager owns the local cart state for one user session. It is safe for
// concurrent use, but does not serialize remote calls: two rapid edits may
// resolve out of order, which is why update responses carry sequence numbers
// (see SetQuantity).
type Manager struct {
	api     API
	confirm Confirmer

	mu    sync.Mutex
	items []domain.LineItem
	state State
	// seq tags the newest quantity update issued per item ID. A response
	// for an older sequence is stale and must not settle state.
	seq map[string]uint64

	loads singleflight.Group
}

func NewManager(api API, confirm Confirmer) *Manager {
	if confirm == nil {
		confirm = AutoConfirm
	}
	return &Manager{
		api:     api,
		confirm: confirm,
		state:   StateEmpty,
		seq:     make(map[string]uint64),
	}
}

// Items returns a copy of the current line items in server order.
func (m *Manager) Items() []domain.LineItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.LineItem, len(m.items))
	copy(out, m.items)
	return out
}

// Total is always derived from the item list, never cached.
func (m *Manager) Total() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.Total(m.items)
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Load replaces the local list with the server's cart. On failure the stale
// list is kept as-is and the error surfaces; there is no automatic retry.
// Concurrent loads collapse into one request.
func (m *Manager) Load(ctx context.Context) error {
	_, err, _ := m.loads.Do("load", func() (any, error) {
		m.setState(StateLoading)

		items, errFetch := m.api.FetchCart(ctx)
		if errFetch != nil {
			m.setState(StateError)
			return nil, errFetch
		}

		m.mu.Lock()
		m.items = items
		m.state = stateForItems(items)
		m.mu.Unlock()
		return nil, nil
	})
	return err
}

// SetQuantity applies the new quantity locally first, then confirms it with
// the backend. Quantities below one are removals; zero or negative counts are
// never stored. A failed remote update reloads the whole cart instead of
// rolling back the single item. When a newer update for the same item has
// been issued meanwhile, this call's outcome is discarded: last write wins.
func (m *Manager) SetQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity < 1 {
		return m.Remove(ctx, itemID)
	}

	m.mu.Lock()
	idx := m.indexOf(itemID)
	if idx < 0 {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	m.items[idx].Quantity = quantity
	m.seq[itemID]++
	issued := m.seq[itemID]
	m.state = StateMutating
	m.mu.Unlock()

	errUpdate := m.api.UpdateQuantity(ctx, itemID, quantity)

	m.mu.Lock()
	superseded := m.seq[itemID] != issued
	m.mu.Unlock()
	if superseded {
		// A newer update owns this item now; its resolution settles
		// the state.
		return nil
	}

	if errUpdate != nil {
		if errLoad := m.Load(ctx); errLoad != nil {
			return fmt.Errorf("update failed (%v), reload failed: %w", errUpdate, errLoad)
		}
		return errUpdate
	}

	m.settle()
	return nil
}

// Remove asks for confirmation, then deletes the item remotely before
// dropping it locally. On remote failure the cart is reloaded so the local
// list matches server truth.
func (m *Manager) Remove(ctx context.Context, itemID string) error {
	m.mu.Lock()
	idx := m.indexOf(itemID)
	if idx < 0 {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	name := m.items[idx].Name
	m.mu.Unlock()

	if !m.confirm.Confirm(fmt.Sprintf("Remove %q from the cart?", name)) {
		return ErrCancelled
	}

	m.setState(StateMutating)
	if errRemove := m.api.RemoveItem(ctx, itemID); errRemove != nil {
		if errLoad := m.Load(ctx); errLoad != nil {
			return fmt.Errorf("remove failed (%v), reload failed: %w", errRemove, errLoad)
		}
		return errRemove
	}

	m.mu.Lock()
	if idx = m.indexOf(itemID); idx >= 0 {
		m.items = append(m.items[:idx], m.items[idx+1:]...)
	}
	delete(m.seq, itemID)
	m.state = stateForItems(m.items)
	m.mu.Unlock()
	return nil
}

// Clear empties the cart. The local list is forced empty regardless of the
// remote outcome; the remote error, if any, is returned as advisory only —
// by the time Clear returns, Items is empty and Total is zero.
func (m *Manager) Clear(ctx context.Context) error {
	if !m.confirm.Confirm("Remove every item from the cart?") {
		return ErrCancelled
	}

	errClear := m.api.ClearCart(ctx)

	m.reset()
	return errClear
}

// PlaceOrder submits the current cart as an order. The empty-cart guard runs
// before any network call. Success resets the cart; failure leaves it intact
// so the user can retry.
func (m *Manager) PlaceOrder(ctx context.Context) (string, error) {
	m.mu.Lock()
	if len(m.items) == 0 {
		m.mu.Unlock()
		return "", ErrEmptyCart
	}
	lines := make([]domain.OrderLine, len(m.items))
	for i, li := range m.items {
		lines[i] = domain.OrderLineFrom(li)
	}
	total := domain.Total(m.items)
	m.mu.Unlock()

	prompt := fmt.Sprintf("Place order for a total of %s?", total.StringFixed(2))
	if !m.confirm.Confirm(prompt) {
		return "", ErrCancelled
	}

	m.setState(StateMutating)
	orderID, err := m.api.PlaceOrder(ctx, domain.OrderRequest{
		TotalAmount: total,
		Items:       lines,
	})
	if err != nil {
		m.setState(StateReady)
		return "", err
	}

	m.reset()
	return orderID, nil
}

// indexOf must be called with the mutex held.
func (m *Manager) indexOf(itemID string) int {
	for i := range m.items {
		if m.items[i].ID == itemID {
			return i
		}
	}
	return -1
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// settle returns the state to Ready or Empty based on the current list.
func (m *Manager) settle() {
	m.mu.Lock()
	m.state = stateForItems(m.items)
	m.mu.Unlock()
}

// reset drops everything: items, sequence tags, state.
func (m *Manager) reset() {
	m.mu.Lock()
	m.items = nil
	m.seq = make(map[string]uint64)
	m.state = StateEmpty
	m.mu.Unlock()
}

func stateForItems(items []domain.LineItem) State {
	if len(items) == 0 {
		return StateEmpty
	}
	return StateReady
}
