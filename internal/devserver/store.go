package devserver

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tayyabfareed009/Ecommerce-Application/internal/domain"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrProductNotFound    = errors.New("product not found")
	ErrItemNotFound       = errors.New("item not found")
	ErrOrderNotFound      = errors.New("order not found")
)

type user struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     string
	Address  string
}

// Store is the in-memory state behind the development server. Everything is
// owned by one mutex; the dataset is a single developer's session, not a
// production workload.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*user  // email -> user
	tokens   map[string]string // token -> user ID
	products []domain.Product  // insertion order
	carts    map[string][]domain.LineItem
	orders   map[string][]domain.Order
}

func NewStore() *Store {
	return &Store{
		users:  make(map[string]*user),
		tokens: make(map[string]string),
		carts:  make(map[string][]domain.LineItem),
		orders: make(map[string][]domain.Order),
	}
}

func (s *Store) Signup(name, email, password, role, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[email]; exists {
		return ErrEmailTaken
	}
	s.users[email] = &user{
		ID:       uuid.New().String(),
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
		Address:  address,
	}
	return nil
}

// Login checks credentials and issues a fresh bearer token.
func (s *Store) Login(email, password string) (*user, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok || u.Password != password {
		return nil, "", ErrInvalidCredentials
	}
	token := uuid.New().String()
	s.tokens[token] = u.ID
	return u, token, nil
}

func (s *Store) UserIDForToken(token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.tokens[token]
	if !ok {
		return "", ErrInvalidToken
	}
	return id, nil
}

func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) AddProduct(p domain.Product, sellerID string) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.New().String()
	p.SellerID = sellerID
	s.products = append(s.products, p)
	return p
}

func (s *Store) DeleteProduct(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == productID {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

// AddToCart merges by product: adding the same product again bumps its
// quantity instead of creating a second line.
func (s *Store) AddToCart(userID, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var product *domain.Product
	for i := range s.products {
		if s.products[i].ID == productID {
			product = &s.products[i]
			break
		}
	}
	if product == nil {
		return ErrProductNotFound
	}

	items := s.carts[userID]
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			s.carts[userID] = items
			return nil
		}
	}
	s.carts[userID] = append(items, domain.LineItem{
		ID:        uuid.New().String(),
		ProductID: productID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  quantity,
		ImageURL:  product.ImageURL,
	})
	return nil
}

func (s *Store) Cart(userID string) []domain.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.carts[userID]
	out := make([]domain.LineItem, len(items))
	copy(out, items)
	return out
}

// UpdateQuantity enforces the quantity floor server-side too: anything below
// one removes the line.
func (s *Store) UpdateQuantity(userID, itemID string, quantity int) error {
	if quantity < 1 {
		return s.RemoveItem(userID, itemID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[userID]
	for i := range items {
		if items[i].ID == itemID {
			items[i].Quantity = quantity
			s.carts[userID] = items
			return nil
		}
	}
	return ErrItemNotFound
}

func (s *Store) RemoveItem(userID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[userID]
	for i := range items {
		if items[i].ID == itemID {
			s.carts[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

func (s *Store) ClearCart(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

// PlaceOrder records the order and clears the user's server-side cart, the
// same way the production backend does.
func (s *Store) PlaceOrder(userID string, total decimal.Decimal, lines []domain.OrderLine) domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range lines {
		lines[i].ID = uuid.New().String()
	}
	order := domain.Order{
		ID:          uuid.New().String(),
		UserID:      userID,
		TotalAmount: total,
		Status:      domain.StatusPending,
		CreatedAt:   time.Now().UTC(),
		Items:       lines,
	}
	s.orders[userID] = append(s.orders[userID], order)
	delete(s.carts, userID)
	return order
}

func (s *Store) Orders(userID string) []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := s.orders[userID]
	out := make([]domain.Order, len(orders))
	copy(out, orders)
	return out
}

func (s *Store) Order(userID, orderID string) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders[userID] {
		if o.ID == orderID {
			return o, nil
		}
	}
	return domain.Order{}, ErrOrderNotFound
}

func (s *Store) UpdateOrderStatus(userID, orderID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := s.orders[userID]
	for i := range orders {
		if orders[i].ID == orderID {
			orders[i].Status = domain.NormalizeStatus(status)
			s.orders[userID] = orders
			return nil
		}
	}
	return ErrOrderNotFound
}

func (s *Store) DeleteOrder(userID, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := s.orders[userID]
	for i := range orders {
		if orders[i].ID == orderID {
			s.orders[userID] = append(orders[:i], orders[i+1:]...)
			return nil
		}
	}
	return ErrOrderNotFound
}

func (s *Store) DeleteOrderItem(userID, orderItemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := s.orders[userID]
	for i := range orders {
		for j := range orders[i].Items {
			if orders[i].Items[j].ID == orderItemID {
				orders[i].Items = append(orders[i].Items[:j], orders[i].Items[j+1:]...)
				s.orders[userID] = orders
				return nil
			}
		}
	}
	return ErrItemNotFound
}
