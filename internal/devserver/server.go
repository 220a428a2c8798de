// Package devserver implements the storefront REST contract against an
// in-memory store. It exists so the client stack can be developed and
// integration-tested without the hosted backend.
package devserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"

	"github.com/tayyabfareed009/Ecommerce-Application/internal/domain"
)

type ctxKey int

const userIDKey ctxKey = iota

type Server struct {
	store *Store
	log   *slog.Logger
}

func New(store *Store, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{store: store, log: log}
}

// Handler builds the full route table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/signup", s.handleSignup)
	r.Post("/login", s.handleLogin)
	r.Get("/products", s.handleListProducts)

	// Everything below requires a bearer token.
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Post("/products", s.handleCreateProduct)
		r.Delete("/delete-product/{id}", s.handleDeleteProduct)

		r.Post("/add-to-cart", s.handleAddToCart)
		r.Get("/cart", s.handleGetCart)
		r.Put("/cart/update", s.handleUpdateQuantity)
		r.Delete("/cart/item", s.handleRemoveItem)
		r.Delete("/cart/clear", s.handleClearCart)

		r.Post("/place-order", s.handlePlaceOrder)
		r.Get("/orders", s.handleListOrders)
		r.Get("/order/{id}", s.handleGetOrder)
		r.Put("/update-order/{id}", s.handleUpdateOrder)
		r.Delete("/delete-order/{id}", s.handleDeleteOrder)
		r.Delete("/order-item/{id}", s.handleDeleteOrderItem)
	})

	return r
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		userID, err := s.store.UserIDForToken(token)
		if err != nil {
			s.respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Address  string `json:"address"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		s.respondError(w, http.StatusBadRequest, "name, email, password and role are required")
		return
	}
	if err := s.store.Signup(req.Name, req.Email, req.Password, req.Role, req.Address); err != nil {
		s.respondError(w, http.StatusConflict, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{"message": "account created"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	u, token, err := s.store.Login(req.Email, req.Password)
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{
		"token":   token,
		"id":      u.ID,
		"role":    u.Role,
		"name":    u.Name,
		"address": u.Address,
		"email":   u.Email,
	})
}

func (s *Server) handleListProducts(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, s.store.Products())
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if p.Name == "" || !p.Price.IsPositive() {
		s.respondError(w, http.StatusBadRequest, "product needs a name and a positive price")
		return
	}
	created := s.store.AddProduct(p, userID(r))
	s.respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteProduct(chi.URLParam(r, "id")); err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

type addToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Quantity < 1 {
		s.respondError(w, http.StatusBadRequest, "quantity must be at least 1")
		return
	}
	if err := s.store.AddToCart(userID(r), req.ProductID, req.Quantity); err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{"message": "added to cart"})
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.store.Cart(userID(r)))
}

type updateQuantityRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

func (s *Server) handleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.store.UpdateQuantity(userID(r), req.ItemID, req.Quantity); err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "quantity updated"})
}

type removeItemRequest struct {
	ItemID string `json:"itemId"`
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	var req removeItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.store.RemoveItem(userID(r), req.ItemID); err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "item removed"})
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	s.store.ClearCart(userID(r))
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "cart cleared"})
}

type placeOrderRequest struct {
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Items       []domain.OrderLine `json:"items"`
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Items) == 0 {
		s.respondJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"message": "cannot place an empty order",
		})
		return
	}
	order := s.store.PlaceOrder(userID(r), req.TotalAmount, req.Items)
	s.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"orderId": order.ID,
	})
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.store.Orders(userID(r)))
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.store.Order(userID(r), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, order)
}

type updateOrderRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.store.UpdateOrderStatus(userID(r), chi.URLParam(r, "id"), req.Status); err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "order updated"})
}

func (s *Server) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteOrder(userID(r), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "order deleted"})
}

func (s *Server) handleDeleteOrderItem(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteOrderItem(userID(r), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "order item deleted"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"message": message})
}
