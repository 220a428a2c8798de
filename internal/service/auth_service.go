// Package service is the shared data/service layer the original client
// duplicated into every screen. Each service wraps the API client once;
// presentation layers (the CLI here, screens originally) stay thin.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tayyabfareed009/Ecommerce-Application/internal/api"
	"github.com/tayyabfareed009/Ecommerce-Application/internal/session"
)

// Roles the backend issues. Anything else is rejected at login.
const (
	RoleCustomer   = "customer"
	RoleShopkeeper = "shopkeeper"
)

var (
	ErrMissingFields = errors.New("please fill in all fields")
	ErrUnknownRole   = errors.New("unknown role")
)

// AuthAPI is the slice of the backend client auth needs.
type AuthAPI interface {
	Login(ctx context.Context, creds api.Credentials) (api.LoginResponse, error)
	Signup(ctx context.Context, req api.SignupRequest) error
}

// AuthService owns the session lifecycle: Login populates the store
// wholesale, Logout clears it in bulk. No other code writes session keys.
type AuthService struct {
	api   AuthAPI
	store session.Store
}

func NewAuthService(api AuthAPI, store session.Store) *AuthService {
	return &AuthService{api: api, store: store}
}

// Login validates credentials client-side first (no round-trip wasted on
// blank fields), authenticates, and persists the returned session.
func (s *AuthService) Login(ctx context.Context, email, password string) (session.Session, error) {
	if email == "" || password == "" {
		return session.Session{}, ErrMissingFields
	}

	resp, err := s.api.Login(ctx, api.Credentials{Email: email, Password: password})
	if err != nil {
		return session.Session{}, err
	}

	if resp.Role != RoleCustomer && resp.Role != RoleShopkeeper {
		return session.Session{}, fmt.Errorf("%w: %q", ErrUnknownRole, resp.Role)
	}

	sess := session.Session{
		Token:   resp.Token,
		UserID:  resp.ID,
		Role:    resp.Role,
		Name:    resp.Name,
		Address: resp.Address,
		Email:   resp.Email,
	}
	if err = session.Save(ctx, s.store, sess); err != nil {
		return session.Session{}, fmt.Errorf("persist session: %w", err)
	}
	return sess, nil
}

func (s *AuthService) Signup(ctx context.Context, req api.SignupRequest) error {
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return ErrMissingFields
	}
	if req.Role != RoleCustomer && req.Role != RoleShopkeeper {
		return fmt.Errorf("%w: %q", ErrUnknownRole, req.Role)
	}
	return s.api.Signup(ctx, req)
}

// Logout drops every session key.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// Current returns the stored session; all fields empty means logged out.
func (s *AuthService) Current(ctx context.Context) (session.Session, error) {
	return session.Load(ctx, s.store)
}
