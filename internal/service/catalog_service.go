package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tayyabfareed009/Ecommerce-Application/internal/domain"
	"github.com/tayyabfareed009/Ecommerce-Application/internal/session"
)

var (
	ErrNotLoggedIn       = errors.New("login required")
	ErrInvalidProduct    = errors.New("product needs a name, a positive price and non-negative stock")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrProductIDRequired = errors.New("product id required")
)

// CatalogAPI is the slice of the backend client the catalog needs.
type CatalogAPI interface {
	Products(ctx context.Context) ([]domain.Product, error)
	AddToCart(ctx context.Context, productID string, quantity int) error
	CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

// ImageUploader pushes product images to the external host before the
// product record is created.
type ImageUploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

type CatalogService struct {
	api      CatalogAPI
	store    session.Store
	uploader ImageUploader
}

func NewCatalogService(api CatalogAPI, store session.Store, uploader ImageUploader) *CatalogService {
	return &CatalogService{api: api, store: store, uploader: uploader}
}

// Products is the public storefront listing; no auth needed.
func (s *CatalogService) Products(ctx context.Context) ([]domain.Product, error) {
	return s.api.Products(ctx)
}

// AddToCart checks the session before going to the network: an unauthenticated
// add is a client-side validation failure, not a request worth sending.
func (s *CatalogService) AddToCart(ctx context.Context, productID string, quantity int) error {
	if productID == "" {
		return ErrProductIDRequired
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if err := s.requireLogin(ctx); err != nil {
		return err
	}
	return s.api.AddToCart(ctx, productID, quantity)
}

// CreateProduct validates the form, uploads the image when one is attached,
// then creates the product with the hosted image URL.
func (s *CatalogService) CreateProduct(ctx context.Context, p domain.Product, imageName string, image io.Reader) (domain.Product, error) {
	if p.Name == "" || !p.Price.IsPositive() || p.Stock < 0 {
		return domain.Product{}, ErrInvalidProduct
	}
	if err := s.requireLogin(ctx); err != nil {
		return domain.Product{}, err
	}

	if image != nil {
		if s.uploader == nil {
			return domain.Product{}, errors.New("no image uploader configured")
		}
		url, err := s.uploader.Upload(ctx, imageName, image)
		if err != nil {
			return domain.Product{}, fmt.Errorf("upload product image: %w", err)
		}
		p.ImageURL = url
	}

	return s.api.CreateProduct(ctx, p)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, productID string) error {
	if productID == "" {
		return ErrProductIDRequired
	}
	if err := s.requireLogin(ctx); err != nil {
		return err
	}
	return s.api.DeleteProduct(ctx, productID)
}

func (s *CatalogService) requireLogin(ctx context.Context) error {
	tok, err := s.store.Get(ctx, session.KeyToken)
	if errors.Is(err, session.ErrKeyNotFound) || (err == nil && tok == "") {
		return ErrNotLoggedIn
	}
	return err
}
