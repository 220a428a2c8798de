package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tayyabfareed009/Ecommerce-Application/internal/domain"
	"github.com/tayyabfareed009/Ecommerce-Application/internal/session"
)

type mockCatalogAPI struct {
	products    []domain.Product
	created     domain.Product
	addCalls    int
	createCalls int
	deleteCalls int
	err         error
}

func (m *mockCatalogAPI) Products(context.Context) ([]domain.Product, error) {
	return m.products, m.err
}

func (m *mockCatalogAPI) AddToCart(context.Context, string, int) error {
	m.addCalls++
	return m.err
}

func (m *mockCatalogAPI) CreateProduct(_ context.Context, p domain.Product) (domain.Product, error) {
	m.createCalls++
	m.created = p
	return p, m.err
}

func (m *mockCatalogAPI) DeleteProduct(context.Context, string) error {
	m.deleteCalls++
	return m.err
}

type mockUploader struct {
	url     string
	err     error
	calls   int
	gotName string
}

func (m *mockUploader) Upload(_ context.Context, filename string, r io.Reader) (string, error) {
	m.calls++
	m.gotName = filename
	io.Copy(io.Discard, r)
	return m.url, m.err
}

func loggedInStore(t *testing.T) session.Store {
	t.Helper()
	st := session.NewMemoryStore()
	require.NoError(t, st.Set(context.Background(), session.KeyToken, "tok-1"))
	return st
}

func TestAddToCart_RequiresLogin(t *testing.T) {
	mock := &mockCatalogAPI{}
	sut := NewCatalogService(mock, session.NewMemoryStore(), nil)

	err := sut.AddToCart(context.Background(), "p1", 1)
	require.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Equal(t, 0, mock.addCalls, "unauthenticated add must not reach the network")
}

func TestAddToCart_ValidatesInput(t *testing.T) {
	mock := &mockCatalogAPI{}
	sut := NewCatalogService(mock, loggedInStore(t), nil)

	require.ErrorIs(t, sut.AddToCart(context.Background(), "", 1), ErrProductIDRequired)
	require.ErrorIs(t, sut.AddToCart(context.Background(), "p1", 0), ErrInvalidQuantity)
	assert.Equal(t, 0, mock.addCalls)

	require.NoError(t, sut.AddToCart(context.Background(), "p1", 2))
	assert.Equal(t, 1, mock.addCalls)
}

func TestCreateProduct_UploadsImageFirst(t *testing.T) {
	mock := &mockCatalogAPI{}
	uploader := &mockUploader{url: "https://img.example/hosted.png"}
	sut := NewCatalogService(mock, loggedInStore(t), uploader)

	p := domain.Product{Name: "Mug", Price: decimal.RequireFromString("9.99"), Stock: 3}
	created, err := sut.CreateProduct(context.Background(), p, "mug.png", strings.NewReader("fake-bytes"))
	require.NoError(t, err)

	assert.Equal(t, 1, uploader.calls)
	assert.Equal(t, "mug.png", uploader.gotName)
	assert.Equal(t, "https://img.example/hosted.png", created.ImageURL)
	assert.Equal(t, "https://img.example/hosted.png", mock.created.ImageURL)
}

func TestCreateProduct_Validation(t *testing.T) {
	mock := &mockCatalogAPI{}
	sut := NewCatalogService(mock, loggedInStore(t), nil)

	_, err := sut.CreateProduct(context.Background(), domain.Product{Name: ""}, "", nil)
	require.ErrorIs(t, err, ErrInvalidProduct)

	bad := domain.Product{Name: "Mug", Price: decimal.Zero}
	_, err = sut.CreateProduct(context.Background(), bad, "", nil)
	require.ErrorIs(t, err, ErrInvalidProduct)

	assert.Equal(t, 0, mock.createCalls)
}

func TestCreateProduct_NoImageSkipsUploader(t *testing.T) {
	mock := &mockCatalogAPI{}
	uploader := &mockUploader{url: "https://img.example/hosted.png"}
	sut := NewCatalogService(mock, loggedInStore(t), uploader)

	p := domain.Product{Name: "Mug", Price: decimal.RequireFromString("9.99")}
	_, err := sut.CreateProduct(context.Background(), p, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, uploader.calls)
}
