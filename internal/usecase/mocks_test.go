package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// 期間内・未使用のテスト用プロモ
func validPromoForCart() model.PromoCode {
	return model.PromoCode{
		ID:                 7,
		Code:               "SAVE10",
		DiscountPercentage: 10,
		MinOrderAmount:     decimal.NewFromInt(1000),
		IsActive:           true,
		ValidFrom:          time.Now().Add(-24 * time.Hour),
		ValidUntil:         time.Now().Add(24 * time.Hour),
	}
}

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	carts      repo.CartRepository
	cartItems  repo.CartItemRepository
	products   repo.ProductRepository
	promos     repo.PromoRepository
	inventory  repo.InventoryRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *TxReposMock) Carts() repo.CartRepository           { return r.carts }
func (r *TxReposMock) CartItems() repo.CartItemRepository   { return r.cartItems }
func (r *TxReposMock) Products() repo.ProductRepository     { return r.products }
func (r *TxReposMock) Promos() repo.PromoRepository         { return r.promos }
func (r *TxReposMock) Inventory() repo.InventoryRepository  { return r.inventory }

// =====================
// Repository mocks
// =====================

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) GetOrCreateByOwner(ctx context.Context, owner model.OwnerKey) (model.Cart, error) {
	args := m.Called(ctx, owner)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindByOwner(ctx context.Context, owner model.OwnerKey) (model.Cart, error) {
	args := m.Called(ctx, owner)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) SetPromoCode(ctx context.Context, cartID int64, code *string) error {
	args := m.Called(ctx, cartID, code)
	return args.Error(0)
}

func (m *CartRepoMock) Clear(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) FindByCartAndProduct(ctx context.Context, cartID int64, productID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartID, productID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartItemRepoMock) AddQuantity(ctx context.Context, cartID int64, productID int64, addQty int64, options model.OptionMap) error {
	args := m.Called(ctx, cartID, productID, addQty, options)
	return args.Error(0)
}

func (m *CartItemRepoMock) SetQuantity(ctx context.Context, cartID int64, productID int64, qty int64) error {
	args := m.Called(ctx, cartID, productID, qty)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByCartAndProduct(ctx context.Context, cartID int64, productID int64) error {
	args := m.Called(ctx, cartID, productID)
	return args.Error(0)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) ListActive(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindBySlug(ctx context.Context, slug string) (model.Product, error) {
	args := m.Called(ctx, slug)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type PromoRepoMock struct{ mock.Mock }

func (m *PromoRepoMock) FindByCode(ctx context.Context, code string) (model.PromoCode, error) {
	args := m.Called(ctx, code)
	p, _ := args.Get(0).(model.PromoCode)
	return p, args.Error(1)
}

func (m *PromoRepoMock) IncrementUsedIfAvailable(ctx context.Context, promoID int64) (bool, error) {
	args := m.Called(ctx, promoID)
	return args.Bool(0), args.Error(1)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	os, _ := args.Get(0).([]model.Order)
	return os, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) MarkPaid(ctx context.Context, orderID int64, paid bool) error {
	args := m.Called(ctx, orderID, paid)
	return args.Error(0)
}

func (m *OrderRepoMock) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	os, _ := args.Get(0).([]model.Order)
	return os, args.Get(1).(int64), args.Error(2)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) SetStock(ctx context.Context, productID int64, newStock int64) error {
	args := m.Called(ctx, productID, newStock)
	return args.Error(0)
}

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

// =====================
// Notifier mock（コミット後のgoroutineから呼ばれるのでchannelで同期する）
// =====================

type NotifierMock struct {
	err error
	ch  chan string
}

func NewNotifierMock(err error) *NotifierMock {
	return &NotifierMock{err: err, ch: make(chan string, 1)}
}

func (m *NotifierMock) Notify(ctx context.Context, text string) error {
	m.ch <- text
	return m.err
}

func (m *NotifierMock) WaitText(t *testing.T) string {
	t.Helper()
	select {
	case text := <-m.ch:
		return text
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was not called")
		return ""
	}
}

// =====================
// Helper: error contains（HTTPErrorの実装詳細に依存しない）
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}
