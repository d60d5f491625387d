package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/domain/pricing"
	"app/internal/notifier"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

const orderNumberAttempts = 5

// CheckoutUsecase は価格確定済みカートを注文スナップショットへ変換する。
// 手順1〜7は単一トランザクション。通知だけがコミット後のベストエフォート。
type CheckoutUsecase struct {
	tx       repo.TransactionManager
	notify   notifier.Notifier
	policy   pricing.DeliveryPolicy
	notifyTO time.Duration
}

func NewCheckoutUsecase(tx repo.TransactionManager, notify notifier.Notifier, policy pricing.DeliveryPolicy) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:       tx,
		notify:   notify,
		policy:   policy,
		notifyTO: 5 * time.Second,
	}
}

type PlaceOrderInput struct {
	FirstName      string
	LastName       string
	Phone          string
	Email          string
	DeliveryMethod string
	City           string
	Address        string
	PostalCode     string
	DeliveryTime   string
	PaymentMethod  string
	Notes          string
}

type OrderItemOutput struct {
	ProductID       int64           `json:"product_id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Quantity        int64           `json:"quantity"`
	SelectedOptions model.OptionMap `json:"selected_options"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

type OrderOutput struct {
	ID           int64             `json:"id"`
	OrderNumber  string            `json:"order_number"`
	Status       string            `json:"status"`
	Subtotal     decimal.Decimal   `json:"subtotal"`
	DeliveryCost decimal.Decimal   `json:"delivery_cost"`
	Discount     decimal.Decimal   `json:"discount"`
	Total        decimal.Decimal   `json:"total"`
	PromoCode    *string           `json:"promo_code"`
	CreatedAt    time.Time         `json:"created_at"`
	Items        []OrderItemOutput `json:"items"`
}

func (in PlaceOrderInput) validate() error {
	if strings.TrimSpace(in.FirstName) == "" {
		return NewHTTPError(http.StatusBadRequest, "first_name is required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		return NewHTTPError(http.StatusBadRequest, "last_name is required")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return NewHTTPError(http.StatusBadRequest, "phone is required")
	}
	if in.Email != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			return NewHTTPError(http.StatusBadRequest, "invalid email")
		}
	}

	switch model.DeliveryMethod(in.DeliveryMethod) {
	case model.DeliveryMethodCourier, model.DeliveryMethodPickup:
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid delivery_method")
	}

	switch model.PaymentMethod(in.PaymentMethod) {
	case model.PaymentMethodCash, model.PaymentMethodCard, model.PaymentMethodOnline:
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid payment_method")
	}

	return nil
}

// 注文確定。カート再読込→再計算→プロモ再検証→番号採番→注文作成→
// 在庫減算→カートクリア、までを1トランザクションで行う。
// クライアントから合計金額は一切受け取らない。
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, owner model.OwnerKey, in PlaceOrderInput) (OrderOutput, error) {
	if err := in.validate(); err != nil {
		return OrderOutput{}, err
	}

	method := model.DeliveryMethod(in.DeliveryMethod)
	now := time.Now()

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//カート再読込
		cart, err := r.Carts().FindByOwner(ctx, owner)
		if errors.Is(err, repo.ErrNotFound) {
			return WrapHTTPError(http.StatusBadRequest, ErrEmptyCart)
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return WrapHTTPError(http.StatusBadRequest, ErrEmptyCart)
		}

		//現在の商品情報で明細を組み立てる
		lines := make([]pricing.Line, 0, len(cartItems))
		options := make([]model.OptionMap, 0, len(cartItems))
		for _, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusBadRequest, "a product in your cart is no longer available")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !p.IsActive {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s is no longer available", p.Name))
			}
			lines = append(lines, pricing.Line{Product: p, Quantity: ci.Quantity})
			options = append(options, ci.SelectedOptions)
		}

		//プロモ再検証（表示時から時間・使用回数が動いている可能性がある）
		var promo *model.PromoCode
		if cart.PromoCode != nil {
			found, err := r.Promos().FindByCode(ctx, *cart.PromoCode)
			if err != nil && !errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if err == nil {
				promo = &found
			}
		}

		//金額はサーバー側で確定する
		q := pricing.Quote(lines, promo, method, now, u.policy)

		//割引を適用したときだけused_countを+1（同一トランザクション内）
		var appliedCode *string
		if q.AppliedPromo != nil {
			ok, err := r.Promos().IncrementUsedIfAvailable(ctx, q.AppliedPromo.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				//表示後に別の注文で使い切られた
				return WrapHTTPError(http.StatusBadRequest, &model.InvalidPromoError{
					Reason:  model.PromoRejectExhausted,
					Message: "promo code usage limit reached",
				})
			}
			code := q.AppliedPromo.Code
			appliedCode = &code
		}

		//注文番号の採番（衝突したら振り直し）
		number, err := u.generateOrderNumber(ctx, r.Orders())
		if err != nil {
			return err
		}

		order := model.Order{
			OrderNumber:    number,
			Status:         model.OrderStatusPending,
			UserID:         owner.UserID,
			FirstName:      strings.TrimSpace(in.FirstName),
			LastName:       strings.TrimSpace(in.LastName),
			Phone:          strings.TrimSpace(in.Phone),
			Email:          strings.TrimSpace(in.Email),
			DeliveryMethod: method,
			City:           strings.TrimSpace(in.City),
			Address:        strings.TrimSpace(in.Address),
			PostalCode:     strings.TrimSpace(in.PostalCode),
			DeliveryTime:   strings.TrimSpace(in.DeliveryTime),
			PaymentMethod:  model.PaymentMethod(in.PaymentMethod),
			Subtotal:       q.Subtotal,
			DeliveryCost:   q.DeliveryCost,
			Discount:       q.Discount,
			Total:          q.Total,
			PromoCode:      appliedCode,
			Notes:          strings.TrimSpace(in.Notes),
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//在庫を確定時に再チェックして減らす。1つでも足りなければ全体を巻き戻す。
		orderItems := make([]model.OrderItem, 0, len(lines))
		for i, line := range lines {
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, line.Product.ID, line.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return WrapHTTPError(http.StatusBadRequest, &OutOfStockError{ProductName: line.Product.Name})
			}

			orderItems = append(orderItems, model.OrderItem{
				ProductID:       line.Product.ID,
				ProductName:     line.Product.Name,
				ProductPrice:    line.UnitPrice(),
				Quantity:        line.Quantity,
				SelectedOptions: options[i],
				LineTotal:       line.Total(),
				CreatedAt:       now,
			})
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カートを空にして、適用中プロモも外す
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if cart.PromoCode != nil {
			if err := r.Carts().SetPromoCode(ctx, cart.ID, nil); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		order.ID = orderID
		out = toOrderOutput(order, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	//通知はコミット後。失敗してもログだけ残して注文は成立させる。
	u.dispatchNotification(out)

	return out, nil
}

// 8桁の数字列。被りは呼び出し側で振り直す。
func newOrderNumber() string {
	const digits = "0123456789"
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		//乱数が読めない環境は時刻で代用
		return fmt.Sprintf("%08d", time.Now().UnixNano()%100000000)
	}
	for i := range b {
		b[i] = digits[int(b[i])%len(digits)]
	}
	return string(b)
}

func (u *CheckoutUsecase) generateOrderNumber(ctx context.Context, orders repo.OrderRepository) (string, error) {
	for i := 0; i < orderNumberAttempts; i++ {
		number := newOrderNumber()
		exists, err := orders.ExistsByNumber(ctx, number)
		if err != nil {
			return "", NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !exists {
			return number, nil
		}
	}
	return "", WrapHTTPError(http.StatusConflict, ErrOrderNumberExhausted)
}

// コミット後の通知。待たない・失敗を伝播させない。
func (u *CheckoutUsecase) dispatchNotification(out OrderOutput) {
	text := formatOrderSummary(out)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), u.notifyTO)
		defer cancel()
		if err := u.notify.Notify(ctx, text); err != nil {
			log.Printf("order notification failed: order=%s err=%v", out.OrderNumber, err)
		}
	}()
}

func formatOrderSummary(out OrderOutput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New order #%s\n", out.OrderNumber)
	for _, it := range out.Items {
		fmt.Fprintf(&b, "- %s x %d = %s\n", it.Name, it.Quantity, it.LineTotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "Subtotal: %s\n", out.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "Delivery: %s\n", out.DeliveryCost.StringFixed(2))
	if out.Discount.IsPositive() {
		fmt.Fprintf(&b, "Discount: -%s\n", out.Discount.StringFixed(2))
	}
	fmt.Fprintf(&b, "Total: %s", out.Total.StringFixed(2))
	return b.String()
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID:       it.ProductID,
			Name:            it.ProductName,
			Price:           it.ProductPrice,
			Quantity:        it.Quantity,
			SelectedOptions: it.SelectedOptions,
			LineTotal:       it.LineTotal,
		})
	}

	return OrderOutput{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		Status:       string(o.Status),
		Subtotal:     o.Subtotal,
		DeliveryCost: o.DeliveryCost,
		Discount:     o.Discount,
		Total:        o.Total,
		PromoCode:    o.PromoCode,
		CreatedAt:    o.CreatedAt,
		Items:        outItems,
	}
}
