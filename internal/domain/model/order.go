package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type DeliveryMethod string

const (
	DeliveryMethodCourier DeliveryMethod = "courier"
	DeliveryMethodPickup  DeliveryMethod = "pickup"
)

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodOnline PaymentMethod = "online"
)

// ステータスの進行順。cancelled/deliveredは終端。
var orderStatusRank = map[OrderStatus]int{
	OrderStatusPending:    0,
	OrderStatusConfirmed:  1,
	OrderStatusProcessing: 2,
	OrderStatusShipped:    3,
	OrderStatusDelivered:  4,
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// 遷移可否。チェーンは一方通行で1段ずつ。cancelledへは終端以外から可。
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	cur, ok := orderStatusRank[s]
	if !ok {
		return false
	}
	n, ok := orderStatusRank[next]
	if !ok {
		return false
	}
	return n == cur+1
}

// 確定時点のスナップショット。金額・顧客情報は後から再計算しない。
type Order struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber string      `gorm:"type:varchar(20);not null;uniqueIndex" json:"order_number"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;index;default:'pending'" json:"status"`

	//ゲスト注文ではnil
	UserID *int64 `gorm:"index" json:"user_id"`

	//顧客情報
	FirstName string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string `gorm:"type:varchar(100);not null" json:"last_name"`
	Phone     string `gorm:"type:varchar(20);not null" json:"phone"`
	Email     string `gorm:"type:varchar(255)" json:"email"`

	//配送情報
	DeliveryMethod DeliveryMethod `gorm:"type:varchar(20);not null" json:"delivery_method"`
	City           string         `gorm:"type:varchar(100)" json:"city"`
	Address        string         `gorm:"type:text" json:"address"`
	PostalCode     string         `gorm:"type:varchar(10)" json:"postal_code"`
	DeliveryTime   string         `gorm:"type:varchar(20)" json:"delivery_time"`

	//支払い情報
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	IsPaid        bool          `gorm:"not null;default:false" json:"is_paid"`

	//確定時点の金額
	Subtotal     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"subtotal"`
	DeliveryCost decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"delivery_cost"`
	Discount     decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"discount"`
	Total        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total"`

	//適用したプロモコード（無ければnil）
	PromoCode *string `gorm:"type:varchar(50)" json:"promo_code"`

	Notes string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (o Order) FullName() string {
	return o.FirstName + " " + o.LastName
}
