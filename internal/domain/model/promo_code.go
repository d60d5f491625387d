package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type PromoRejectReason string

const (
	PromoRejectInactive  PromoRejectReason = "inactive"
	PromoRejectExpired   PromoRejectReason = "expired"
	PromoRejectExhausted PromoRejectReason = "exhausted"
	PromoRejectBelowMin  PromoRejectReason = "below_min"
)

// プロモコードが使えない理由。メッセージはそのまま画面に出せる。
type InvalidPromoError struct {
	Reason  PromoRejectReason
	Message string
}

func (e *InvalidPromoError) Error() string {
	return e.Message
}

type PromoCode struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//コードは大文字で保存する
	Code string `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`

	//割引率（1〜100）
	DiscountPercentage int64 `gorm:"not null" json:"discount_percentage"`

	//適用できる最低注文金額
	MinOrderAmount decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"min_order_amount"`

	//使用回数上限（nilなら無制限）
	MaxUses   *int64 `gorm:"" json:"max_uses"`
	UsedCount int64  `gorm:"not null;default:0" json:"used_count"`

	IsActive   bool      `gorm:"not null;default:true" json:"is_active"`
	ValidFrom  time.Time `gorm:"not null" json:"valid_from"`
	ValidUntil time.Time `gorm:"not null" json:"valid_until"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

// 適用可否の判定。副作用なし。表示時と注文確定時の両方で呼ぶ。
// チェック順は固定：無効 → 期限切れ → 使い切り → 最低金額未満。
func (p PromoCode) Validate(orderAmount decimal.Decimal, now time.Time) error {
	if !p.IsActive {
		return &InvalidPromoError{
			Reason:  PromoRejectInactive,
			Message: "promo code is inactive",
		}
	}
	if now.Before(p.ValidFrom) || now.After(p.ValidUntil) {
		return &InvalidPromoError{
			Reason:  PromoRejectExpired,
			Message: "promo code has expired",
		}
	}
	if p.MaxUses != nil && p.UsedCount >= *p.MaxUses {
		return &InvalidPromoError{
			Reason:  PromoRejectExhausted,
			Message: "promo code usage limit reached",
		}
	}
	if orderAmount.LessThan(p.MinOrderAmount) {
		return &InvalidPromoError{
			Reason:  PromoRejectBelowMin,
			Message: fmt.Sprintf("minimum order amount is %s", p.MinOrderAmount.StringFixed(2)),
		}
	}
	return nil
}
