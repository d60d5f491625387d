package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"app/internal/domain/model"
)

// 価格計算に渡す1行。価格は商品の現在値を使う（カート側に保存しない）。
type Line struct {
	Product  model.Product
	Quantity int64
}

func (l Line) UnitPrice() decimal.Decimal {
	return l.Product.EffectivePrice()
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice().Mul(decimal.NewFromInt(l.Quantity))
}

// 計算結果。total = subtotal + delivery - discount（0未満にはしない）。
type Breakdown struct {
	Subtotal     decimal.Decimal
	DeliveryCost decimal.Decimal
	Discount     decimal.Decimal
	Total        decimal.Decimal

	//discountに実際に使ったコード（無効だったらnil）
	AppliedPromo *model.PromoCode
}

func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

// カートの内容から金額内訳を計算する。副作用なし。
// promoは検証に通ったときだけ割引に使う。割引は配送料を足す前の小計に掛け、
// 丸めは割引額にだけ1回（小数第2位・四捨五入）。
func Quote(lines []Line, promo *model.PromoCode, method model.DeliveryMethod, now time.Time, policy DeliveryPolicy) Breakdown {
	subtotal := Subtotal(lines)
	delivery := policy.CostFor(method, subtotal)

	discount := decimal.Zero
	var applied *model.PromoCode
	if promo != nil {
		if err := promo.Validate(subtotal, now); err == nil {
			pct := decimal.NewFromInt(promo.DiscountPercentage)
			discount = subtotal.Mul(pct).Div(decimal.NewFromInt(100)).Round(2)
			applied = promo
		}
	}

	total := subtotal.Add(delivery).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Breakdown{
		Subtotal:     subtotal,
		DeliveryCost: delivery,
		Discount:     discount,
		Total:        total,
		AppliedPromo: applied,
	}
}
