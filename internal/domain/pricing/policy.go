package pricing

import (
	"github.com/shopspring/decimal"

	"app/internal/domain/model"
)

// 配送料のルール。
// FeeMethodsが空なら全配送方法に課金、指定があればその方法だけ課金。
// 小計がFreeThreshold以上なら方法に関わらず無料。
type DeliveryPolicy struct {
	Fee           decimal.Decimal
	FreeThreshold decimal.Decimal
	FeeMethods    []model.DeliveryMethod
}

// 既定ルール：10000未満はクーリエ配送のみ300。
func DefaultDeliveryPolicy() DeliveryPolicy {
	return DeliveryPolicy{
		Fee:           decimal.NewFromInt(300),
		FreeThreshold: decimal.NewFromInt(10000),
		FeeMethods:    []model.DeliveryMethod{model.DeliveryMethodCourier},
	}
}

func (p DeliveryPolicy) CostFor(method model.DeliveryMethod, subtotal decimal.Decimal) decimal.Decimal {
	if !subtotal.IsPositive() {
		return decimal.Zero
	}
	if subtotal.GreaterThanOrEqual(p.FreeThreshold) {
		return decimal.Zero
	}
	if len(p.FeeMethods) == 0 {
		return p.Fee
	}
	for _, m := range p.FeeMethods {
		if m == method {
			return p.Fee
		}
	}
	return decimal.Zero
}
