package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細。商品側を後で編集しても注文が変わらないよう
// 名前・価格・オプションを確定時点の値で切り離して保存する。
type OrderItem struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID         int64           `gorm:"not null;index" json:"order_id"`
	ProductID       int64           `gorm:"not null;index" json:"product_id"`
	ProductName     string          `gorm:"type:varchar(200);not null" json:"product_name"`
	ProductPrice    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"product_price"`
	Quantity        int64           `gorm:"not null" json:"quantity"`
	SelectedOptions OptionMap       `gorm:"type:jsonb" json:"selected_options"`
	LineTotal       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"line_total"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
