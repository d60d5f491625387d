package model

import "time"

// カートの明細。同じ商品は1行にまとめて数量を加算する。
// 価格はスナップショットせず、参照時点の実売価格で計算する。
type CartItem struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID          int64     `gorm:"not null;uniqueIndex:idx_cart_items_cart_product" json:"cart_id"`
	ProductID       int64     `gorm:"not null;uniqueIndex:idx_cart_items_cart_product;index" json:"product_id"`
	Quantity        int64     `gorm:"not null" json:"quantity"`
	SelectedOptions OptionMap `gorm:"type:jsonb" json:"selected_options"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
