package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(200);not null" json:"name"`
	Slug        string `gorm:"type:varchar(200);not null;uniqueIndex" json:"slug"`
	CategoryID  int64  `gorm:"not null;index" json:"category_id"`
	Description string `gorm:"type:text" json:"description"`

	//通常価格
	Price decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`

	//セール価格（未設定なら通常価格で販売）
	DiscountPrice decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"discount_price"`

	Stock int64 `gorm:"not null;default:0" json:"stock"`

	//選択肢（色・サイズ）はJSONで持つ
	Colors StringList `gorm:"type:jsonb" json:"colors"`
	Sizes  StringList `gorm:"type:jsonb" json:"sizes"`

	IsActive   bool `gorm:"not null;default:false" json:"is_active"`
	IsFeatured bool `gorm:"not null;default:false" json:"is_featured"`
	IsNew      bool `gorm:"not null;default:false" json:"is_new"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// 実売価格。セール価格が設定されていて通常価格より安いときだけ採用する。
func (p Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice.Valid &&
		p.DiscountPrice.Decimal.IsPositive() &&
		p.DiscountPrice.Decimal.LessThan(p.Price) {
		return p.DiscountPrice.Decimal
	}
	return p.Price
}

func (p Product) IsInStock() bool {
	return p.Stock > 0
}
