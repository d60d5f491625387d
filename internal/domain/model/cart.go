package model

import "time"

// ユーザーまたはセッションにつきカートは1つ。
// 注文確定で明細だけ消し、カート自体は使い回す。
type Cart struct {
	ID         int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     *int64  `gorm:"index" json:"user_id"`
	SessionKey *string `gorm:"type:varchar(40);index" json:"-"`

	//適用中のプロモコード（注文確定でクリア）
	PromoCode *string `gorm:"type:varchar(50)" json:"promo_code"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
