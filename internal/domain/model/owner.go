package model

// カートの持ち主。ログイン済みならUserID、未ログインならセッションキー。
// リクエストごとにmiddlewareで一度だけ解決して下の層へ渡す。
type OwnerKey struct {
	UserID     *int64
	SessionKey string
}

func (o OwnerKey) IsAuthenticated() bool {
	return o.UserID != nil && *o.UserID > 0
}
