package middleware

import (
	"net/http"
	"time"

	"app/internal/domain/model"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CtxSessionKeyKey = "session_key" // string

	sessionCookieName = "cart_session"
	sessionCookieTTL  = 365 * 24 * time.Hour
)

// 匿名カート用のセッションキーを発行・維持する。
// cookieが無ければuuidを発行してセットし、以後のリクエストで使い回す。
func EnsureSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var key string

			cookie, err := c.Cookie(sessionCookieName)
			if err == nil && cookie.Value != "" {
				key = cookie.Value
			} else {
				key = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     sessionCookieName,
					Value:    key,
					Path:     "/",
					Expires:  time.Now().Add(sessionCookieTTL),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(CtxSessionKeyKey, key)
			return next(c)
		}
	}
}

// リクエストからカートの持ち主を一度だけ解決する。
// ログイン済みならuser_id、そうでなければセッションキー。
func OwnerFromContext(c echo.Context) (model.OwnerKey, bool) {
	if v := c.Get(CtxUserIDKey); v != nil {
		if userID, ok := v.(int64); ok && userID > 0 {
			return model.OwnerKey{UserID: &userID}, true
		}
	}

	if v := c.Get(CtxSessionKeyKey); v != nil {
		if key, ok := v.(string); ok && key != "" {
			return model.OwnerKey{SessionKey: key}, true
		}
	}

	return model.OwnerKey{}, false
}
