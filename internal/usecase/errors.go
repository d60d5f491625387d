package usecase

import (
	"errors"
	"fmt"
)

// 注文確定まわりの失敗。メッセージはそのまま画面に出せる。
var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrOrderNumberExhausted = errors.New("could not generate a unique order number")
)

// 在庫不足。どの商品かを必ず伝える。
type OutOfStockError struct {
	ProductName string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s", e.ProductName)
}

// Usecase層からHandlerへ返すHTTPエラー。
type HTTPError struct {
	Status  int
	Message string
	err     error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.err
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

// 元のエラー型を保ったままHTTPエラーにする（errors.As/Isで辿れる）。
func WrapHTTPError(status int, err error) error {
	return &HTTPError{
		Status:  status,
		Message: err.Error(),
		err:     err,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}
