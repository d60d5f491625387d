package notifier

import "context"

// 注文・問い合わせの要約テキストを外部チャネルへ届ける。
// 配送はベストエフォート。失敗しても注文処理には影響させない。
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// 未設定環境用。何もしない。
type Nop struct{}

func (Nop) Notify(ctx context.Context, text string) error {
	return nil
}
