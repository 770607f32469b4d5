package dacq

import "errors"

var (
	// ErrBufferTooShort は先頭パケットのスキップ後に完全なパケットが1つも残らない場合のエラー
	ErrBufferTooShort = errors.New("バッファが短すぎます(先頭パケットのスキップ後に完全なパケットがありません)")

	// ErrPayloadSize はペイロード長が期待値と異なる場合のエラー
	ErrPayloadSize = errors.New("ペイロード長が不正です")
)
