package fileutil

import "errors"

var (
	// ErrGetCurrentDirectory はカレントディレクトリの取得に失敗した場合のエラー
	ErrGetCurrentDirectory = errors.New("カレントディレクトリの取得に失敗しました")
	// ErrReadDirectory はディレクトリの読み込みに失敗した場合のエラー
	ErrReadDirectory = errors.New("ディレクトリの読み込みに失敗しました")
	// ErrMultipleTrials は複数のトライアルが見つかった場合のエラー
	ErrMultipleTrials = errors.New("複数のトライアルが見つかりました。--trialフラグで使用するトライアルを指定してください")
)
