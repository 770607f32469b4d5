package app

import "errors"

var (
	// ErrNoTrial は変換対象のトライアルが見つからない場合のエラー
	ErrNoTrial = errors.New("変換対象のトライアルが見つかりません(.setと.binの組が必要です)")
	// ErrReadFile はファイルの読み込みに失敗した場合のエラー
	ErrReadFile = errors.New("ファイルの読み込みに失敗しました")
	// ErrDecodeSet は.setの文字コード変換に失敗した場合のエラー
	ErrDecodeSet = errors.New(".setの文字コード変換に失敗しました")
	// ErrCreateDirectory は出力ディレクトリの作成に失敗した場合のエラー
	ErrCreateDirectory = errors.New("出力ディレクトリの作成に失敗しました")
	// ErrSampleCountMismatch は公称サンプル数と復号数が一致しない場合のエラー
	ErrSampleCountMismatch = errors.New("公称サンプル数と復号されたサンプル数が一致しません")
	// ErrWriteOutput は出力ファイルの書き出しに失敗した場合のエラー
	ErrWriteOutput = errors.New("出力ファイルの書き出しに失敗しました")
)
