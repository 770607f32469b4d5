package writer

import "errors"

var (
	// ErrBuildCSV はCSVサイドカーの組み立てに失敗した場合のエラー
	ErrBuildCSV = errors.New("CSVの組み立てに失敗しました")
	// ErrStageFile は一時ファイルの書き込みに失敗した場合のエラー
	ErrStageFile = errors.New("一時ファイルの書き込みに失敗しました")
	// ErrCommitFile は出力ファイルの確定に失敗した場合のエラー
	ErrCommitFile = errors.New("出力ファイルの確定に失敗しました")
)
