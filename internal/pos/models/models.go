// Package models はdacqposコマンドで使用するデータモデルを定義します
package models

// TrialMetadata は.setから読み取った記録メタデータを表します。
// 1回の変換の開始時に読み込まれ、以降は変更されません。
type TrialMetadata struct {
	// HeaderLines は.pos先頭へそのまま転記する検証済みの先頭行です
	HeaderLines []string

	// TrialDuration は記録時間(秒)です。
	// レガシーツールにならいテキストの値を最も近い整数秒へ丸めます。
	TrialDuration int

	// DurationLine / DurationPrefix はHeaderLines内のduration行を
	// 丸めた値で書き戻すための位置と接頭辞です
	DurationLine   int
	DurationPrefix string

	WindowMinX int
	WindowMaxX int
	WindowMinY int
	WindowMaxY int

	BearingColours [4]int

	PixelsPerMetre float64
}

// ConversionResult は1回の変換の結果概要を表します
type ConversionResult struct {
	Trial   string
	PosPath string
	CSVPath string

	// PacketCount はタグが一致して復号されたパケット数です
	PacketCount int
	// RetainedCount は2:1間引き後に残ったサンプル数です
	RetainedCount int
	// NominalCount はヘッダに書く公称サンプル数(記録時間×50Hz)です
	NominalCount int
}
