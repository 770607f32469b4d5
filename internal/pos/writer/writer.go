// Package writer は.posファイルとCSVサイドカーの書き出しを行います
package writer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/shiroemons/go-dacqpos/internal/pos/interfaces"
	"github.com/shiroemons/go-dacqpos/pkg/dacq"
)

// dataEnd はバイナリ部の終端マーカーです。直前のレコードと区切るため
// 先頭にもCRLFを付けて書き出します。
const dataEnd = "\r\ndata_end\r\n"

// fieldLabels はCSVサイドカーの行ラベルです(1行が1フィールド)
var fieldLabels = []string{
	"Packet Number",
	"Timestamps",
	"X1",
	"X2",
	"Y1",
	"Y2",
	"Pixels LED 1",
	"Pixels LED 2",
	"Total Pixels",
}

// Writer は変換結果をファイルシステムに書き出します
type Writer struct {
	fs interfaces.FileSystem
}

// New は新しいWriterを作成します
func New(fs interfaces.FileSystem) *Writer {
	return &Writer{fs: fs}
}

// BuildPos は.posファイルの全バイト列を組み立てます。
// テキストヘッダに続けて各サンプルの20バイトレコードを連結し、
// 終端マーカーで閉じます。
func BuildPos(headerLines []string, samples []dacq.PositionSample) []byte {
	var buf bytes.Buffer
	for _, line := range headerLines {
		buf.WriteString(line)
	}
	for _, s := range samples {
		buf.Write(s.Record())
	}
	buf.WriteString(dataEnd)
	return buf.Bytes()
}

// BuildCSV は検証用CSVサイドカーを組み立てます。
// 先頭行は空セルとサンプル番号の列見出し、以降はフィールドごとに
// ラベル付きの1行です。
func BuildCSV(samples []dacq.PositionSample) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	head := make([]string, len(samples)+1)
	head[0] = ""
	for i := range samples {
		head[i+1] = strconv.Itoa(i)
	}
	if err := w.Write(head); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildCSV, err)
	}

	for row, label := range fieldLabels {
		record := make([]string, len(samples)+1)
		record[0] = label
		for i, s := range samples {
			record[i+1] = strconv.Itoa(int(fieldValue(s, row)))
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBuildCSV, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildCSV, err)
	}
	return buf.Bytes(), nil
}

// fieldValue はfieldLabelsの行順に対応するフィールド値を返します
func fieldValue(s dacq.PositionSample, row int) uint16 {
	switch row {
	case 0:
		return s.PacketNumber
	case 1:
		return s.Timestamp
	case 2:
		return s.X1
	case 3:
		return s.X2
	case 4:
		return s.Y1
	case 5:
		return s.Y2
	case 6:
		return s.NumPix1
	case 7:
		return s.NumPix2
	default:
		return s.TotalPix
	}
}

// WriteAll は.posとCSVを書き出します。両方を一時ファイルに
// 書き切ってから改名で確定するため、途中で失敗した場合は
// どちらの最終パスにも何も残りません。csvPathが空のときは
// サイドカーを省略します。
func (w *Writer) WriteAll(posPath, csvPath string, headerLines []string, samples []dacq.PositionSample) error {
	type staged struct {
		tmp   string
		final string
	}
	var files []staged

	cleanup := func() {
		for _, f := range files {
			_ = w.fs.Remove(f.tmp)
		}
	}

	stage := func(final string, data []byte) error {
		tmp := final + ".tmp"
		if err := w.fs.WriteFile(tmp, data, 0o644); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrStageFile, tmp, err)
		}
		files = append(files, staged{tmp: tmp, final: final})
		return nil
	}

	if err := stage(posPath, BuildPos(headerLines, samples)); err != nil {
		cleanup()
		return err
	}

	if csvPath != "" {
		csvData, err := BuildCSV(samples)
		if err != nil {
			cleanup()
			return err
		}
		if err := stage(csvPath, csvData); err != nil {
			cleanup()
			return err
		}
	}

	for i, f := range files {
		if err := w.fs.Rename(f.tmp, f.final); err != nil {
			// 確定済みのファイルも取り除いて全か無かを保つ
			for _, done := range files[:i] {
				_ = w.fs.Remove(done.final)
			}
			cleanup()
			return fmt.Errorf("%w: %s: %w", ErrCommitFile, f.final, err)
		}
	}
	return nil
}
