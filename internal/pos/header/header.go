// Package header は.posファイルのテキストヘッダを組み立てます
package header

import (
	"fmt"
	"strconv"

	"github.com/shiroemons/go-dacqpos/internal/pos/models"
)

// SampleRateHz はカメラの公称サンプリングレートです(DacqUSB固定の50Hz)
const SampleRateHz = 50

// DataStart はバイナリ部の開始を示す番兵行です。
// 直後にレコードが続くため、この行だけは改行を付けずに書き出します。
const DataStart = "data_start"

// レガシーツールが固定値として書き出す技術定数
const (
	numColours            = 4
	minX                  = 0
	maxX                  = 768
	minY                  = 0
	maxY                  = 574
	bytesPerTimestamp     = 4
	eegSamplesPerPosition = 5
	posFormat             = "t,x1,y1,x2,y2,numpix1,numpix2"
	bytesPerCoord         = 2
)

const crlf = "\r\n"

// NominalSamples はヘッダに書く公称サンプル数を返します。
// 実際の復号数とは独立に記録時間×50Hzで計算されます(書き出し前に
// appが両者を突き合わせます)。
func NominalSamples(md *models.TrialMetadata) int {
	return md.TrialDuration * SampleRateHz
}

// Build は.posのヘッダ行を組み立てます。各行はCRLF終端で、
// 最後のdata_startのみ改行を持ちません。
func Build(md *models.TrialMetadata) []string {
	lines := make([]string, 0, len(md.HeaderLines)+22)

	for i, line := range md.HeaderLines {
		if i == md.DurationLine {
			// レガシーツールは丸めた秒数を空白パディング付きで書き戻す
			lines = append(lines, md.DurationPrefix+strconv.Itoa(md.TrialDuration)+"       "+crlf)
			continue
		}
		lines = append(lines, line+crlf)
	}

	lines = append(lines,
		fmt.Sprintf("num_colours %d%s", numColours, crlf),
		fmt.Sprintf("min_x %d%s", minX, crlf),
		fmt.Sprintf("max_x %d%s", maxX, crlf),
		fmt.Sprintf("min_y %d%s", minY, crlf),
		fmt.Sprintf("max_y %d%s", maxY, crlf),
		fmt.Sprintf("window_min_x %d%s", md.WindowMinX, crlf),
		fmt.Sprintf("window_max_x %d%s", md.WindowMaxX, crlf),
		fmt.Sprintf("window_min_y %d%s", md.WindowMinY, crlf),
		fmt.Sprintf("window_max_y %d%s", md.WindowMaxY, crlf),
		fmt.Sprintf("timebase %d hz%s", SampleRateHz, crlf),
		fmt.Sprintf("bytes_per_timestamp %d%s", bytesPerTimestamp, crlf),
		fmt.Sprintf("sample_rate %.1f hz%s", float64(SampleRateHz), crlf),
		fmt.Sprintf("EEG_samples_per_position %d%s", eegSamplesPerPosition, crlf),
		fmt.Sprintf("bearing_colour_1 %d%s", md.BearingColours[0], crlf),
		fmt.Sprintf("bearing_colour_2 %d%s", md.BearingColours[1], crlf),
		fmt.Sprintf("bearing_colour_3 %d%s", md.BearingColours[2], crlf),
		fmt.Sprintf("bearing_colour_4 %d%s", md.BearingColours[3], crlf),
		"pos_format "+posFormat+crlf,
		fmt.Sprintf("bytes_per_coord %d%s", bytesPerCoord, crlf),
		"pixels_per_metre "+strconv.FormatFloat(md.PixelsPerMetre, 'f', -1, 64)+crlf,
		fmt.Sprintf("num_pos_samples %d     %s", NominalSamples(md), crlf),
		DataStart,
	)

	return lines
}
