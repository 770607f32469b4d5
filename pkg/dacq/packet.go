// Package dacq はAxona DacqUSBが記録する生データ(.bin)のパケット解析を提供します。
//
// 主な機能:
//   - Scanner: 432バイト固定長ブロックの走査と位置パケットの列挙
//   - Deinterleave: ファームウェア特有のバイト入れ替えの復元
//   - DecodeSample: 位置サンプル(LED座標・ピクセル数)の復号
//   - EncodeSample: 復号の逆変換(往復検証とテストデータ生成に使用)
//   - Decimate: キャプチャ機材の二重カウントを打ち消す2:1間引き
package dacq

import (
	"encoding/binary"
	"fmt"
)

const (
	// PacketSize は.bin内の1ブロックの固定長です
	PacketSize = 432

	// TagSize はブロック先頭のASCIIタグ長です
	TagSize = 4

	// PosTag は位置トラッキングパケットを示すタグです
	PosTag = "ADU2"

	// PayloadOffset はブロック内で位置フィールドが始まるオフセットです
	PayloadOffset = 12

	// PayloadSize は位置フィールド領域の長さです(16ビット値10語分)
	PayloadSize = 20

	// RecordSize は.posに書き出す1サンプルのレコード長です。
	// 末尾の未使用語もレガシー形式とのバイト互換のため含めます。
	RecordSize = 20
)

// ByteOrder はペイロード内の多バイト値のバイト順です。
// ファームウェアの出力は常にビッグエンディアンです。
var ByteOrder = binary.BigEndian

// RawPacket は.binから切り出した1ブロック(432バイト)を表します
type RawPacket []byte

// Tag はブロック先頭の4バイトASCIIタグを返します
func (p RawPacket) Tag() string {
	if len(p) < TagSize {
		return ""
	}
	return string(p[:TagSize])
}

// Payload は位置フィールド領域([12,32))を返します。
// ブロックが短すぎる場合はnilを返します。
func (p RawPacket) Payload() []byte {
	if len(p) < PayloadOffset+PayloadSize {
		return nil
	}
	return p[PayloadOffset : PayloadOffset+PayloadSize]
}

// Deinterleave はファームウェアが入れ替えたペイロードのバイト順を復元します。
// ペイロードは本来のビッグエンディアン列に対して、偶数位置のバイト列と
// 奇数位置のバイト列が分離・再連結された状態で記録されています。
// 両列をペアごとに奇数側・偶数側の順で並べ直すことで元の列を得ます。
// 入力は変更せず、新しいスライスを返します。
func Deinterleave(payload []byte) ([]byte, error) {
	if len(payload) != PayloadSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrPayloadSize, len(payload), PayloadSize)
	}

	even := make([]byte, 0, PayloadSize/2)
	odd := make([]byte, 0, PayloadSize/2)
	for i, b := range payload {
		if i%2 == 0 {
			even = append(even, b)
		} else {
			odd = append(odd, b)
		}
	}

	out := make([]byte, 0, PayloadSize)
	for i := range even {
		out = append(out, odd[i], even[i])
	}
	return out, nil
}

// PositionSample は1回のLEDトラッキング観測を表します。生成後は変更されません。
type PositionSample struct {
	PacketNumber uint16
	Timestamp    uint16
	X1           uint16
	Y1           uint16
	X2           uint16
	Y2           uint16
	NumPix1      uint16
	NumPix2      uint16
	TotalPix     uint16

	// Unused はペイロード末尾の未使用語です。
	// レコード長をレガシー形式と一致させるため捨てずに保持します。
	Unused uint16

	record [RecordSize]byte
}

// Record は.posに書き出す補正済みレコードを返します。
// バイト順の復元とx/yの並び替えが済んでおり、そのまま書き出せます。
func (s *PositionSample) Record() []byte {
	out := make([]byte, RecordSize)
	copy(out, s.record[:])
	return out
}

// DecodeSample は位置パケット1つからPositionSampleを復号します。
// 復元直後のフィールド並びは packet_number, timestamp, y1, x1, y2, x2,
// numpix1, numpix2, total_pix (+未使用語)で、LEDごとにyがxより先に来るため、
// レコード上の該当バイトペアも入れ替えて t,x1,y1,x2,y2 の並びに揃えます。
// バイト順の復元とx/yの入れ替えのどちらを欠いても座標は壊れます。
func DecodeSample(p RawPacket) (PositionSample, error) {
	corrected, err := Deinterleave(p.Payload())
	if err != nil {
		return PositionSample{}, err
	}

	s := PositionSample{
		PacketNumber: ByteOrder.Uint16(corrected[0:2]),
		Timestamp:    ByteOrder.Uint16(corrected[2:4]),
		Y1:           ByteOrder.Uint16(corrected[4:6]),
		X1:           ByteOrder.Uint16(corrected[6:8]),
		Y2:           ByteOrder.Uint16(corrected[8:10]),
		X2:           ByteOrder.Uint16(corrected[10:12]),
		NumPix1:      ByteOrder.Uint16(corrected[12:14]),
		NumPix2:      ByteOrder.Uint16(corrected[14:16]),
		TotalPix:     ByteOrder.Uint16(corrected[16:18]),
		Unused:       ByteOrder.Uint16(corrected[18:20]),
	}

	copy(s.record[:], corrected)
	// y1,x1 / y2,x2 のペアを入れ替えて x1,y1,x2,y2 の並びにする
	swapPair(s.record[:], 4, 6)
	swapPair(s.record[:], 8, 10)

	return s, nil
}

// EncodeSample はPositionSampleをファームウェアの出力形式
// (入れ替え済みの20バイトペイロード)に逆変換します。
// DecodeSampleとの往復で元の値に戻ることをテストで保証しています。
func EncodeSample(s PositionSample) []byte {
	corrected := make([]byte, PayloadSize)
	ByteOrder.PutUint16(corrected[0:2], s.PacketNumber)
	ByteOrder.PutUint16(corrected[2:4], s.Timestamp)
	ByteOrder.PutUint16(corrected[4:6], s.Y1)
	ByteOrder.PutUint16(corrected[6:8], s.X1)
	ByteOrder.PutUint16(corrected[8:10], s.Y2)
	ByteOrder.PutUint16(corrected[10:12], s.X2)
	ByteOrder.PutUint16(corrected[12:14], s.NumPix1)
	ByteOrder.PutUint16(corrected[14:16], s.NumPix2)
	ByteOrder.PutUint16(corrected[16:18], s.TotalPix)
	ByteOrder.PutUint16(corrected[18:20], s.Unused)

	// 入れ替えはペア単位の対合なので、逆変換も同じペア入れ替えになる
	raw := make([]byte, PayloadSize)
	for i := 0; i < PayloadSize; i += 2 {
		raw[i] = corrected[i+1]
		raw[i+1] = corrected[i]
	}
	return raw
}

func swapPair(b []byte, i, j int) {
	b[i], b[j] = b[j], b[i]
	b[i+1], b[j+1] = b[j+1], b[i+1]
}
