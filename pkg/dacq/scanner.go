package dacq

// Scanner は生データバッファを432バイト刻みで走査し、位置パケットを列挙します。
// 先頭ブロックはファームウェアの挙動上信頼できないため常にスキップします。
// 列挙は一度きりで巻き戻しはできません。
type Scanner struct {
	buf []byte
	off int
	cur RawPacket
}

// NewScanner は新しいScannerを作成します。
// スキップ後に完全なパケットが1つも含められない長さの場合は
// ErrBufferTooShortを返します。
func NewScanner(buf []byte) (*Scanner, error) {
	if len(buf) < 2*PacketSize {
		return nil, ErrBufferTooShort
	}
	return &Scanner{buf: buf, off: PacketSize}, nil
}

// Next は次の位置パケットへ進み、見つかった場合にtrueを返します。
// タグが一致しないブロックはノイズとして黙って読み飛ばし、
// 末尾に残った不完全なブロックはエラーにせず破棄します。
func (s *Scanner) Next() bool {
	for s.off+PacketSize <= len(s.buf) {
		block := s.buf[s.off : s.off+PacketSize]
		s.off += PacketSize
		if string(block[:TagSize]) == PosTag {
			s.cur = RawPacket(block)
			return true
		}
	}
	s.cur = nil
	return false
}

// Packet は現在の位置パケットを返します。
// Nextがtrueを返した直後にのみ有効です。
func (s *Scanner) Packet() RawPacket {
	return s.cur
}
