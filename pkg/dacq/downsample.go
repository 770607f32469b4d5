package dacq

// Decimate はキャプチャ機材が二重カウントしたサンプル列を2:1に間引きます。
// 先頭(インデックス0)から1つおきに残し、対になる相手のいない末尾の1件は
// 破棄します。統計的なフィルタではなく固定の決定的な間引きです。
func Decimate(samples []PositionSample) []PositionSample {
	out := make([]PositionSample, 0, len(samples)/2)
	for i := 0; i+1 < len(samples); i += 2 {
		out = append(out, samples[i])
	}
	return out
}
