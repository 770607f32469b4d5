package dacq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func makeSamples(n int) []PositionSample {
	samples := make([]PositionSample, n)
	for i := range samples {
		samples[i] = PositionSample{PacketNumber: uint16(i)}
	}
	return samples
}

func TestDecimate(t *testing.T) {
	tests := []struct {
		name      string
		input     int
		wantLen   int
		wantOrder []uint16
	}{
		{"空", 0, 0, nil},
		{"1件は対がなく破棄", 1, 0, nil},
		{"2件から1件", 2, 1, []uint16{0}},
		{"奇数長は末尾を破棄", 5, 2, []uint16{0, 2}},
		{"偶数長", 6, 3, []uint16{0, 2, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decimate(makeSamples(tt.input))
			assert.Len(t, got, tt.wantLen)
			for i, want := range tt.wantOrder {
				assert.Equal(t, want, got[i].PacketNumber)
			}
		})
	}
}

func TestDecimate_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 500).Draw(t, "n")
		input := makeSamples(n)
		got := Decimate(input)

		assert.Len(t, got, n/2, "出力は常に⌊N/2⌋件")
		for i := range got {
			assert.Equal(t, input[2*i].PacketNumber, got[i].PacketNumber, "output[i]はinput[2i]と一致する")
		}
	})
}
