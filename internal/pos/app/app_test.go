package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/shiroemons/go-dacqpos/internal/pos/config"
	"github.com/shiroemons/go-dacqpos/internal/pos/metadata"
	"github.com/shiroemons/go-dacqpos/internal/pos/mocks"
	"github.com/shiroemons/go-dacqpos/pkg/dacq"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// testSetData は既定スキーマの行位置に合わせた.setを合成します
func testSetData(duration string) []byte {
	lines := make([]string, 1424)
	for i := range lines {
		lines[i] = "unused_key 0"
	}
	lines[0] = "trial_date Monday, 24 Jul 2023"
	lines[1] = "trial_time 14:00:00"
	lines[2] = "experimenter js"
	lines[3] = "comments "
	lines[4] = "duration " + duration
	lines[5] = "sw_version 1.2.2.14"
	lines[1059] = "xmin 10"
	lines[1060] = "xmax 700"
	lines[1061] = "ymin 20"
	lines[1062] = "ymax 500"
	lines[1099] = "tracker_pixels_per_metre 615"
	lines[1420] = "lightbearing_1 0"
	lines[1421] = "lightbearing_2 90"
	lines[1422] = "lightbearing_3 180"
	lines[1423] = "lightbearing_4 270"
	return []byte(strings.Join(lines, "\r\n"))
}

func posBlock(sample dacq.PositionSample) []byte {
	block := make([]byte, dacq.PacketSize)
	copy(block, dacq.PosTag)
	copy(block[dacq.PayloadOffset:], dacq.EncodeSample(sample))
	return block
}

func otherBlock(tag string) []byte {
	block := make([]byte, dacq.PacketSize)
	copy(block, tag)
	return block
}

// testBinData は4ブロックの.binを合成します。
// 先頭ブロックは常に読み飛ばされるため位置パケットでも数えられず、
// 位置サンプルとして残るのはブロック2と3の2件です。
func testBinData() []byte {
	var buf bytes.Buffer
	buf.Write(posBlock(dacq.PositionSample{PacketNumber: 100}))
	buf.Write(otherBlock("EEG1"))
	buf.Write(posBlock(dacq.PositionSample{
		PacketNumber: 1, Timestamp: 10,
		X1: 320, Y1: 240, X2: 330, Y2: 250,
		NumPix1: 12, NumPix2: 8, TotalPix: 20,
	}))
	buf.Write(posBlock(dacq.PositionSample{
		PacketNumber: 2, Timestamp: 11,
		X1: 321, Y1: 241, X2: 331, Y2: 251,
		NumPix1: 13, NumPix2: 9, TotalPix: 22,
	}))
	return buf.Bytes()
}

func testFS() *mocks.MockFileSystem {
	fs := mocks.NewMockFileSystem()
	fs.Files["/test/dir/trial1.set"] = testSetData("2")
	fs.Files["/test/dir/trial1.bin"] = testBinData()
	return fs
}

func newTestApp(cfg *config.Config, fs *mocks.MockFileSystem) *App {
	return NewWithOptions(cfg, Options{
		FileSystem: fs,
		Logger:     testLogger(),
	})
}

func TestApp_Run(t *testing.T) {
	fs := testFS()
	cfg := &config.Config{TrialPath: "/test/dir/trial1.set"}

	if err := newTestApp(cfg, fs).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	posData, exists := fs.Files["/test/dir/trial1.pos"]
	if !exists {
		t.Fatal("Expected .pos file to be written")
	}

	posText := string(posData)
	if !strings.Contains(posText, "duration 2       \r\n") {
		t.Error("Expected rewritten duration line in header")
	}
	// 2秒×50Hzの公称値がそのままヘッダに入る
	if !strings.Contains(posText, "num_pos_samples 100     \r\n") {
		t.Error("Expected nominal sample count in header")
	}
	if !strings.HasSuffix(posText, "\r\ndata_end\r\n") {
		t.Error("Expected data_end terminator")
	}

	// 2件の位置パケットは間引かれて1件になる
	idx := strings.Index(posText, "data_start")
	records := posData[idx+len("data_start") : len(posData)-len("\r\ndata_end\r\n")]
	if len(records) != dacq.RecordSize {
		t.Fatalf("Expected 1 record (%d bytes), got %d bytes", dacq.RecordSize, len(records))
	}
	// 残るのは最初のパケット(pn=1, t=10, x1=320)
	want := []byte{0, 1, 0, 10, 1, 64, 0, 240, 1, 74, 0, 250, 0, 12, 0, 8, 0, 20, 0, 0}
	if !bytes.Equal(records, want) {
		t.Errorf("Record mismatch:\ngot  %v\nwant %v", records, want)
	}

	csvData, exists := fs.Files["/test/dir/trial1_pos.csv"]
	if !exists {
		t.Fatal("Expected CSV sidecar to be written")
	}
	csvText := string(csvData)
	if !strings.HasPrefix(csvText, ",0\n") {
		t.Errorf("Unexpected CSV head: %q", csvText[:20])
	}
	if !strings.Contains(csvText, "Packet Number,1\n") {
		t.Error("Expected packet number row in CSV")
	}
	if !strings.Contains(csvText, "X1,320\n") {
		t.Error("Expected X1 row in CSV")
	}
	if !strings.Contains(csvText, "Total Pixels,20\n") {
		t.Error("Expected total pixels row in CSV")
	}
}

func TestApp_Run_AutoDetectsTrial(t *testing.T) {
	fs := testFS()
	cfg := &config.Config{}

	if err := newTestApp(cfg, fs).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !fs.FileExists("/test/dir/trial1.pos") {
		t.Error("Expected .pos file to be written")
	}
}

func TestApp_Run_NoTrial(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	fs.Dirs["/test/dir"] = true
	cfg := &config.Config{}

	err := newTestApp(cfg, fs).Run(context.Background())
	if !errors.Is(err, ErrNoTrial) {
		t.Errorf("Expected ErrNoTrial, got %v", err)
	}
}

func TestApp_Run_MissingBin(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	fs.Files["/test/dir/trial1.set"] = testSetData("2")
	cfg := &config.Config{TrialPath: "/test/dir/trial1"}

	err := newTestApp(cfg, fs).Run(context.Background())
	if !errors.Is(err, ErrNoTrial) {
		t.Errorf("Expected ErrNoTrial, got %v", err)
	}
}

func TestApp_Run_MalformedSet(t *testing.T) {
	fs := testFS()
	fs.Files["/test/dir/trial1.set"] = []byte("trial_date Monday\r\nduration abc")
	cfg := &config.Config{TrialPath: "/test/dir/trial1"}

	err := newTestApp(cfg, fs).Run(context.Background())
	if !errors.Is(err, metadata.ErrMetadataFormat) {
		t.Fatalf("Expected ErrMetadataFormat, got %v", err)
	}
	if fs.FileExists("/test/dir/trial1.pos") || fs.FileExists("/test/dir/trial1_pos.csv") {
		t.Error("Expected no output files after metadata failure")
	}
}

func TestApp_Run_BinTooShort(t *testing.T) {
	fs := testFS()
	fs.Files["/test/dir/trial1.bin"] = make([]byte, dacq.PacketSize)
	cfg := &config.Config{TrialPath: "/test/dir/trial1"}

	err := newTestApp(cfg, fs).Run(context.Background())
	if !errors.Is(err, dacq.ErrBufferTooShort) {
		t.Errorf("Expected ErrBufferTooShort, got %v", err)
	}
}

func TestApp_Run_StrictCountMismatch(t *testing.T) {
	fs := testFS()
	cfg := &config.Config{TrialPath: "/test/dir/trial1", Strict: true}

	err := newTestApp(cfg, fs).Run(context.Background())
	if !errors.Is(err, ErrSampleCountMismatch) {
		t.Fatalf("Expected ErrSampleCountMismatch, got %v", err)
	}
	if fs.FileExists("/test/dir/trial1.pos") || fs.FileExists("/test/dir/trial1_pos.csv") {
		t.Error("Expected no output files in strict mode mismatch")
	}
}

func TestApp_Run_DryRun(t *testing.T) {
	fs := testFS()
	cfg := &config.Config{TrialPath: "/test/dir/trial1", DryRun: true}

	if err := newTestApp(cfg, fs).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if fs.FileExists("/test/dir/trial1.pos") || fs.FileExists("/test/dir/trial1_pos.csv") {
		t.Error("Expected no output files in dry run")
	}
}

func TestApp_Run_NoCSV(t *testing.T) {
	fs := testFS()
	cfg := &config.Config{TrialPath: "/test/dir/trial1", NoCSV: true}

	if err := newTestApp(cfg, fs).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !fs.FileExists("/test/dir/trial1.pos") {
		t.Error("Expected .pos file to be written")
	}
	if fs.FileExists("/test/dir/trial1_pos.csv") {
		t.Error("Expected no CSV sidecar")
	}
}

func TestApp_Run_OutputDir(t *testing.T) {
	fs := testFS()
	cfg := &config.Config{TrialPath: "/test/dir/trial1", OutputDir: "/out"}

	if err := newTestApp(cfg, fs).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !fs.Dirs["/out"] {
		t.Error("Expected output directory to be created")
	}
	if !fs.FileExists("/out/trial1.pos") {
		t.Error("Expected .pos file in output directory")
	}
	if !fs.FileExists("/out/trial1_pos.csv") {
		t.Error("Expected CSV sidecar in output directory")
	}
}

func TestApp_Run_SchemaOverride(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	// コンパクトなレイアウトの.setと、それを指すスキーマ
	lines := []string{
		"trial_date Monday, 24 Jul 2023",
		"trial_time 14:00:00",
		"experimenter js",
		"comments ",
		"duration 2",
		"sw_version 1.2.2.14",
		"xmin 10",
		"xmax 700",
		"ymin 20",
		"ymax 500",
		"tracker_pixels_per_metre 615",
		"lightbearing_1 0",
		"lightbearing_2 90",
		"lightbearing_3 180",
		"lightbearing_4 270",
	}
	fs.Files["/test/dir/trial1.set"] = []byte(strings.Join(lines, "\r\n"))
	fs.Files["/test/dir/trial1.bin"] = testBinData()
	fs.Files["/test/dir/layout.yaml"] = []byte(`
header_lines: 6
duration: {line: 4, prefix: 9}
window_min_x: {line: 6, prefix: 5}
window_max_x: {line: 7, prefix: 5}
window_min_y: {line: 8, prefix: 5}
window_max_y: {line: 9, prefix: 5}
pixels_per_metre: {line: 10, prefix: 25}
bearing_colour_1: {line: 11, prefix: 15}
bearing_colour_2: {line: 12, prefix: 15}
bearing_colour_3: {line: 13, prefix: 15}
bearing_colour_4: {line: 14, prefix: 15}
`)
	cfg := &config.Config{
		TrialPath:  "/test/dir/trial1",
		SchemaPath: "/test/dir/layout.yaml",
	}

	if err := newTestApp(cfg, fs).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	posText := string(fs.Files["/test/dir/trial1.pos"])
	if !strings.Contains(posText, "window_max_x 700\r\n") {
		t.Error("Expected window bounds from the overridden layout")
	}
}

func TestApp_Run_ContextCancelled(t *testing.T) {
	fs := testFS()
	cfg := &config.Config{TrialPath: "/test/dir/trial1"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newTestApp(cfg, fs).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if fs.FileExists("/test/dir/trial1.pos") {
		t.Error("Expected no output files after cancellation")
	}
}
