// Package app はアプリケーションのメインロジックを実装します
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/shiroemons/go-dacqpos/internal/pos/config"
	"github.com/shiroemons/go-dacqpos/internal/pos/fileutil"
	"github.com/shiroemons/go-dacqpos/internal/pos/header"
	"github.com/shiroemons/go-dacqpos/internal/pos/interfaces"
	"github.com/shiroemons/go-dacqpos/internal/pos/metadata"
	"github.com/shiroemons/go-dacqpos/internal/pos/models"
	"github.com/shiroemons/go-dacqpos/internal/pos/writer"
	"github.com/shiroemons/go-dacqpos/pkg/dacq"
)

// App はアプリケーションのメインロジックを管理します
type App struct {
	config *config.Config
	logger interfaces.Logger
	fs     interfaces.FileSystem
	finder interfaces.TrialFinder
	writer *writer.Writer
}

// Options はAppの設定オプション
type Options struct {
	FileSystem  interfaces.FileSystem
	Logger      interfaces.Logger
	TrialFinder interfaces.TrialFinder
}

// New は新しいAppを作成します
func New(cfg *config.Config) *App {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions は新しいAppをオプション付きで作成します
func NewWithOptions(cfg *config.Config, opts Options) *App {
	fs := opts.FileSystem
	if fs == nil {
		fs = fileutil.NewOSFileSystem()
	}

	logger := opts.Logger
	if logger == nil {
		logger = config.NewLogger(cfg.DebugMode)
	}

	finder := opts.TrialFinder
	if finder == nil {
		finder = fileutil.NewTrialFinder(fs)
	}

	return &App{
		config: cfg,
		logger: logger,
		fs:     fs,
		finder: finder,
		writer: writer.New(fs),
	}
}

// Run はアプリケーションを実行します。
// .set/.binの組を読み込み、位置パケットを復号・間引きして
// .posファイルと検証用CSVを書き出します。
func (a *App) Run(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	trial, err := a.resolveTrial()
	if err != nil {
		return err
	}
	a.logger.Debugf("トライアル %s を変換します", trial)

	schema, err := a.loadSchema()
	if err != nil {
		return err
	}

	md, err := a.readMetadata(trial, schema)
	if err != nil {
		return err
	}
	a.logger.Debugf("記録時間 %d 秒", md.TrialDuration)

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	samples, packetCount, err := a.decodeBin(trial)
	if err != nil {
		return err
	}

	retained := dacq.Decimate(samples)
	nominal := header.NominalSamples(md)
	a.logger.Debugf("位置パケット %d 件、間引き後 %d 件、公称 %d 件",
		packetCount, len(retained), nominal)

	if len(retained) != nominal {
		if a.config.Strict {
			return fmt.Errorf("%w: ヘッダ上は %d 件、実際は %d 件",
				ErrSampleCountMismatch, nominal, len(retained))
		}
		a.logger.Warnf("サンプル数が一致しません: ヘッダ上は %d 件、実際は %d 件",
			nominal, len(retained))
	}

	headerLines := header.Build(md)

	result := models.ConversionResult{
		Trial:         trial,
		PacketCount:   packetCount,
		RetainedCount: len(retained),
		NominalCount:  nominal,
	}

	if a.config.DryRun {
		a.logger.Infof("ドライラン: %s.pos(サンプル %d 件)は書き出しません",
			filepath.Base(trial), result.RetainedCount)
		return nil
	}

	result.PosPath, result.CSVPath, err = a.outputPaths(trial)
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := a.writer.WriteAll(result.PosPath, result.CSVPath, headerLines, retained); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	a.logger.Infof("%s を書き出しました(サンプル %d 件)", result.PosPath, result.RetainedCount)
	if result.CSVPath != "" {
		a.logger.Infof("%s を書き出しました", result.CSVPath)
	}
	return nil
}

// resolveTrial は変換対象のトライアル(拡張子なしのベースパス)を決定します
func (a *App) resolveTrial() (string, error) {
	trial := a.config.TrialPath
	if trial != "" {
		trial = fileutil.TrimTrialExt(trial)
	} else {
		found, err := a.finder.Find()
		if err != nil {
			return "", err
		}
		if found == "" {
			return "", ErrNoTrial
		}
		trial = found
	}

	for _, ext := range []string{".set", ".bin"} {
		if !a.fs.FileExists(trial + ext) {
			return "", fmt.Errorf("%w: %s がありません", ErrNoTrial, trial+ext)
		}
	}
	return trial, nil
}

// loadSchema は.setの行レイアウトを決定します
func (a *App) loadSchema() (metadata.Schema, error) {
	if a.config.SchemaPath == "" {
		return metadata.DefaultSchema(), nil
	}
	data, err := a.fs.ReadFile(a.config.SchemaPath)
	if err != nil {
		return metadata.Schema{}, fmt.Errorf("%w: %s: %w", ErrReadFile, a.config.SchemaPath, err)
	}
	return metadata.LoadSchema(data)
}

// readMetadata は.setを読み込んで解析します
func (a *App) readMetadata(trial string, schema metadata.Schema) (*models.TrialMetadata, error) {
	setPath := trial + ".set"
	data, err := a.fs.ReadFile(setPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadFile, setPath, err)
	}
	text, err := fileutil.FromWindows1252(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeSet, setPath, err)
	}
	return metadata.NewParser(schema).Parse(text)
}

// decodeBin は.binを走査して位置サンプルを復号します。
// 戻り値は復号済みサンプルと、見つかった位置パケットの総数です。
func (a *App) decodeBin(trial string) ([]dacq.PositionSample, int, error) {
	binPath := trial + ".bin"
	data, err := a.fs.ReadFile(binPath)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %w", ErrReadFile, binPath, err)
	}

	scanner, err := dacq.NewScanner(data)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", binPath, err)
	}

	var samples []dacq.PositionSample
	for scanner.Next() {
		s, err := dacq.DecodeSample(scanner.Packet())
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", binPath, err)
		}
		samples = append(samples, s)
	}
	return samples, len(samples), nil
}

// outputPaths は.posとCSVサイドカーの出力先を決定します
func (a *App) outputPaths(trial string) (string, string, error) {
	dir := filepath.Dir(trial)
	if a.config.OutputDir != "" {
		dir = a.config.OutputDir
		if err := a.fs.MkdirAll(dir, 0o755); err != nil {
			return "", "", fmt.Errorf("%w: %s: %w", ErrCreateDirectory, dir, err)
		}
	}

	base := filepath.Base(trial)
	posPath := filepath.Join(dir, base+".pos")
	csvPath := ""
	if !a.config.NoCSV {
		csvPath = filepath.Join(dir, base+"_pos.csv")
	}
	return posPath, csvPath, nil
}
