// Package fileutil はファイル操作のユーティリティ関数を提供します
package fileutil

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/shiroemons/go-dacqpos/internal/pos/interfaces"
)

// FromWindows1252 はWindows-1252からUTF-8に変換します。
// DacqUSBの.setはWindows上で書かれるため、度記号などの
// 8ビット文字を含むことがあります。
func FromWindows1252(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	transformer := charmap.Windows1252.NewDecoder()
	ret, err := io.ReadAll(transform.NewReader(reader, transformer))
	if err != nil {
		return "", err
	}
	return string(ret), nil
}

// TrimTrialExt はトライアル名から.set/.bin/.posの拡張子を取り除きます。
// それ以外の拡張子はトライアル名の一部とみなしてそのまま残します。
func TrimTrialExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".set", ".bin", ".pos":
		return strings.TrimSuffix(path, filepath.Ext(path))
	}
	return path
}

// TrialFinder はカレントディレクトリから記録トライアルの検索を行います
type TrialFinder struct {
	fs interfaces.FileSystem
}

// NewTrialFinder は新しいTrialFinderを作成します
func NewTrialFinder(fs interfaces.FileSystem) *TrialFinder {
	return &TrialFinder{fs: fs}
}

// Find はカレントディレクトリから.setと.binの揃ったトライアルを検索します。
// 見つからない場合は空文字列を返します(エラーではありません)。
// 複数見つかった場合はErrMultipleTrialsを返します。
func (f *TrialFinder) Find() (string, error) {
	currentDir, err := f.fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGetCurrentDirectory, err)
	}

	entries, err := f.fs.ReadDir(currentDir)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrReadDirectory, currentDir, err)
	}

	var trials []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".set") {
			continue
		}
		base := strings.TrimSuffix(name, filepath.Ext(name))
		// .binが揃っているトライアルだけを候補にする
		if f.fs.FileExists(filepath.Join(currentDir, base+".bin")) {
			trials = append(trials, filepath.Join(currentDir, base))
		}
	}

	if len(trials) == 0 {
		return "", nil
	}
	if len(trials) > 1 {
		sort.Strings(trials)
		names := make([]string, len(trials))
		for i, path := range trials {
			names[i] = filepath.Base(path)
		}
		return "", fmt.Errorf("%w: %s", ErrMultipleTrials, strings.Join(names, ", "))
	}
	return trials[0], nil
}
