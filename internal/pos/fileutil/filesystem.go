package fileutil

import (
	"os"

	"github.com/shiroemons/go-dacqpos/internal/pos/interfaces"
)

// OSFileSystem は実際のOSファイルシステムを使用する実装
type OSFileSystem struct{}

// NewOSFileSystem は新しいOSFileSystemを作成します
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// FileExists はファイルが存在するか確認します
func (fs *OSFileSystem) FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// ReadFile はファイルを読み込みます
func (fs *OSFileSystem) ReadFile(filename string) ([]byte, error) {
	return os.ReadFile(filename)
}

// WriteFile はファイルを書き込みます
func (fs *OSFileSystem) WriteFile(filename string, data []byte, perm uint32) error {
	return os.WriteFile(filename, data, os.FileMode(perm))
}

// Rename はファイルを改名します
func (fs *OSFileSystem) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// Remove はファイルを削除します
func (fs *OSFileSystem) Remove(filename string) error {
	return os.Remove(filename)
}

// MkdirAll はディレクトリを作成します
func (fs *OSFileSystem) MkdirAll(path string, perm uint32) error {
	return os.MkdirAll(path, os.FileMode(perm))
}

// ReadDir はディレクトリを読み込みます
func (fs *OSFileSystem) ReadDir(dirname string) ([]interfaces.DirEntry, error) {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, err
	}
	result := make([]interfaces.DirEntry, len(entries))
	for i, entry := range entries {
		result[i] = osDirEntry{entry}
	}
	return result, nil
}

// Getwd は現在の作業ディレクトリを返します
func (fs *OSFileSystem) Getwd() (string, error) {
	return os.Getwd()
}

type osDirEntry struct {
	entry os.DirEntry
}

func (e osDirEntry) Name() string {
	return e.entry.Name()
}

func (e osDirEntry) IsDir() bool {
	return e.entry.IsDir()
}
