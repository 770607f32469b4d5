// Package mocks はテスト用のモック実装を提供します
package mocks

import (
	"errors"
	"path/filepath"

	"github.com/shiroemons/go-dacqpos/internal/pos/interfaces"
)

// MockFileSystem はテスト用のファイルシステムモック
type MockFileSystem struct {
	Files       map[string][]byte
	Dirs        map[string]bool
	WorkingDir  string
	Error       error
	WriteError  error
	RenameError error
}

// NewMockFileSystem は新しいMockFileSystemを作成します
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files:      make(map[string][]byte),
		Dirs:       make(map[string]bool),
		WorkingDir: "/test/dir",
	}
}

// FileExists はファイルが存在するか確認します
func (fs *MockFileSystem) FileExists(filename string) bool {
	_, exists := fs.Files[filename]
	return exists
}

// ReadFile はファイルを読み込みます
func (fs *MockFileSystem) ReadFile(filename string) ([]byte, error) {
	if fs.Error != nil {
		return nil, fs.Error
	}
	data, exists := fs.Files[filename]
	if !exists {
		return nil, errors.New("file not found")
	}
	return data, nil
}

// WriteFile はファイルを書き込みます
func (fs *MockFileSystem) WriteFile(filename string, data []byte, perm uint32) error {
	if fs.Error != nil {
		return fs.Error
	}
	if fs.WriteError != nil {
		return fs.WriteError
	}
	fs.Files[filename] = data
	return nil
}

// Rename はファイルを改名します
func (fs *MockFileSystem) Rename(oldpath, newpath string) error {
	if fs.Error != nil {
		return fs.Error
	}
	if fs.RenameError != nil {
		return fs.RenameError
	}
	data, exists := fs.Files[oldpath]
	if !exists {
		return errors.New("file not found")
	}
	delete(fs.Files, oldpath)
	fs.Files[newpath] = data
	return nil
}

// Remove はファイルを削除します
func (fs *MockFileSystem) Remove(filename string) error {
	if _, exists := fs.Files[filename]; !exists {
		return errors.New("file not found")
	}
	delete(fs.Files, filename)
	return nil
}

// MkdirAll はディレクトリを作成します
func (fs *MockFileSystem) MkdirAll(path string, perm uint32) error {
	if fs.Error != nil {
		return fs.Error
	}
	fs.Dirs[path] = true
	return nil
}

// ReadDir はディレクトリを読み込みます
func (fs *MockFileSystem) ReadDir(dirname string) ([]interfaces.DirEntry, error) {
	if fs.Error != nil {
		return nil, fs.Error
	}

	// ディレクトリが存在するか確認
	if !fs.Dirs[dirname] {
		hasFiles := false
		for path := range fs.Files {
			if filepath.Dir(path) == dirname {
				hasFiles = true
				break
			}
		}
		if !hasFiles {
			return nil, errors.New("directory not found")
		}
	}

	var entries []interfaces.DirEntry
	for path := range fs.Files {
		if filepath.Dir(path) == dirname {
			entries = append(entries, &MockDirEntry{
				name:  filepath.Base(path),
				isDir: false,
			})
		}
	}
	for path := range fs.Dirs {
		if filepath.Dir(path) == dirname && path != dirname {
			entries = append(entries, &MockDirEntry{
				name:  filepath.Base(path),
				isDir: true,
			})
		}
	}

	return entries, nil
}

// Getwd は現在の作業ディレクトリを返します
func (fs *MockFileSystem) Getwd() (string, error) {
	if fs.Error != nil {
		return "", fs.Error
	}
	return fs.WorkingDir, nil
}

// MockDirEntry はテスト用のDirEntry実装
type MockDirEntry struct {
	name  string
	isDir bool
}

// Name はエントリ名を返します
func (de *MockDirEntry) Name() string {
	return de.name
}

// IsDir はディレクトリかどうかを返します
func (de *MockDirEntry) IsDir() bool {
	return de.isDir
}
