// Package interfaces はdacqposコマンドで使用するインターフェースを定義します
package interfaces

// FileSystem はファイルシステム操作のインターフェース
type FileSystem interface {
	FileExists(filename string) bool
	ReadFile(filename string) ([]byte, error)
	WriteFile(filename string, data []byte, perm uint32) error
	Rename(oldpath, newpath string) error
	Remove(filename string) error
	MkdirAll(path string, perm uint32) error
	ReadDir(dirname string) ([]DirEntry, error)
	Getwd() (string, error)
}

// DirEntry はディレクトリエントリのインターフェース
type DirEntry interface {
	Name() string
	IsDir() bool
}

// TrialFinder は.setと.binの組を検索するインターフェースです
type TrialFinder interface {
	Find() (string, error)
}

// Logger はログ出力のインターフェース
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}
