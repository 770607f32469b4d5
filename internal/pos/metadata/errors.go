package metadata

import (
	"errors"
	"fmt"
)

var (
	// ErrMetadataFormat は.setが期待する形式でない場合のエラー
	ErrMetadataFormat = errors.New(".setの形式が不正です")

	// ErrSchemaParse はスキーマYAMLの解析に失敗した場合のエラー
	ErrSchemaParse = errors.New("スキーマの解析に失敗しました")

	// ErrSchemaInvalid はスキーマの内容が不正な場合のエラー
	ErrSchemaInvalid = errors.New("スキーマの内容が不正です")
)

var (
	errLineMissing  = errors.New("行がありません")
	errLineTooShort = errors.New("行が接頭辞より短いです")
	errNotNumeric   = errors.New("数値として解釈できません")
)

// FieldError は解析に失敗したフィールドを特定するエラーです
type FieldError struct {
	Field string // フィールド名
	Line  int    // 0始まりの行番号
	Err   error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *FieldError) Error() string {
	return fmt.Sprintf("フィールド %s (行 %d): %v", e.Field, e.Line, e.Err)
}

// Unwrap は元のエラーを返します
func (e *FieldError) Unwrap() error {
	return e.Err
}
