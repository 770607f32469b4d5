// Package metadata は記録メタデータファイル(.set)の解析を行います
package metadata

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shiroemons/go-dacqpos/internal/pos/models"
)

// Parser は.setをスキーマに従って解析します
type Parser struct {
	schema Schema
}

// NewParser は新しいParserを作成します
func NewParser(schema Schema) *Parser {
	return &Parser{schema: schema}
}

// Parse は.setの内容からTrialMetadataを生成します。
// 行数の不足や数値として解釈できないフィールドは、出力を書き出す前に
// ErrMetadataFormatとして報告します。
func (p *Parser) Parse(data string) (*models.TrialMetadata, error) {
	lines := splitLines(data)
	if len(lines) <= p.schema.maxLine() {
		return nil, fmt.Errorf("%w: 行数が不足しています(%d行、%d行超が必要)",
			ErrMetadataFormat, len(lines), p.schema.maxLine())
	}

	md := &models.TrialMetadata{}
	md.HeaderLines = append(md.HeaderLines, lines[:p.schema.HeaderLines]...)

	// duration はテキスト上は小数のことがあるため、丸めて整数秒にする
	durText, err := p.fieldText(lines, "duration", p.schema.Duration)
	if err != nil {
		return nil, err
	}
	durVal, err := strconv.ParseFloat(durText, 64)
	if err != nil {
		return nil, p.fieldErr("duration", p.schema.Duration.Line, errNotNumeric)
	}
	md.TrialDuration = int(math.Round(durVal))
	md.DurationLine = p.schema.Duration.Line
	md.DurationPrefix = lines[p.schema.Duration.Line][:p.schema.Duration.Prefix]

	if md.WindowMinX, err = p.intField(lines, "window_min_x", p.schema.WindowMinX); err != nil {
		return nil, err
	}
	if md.WindowMaxX, err = p.intField(lines, "window_max_x", p.schema.WindowMaxX); err != nil {
		return nil, err
	}
	if md.WindowMinY, err = p.intField(lines, "window_min_y", p.schema.WindowMinY); err != nil {
		return nil, err
	}
	if md.WindowMaxY, err = p.intField(lines, "window_max_y", p.schema.WindowMaxY); err != nil {
		return nil, err
	}

	if md.PixelsPerMetre, err = p.floatField(lines, "pixels_per_metre", p.schema.PixelsPerMetre); err != nil {
		return nil, err
	}

	bearings := []FieldSpec{
		p.schema.BearingColour1,
		p.schema.BearingColour2,
		p.schema.BearingColour3,
		p.schema.BearingColour4,
	}
	for i, spec := range bearings {
		name := fmt.Sprintf("bearing_colour_%d", i+1)
		if md.BearingColours[i], err = p.intField(lines, name, spec); err != nil {
			return nil, err
		}
	}

	return md, nil
}

// fieldText はスキーマの位置から値のテキスト部分を取り出します
func (p *Parser) fieldText(lines []string, name string, spec FieldSpec) (string, error) {
	if spec.Line >= len(lines) {
		return "", p.fieldErr(name, spec.Line, errLineMissing)
	}
	line := lines[spec.Line]
	if len(line) < spec.Prefix {
		return "", p.fieldErr(name, spec.Line, errLineTooShort)
	}
	return strings.TrimSpace(line[spec.Prefix:]), nil
}

func (p *Parser) intField(lines []string, name string, spec FieldSpec) (int, error) {
	text, err := p.fieldText(lines, name, spec)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, p.fieldErr(name, spec.Line, errNotNumeric)
	}
	return v, nil
}

func (p *Parser) floatField(lines []string, name string, spec FieldSpec) (float64, error) {
	text, err := p.fieldText(lines, name, spec)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, p.fieldErr(name, spec.Line, errNotNumeric)
	}
	return v, nil
}

func (p *Parser) fieldErr(name string, line int, err error) error {
	return fmt.Errorf("%w: %w", ErrMetadataFormat, &FieldError{Field: name, Line: line, Err: err})
}

// splitLines はCRLF/LFどちらの改行でも行に分割します
func splitLines(data string) []string {
	return strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n")
}
