package metadata

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FieldSpec は.set内の1フィールドの位置を表します。
// Lineは0始まりの行番号、Prefixは値の手前にあるキー部分の長さです。
type FieldSpec struct {
	Line   int `yaml:"line"`
	Prefix int `yaml:"prefix"`
}

// Schema は.setの固定行レイアウトを表します。
// DacqUSBのバージョンによって行位置が変わることがあるため、
// 既定値をYAMLファイルで差し替えられるようにしています。
type Schema struct {
	// HeaderLines は.posヘッダへそのまま転記する先頭の行数です
	HeaderLines int `yaml:"header_lines"`

	Duration       FieldSpec `yaml:"duration"`
	WindowMinX     FieldSpec `yaml:"window_min_x"`
	WindowMaxX     FieldSpec `yaml:"window_max_x"`
	WindowMinY     FieldSpec `yaml:"window_min_y"`
	WindowMaxY     FieldSpec `yaml:"window_max_y"`
	PixelsPerMetre FieldSpec `yaml:"pixels_per_metre"`
	BearingColour1 FieldSpec `yaml:"bearing_colour_1"`
	BearingColour2 FieldSpec `yaml:"bearing_colour_2"`
	BearingColour3 FieldSpec `yaml:"bearing_colour_3"`
	BearingColour4 FieldSpec `yaml:"bearing_colour_4"`
}

// DefaultSchema はDacqUSB既定の.setレイアウトを返します
func DefaultSchema() Schema {
	return Schema{
		HeaderLines:    6,
		Duration:       FieldSpec{Line: 4, Prefix: 9},     // "duration "
		WindowMinX:     FieldSpec{Line: 1059, Prefix: 5},  // "xmin "
		WindowMaxX:     FieldSpec{Line: 1060, Prefix: 5},  // "xmax "
		WindowMinY:     FieldSpec{Line: 1061, Prefix: 5},  // "ymin "
		WindowMaxY:     FieldSpec{Line: 1062, Prefix: 5},  // "ymax "
		PixelsPerMetre: FieldSpec{Line: 1099, Prefix: 25}, // "tracker_pixels_per_metre "
		BearingColour1: FieldSpec{Line: 1420, Prefix: 15}, // "lightbearing_1 "
		BearingColour2: FieldSpec{Line: 1421, Prefix: 15},
		BearingColour3: FieldSpec{Line: 1422, Prefix: 15},
		BearingColour4: FieldSpec{Line: 1423, Prefix: 15},
	}
}

// LoadSchema はYAMLからスキーマを読み込み検証します。
// 記述のないフィールドには既定値が使われます。
func LoadSchema(data []byte) (Schema, error) {
	schema := DefaultSchema()
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return Schema{}, fmt.Errorf("%w: %w", ErrSchemaParse, err)
	}
	if err := schema.Validate(); err != nil {
		return Schema{}, err
	}
	return schema, nil
}

// Validate はスキーマの内容を検証します
func (s Schema) Validate() error {
	if s.HeaderLines <= 0 {
		return fmt.Errorf("%w: header_linesは1以上が必要です", ErrSchemaInvalid)
	}
	for _, f := range s.fields() {
		if f.spec.Line < 0 {
			return fmt.Errorf("%w: %s の行番号が負です", ErrSchemaInvalid, f.name)
		}
		if f.spec.Prefix < 1 {
			return fmt.Errorf("%w: %s の接頭辞長は1以上が必要です", ErrSchemaInvalid, f.name)
		}
	}
	return nil
}

type namedField struct {
	name string
	spec FieldSpec
}

// fields は検証とエラー報告で共有するフィールドの一覧を返します
func (s Schema) fields() []namedField {
	return []namedField{
		{"duration", s.Duration},
		{"window_min_x", s.WindowMinX},
		{"window_max_x", s.WindowMaxX},
		{"window_min_y", s.WindowMinY},
		{"window_max_y", s.WindowMaxY},
		{"pixels_per_metre", s.PixelsPerMetre},
		{"bearing_colour_1", s.BearingColour1},
		{"bearing_colour_2", s.BearingColour2},
		{"bearing_colour_3", s.BearingColour3},
		{"bearing_colour_4", s.BearingColour4},
	}
}

// maxLine はスキーマが参照する最大の行番号を返します
func (s Schema) maxLine() int {
	max := s.HeaderLines - 1
	for _, f := range s.fields() {
		if f.spec.Line > max {
			max = f.spec.Line
		}
	}
	return max
}
