package resolver

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Field 表单输入项
type Field struct {
	Name      string   `json:"name"`
	Label     string   `json:"label"`
	Composite bool     `json:"composite,omitempty"`
	Covers    []string `json:"covers,omitempty"`
}

// Form 由模板生成的参数表单
type Form struct {
	Template     string   `json:"template"`
	Placeholders []string `json:"placeholders"`
	Fields       []Field  `json:"fields"`
	Composite    bool     `json:"composite"`
	// FirmwareSelector 模板含 {firmware} 时显示型号选择
	FirmwareSelector bool `json:"firmware_selector"`
}

// Input 操作员填写的内容
type Input struct {
	Values   map[string]string `json:"values"`
	PonID    string            `json:"pon_id"`
	ONUModel string            `json:"onu_model"`
}

// Collected 整理后的参数
type Collected struct {
	Values map[string]string `json:"values"`
	Hints  []string          `json:"hints,omitempty"`
}

// BuildForm 按占位符生成表单；slot/porta/pon 合并为一个 pon_id 输入框
func BuildForm(tpl string) *Form {
	names := ExtractPlaceholders(tpl)
	f := &Form{Template: tpl, Placeholders: names, Composite: HasComposite(names)}
	compositeAdded := false
	for _, n := range names {
		if f.Composite && isCompositePart(n) {
			if !compositeAdded {
				f.Fields = append(f.Fields, Field{
					Name:      CompositeField,
					Label:     "PON ID (slot/porta/pon)",
					Composite: true,
					Covers:    append([]string(nil), compositeParts...),
				})
				compositeAdded = true
			}
			continue
		}
		if n == "firmware" {
			f.FirmwareSelector = true
		}
		f.Fields = append(f.Fields, Field{Name: n, Label: label(n)})
	}
	return f
}

// Collect 去除首尾空白、展开合并字段并按型号补全固件
// 合并字段格式错误时三个占位符都不替换
func (f *Form) Collect(in Input, fw *Firmware) Collected {
	out := Collected{Values: make(map[string]string, len(in.Values)+3)}
	for k, v := range in.Values {
		out.Values[k] = strings.TrimSpace(v)
	}
	if f.Composite {
		if raw := strings.TrimSpace(in.PonID); raw != "" {
			parts, err := ParseComposite(raw)
			if err != nil {
				for _, p := range compositeParts {
					delete(out.Values, p)
				}
				out.Hints = append(out.Hints, CompositeHint)
			} else {
				for k, v := range parts {
					out.Values[k] = v
				}
			}
		}
	}
	if f.FirmwareSelector && fw != nil {
		fw.Apply(out.Values, in.ONUModel)
	}
	return out
}

func isCompositePart(name string) bool {
	for _, p := range compositeParts {
		if p == name {
			return true
		}
	}
	return false
}

func label(name string) string {
	switch name {
	case "sn":
		return "SN"
	case "mac":
		return "MAC"
	case "id":
		return "ID"
	case "":
		return ""
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}
