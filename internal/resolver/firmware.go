package resolver

import "strings"

// FirmwarePreset ONU 型号对应的固件文件
type FirmwarePreset struct {
	Model string `json:"model"`
	File  string `json:"file"`
}

// DefaultFirmwarePresets 内置型号
var DefaultFirmwarePresets = []FirmwarePreset{
	{Model: "ZTE F601", File: "F601P1N34.bin"},
	{Model: "ONU FAST", File: "F10-G10-NW_1.6.0.bin"},
}

// Firmware 型号选择器：选择型号后自动填充 firmware 字段
type Firmware struct {
	presets      []FirmwarePreset
	defaultModel string
}

// NewFirmware 创建选择器；presets 为空时使用内置型号
func NewFirmware(presets []FirmwarePreset, defaultModel string) *Firmware {
	if len(presets) == 0 {
		presets = DefaultFirmwarePresets
	}
	f := &Firmware{presets: append([]FirmwarePreset(nil), presets...), defaultModel: strings.TrimSpace(defaultModel)}
	if _, ok := f.File(f.defaultModel); !ok {
		f.defaultModel = f.presets[0].Model
	}
	return f
}

// Models 可选型号（配置顺序）
func (f *Firmware) Models() []string {
	out := make([]string, 0, len(f.presets))
	for _, p := range f.presets {
		out = append(out, p.Model)
	}
	return out
}

// DefaultModel 默认选中的型号
func (f *Firmware) DefaultModel() string { return f.defaultModel }

// File 型号对应的固件文件名
func (f *Firmware) File(model string) (string, bool) {
	for _, p := range f.presets {
		if p.Model == model {
			return p.File, true
		}
	}
	return "", false
}

// Apply firmware 为空时按型号填充；操作员手动输入的值优先
func (f *Firmware) Apply(values map[string]string, model string) {
	if strings.TrimSpace(values["firmware"]) != "" {
		return
	}
	if model == "" {
		model = f.defaultModel
	}
	if file, ok := f.File(model); ok {
		values["firmware"] = file
	}
}
