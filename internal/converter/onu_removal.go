// Package converter 将 ONU 列表转换为 ZTE 批量删除命令
package converter

import (
	"fmt"
	"regexp"
	"strings"
)

// 例：gpon-onu_1/2/6:3 → slot 1，card 2，port 6，ONU 3
var onuRe = regexp.MustCompile(`^gpon-onu_(\d+)/(\d+)/(\d+):(\d+)`)

// ONU 解析出的 ONU 位置
type ONU struct {
	Slot string `json:"slot"`
	Card string `json:"card"`
	Port string `json:"port"`
	ONU  string `json:"onu"`
}

// ParseONUs 逐行解析，无法识别的行跳过
func ParseONUs(input string) []ONU {
	var out []ONU
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := onuRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		out = append(out, ONU{Slot: m[1], Card: m[2], Port: m[3], ONU: m[4]})
	}
	return out
}

// RemovalCommands 生成删除命令；输入为空时返回空
func RemovalCommands(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	cmds := []string{"configure terminal"}
	for _, o := range ParseONUs(input) {
		cmds = append(cmds,
			fmt.Sprintf("interface gpon-olt_%s/%s/%s", o.Slot, o.Card, o.Port),
			"no onu "+o.ONU,
			"exit",
		)
	}
	return cmds
}

// ConvertRemoval 换行拼接后的命令文本
func ConvertRemoval(input string) string {
	return strings.Join(RemovalCommands(input), "\n")
}
