package logger

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// CommandLines 多行命令序列的首尾行摘要
type CommandLines struct {
	Head  []string `json:"head_lines"`
	Tail  []string `json:"tail_lines"`
	Total int      `json:"total"`
}

// SplitCommandLines 提取命令文本的前后各 maxLines 行；总行数不超过 maxLines 时 Tail 为空
func SplitCommandLines(text string, maxLines int) CommandLines {
	if maxLines <= 0 {
		maxLines = 3
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return CommandLines{}
	}
	lines := strings.Split(text, "\n")
	out := CommandLines{Total: len(lines)}
	if len(lines) <= maxLines {
		out.Head = lines
		return out
	}
	out.Head = append([]string(nil), lines[:maxLines]...)
	start := len(lines) - maxLines
	if start < maxLines {
		start = maxLines
	}
	out.Tail = append([]string(nil), lines[start:]...)
	return out
}

// String 日志用的单行表示
func (c CommandLines) String() string {
	var parts []string
	if len(c.Head) > 0 {
		parts = append(parts, "head: ["+strings.Join(c.Head, " ⟩ ")+"]")
	}
	if len(c.Tail) > 0 {
		parts = append(parts, "tail: ["+strings.Join(c.Tail, " ⟩ ")+"]")
	}
	return strings.Join(parts, ", ")
}

// DebugCommand 在 debug 级别记录复制/预览的命令摘要
func DebugCommand(action, vendor, text string) {
	l := GetLogger()
	if l.Level < logrus.DebugLevel {
		return
	}
	lines := SplitCommandLines(text, 3)
	if lines.Total == 0 {
		return
	}
	l.WithFields(logrus.Fields{
		"action": action,
		"vendor": vendor,
		"lines":  lines.Total,
	}).Debugf("command %s", lines.String())
}
