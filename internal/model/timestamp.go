package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout 写入格式（与历史文件中的 ISO-8601 本地时间一致）
const TimestampLayout = "2006-01-02T15:04:05.000000"

var timestampLayouts = []string{
	TimestampLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
}

// Timestamp ISO-8601 时间戳
// 无法识别的值保留原文，时间为零值，写回时原样输出
type Timestamp struct {
	time.Time
	raw string
}

// NewTimestamp 包装时间
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp 兼容多种 ISO-8601 写法
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
}

func (t Timestamp) String() string {
	return t.Format(TimestampLayout)
}

// Raw 无法解析时保留的原始 JSON 值
func (t Timestamp) Raw() string { return t.raw }

// MarshalJSON 输出字符串
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() && t.raw != "" {
		return []byte(t.raw), nil
	}
	return []byte(`"` + t.Format(TimestampLayout) + `"`), nil
}

// UnmarshalJSON 解析字符串；格式不明的值不报错，避免整份文件加载失败
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if text == "" || text == "null" || text == `""` {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*t = Timestamp{raw: text}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		*t = Timestamp{raw: text}
		return nil
	}
	*t = parsed
	return nil
}
