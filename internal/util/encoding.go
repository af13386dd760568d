package util

import (
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// 目录文件常由 Windows 记事本编辑：UTF-8 BOM、UTF-16（带 BOM）或 Windows-1252
var legacyEncodings = []encoding.Encoding{
	charmap.Windows1252,
	charmap.ISO8859_1,
	charmap.Macintosh,
}

// EnsureUTF8Bytes 将任意编码的文本转换为 UTF-8，并去掉 BOM
// 已是 UTF-8 时原样返回；无法识别时按原始字节返回
func EnsureUTF8Bytes(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	if hasBOM(b) {
		if s, ok := tryDecode(unicode.BOMOverride(transform.Nop), b); ok {
			return s
		}
	}
	if utf8.Valid(b) {
		return string(b)
	}
	for _, enc := range legacyEncodings {
		if s, ok := tryDecode(enc.NewDecoder(), b); ok {
			return s
		}
	}
	return string(b)
}

// EnsureUTF8 对字符串做同样的转换（编辑器提交的文本）
func EnsureUTF8(s string) string {
	return EnsureUTF8Bytes([]byte(s))
}

func hasBOM(b []byte) bool {
	return bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}) ||
		bytes.HasPrefix(b, []byte{0xFF, 0xFE}) ||
		bytes.HasPrefix(b, []byte{0xFE, 0xFF})
}

func tryDecode(t transform.Transformer, b []byte) (string, bool) {
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(b), t))
	if err != nil {
		return "", false
	}
	if utf8.Valid(decoded) {
		return string(decoded), true
	}
	return "", false
}
