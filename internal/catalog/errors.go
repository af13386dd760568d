package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/oltcmd/oltcmd/internal/model"
)

var (
	// ErrVendorNotFound 厂商不存在
	ErrVendorNotFound = errors.New("vendor not found")
	// ErrPathNotFound 分类路径不存在
	ErrPathNotFound = errors.New("category path not found")
	// ErrNotLeaf 路径指向分组而非命令
	ErrNotLeaf = errors.New("path does not point to a command")
)

// ParseError 目录文本无法解析（语法错误或结构不符）
type ParseError struct {
	// Line/Column 从 1 开始；结构错误时为 0
	Line   int
	Column int
	Path   []string
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("JSON inválido: ")
	b.WriteString(e.Msg)
	if e.Line > 0 {
		fmt.Fprintf(&b, " (linha %d, coluna %d)", e.Line, e.Column)
	}
	if len(e.Path) > 0 {
		fmt.Fprintf(&b, " em %s", strings.Join(e.Path, " → "))
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// newParseError 将解码错误转换为带行列号的 ParseError
func newParseError(text string, err error) *ParseError {
	pe := &ParseError{Msg: err.Error(), Err: err}
	var syn *json.SyntaxError
	var typ *json.UnmarshalTypeError
	var shape *model.ShapeError
	switch {
	case errors.As(err, &syn):
		pe.Line, pe.Column = position(text, syn.Offset)
	case errors.As(err, &typ):
		pe.Line, pe.Column = position(text, typ.Offset)
	case errors.As(err, &shape):
		pe.Msg = shape.Reason
		pe.Path = shape.Path
	case errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF):
		pe.Msg = "unexpected end of JSON input"
		pe.Line, pe.Column = position(text, int64(len(text)))
	}
	return pe
}

// position 字节偏移转换为行列号
func position(text string, offset int64) (int, int) {
	if offset > int64(len(text)) {
		offset = int64(len(text))
	}
	if offset < 0 {
		offset = 0
	}
	prefix := text[:offset]
	line := strings.Count(prefix, "\n") + 1
	col := len([]rune(prefix[strings.LastIndex(prefix, "\n")+1:]))
	if col == 0 {
		col = 1
	}
	return line, col
}
