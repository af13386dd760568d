package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// NodeKind 目录节点类型
type NodeKind int

const (
	// KindGroup 子分类（有序映射）
	KindGroup NodeKind = iota
	// KindLeaf 单条命令模板
	KindLeaf
	// KindSequence 多行命令序列（如 进入配置模式 → 执行 → 退出）
	KindSequence
)

func (k NodeKind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindSequence:
		return "sequence"
	default:
		return "group"
	}
}

// Node 目录树节点：Leaf(string) | Sequence([]string) | Group([]Entry)
// 叶子节点保留原始形态，只有在渲染/复制时才拼接为字符串
type Node struct {
	Kind     NodeKind
	Command  string
	Lines    []string
	Children []Entry
}

// Entry 分组中的一个有序子项
type Entry struct {
	Label string
	Node  *Node
}

// Leaf 创建单条命令节点
func Leaf(command string) *Node {
	return &Node{Kind: KindLeaf, Command: command}
}

// Sequence 创建多行命令序列节点
func Sequence(lines ...string) *Node {
	out := make([]string, len(lines))
	copy(out, lines)
	return &Node{Kind: KindSequence, Lines: out}
}

// Group 创建分组节点，保持传入顺序
func Group(entries ...Entry) *Node {
	g := &Node{Kind: KindGroup}
	for _, e := range entries {
		g.Set(e.Label, e.Node)
	}
	return g
}

// Item 便于构造 Group 的辅助函数
func Item(label string, n *Node) Entry {
	return Entry{Label: label, Node: n}
}

// IsCommand 是否为命令节点（单条或序列）
func (n *Node) IsCommand() bool {
	return n != nil && (n.Kind == KindLeaf || n.Kind == KindSequence)
}

// Text 返回命令文本，序列以换行拼接；分组返回空串
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case KindLeaf:
		return n.Command
	case KindSequence:
		return strings.Join(n.Lines, "\n")
	default:
		return ""
	}
}

// Child 按标签查找直接子节点
func (n *Node) Child(label string) (*Node, bool) {
	if n == nil || n.Kind != KindGroup {
		return nil, false
	}
	for _, e := range n.Children {
		if e.Label == label {
			return e.Node, true
		}
	}
	return nil, false
}

// Set 设置子节点：已存在则原位替换，否则追加到末尾
func (n *Node) Set(label string, child *Node) {
	for i := range n.Children {
		if n.Children[i].Label == label {
			n.Children[i].Node = child
			return
		}
	}
	n.Children = append(n.Children, Entry{Label: label, Node: child})
}

// Labels 返回子节点标签（插入顺序）
func (n *Node) Labels() []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Children))
	for _, e := range n.Children {
		out = append(out, e.Label)
	}
	return out
}

// Walk 深度优先遍历所有命令节点；fn 返回 false 时停止
func (n *Node) Walk(fn func(path []string, leaf *Node) bool) {
	n.walk(nil, fn)
}

func (n *Node) walk(path []string, fn func([]string, *Node) bool) bool {
	if n == nil {
		return true
	}
	if n.IsCommand() {
		return fn(path, n)
	}
	for _, e := range n.Children {
		if !e.Node.walk(appendPath(path, e.Label), fn) {
			return false
		}
	}
	return true
}

// Clone 深拷贝
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Kind: n.Kind, Command: n.Command}
	if n.Lines != nil {
		c.Lines = append([]string(nil), n.Lines...)
	}
	for _, e := range n.Children {
		c.Children = append(c.Children, Entry{Label: e.Label, Node: e.Node.Clone()})
	}
	return c
}

func appendPath(path []string, label string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, label)
}

// ShapeError 目录结构错误（合法 JSON，但不符合目录格式）
type ShapeError struct {
	Path   []string
	Reason string
}

func (e *ShapeError) Error() string {
	if len(e.Path) == 0 {
		return "catalog shape: " + e.Reason
	}
	return fmt.Sprintf("catalog shape at %s: %s", strings.Join(e.Path, " → "), e.Reason)
}

// MarshalJSON 按插入顺序输出
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) encode(buf *bytes.Buffer) error {
	if n == nil {
		buf.WriteString("{}")
		return nil
	}
	switch n.Kind {
	case KindLeaf:
		return writeJSONString(buf, n.Command)
	case KindSequence:
		buf.WriteByte('[')
		for i, ln := range n.Lines {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, ln); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		buf.WriteByte('{')
		for i, e := range n.Children {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, e.Label); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := e.Node.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	}
}

// UnmarshalJSON 保持对象键顺序解码
func (n *Node) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	node, err := decodeNode(dec, nil)
	if err != nil {
		return err
	}
	*n = *node
	return nil
}

func decodeNode(dec *json.Decoder, path []string) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case string:
		return Leaf(t), nil
	case json.Delim:
		switch t {
		case '[':
			lines := []string{}
			for dec.More() {
				item, err := dec.Token()
				if err != nil {
					return nil, err
				}
				s, ok := item.(string)
				if !ok {
					return nil, &ShapeError{Path: path, Reason: "sequence items must be strings"}
				}
				lines = append(lines, s)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return Sequence(lines...), nil
		case '{':
			g := &Node{Kind: KindGroup}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, _ := keyTok.(string)
				child, err := decodeNode(dec, appendPath(path, key))
				if err != nil {
					return nil, err
				}
				g.Set(key, child)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return g, nil
		}
	}
	return nil, &ShapeError{Path: path, Reason: fmt.Sprintf("unsupported value %v", tok)}
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
