package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Catalog 命令目录：厂商 → 分类 → 命令
// JSON 结构：{"olts": {"<厂商>": {"description": "...", "categories": {...}}}}
type Catalog struct {
	Vendors []*Vendor
	// Extra 顶层非 olts 字段，原样保留以便回写
	Extra []RawField
}

// Vendor 厂商记录
type Vendor struct {
	Name        string
	Description string
	Categories  *Node
	Extra       []RawField
}

// RawField 未识别的 JSON 字段（保持顺序）
type RawField struct {
	Key   string
	Value json.RawMessage
}

// NewCatalog 创建空目录
func NewCatalog(vendors ...*Vendor) *Catalog {
	c := &Catalog{}
	for _, v := range vendors {
		c.SetVendor(v)
	}
	return c
}

// Vendor 按名称查找厂商
func (c *Catalog) Vendor(name string) (*Vendor, bool) {
	if c == nil {
		return nil, false
	}
	for _, v := range c.Vendors {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}

// SetVendor 替换同名厂商（保持位置）或追加
func (c *Catalog) SetVendor(v *Vendor) {
	if v.Categories == nil {
		v.Categories = Group()
	}
	for i, cur := range c.Vendors {
		if cur.Name == v.Name {
			c.Vendors[i] = v
			return
		}
	}
	c.Vendors = append(c.Vendors, v)
}

// VendorNames 厂商名称（插入顺序，不排序）
func (c *Catalog) VendorNames() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.Vendors))
	for _, v := range c.Vendors {
		out = append(out, v.Name)
	}
	return out
}

// Clone 深拷贝
func (c *Catalog) Clone() *Catalog {
	if c == nil {
		return nil
	}
	out := &Catalog{Extra: cloneRaw(c.Extra)}
	for _, v := range c.Vendors {
		out.Vendors = append(out.Vendors, &Vendor{
			Name:        v.Name,
			Description: v.Description,
			Categories:  v.Categories.Clone(),
			Extra:       cloneRaw(v.Extra),
		})
	}
	return out
}

func cloneRaw(in []RawField) []RawField {
	if in == nil {
		return nil
	}
	out := make([]RawField, len(in))
	for i, f := range in {
		out[i] = RawField{Key: f.Key, Value: append(json.RawMessage(nil), f.Value...)}
	}
	return out
}

// MarshalJSON 输出目录文档
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"olts":{`)
	for i, v := range c.Vendors {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, v.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := v.encode(&buf); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	for _, f := range c.Extra {
		buf.WriteByte(',')
		if err := writeJSONString(&buf, f.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		buf.Write(f.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (v *Vendor) encode(buf *bytes.Buffer) error {
	buf.WriteString(`{"description":`)
	if err := writeJSONString(buf, v.Description); err != nil {
		return err
	}
	buf.WriteString(`,"categories":`)
	cats := v.Categories
	if cats == nil {
		cats = Group()
	}
	if err := cats.encode(buf); err != nil {
		return err
	}
	for _, f := range v.Extra {
		buf.WriteByte(',')
		if err := writeJSONString(buf, f.Key); err != nil {
			return err
		}
		buf.WriteByte(':')
		buf.Write(f.Value)
	}
	buf.WriteByte('}')
	return nil
}

// UnmarshalJSON 解码并校验目录结构
func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{', nil, "document must be an object"); err != nil {
		return err
	}
	out := Catalog{}
	seenOLTs := false
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return err
		}
		if key != "olts" {
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return err
			}
			out.Extra = append(out.Extra, RawField{Key: key, Value: raw})
			continue
		}
		seenOLTs = true
		if err := expectDelim(dec, '{', []string{"olts"}, "olts must be an object"); err != nil {
			return err
		}
		for dec.More() {
			name, err := readKey(dec)
			if err != nil {
				return err
			}
			v, err := decodeVendor(dec, name)
			if err != nil {
				return err
			}
			out.SetVendor(v)
		}
		if _, err := dec.Token(); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	if !seenOLTs {
		return &ShapeError{Reason: `missing "olts" key`}
	}
	*c = out
	return nil
}

func decodeVendor(dec *json.Decoder, name string) (*Vendor, error) {
	path := []string{"olts", name}
	if err := expectDelim(dec, '{', path, "vendor must be an object"); err != nil {
		return nil, err
	}
	v := &Vendor{Name: name}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		switch key {
		case "description":
			var desc interface{}
			if err := dec.Decode(&desc); err != nil {
				return nil, err
			}
			if desc != nil {
				v.Description = fmt.Sprint(desc)
			}
		case "categories":
			node, err := decodeNode(dec, appendPath(path, "categories"))
			if err != nil {
				return nil, err
			}
			if node.Kind != KindGroup {
				return nil, &ShapeError{Path: appendPath(path, "categories"), Reason: "categories must be an object"}
			}
			v.Categories = node
		default:
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, err
			}
			v.Extra = append(v.Extra, RawField{Key: key, Value: raw})
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if v.Categories == nil {
		v.Categories = Group()
	}
	return v, nil
}

func expectDelim(dec *json.Decoder, want json.Delim, path []string, reason string) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return &ShapeError{Path: path, Reason: reason}
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("unexpected token %v", tok)
	}
	return key, nil
}
