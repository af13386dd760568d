package catalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oltcmd/oltcmd/internal/model"
	"github.com/oltcmd/oltcmd/pkg/logger"
)

// VendorPack YAML 厂商命令包：name / description / categories
type VendorPack struct {
	Name        string
	Description string
	Categories  *model.Node
}

// LoadVendorPacks 加载目录中所有 *.yaml|*.yml 厂商包；目录中尚不存在的厂商追加到末尾并保存
// 目录不存在时返回 0
func (s *Store) LoadVendorPacks(ctx context.Context, dir string) (int, error) {
	if strings.TrimSpace(dir) == "" {
		return 0, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read vendor pack directory %s: %w", dir, err)
	}

	merged := s.Catalog()
	added := 0
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		full := filepath.Join(dir, e.Name())
		pack, err := LoadVendorPack(full)
		if err != nil {
			return added, fmt.Errorf("failed to load vendor pack %s: %w", full, err)
		}
		if _, exists := merged.Vendor(pack.Name); exists {
			logger.Component("catalog").Debugf("vendor pack %s skipped: vendor %q already present", e.Name(), pack.Name)
			continue
		}
		merged.SetVendor(&model.Vendor{Name: pack.Name, Description: pack.Description, Categories: pack.Categories})
		added++
	}
	if added == 0 {
		return 0, nil
	}
	if err := s.Save(ctx, merged); err != nil {
		return 0, err
	}
	return added, nil
}

// LoadVendorPack 读取单个厂商包
func LoadVendorPack(path string) (*VendorPack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vendor pack: %w", err)
	}
	return ParseVendorPack(data)
}

// ParseVendorPack 解析厂商包内容，保持分类顺序
func ParseVendorPack(data []byte) (*VendorPack, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse vendor pack YAML: %w", err)
	}
	root := documentRoot(&doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("vendor pack must be a mapping")
	}
	pack := &VendorPack{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i].Value, root.Content[i+1]
		switch key {
		case "name":
			pack.Name = strings.TrimSpace(val.Value)
		case "description":
			pack.Description = val.Value
		case "categories":
			n, err := nodeFromYAML(val, []string{"categories"})
			if err != nil {
				return nil, err
			}
			if n.Kind != model.KindGroup {
				return nil, &model.ShapeError{Path: []string{"categories"}, Reason: "categories must be a mapping"}
			}
			pack.Categories = n
		}
	}
	if pack.Name == "" {
		return nil, fmt.Errorf("vendor pack must have a name")
	}
	if pack.Categories == nil {
		pack.Categories = model.Group()
	}
	return pack, nil
}

// ParseYAML 解析 ExportYAML 输出的完整目录
func ParseYAML(data []byte) (*model.Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Msg: err.Error(), Err: err}
	}
	root := documentRoot(&doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, &ParseError{Msg: "document must be a mapping"}
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "olts" {
			continue
		}
		olts := root.Content[i+1]
		if olts.Kind != yaml.MappingNode {
			return nil, &ParseError{Msg: "olts must be a mapping", Path: []string{"olts"}, Line: olts.Line, Column: olts.Column}
		}
		c := model.NewCatalog()
		for j := 0; j+1 < len(olts.Content); j += 2 {
			name := olts.Content[j].Value
			v := &model.Vendor{Name: name}
			body := olts.Content[j+1]
			if body.Kind != yaml.MappingNode {
				return nil, &ParseError{Msg: "vendor must be a mapping", Path: []string{"olts", name}, Line: body.Line, Column: body.Column}
			}
			for k := 0; k+1 < len(body.Content); k += 2 {
				switch body.Content[k].Value {
				case "description":
					v.Description = body.Content[k+1].Value
				case "categories":
					n, err := nodeFromYAML(body.Content[k+1], []string{"olts", name, "categories"})
					if err != nil {
						return nil, &ParseError{Msg: err.Error(), Err: err, Line: body.Content[k+1].Line, Column: body.Content[k+1].Column}
					}
					if n.Kind != model.KindGroup {
						return nil, &ParseError{Msg: "categories must be a mapping", Path: []string{"olts", name, "categories"}}
					}
					v.Categories = n
				}
			}
			c.SetVendor(v)
		}
		return c, nil
	}
	return nil, &ParseError{Msg: `missing "olts" key`}
}

func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil
		}
		return doc.Content[0]
	}
	return doc
}

func nodeFromYAML(n *yaml.Node, path []string) (*model.Node, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return model.Leaf(n.Value), nil
	case yaml.SequenceNode:
		lines := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, &model.ShapeError{Path: path, Reason: "sequence items must be strings"}
			}
			lines = append(lines, item.Value)
		}
		return model.Sequence(lines...), nil
	case yaml.MappingNode:
		g := model.Group()
		for i := 0; i+1 < len(n.Content); i += 2 {
			label := n.Content[i].Value
			child, err := nodeFromYAML(n.Content[i+1], append(append([]string(nil), path...), label))
			if err != nil {
				return nil, err
			}
			g.Set(label, child)
		}
		return g, nil
	case yaml.AliasNode:
		return nodeFromYAML(n.Alias, path)
	}
	return nil, &model.ShapeError{Path: path, Reason: "unsupported YAML value"}
}

// ExportYAML 以 YAML 输出当前目录（保持顺序）
func (s *Store) ExportYAML(w io.Writer) error {
	return EncodeYAML(w, s.Catalog())
}

// EncodeYAML 目录编码为 YAML
func EncodeYAML(w io.Writer, c *model.Catalog) error {
	olts := &yaml.Node{Kind: yaml.MappingNode}
	for _, v := range c.Vendors {
		body := &yaml.Node{Kind: yaml.MappingNode}
		body.Content = append(body.Content,
			scalar("description"), scalar(v.Description),
			scalar("categories"), nodeToYAML(v.Categories),
		)
		olts.Content = append(olts.Content, scalar(v.Name), body)
	}
	root := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{scalar("olts"), olts}}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return err
	}
	return enc.Close()
}

func nodeToYAML(n *model.Node) *yaml.Node {
	if n == nil {
		return &yaml.Node{Kind: yaml.MappingNode}
	}
	switch n.Kind {
	case model.KindLeaf:
		return scalar(n.Command)
	case model.KindSequence:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, ln := range n.Lines {
			seq.Content = append(seq.Content, scalar(ln))
		}
		return seq
	default:
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, e := range n.Children {
			m.Content = append(m.Content, scalar(e.Label), nodeToYAML(e.Node))
		}
		return m
	}
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
