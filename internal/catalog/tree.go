package catalog

import (
	"fmt"
	"strings"

	"github.com/oltcmd/oltcmd/internal/model"
)

// SearchSeparator 检索结果中路径的分隔符
const SearchSeparator = " → "

// TreeItem 目录树显示项；命令节点保留原始形态，Display 为拼接后的文本
type TreeItem struct {
	Label    string      `json:"label"`
	Path     []string    `json:"path"`
	Kind     string      `json:"kind"`
	Command  string      `json:"command,omitempty"`
	Lines    []string    `json:"lines,omitempty"`
	Display  string      `json:"display,omitempty"`
	Children []TreeItem  `json:"children,omitempty"`
	Node     *model.Node `json:"-"`
}

// Traverse 厂商的分类树
func (s *Store) Traverse(vendor string) ([]TreeItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.catalog.Vendor(vendor)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrVendorNotFound, vendor)
	}
	return buildTree(v.Categories, nil), nil
}

func buildTree(n *model.Node, path []string) []TreeItem {
	items := make([]TreeItem, 0, len(n.Children))
	for _, e := range n.Children {
		p := make([]string, len(path), len(path)+1)
		copy(p, path)
		p = append(p, e.Label)
		item := TreeItem{Label: e.Label, Path: p, Kind: e.Node.Kind.String(), Node: e.Node.Clone()}
		switch e.Node.Kind {
		case model.KindLeaf:
			item.Command = e.Node.Command
			item.Display = e.Node.Text()
		case model.KindSequence:
			item.Lines = append([]string(nil), e.Node.Lines...)
			item.Display = e.Node.Text()
		default:
			item.Children = buildTree(e.Node, p)
		}
		items = append(items, item)
	}
	return items
}

// SearchResult 检索命中
type SearchResult struct {
	Vendor   string      `json:"vendor"`
	Path     []string    `json:"path"`
	PathText string      `json:"path_text"`
	Command  string      `json:"command"`
	Kind     string      `json:"kind"`
	Node     *model.Node `json:"-"`
}

// Search 在所有厂商中按命令文本或路径检索（不区分大小写）；空文本返回全部命令
func (s *Store) Search(text string) []SearchResult {
	needle := strings.ToLower(strings.TrimSpace(text))
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []SearchResult
	for _, v := range s.catalog.Vendors {
		v.Categories.Walk(func(path []string, leaf *model.Node) bool {
			pathText := strings.Join(path, SearchSeparator)
			cmd := leaf.Text()
			if needle == "" ||
				strings.Contains(strings.ToLower(cmd), needle) ||
				strings.Contains(strings.ToLower(pathText), needle) {
				out = append(out, SearchResult{
					Vendor:   v.Name,
					Path:     path,
					PathText: pathText,
					Command:  cmd,
					Kind:     leaf.Kind.String(),
					Node:     leaf.Clone(),
				})
			}
			return true
		})
	}
	return out
}
