package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/oltcmd/oltcmd/internal/catalog"
	"github.com/oltcmd/oltcmd/internal/model"
)

type palette struct {
	title   lipgloss.Color
	path    lipgloss.Color
	command lipgloss.Color
	warn    lipgloss.Color
	muted   lipgloss.Color
}

var palettes = map[string]palette{
	model.ThemeLight: {title: "#1565C0", path: "#555555", command: "#2E7D32", warn: "#C62828", muted: "#888888"},
	model.ThemeDark:  {title: "#64B5F6", path: "#BBBBBB", command: "#A5D6A7", warn: "#EF9A9A", muted: "#777777"},
}

type renderer struct {
	w       io.Writer
	title   lipgloss.Style
	path    lipgloss.Style
	command lipgloss.Style
	warn    lipgloss.Style
	muted   lipgloss.Style
}

func newRenderer(w io.Writer, theme string) *renderer {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[model.ThemeLight]
	}
	return &renderer{
		w:       w,
		title:   lipgloss.NewStyle().Foreground(p.title).Bold(true),
		path:    lipgloss.NewStyle().Foreground(p.path),
		command: lipgloss.NewStyle().Foreground(p.command),
		warn:    lipgloss.NewStyle().Foreground(p.warn),
		muted:   lipgloss.NewStyle().Foreground(p.muted).Italic(true),
	}
}

func (r *renderer) Title(s string) {
	fmt.Fprintln(r.w, r.title.Render(s))
}

func (r *renderer) Line(format string, args ...interface{}) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

func (r *renderer) Command(s string) {
	for _, ln := range strings.Split(s, "\n") {
		fmt.Fprintln(r.w, r.command.Render(ln))
	}
}

func (r *renderer) Warn(s string) {
	fmt.Fprintln(r.w, r.warn.Render("⚠ "+s))
}

func (r *renderer) Muted(s string) {
	fmt.Fprintln(r.w, r.muted.Render(s))
}

// Tree 缩进输出分类树；命令节点显示模板
func (r *renderer) Tree(items []catalog.TreeItem, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, it := range items {
		if len(it.Children) > 0 || it.Kind == model.KindGroup.String() {
			fmt.Fprintln(r.w, indent+r.title.Render("▸ "+it.Label))
			r.Tree(it.Children, depth+1)
			continue
		}
		fmt.Fprintf(r.w, "%s• %s  %s\n", indent, it.Label, r.muted.Render(firstLine(it.Display)))
	}
}

func (r *renderer) Breadcrumb(s string) {
	fmt.Fprintln(r.w, r.path.Render(s))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}
