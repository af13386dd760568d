package olt

import "github.com/oltcmd/oltcmd/internal/model"

// Plugin OLT 厂商插件：提供显示名称、描述与内置命令树
type Plugin interface {
	// Name 平台标识，如 zte_c300
	Name() string
	// Vendor 目录中显示的厂商/设备名称
	Vendor() string
	Description() string
	// Rank 默认目录中的排列顺序（升序）
	Rank() int
	// Categories 每次调用返回新的命令树
	Categories() *model.Node
}
