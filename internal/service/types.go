package service

import (
	"github.com/oltcmd/oltcmd/internal/docs"
	"github.com/oltcmd/oltcmd/internal/resolver"
	"github.com/oltcmd/oltcmd/internal/validator"
)

// VendorInfo 厂商摘要
type VendorInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Selection 选中命令后显示的全部信息
type Selection struct {
	Vendor     string   `json:"vendor"`
	Path       []string `json:"path"`
	Breadcrumb string   `json:"breadcrumb"`
	Kind       string   `json:"kind"`
	// Template 命令文本（序列以换行拼接）
	Template   string            `json:"template"`
	Lines      []string          `json:"lines,omitempty"`
	Form       *resolver.Form    `json:"form"`
	ParamHelp  map[string]string `json:"param_help"`
	IsFavorite bool              `json:"is_favorite"`
	Tips       []string          `json:"tips"`
	Example    *docs.Example     `json:"example,omitempty"`
	Issues     []string          `json:"issues,omitempty"`
	// FirmwareModels 仅在模板含 {firmware} 时填充
	FirmwareModels []string `json:"firmware_models,omitempty"`
	DefaultModel   string   `json:"default_model,omitempty"`
}

// PreviewRequest 预览请求
type PreviewRequest struct {
	Template string            `json:"template" binding:"required"`
	Values   map[string]string `json:"values"`
	PonID    string            `json:"pon_id"`
	ONUModel string            `json:"onu_model"`
}

// PreviewResult 替换结果；校验只作提示
type PreviewResult struct {
	Command     string                 `json:"command"`
	Values      map[string]string      `json:"values"`
	Errors      []string               `json:"errors"`
	FieldErrors []validator.FieldError `json:"field_errors,omitempty"`
	Hints       []string               `json:"hints,omitempty"`
	Unresolved  []string               `json:"unresolved"`
	Complete    bool                   `json:"complete"`
}

// CopyRequest 复制请求
type CopyRequest struct {
	Command string   `json:"command" binding:"required"`
	Vendor  string   `json:"vendor"`
	Path    []string `json:"path"`
}

// FavoriteRequest 收藏请求
type FavoriteRequest struct {
	Name    string            `json:"name"`
	Command string            `json:"command" binding:"required"`
	Vendor  string            `json:"vendor"`
	Path    []string          `json:"path"`
	Params  map[string]string `json:"params"`
}

// PreferencesPatch 偏好更新，nil 字段不变
type PreferencesPatch struct {
	Theme           *string `json:"theme"`
	WindowPosition  *string `json:"window_position"`
	SidebarPosition *int    `json:"sidebar_position"`
}
