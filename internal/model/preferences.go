package model

// 主题
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// DefaultWindowPosition 默认窗口几何
const DefaultWindowPosition = "1200x800+100+100"

// Preferences 界面偏好
type Preferences struct {
	Theme           string `json:"theme"`
	WindowPosition  string `json:"window_position"`
	SidebarPosition *int   `json:"sidebar_position"`
}

// DefaultPreferences 默认偏好
func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeLight, WindowPosition: DefaultWindowPosition}
}
