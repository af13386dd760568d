package store

import (
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/oltcmd/oltcmd/internal/model"
	"github.com/oltcmd/oltcmd/pkg/logger"
)

var geometryRe = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)

// Screen 屏幕尺寸；零值表示不检查上限
type Screen struct {
	Width  int
	Height int
}

// Geometry 窗口几何 "WxH+X+Y"
type Geometry struct {
	Width, Height, X, Y int
}

// ParseGeometry 解析窗口几何字符串
func ParseGeometry(s string) (Geometry, bool) {
	m := geometryRe.FindStringSubmatch(s)
	if m == nil {
		return Geometry{}, false
	}
	var g Geometry
	for i, dst := range []*int{&g.Width, &g.Height, &g.X, &g.Y} {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Geometry{}, false
		}
		*dst = n
	}
	return g, true
}

// Fits 窗口至少 100x100，且完全位于屏幕内（至少留 100 像素可见）
func (g Geometry) Fits(screen Screen) bool {
	if g.Width < 100 || g.Height < 100 || g.X < 0 || g.Y < 0 {
		return false
	}
	if screen.Width > 0 && (g.Width > screen.Width || g.X > screen.Width-100) {
		return false
	}
	if screen.Height > 0 && (g.Height > screen.Height || g.Y > screen.Height-100) {
		return false
	}
	return true
}

// SanitizePreferences 非法主题或几何回退为默认值
func SanitizePreferences(p model.Preferences, screen Screen) model.Preferences {
	def := model.DefaultPreferences()
	if p.Theme != model.ThemeLight && p.Theme != model.ThemeDark {
		p.Theme = def.Theme
	}
	if g, ok := ParseGeometry(p.WindowPosition); !ok || !g.Fits(screen) {
		p.WindowPosition = def.WindowPosition
	}
	if p.SidebarPosition != nil && *p.SidebarPosition < 0 {
		p.SidebarPosition = nil
	}
	return p
}

// Preferences 偏好文件，变更后延迟保存
type Preferences struct {
	mu     sync.Mutex
	path   string
	delay  time.Duration
	screen Screen
	prefs  model.Preferences
	timer  *time.Timer
	dirty  bool
}

// NewPreferences 加载偏好；任何错误都回退为默认值
func NewPreferences(path string, delay time.Duration, screen Screen) *Preferences {
	p := &Preferences{path: path, delay: delay, screen: screen, prefs: model.DefaultPreferences()}
	var loaded model.Preferences
	if err := readJSON(path, &loaded); err == nil {
		p.prefs = SanitizePreferences(loaded, screen)
	}
	return p
}

// Get 当前偏好
func (p *Preferences) Get() model.Preferences {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.prefs
}

// Update 修改偏好并安排延迟保存；重复调用会重置计时
func (p *Preferences) Update(fn func(*model.Preferences)) model.Preferences {
	p.mu.Lock()
	defer p.mu.Unlock()
	next := p.prefs
	fn(&next)
	p.prefs = SanitizePreferences(next, p.screen)
	p.dirty = true
	if p.delay <= 0 {
		p.saveLocked()
		return p.prefs
	}
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.delay, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.saveLocked()
	})
	return p.prefs
}

// Flush 取消等待中的保存并立即写入（退出时调用）
func (p *Preferences) Flush() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.saveLocked()
}

func (p *Preferences) saveLocked() {
	if !p.dirty {
		return
	}
	if err := writeJSON(p.path, p.prefs); err != nil {
		logger.Component("store").Warnf("save preferences failed: %v", err)
		return
	}
	p.dirty = false
}
