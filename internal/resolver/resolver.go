// Package resolver 命令模板占位符提取与替换
package resolver

import (
	"errors"
	"regexp"
	"sort"
	"strings"
)

// 占位符名称允许带重音的字母，如 {descrição}
var placeholderRe = regexp.MustCompile(`\{([\p{L}\p{N}_]+)\}`)

// Priority 固定替换顺序，其余名称按字典序排在后面
var Priority = []string{"firmware", "slot", "porta", "pon", "id", "sn", "mac", "index"}

// CompositeField slot/porta/pon 合并输入框的字段名
const CompositeField = "pon_id"

// CompositeHint 合并字段格式错误时的提示
const CompositeHint = "PON ID deve estar no formato: slot/porta/pon (exemplo: 1/2/2)"

// ErrCompositeFormat 合并字段不是 slot/porta/pon 三段数字
var ErrCompositeFormat = errors.New(CompositeHint)

var compositeParts = []string{"slot", "porta", "pon"}

var segmentRe = regexp.MustCompile(`^\d{1,2}$`)

// ExtractPlaceholders 返回模板中不重复的占位符名称（按首次出现顺序）
func ExtractPlaceholders(tpl string) []string {
	matches := placeholderRe.FindAllStringSubmatch(tpl, -1)
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		out = append(out, m[1])
	}
	return out
}

// Resolve 用非空值替换占位符；缺失或为空的占位符保留 {name} 原文
func Resolve(tpl string, values map[string]string) string {
	out := tpl
	for _, name := range SubstitutionOrder(values) {
		v := values[name]
		if v == "" {
			continue
		}
		out = strings.ReplaceAll(out, "{"+name+"}", v)
	}
	return out
}

// SubstitutionOrder 返回 values 中名称的确定性替换顺序
func SubstitutionOrder(values map[string]string) []string {
	out := make([]string, 0, len(values))
	used := make(map[string]struct{}, len(Priority))
	for _, name := range Priority {
		if _, ok := values[name]; ok {
			out = append(out, name)
			used[name] = struct{}{}
		}
	}
	rest := make([]string, 0, len(values))
	for name := range values {
		if _, ok := used[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// Unresolved 解析后仍残留的占位符
func Unresolved(resolved string) []string {
	return ExtractPlaceholders(resolved)
}

// HasComposite 占位符集合同时包含 slot、porta、pon
func HasComposite(names []string) bool {
	found := 0
	for _, want := range compositeParts {
		for _, n := range names {
			if n == want {
				found++
				break
			}
		}
	}
	return found == len(compositeParts)
}

// ParseComposite 解析 "slot/porta/pon"；必须恰好三段且每段为 1-2 位数字
func ParseComposite(s string) (map[string]string, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != len(compositeParts) {
		return nil, ErrCompositeFormat
	}
	out := make(map[string]string, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if !segmentRe.MatchString(p) {
			return nil, ErrCompositeFormat
		}
		out[compositeParts[i]] = p
	}
	return out, nil
}
