// Package validator 参数格式校验（仅提示，不阻止复制）
package validator

import (
	"regexp"
	"sort"
	"strings"
)

var rules = map[string]*regexp.Regexp{
	"slot":  regexp.MustCompile(`^\d{1,2}$`),
	"porta": regexp.MustCompile(`^\d{1,2}$`),
	"pon":   regexp.MustCompile(`^\d{1,2}$`),
	"id":    regexp.MustCompile(`^\d{1,3}$`),
	"sn":    regexp.MustCompile(`^[A-Za-z0-9]{8,16}$`),
	"mac":   regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}([0-9A-Fa-f]{2})$`),
}

var order = []string{"firmware", "slot", "porta", "pon", "id", "sn", "mac", "index"}

// FieldError 单个字段的格式错误
type FieldError struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

func (e FieldError) Error() string { return e.Message }

// Message 字段格式错误提示
func Message(field string) string {
	return "Formato inválido para " + field
}

// HasRule 字段是否有校验规则
func HasRule(field string) bool {
	_, ok := rules[strings.ToLower(field)]
	return ok
}

// Check 校验全部字段；空值与未知字段不报错
func Check(values map[string]string) []FieldError {
	var errs []FieldError
	for _, field := range sortedKeys(values) {
		v := values[field]
		if v == "" {
			continue
		}
		re, ok := rules[strings.ToLower(field)]
		if !ok || re.MatchString(v) {
			continue
		}
		errs = append(errs, FieldError{Field: field, Value: v, Message: Message(field)})
	}
	return errs
}

// Validate 返回错误提示列表，空列表即校验通过
func Validate(values map[string]string) []string {
	errs := Check(values)
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Message)
	}
	return out
}

func sortedKeys(values map[string]string) []string {
	rank := func(k string) int {
		lk := strings.ToLower(k)
		for i, o := range order {
			if o == lk {
				return i
			}
		}
		return len(order)
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := rank(keys[i]), rank(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})
	return keys
}
