// Package docs 参数说明、命令示例、常见问题与各 OLT 操作提示
package docs

import "strings"

// NoDocumentation 参数无说明时的提示
const NoDocumentation = "Sem documentação disponível"

var paramHelp = map[string]string{
	"slot":     "Número do slot da OLT (1-16)",
	"porta":    "Número da porta GPON (1-16)",
	"pon":      "Número da PON (1-8)",
	"id":       "ID da ONU (1-128)",
	"sn":       "Número de série da ONU (8-16 caracteres)",
	"mac":      "Endereço MAC da ONU (formato: XX:XX:XX:XX:XX:XX)",
	"firmware": "Nome do arquivo de firmware",
}

// Example 命令示例
type Example struct {
	Key         string `json:"key"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

// 按顺序匹配，先命中者优先
var examples = []Example{
	{Key: "show gpon onu by sn", Description: "Consultar ONU pelo número de série", Example: "show gpon onu by sn ZTEGC1234567"},
	{Key: "show gpon onu detail-info", Description: "Mostrar detalhes da ONU", Example: "show gpon onu detail-info gpon-olt_1/1/1 1"},
}

// 常见问题
const (
	IssueSNNotFound = "ONU não encontrada - Verifique se o número de série está correto"
	IssueONUOffline = "ONU offline - Verifique a conexão física"
	IssueAuthFailed = "Falha na autenticação - Verifique se a ONU está autorizada"
)

var oltTips = map[string][]string{
	"Huawei MA5800 Araquari": {
		"🔑 Importante: Execute 'enable' primeiro para entrar no modo privilegiado",
		"📝 Após 'enable', você pode executar comandos de configuração",
		"💡 Use 'save' para salvar alterações de configuração",
	},
	"ZTE Z600 Itaum": {
		"🔑 Execute 'enable' para modo privilegiado antes de configurações",
		"📝 Use 'configure terminal' para entrar no modo de configuração",
		"⚠️ Verifique sempre os comandos disponíveis antes de alterar configurações",
	},
	"ZTE C300 Ullyses": {
		"🔑 Execute 'enable' para modo privilegiado",
		"📝 Use 'config' para configurações",
		"💡 Use 'save' para salvar alterações de configuração",
	},
	"Fiberhome AN5516": {
		"🔑 Execute 'enable' para modo admin",
		"📝 Use 'cd' para navegar entre módulos",
		"💡 Execute 'save' para salvar configurações",
	},
}

// ParamHelp 参数说明（名称不区分大小写）
func ParamHelp(param string) string {
	if h, ok := paramHelp[strings.ToLower(param)]; ok {
		return h
	}
	return NoDocumentation
}

// CommandExample 命令包含示例关键字时返回示例
func CommandExample(command string) (Example, bool) {
	lower := strings.ToLower(command)
	for _, e := range examples {
		if strings.Contains(lower, e.Key) {
			return e, true
		}
	}
	return Example{}, false
}

// CommonIssues 与命令相关的常见问题
func CommonIssues(command string) []string {
	lower := strings.ToLower(command)
	var issues []string
	if strings.Contains(lower, "show") && strings.Contains(lower, "onu") {
		issues = append(issues, IssueSNNotFound, IssueONUOffline)
	}
	if strings.Contains(lower, "auth") {
		issues = append(issues, IssueAuthFailed)
	}
	return issues
}

// OLTTips 厂商操作提示；未知厂商返回空
func OLTTips(vendor string) []string {
	return append([]string(nil), oltTips[vendor]...)
}
