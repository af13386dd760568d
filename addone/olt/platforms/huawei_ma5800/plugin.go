package huawei_ma5800

import (
	"github.com/oltcmd/oltcmd/addone/olt"
	"github.com/oltcmd/oltcmd/internal/model"
)

// Plugin 华为 MA5800（Araquari 局点）内置命令
type Plugin struct{}

func (p *Plugin) Name() string        { return "huawei_ma5800" }
func (p *Plugin) Vendor() string      { return "Huawei MA5800 Araquari" }
func (p *Plugin) Description() string { return "OLT HUAWEI ARAQUARI" }
func (p *Plugin) Rank() int           { return 30 }

// Categories 华为使用 display/undo 语法，端口写作 slot/porta/pon
func (p *Plugin) Categories() *model.Node {
	fsp := "{slot}/{porta}/{pon}"
	return model.Group(
		model.Item("Gerenciamento de ONU", model.Group(
			model.Item("Consultar ONU", model.Group(
				model.Item("Resumo PON", model.Leaf("display ont info summary "+fsp)),
				model.Item("Por Serial Number", model.Leaf("display ont info by-sn {sn}")),
				model.Item("Por MAC", model.Leaf("display ont info by-mac {mac}")),
				model.Item("Informações detalhadas", model.Leaf("display ont info "+fsp+" {id}")),
				model.Item("Versão firmware", model.Leaf("display ont version "+fsp+" {id}")),
			)),
			model.Item("Remover ONU", model.Group(
				model.Item("Verificar service-ports", model.Leaf("display service-port port "+fsp+" ont {id}")),
				model.Item("Remover service-port", model.Sequence("config", "undo service-port {index}")),
				model.Item("Excluir ONU", model.Sequence("config", "interface gpon {slot}/{porta}", "ont delete {pon} {id}", "quit", "quit", "save")),
			)),
			model.Item("Reiniciar ONU", model.Leaf("ont reset {slot} {porta} {pon} {id}")),
		)),
		model.Item("Diagnóstico", model.Group(
			model.Item("Informações Ópticas", model.Leaf("display ont optical-info "+fsp+" {id}")),
			model.Item("Estado portas", model.Leaf("display ont port state "+fsp+" {id}")),
			model.Item("Alarmes ONU", model.Leaf("display ont alarm "+fsp+" {id}")),
		)),
		model.Item("Sistema", model.Group(
			model.Item("Informações Gerais", model.Group(
				model.Item("Versão sistema", model.Leaf("display version")),
				model.Item("Info placas", model.Leaf("display board 0")),
				model.Item("Status PON", model.Leaf("display interface gpon "+fsp)),
				model.Item("Alarmes ativos", model.Leaf("display alarm active all")),
			)),
			model.Item("Navegação", model.Group(
				model.Item("Modo privilegiado", model.Leaf("enable")),
				model.Item("Modo configuração", model.Leaf("configure terminal")),
				model.Item("Interface GPON", model.Leaf("interface gpon {slot}/{porta}")),
				model.Item("Sair", model.Leaf("quit")),
			)),
		)),
	)
}

func init() { olt.Register("huawei_ma5800", &Plugin{}) }
