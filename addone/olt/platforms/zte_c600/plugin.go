package zte_c600

import (
	"github.com/oltcmd/oltcmd/addone/olt"
	"github.com/oltcmd/oltcmd/internal/model"
)

// Plugin ZTE ZXA10 C600（Itaum 局点）内置命令
type Plugin struct{}

func (p *Plugin) Name() string        { return "zte_c600" }
func (p *Plugin) Vendor() string      { return "ZTE Z600 Itaum" }
func (p *Plugin) Description() string { return "OLT ZTE ITAUM ZXA10 C600" }
func (p *Plugin) Rank() int           { return 10 }

// Categories C600 使用 remote-unit 系列命令升级 ONU
func (p *Plugin) Categories() *model.Node {
	const update = "remote-unit update-and-reboot {firmware} gpon_olt-{slot}/{porta}/{pon} {id}"
	return model.Group(
		model.Item("Gerenciamento de ONU", model.Group(
			model.Item("Consultar ONU", model.Group(
				model.Item("Por Serial Number", model.Leaf("show gpon onu by sn {sn}")),
				model.Item("Detalhes da ONU", model.Leaf("show gpon onu detail-info gpon-olt_{slot}/{porta}/{pon} {id}")),
				model.Item("Estado das ONUs", model.Leaf("show gpon onu state gpon-olt_{slot}/{porta}/{pon}")),
			)),
			model.Item("Atualizar ONU", model.Group(
				model.Item("Verificar versão", model.Leaf("show remote-unit information gpon_olt-{slot}/{porta}/{pon} {id}")),
				model.Item("Atualizar ZTE", model.Leaf(update)),
				model.Item("Atualizar FAST", model.Leaf(update)),
				model.Item("Status atualização", model.Leaf("show remote-unit update-status gpon_olt-{slot}/{porta}/{pon} {id}")),
			)),
		)),
		model.Item("Diagnóstico", model.Group(
			model.Item("Informações Ópticas", model.Group(
				model.Item("Info óptica PON", model.Leaf("show gpon optical-info gpon-olt_{slot}/{porta}/{pon}")),
				model.Item("Níveis ópticos ONU", model.Leaf("show gpon onu optical-info gpon-olt_{slot}/{porta}/{pon} {id}")),
			)),
		)),
		model.Item("Sistema", model.Group(
			model.Item("Informações Gerais", model.Group(
				model.Item("Versão sistema", model.Leaf("show version")),
				model.Item("Lista interfaces", model.Leaf("show interface brief")),
				model.Item("Arquivos firmware", model.Leaf("dir /datadisk0/LR0/onuver/")),
			)),
		)),
	)
}

func init() { olt.Register("zte_c600", &Plugin{}) }
