package zte_c300

import (
	"github.com/oltcmd/oltcmd/addone/olt"
	"github.com/oltcmd/oltcmd/internal/model"
)

// Plugin ZTE C300（Ullyses 局点）内置命令
type Plugin struct{}

func (p *Plugin) Name() string        { return "zte_c300" }
func (p *Plugin) Vendor() string      { return "ZTE C300 Ullyses" }
func (p *Plugin) Description() string { return "OLT ZTE ULLYSES" }
func (p *Plugin) Rank() int           { return 20 }

// Categories 配置类命令以多行序列保存：进入接口 → 执行 → 逐级退出
func (p *Plugin) Categories() *model.Node {
	pon := "gpon-olt_{slot}/{porta}/{pon}"
	return model.Group(
		model.Item("Gerenciamento de ONU", model.Group(
			model.Item("Consultar ONU", model.Group(
				model.Item("Por Serial Number", model.Leaf("show gpon onu by sn {sn}")),
				model.Item("Detalhes da ONU", model.Leaf("show gpon onu detail-info "+pon)),
				model.Item("MAC da ONU", model.Leaf("show gpon onu mac "+pon+" {id}")),
				model.Item("Status PON", model.Leaf("show interface "+pon)),
				model.Item("Config da PON", model.Leaf("show running-config interface "+pon)),
			)),
			model.Item("Remover ONU", model.Group(
				model.Item("Por ID", model.Sequence("configure terminal", "interface "+pon, "no onu {id}", "exit", "exit")),
				model.Item("Por Serial", model.Sequence("configure terminal", "interface "+pon, "no onu sn {sn}", "exit", "exit")),
			)),
			model.Item("Reiniciar ONU", model.Sequence("configure terminal", "interface "+pon, "onu {id} reboot", "exit", "exit")),
			model.Item("Atualizar ONU", model.Group(
				model.Item("Verificar versão", model.Leaf("show cpe information "+pon+" {id}")),
				model.Item("Atualizar firmware", model.Leaf("cpe update-and-reboot {firmware} "+pon+" {id}")),
				model.Item("Status atualização", model.Leaf("show cpe update-status "+pon+" {id}")),
			)),
		)),
		model.Item("Diagnóstico", model.Group(
			model.Item("Informações Ópticas", model.Group(
				model.Item("Níveis ópticos", model.Leaf("show gpon onu optical-info "+pon+" {id}")),
				model.Item("Distância ONU", model.Leaf("show gpon onu distance "+pon+" {id}")),
				model.Item("MACs aprendidos", model.Leaf("show gpon onu mac-learning "+pon+" {id}")),
			)),
			model.Item("Alarmes", model.Leaf("show alarm active")),
		)),
	)
}

func init() { olt.Register("zte_c300", &Plugin{}) }
