package service

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/oltcmd/oltcmd/internal/model"
)

// otherVendorLabel 目录外厂商的统一标签
const otherVendorLabel = "other"

// Metrics 工作台指标
type Metrics struct {
	copies           *prometheus.CounterVec
	previews         prometheus.Counter
	validationErrors *prometheus.CounterVec
	catalogSaves     *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer, w *Workbench) *Metrics {
	m := &Metrics{
		copies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oltcmd_commands_copied_total",
			Help: "Commands copied to the clipboard.",
		}, []string{"vendor"}),
		previews: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "oltcmd_previews_total",
			Help: "Template previews resolved.",
		}),
		validationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oltcmd_validation_errors_total",
			Help: "Field format warnings reported.",
		}, []string{"field"}),
		catalogSaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oltcmd_catalog_saves_total",
			Help: "Catalog editor saves.",
		}, []string{"result"}),
	}
	if reg != nil {
		reg.MustRegister(m.copies, m.previews, m.validationErrors, m.catalogSaves, newStateCollector(w))
	}
	return m
}

// stateCollector 在每次抓取时读取目录与收藏状态
type stateCollector struct {
	w         *Workbench
	vendors   *prometheus.Desc
	commands  *prometheus.Desc
	favorites *prometheus.Desc
	history   *prometheus.Desc
}

func newStateCollector(w *Workbench) *stateCollector {
	return &stateCollector{
		w:         w,
		vendors:   prometheus.NewDesc("oltcmd_catalog_vendors", "Vendors in the catalog.", nil, nil),
		commands:  prometheus.NewDesc("oltcmd_catalog_commands", "Command templates per vendor.", []string{"vendor"}, nil),
		favorites: prometheus.NewDesc("oltcmd_favorites", "Saved favorites.", nil, nil),
		history:   prometheus.NewDesc("oltcmd_history_entries", "Entries in the copy history.", nil, nil),
	}
}

func (c *stateCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.vendors
	ch <- c.commands
	ch <- c.favorites
	ch <- c.history
}

func (c *stateCollector) Collect(ch chan<- prometheus.Metric) {
	cat := c.w.catalog.Catalog()
	ch <- prometheus.MustNewConstMetric(c.vendors, prometheus.GaugeValue, float64(len(cat.Vendors)))
	for _, v := range cat.Vendors {
		n := 0
		v.Categories.Walk(func(_ []string, _ *model.Node) bool { n++; return true })
		ch <- prometheus.MustNewConstMetric(c.commands, prometheus.GaugeValue, float64(n), v.Name)
	}
	ch <- prometheus.MustNewConstMetric(c.favorites, prometheus.GaugeValue, float64(len(c.w.favorites.List())))
	ch <- prometheus.MustNewConstMetric(c.history, prometheus.GaugeValue, float64(len(c.w.history.Recent(0))))
}
