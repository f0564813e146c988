// Package dashboards descreve os dashboards do portal e monta um controlador
// de carga para cada um.
package dashboards

import (
	"time"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/filter"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/refresh"
)

const (
	Operacional  = "operacional"
	Faturamento  = "faturamento"
	FluxoDeCaixa = "fluxo-de-caixa"
	Materiais    = "materiais"
	RH           = "rh"
	Importacoes  = "importacoes"
)

// Itens por página da tabela do fluxo de caixa
const cashFlowPageSize = 50

// Definition é a descrição estática de um dashboard
type Definition struct {
	Name       string
	Title      string
	SubFetches []refresh.SubFetch
	// Defaults calcula os filtros padrão na data de referência
	Defaults func(now time.Time) filter.Values
	Interval time.Duration
}

// Catalog retorna todos os dashboards conhecidos, na ordem do menu
func Catalog() []Definition {
	return []Definition{
		{
			Name:  Operacional,
			Title: "Dashboard Operacional",
			SubFetches: []refresh.SubFetch{
				{Name: "data", Endpoint: "/dashboard-operacional/api/data", Primary: true},
				{Name: "kpis", Endpoint: "/dashboard-operacional/api/kpis"},
				{Name: "graficos", Endpoint: "/dashboard-operacional/api/graficos"},
			},
			Defaults: last30Days,
			Interval: 5 * time.Minute,
		},
		{
			Name:  Faturamento,
			Title: "Faturamento",
			SubFetches: []refresh.SubFetch{
				{Name: "kpis", Endpoint: "/financeiro/faturamento/api/kpis", Primary: true},
				{Name: "grafico_mensal", Endpoint: "/financeiro/faturamento/api/grafico-mensal"},
				{Name: "setores", Endpoint: "/financeiro/faturamento/api/setores"},
			},
			Defaults: filter.CurrentYear,
			Interval: 10 * time.Minute,
		},
		{
			Name:  FluxoDeCaixa,
			Title: "Fluxo de Caixa",
			SubFetches: []refresh.SubFetch{
				{Name: "kpis", Endpoint: "/financeiro/fluxo-de-caixa/api/kpis", Primary: true},
				{Name: "graficos", Endpoint: "/financeiro/fluxo-de-caixa/api/graficos"},
				{Name: "tabela", Endpoint: "/financeiro/fluxo-de-caixa/api/tabela"},
			},
			Defaults: func(now time.Time) filter.Values {
				return filter.Paginate(filter.CurrentYear(now), cashFlowPageSize)
			},
			Interval: 10 * time.Minute,
		},
		{
			Name:  Materiais,
			Title: "Materiais",
			SubFetches: []refresh.SubFetch{
				{Name: "data", Endpoint: "/dashboard-materiais/api/data", Primary: true},
				{Name: "kpis", Endpoint: "/dashboard-materiais/api/kpis"},
				{Name: "top_materiais", Endpoint: "/dashboard-materiais/api/top-materiais"},
			},
			Defaults: last30Days,
			Interval: 5 * time.Minute,
		},
		{
			Name:  RH,
			Title: "Recursos Humanos",
			SubFetches: []refresh.SubFetch{
				{Name: "kpis", Endpoint: "/rh/dashboard/api/kpis", Primary: true},
				{Name: "headcount", Endpoint: "/rh/dashboard/api/headcount"},
				{Name: "turnover", Endpoint: "/rh/dashboard/api/turnover"},
			},
			Defaults: filter.CurrentMonth,
			Interval: 10 * time.Minute,
		},
		{
			Name:  Importacoes,
			Title: "Importações",
			SubFetches: []refresh.SubFetch{
				{Name: "kpis", Endpoint: "/dashboard-importacoes/api/kpis", Primary: true},
				{Name: "processos", Endpoint: "/dashboard-importacoes/api/processos"},
				{Name: "modais", Endpoint: "/dashboard-importacoes/api/modais"},
			},
			Defaults: last30Days,
			Interval: 30 * time.Second,
		},
	}
}

func last30Days(now time.Time) filter.Values {
	return filter.TrailingDays(now, 30)
}
