package filter

import (
	"time"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/pkg/utils"
)

// Chaves usadas pelos dashboards do portal
const (
	KeyYear      = "year"
	KeyMonth     = "month"
	KeyStartDate = "start_date"
	KeyEndDate   = "end_date"
	KeyEmpresa   = "empresa"
	KeyCliente   = "cliente"
	KeyPage      = "page"
	KeyPerPage   = "per_page"
)

// CurrentYear filtra pelo ano corrente
func CurrentYear(now time.Time) Values {
	return Values{KeyYear: now.Year()}
}

// CurrentMonth filtra pelo mês corrente
func CurrentMonth(now time.Time) Values {
	return Values{
		KeyYear:  now.Year(),
		KeyMonth: int(now.Month()),
	}
}

// TrailingDays vai de now-days até now. Com as duas pontas inclusivas a
// janela tem days+1 datas, como o filtro "últimos 30 dias" do portal.
func TrailingDays(now time.Time, days int) Values {
	return Values{
		KeyStartDate: utils.DaysBefore(now, days),
		KeyEndDate:   utils.FormatDate(now),
	}
}

// Paginate acrescenta a primeira página aos padrões de uma tabela paginada
func Paginate(values Values, perPage int) Values {
	out := values.clone()
	out[KeyPage] = 1
	out[KeyPerPage] = perPage
	return out
}

// Merge sobrepõe overrides aos valores base, sem alterar nenhum dos dois
func Merge(base, overrides Values) Values {
	out := base.clone()
	for key, value := range overrides {
		out[key] = value
	}
	return out
}
