// Package preferences persiste o estado de cada dashboard entre reinícios:
// filtros, empresas selecionadas e configuração do auto-refresh.
package preferences

import (
	"context"

	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/filter"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrNotFound indica que o dashboard ainda não tem preferências salvas
var ErrNotFound = errors.New("preferences: preferências não encontradas")

//go:generate mockgen -source=preferences.go -destination=mocks/mock_preferences.go -package=mocks

// Store é implementado pelos backends file, postgres e redis
type Store interface {
	Load(ctx context.Context, dashboard string) (*Preferences, error)
	Save(ctx context.Context, dashboard string, prefs *Preferences) error
}

// Preferences é o objeto plano salvo por dashboard
type Preferences struct {
	AutoRefreshEnabled  bool          `json:"auto_refresh_enabled" mapstructure:"auto_refresh_enabled"`
	LoopIntervalSeconds int           `json:"loop_interval_seconds,omitempty" mapstructure:"loop_interval_seconds"`
	SelectedCompanies   []string      `json:"selected_companies,omitempty" mapstructure:"selected_companies"`
	Filters             filter.Values `json:"filters,omitempty" mapstructure:"filters"`
}

// FilterValues junta os filtros salvos às empresas selecionadas
func (p *Preferences) FilterValues() filter.Values {
	values := make(filter.Values, len(p.Filters)+1)
	for key, value := range p.Filters {
		values[key] = value
	}
	if len(p.SelectedCompanies) > 0 {
		values[filter.KeyEmpresa] = append([]string(nil), p.SelectedCompanies...)
	}
	return values
}

// Decode converte o JSON salvo em Preferences. A decodificação é tolerante
// a tipos: números chegam como float64 e booleanos podem vir como string.
func Decode(payload []byte) (*Preferences, error) {
	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, errors.Wrap(err, "preferences: JSON inválido")
	}

	prefs := &Preferences{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           prefs,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, errors.Wrap(err, "preferences: erro ao criar decoder")
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Wrap(err, "preferences: erro ao decodificar")
	}

	return prefs, nil
}

// Encode serializa as preferências no formato salvo pelos backends
func Encode(prefs *Preferences) ([]byte, error) {
	payload, err := json.Marshal(prefs)
	if err != nil {
		return nil, errors.Wrap(err, "preferences: erro ao serializar")
	}
	return payload, nil
}
