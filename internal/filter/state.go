// Package filter mantém o conjunto de filtros ativos de um dashboard e a sua
// forma canônica de query string.
package filter

import (
	"math"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/pkg/utils"
)

// chaves terminadas em _date só aceitam datas AAAA-MM-DD
const dateSuffix = "_date"

// Values é a representação plana de um conjunto de filtros: chave -> string,
// número, lista de strings ou nil.
type Values map[string]any

// State guarda os filtros correntes e o snapshot de padrões usado pelo Reset.
// Não é seguro para uso concorrente; quem o possui serializa o acesso.
type State struct {
	values   Values
	defaults Values
}

// New cria um State já inicializado com os padrões informados
func New(defaults Values) (*State, error) {
	normalized, err := normalizeAll(defaults)
	if err != nil {
		return nil, err
	}

	return &State{
		values:   normalized.clone(),
		defaults: normalized,
	}, nil
}

// Set grava ou remove um filtro. nil, string vazia e lista vazia removem a chave.
func (s *State) Set(key string, value any) error {
	normalized, keep, err := normalize(key, value)
	if err != nil {
		return err
	}

	if !keep {
		delete(s.values, key)
		return nil
	}

	s.values[key] = normalized
	return nil
}

// Apply valida todas as alterações antes de aplicar qualquer uma delas.
func (s *State) Apply(changes Values) error {
	next := s.values.clone()
	for key, value := range changes {
		normalized, keep, err := normalize(key, value)
		if err != nil {
			return err
		}
		if !keep {
			delete(next, key)
			continue
		}
		next[key] = normalized
	}

	s.values = next
	return nil
}

// Get retorna o valor normalizado de uma chave
func (s *State) Get(key string) (any, bool) {
	value, ok := s.values[key]
	if !ok {
		return nil, false
	}
	if multi, isMulti := value.([]string); isMulti {
		return append([]string(nil), multi...), true
	}
	return value, true
}

// Values retorna uma cópia dos filtros correntes
func (s *State) Values() Values {
	return s.values.clone()
}

// Defaults retorna uma cópia do snapshot de padrões
func (s *State) Defaults() Values {
	return s.defaults.clone()
}

// Query monta os pares chave/valor, omitindo valores vazios.
func (s *State) Query() url.Values {
	query := make(url.Values, len(s.values))
	for key, value := range s.values {
		switch v := value.(type) {
		case []string:
			query[key] = append([]string(nil), v...)
		default:
			query.Set(key, format(v))
		}
	}
	return query
}

// Serialize gera a query string canônica, ordenada por chave e URL-encoded.
func (s *State) Serialize() string {
	return s.Query().Encode()
}

// Reset restaura exatamente os padrões configurados
func (s *State) Reset() string {
	s.values = s.defaults.clone()
	return s.Serialize()
}

// ResetTo substitui o snapshot de padrões e todos os filtros correntes
func (s *State) ResetTo(defaults Values) (string, error) {
	normalized, err := normalizeAll(defaults)
	if err != nil {
		return "", err
	}

	s.defaults = normalized
	s.values = normalized.clone()
	return s.Serialize(), nil
}

// Overrides descreve os filtros correntes em relação aos padrões: valores
// alterados ou ausentes dos padrões, e nil para padrões removidos.
// Reset seguido de Apply(Overrides()) reconstrói o estado corrente.
func (s *State) Overrides() Values {
	out := Values{}
	for key, value := range s.values {
		if def, ok := s.defaults[key]; ok && sameValue(def, value) {
			continue
		}
		out[key] = cloneValue(value)
	}
	for key := range s.defaults {
		if _, ok := s.values[key]; !ok {
			out[key] = nil
		}
	}
	return out
}

// Rebase troca o snapshot de padrões mantendo o que foi alterado: chaves
// ainda iguais ao padrão antigo passam ao novo padrão, chaves alteradas ou
// removidas ficam como estão. changed indica se a query mudou.
func (s *State) Rebase(defaults Values) (changed bool, err error) {
	normalized, err := normalizeAll(defaults)
	if err != nil {
		return false, err
	}

	before := s.Serialize()
	next := s.values.clone()

	for key, old := range s.defaults {
		current, ok := next[key]
		if !ok || !sameValue(current, old) {
			continue
		}
		if value, keep := normalized[key]; keep {
			next[key] = cloneValue(value)
		} else {
			delete(next, key)
		}
	}
	for key, value := range normalized {
		if _, known := s.defaults[key]; known {
			continue
		}
		if _, set := next[key]; !set {
			next[key] = cloneValue(value)
		}
	}

	s.defaults = normalized
	s.values = next
	return s.Serialize() != before, nil
}

// Clone cria um snapshot independente, usado para fixar os filtros de um ciclo.
func (s *State) Clone() *State {
	return &State{
		values:   s.values.clone(),
		defaults: s.defaults.clone(),
	}
}

// Equal compara dois estados pela forma serializada
func (s *State) Equal(other *State) bool {
	if other == nil {
		return false
	}
	return s.Serialize() == other.Serialize()
}

func (v Values) clone() Values {
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	if multi, ok := value.([]string); ok {
		return append([]string(nil), multi...)
	}
	return value
}

// sameValue compara valores já normalizados pela forma serializada:
// int64(2025) e float64(2025) são o mesmo filtro.
func sameValue(a, b any) bool {
	listA, okA := a.([]string)
	listB, okB := b.([]string)
	if okA || okB {
		return okA && okB && slices.Equal(listA, listB)
	}
	return format(a) == format(b)
}

func normalizeAll(values Values) (Values, error) {
	out := make(Values, len(values))
	for key, value := range values {
		normalized, keep, err := normalize(key, value)
		if err != nil {
			return nil, err
		}
		if keep {
			out[key] = normalized
		}
	}
	return out, nil
}

// normalize converte o valor para string, int64, float64 ou []string.
// keep=false indica que a chave deve ser removida.
func normalize(key string, value any) (normalized any, keep bool, err error) {
	if strings.TrimSpace(key) == "" {
		return nil, false, invalid(key, value, "chave vazia")
	}

	switch v := value.(type) {
	case nil:
		return nil, false, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed != "" && strings.HasSuffix(key, dateSuffix) {
			if _, err := utils.ParseDate(trimmed); err != nil {
				return nil, false, invalid(key, value, "data fora do formato AAAA-MM-DD")
			}
		}
		return trimmed, trimmed != "", nil
	case int, int8, int16, int32, int64:
		return reflect.ValueOf(v).Int(), true, nil
	case uint, uint8, uint16, uint32, uint64:
		u := reflect.ValueOf(v).Uint()
		if u > math.MaxInt64 {
			return nil, false, invalid(key, value, "inteiro fora do intervalo")
		}
		return int64(u), true, nil
	case float32:
		return normalizeFloat(key, float64(v))
	case float64:
		return normalizeFloat(key, v)
	case []string:
		return normalizeList(key, v)
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, false, invalid(key, value, "listas aceitam apenas strings")
			}
			items = append(items, str)
		}
		return normalizeList(key, items)
	default:
		return nil, false, invalid(key, value, "tipo não suportado")
	}
}

func normalizeFloat(key string, f float64) (any, bool, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false, invalid(key, f, "número não finito")
	}
	return f, true, nil
}

func normalizeList(key string, items []string) (any, bool, error) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil, false, nil
	}
	return out, true, nil
}

func format(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
