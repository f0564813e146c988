package refresh

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrCycleInFlight indica que Load foi chamado com um ciclo em andamento
	ErrCycleInFlight = errors.New("refresh: ciclo de carga em andamento")
	// ErrReloadQueued indica que a recarga ficou pendente para depois do ciclo atual
	ErrReloadQueued = errors.New("refresh: recarga enfileirada")
)

const (
	KindUnknown = "unknown"
	KindPanic   = "panic"
)

// FetchError é o indicador de falha de uma sub-busca no resultado agregado
type FetchError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

type kinded interface {
	Kind() string
}

func newFetchError(err error) *FetchError {
	kind := KindUnknown

	var k kinded
	if errors.As(err, &k) {
		kind = k.Kind()
	}

	return &FetchError{Kind: kind, Message: err.Error()}
}
