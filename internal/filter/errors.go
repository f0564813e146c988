package filter

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidFilterValue identifica qualquer falha de validação de filtro.
var ErrInvalidFilterValue = errors.New("invalid filter value")

// InvalidFilterValueError descreve a chave e o valor rejeitados
type InvalidFilterValueError struct {
	Key    string
	Value  any
	Reason string
}

func (e *InvalidFilterValueError) Error() string {
	return fmt.Sprintf("filter: %s: chave %q valor %v (%T): %s", ErrInvalidFilterValue, e.Key, e.Value, e.Value, e.Reason)
}

// Is permite errors.Is(err, ErrInvalidFilterValue)
func (e *InvalidFilterValueError) Is(target error) bool {
	return target == ErrInvalidFilterValue
}

func invalid(key string, value any, reason string) error {
	return &InvalidFilterValueError{Key: key, Value: value, Reason: reason}
}
