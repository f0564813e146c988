package portal

import (
	"fmt"
)

const (
	KindNetwork = "network"
	KindAPI     = "api"
)

// NetworkError cobre falhas de transporte e respostas fora da faixa 2xx
type NetworkError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("portal: %s respondeu com status %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("portal: falha de rede em %s: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Kind identifica a categoria do erro para o resumo exibido ao usuário
func (e *NetworkError) Kind() string {
	return KindNetwork
}

// APIError é uma resposta decodificada com success=false
type APIError struct {
	Endpoint string
	Message  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("portal: %s retornou success=false", e.Endpoint)
	}
	return fmt.Sprintf("portal: %s: %s", e.Endpoint, e.Message)
}

func (e *APIError) Kind() string {
	return KindAPI
}
