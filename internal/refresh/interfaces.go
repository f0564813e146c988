package refresh

import (
	"context"

	jsoniter "github.com/json-iterator/go"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// Source executa uma sub-busca no backend com a query serializada do ciclo
type Source interface {
	Fetch(ctx context.Context, endpoint string, query string) (jsoniter.RawMessage, error)
}

// Renderer recebe o resultado agregado de cada ciclo concluído
type Renderer interface {
	Render(ctx context.Context, result *Result)
}
