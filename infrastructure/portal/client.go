package portal

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/config"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Limite de leitura do corpo de respostas de erro
const maxErrorBody = 4 << 10

// CorrelationHeader propaga o ID de correlação da requisição que originou a busca
const CorrelationHeader = "X-Correlation-ID"

// Envelope é o formato de resposta comum a todos os endpoints do portal
type Envelope struct {
	Success bool                `json:"success"`
	Data    jsoniter.RawMessage `json:"data,omitempty"`
	Message string              `json:"message,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// Client busca os dados JSON dos dashboards no portal
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	userAgent   string
	group       singleflight.Group
}

// NewClient cria o cliente HTTP a partir da configuração do portal
func NewClient(cfg config.Portal) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		accessToken: cfg.AccessToken,
		userAgent:   cfg.UserAgent,
	}
}

// Fetch executa um GET no endpoint com a query já serializada e devolve o campo data.
// Buscas idênticas em andamento são compartilhadas. A busca compartilhada não
// herda o cancelamento de quem a iniciou, só o timeout do cliente HTTP; cada
// chamador desiste pelo próprio contexto sem derrubar os demais.
func (c *Client) Fetch(ctx context.Context, endpoint string, query string) (jsoniter.RawMessage, error) {
	key := endpoint + "?" + query
	shared := context.WithoutCancel(ctx)

	resultChan := c.group.DoChan(key, func() (interface{}, error) {
		return c.fetch(shared, endpoint, query)
	})

	select {
	case <-ctx.Done():
		return nil, &NetworkError{Endpoint: endpoint, Err: ctx.Err()}
	case res := <-resultChan:
		if res.Err != nil {
			return nil, res.Err
		}
		data, _ := res.Val.(jsoniter.RawMessage)
		// cópia para que chamadores compartilhados não dividam o mesmo slice
		return append(jsoniter.RawMessage(nil), data...), nil
	}
}

func (c *Client) fetch(ctx context.Context, endpoint string, query string) (jsoniter.RawMessage, error) {
	logger := log.ForContext(ctx)

	target, err := c.buildURL(endpoint, query)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrap(err, "portal: erro ao criar a requisição")
	}

	req.Header.Set("Accept", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if correlationID := log.GetCorrelationID(ctx); correlationID != "" {
		req.Header.Set(CorrelationHeader, correlationID)
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	logger.WithFields(log.Fields{
		"path":        endpoint,
		"query":       query,
		"status_code": resp.StatusCode,
		"duration_ms": time.Since(startTime).Milliseconds(),
	}).Debug("portal: resposta recebida")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &NetworkError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Err:        errors.New(errorMessage(body, resp.Status)),
		}
	}

	var envelope Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, &NetworkError{Endpoint: endpoint, Err: errors.Wrap(err, "erro ao decodificar a resposta")}
	}

	if !envelope.Success {
		message := envelope.Message
		if message == "" {
			message = envelope.Error
		}
		return nil, &APIError{Endpoint: endpoint, Message: message}
	}

	return envelope.Data, nil
}

func (c *Client) buildURL(endpoint string, query string) (string, error) {
	target, err := url.Parse(c.baseURL + "/" + strings.TrimLeft(endpoint, "/"))
	if err != nil {
		return "", errors.Wrap(err, "portal: erro ao analisar a URL")
	}
	target.RawQuery = query
	return target.String(), nil
}

// errorMessage tenta extrair a mensagem do envelope em respostas de erro
func errorMessage(body []byte, status string) string {
	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return status
}
