package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrSearchUnavailable indica falha de transporte/servidor falando com o
// índice hospedado. Não é a mesma coisa que "nenhum resultado": quem chama
// decide o fallback (filtro local, listagem completa etc).
var ErrSearchUnavailable = errors.New("search index unavailable")

// SearchIndexClient fala com o índice de busca hospedado (API REST estilo
// Algolia). Mesmo padrão dos outros clientes de API hospedada do projeto:
// net/http puro com timeout explícito.
type SearchIndexClient struct {
	AppID   string
	ApiKey  string
	Index   string
	BaseURL string

	client *http.Client
}

func NewSearchIndexClient(appID, apiKey, index, baseURL string, timeout time.Duration) *SearchIndexClient {
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.algolia.net", appID)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SearchIndexClient{
		AppID:   appID,
		ApiKey:  apiKey,
		Index:   index,
		BaseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// SaveObjects faz upsert em lote (updateObject chaveado por objectID).
// É idempotente: repetir o mesmo lote deixa o índice no mesmo estado.
func (s *SearchIndexClient) SaveObjects(ctx context.Context, objects []map[string]any) error {
	if len(objects) == 0 {
		return nil
	}

	type batchRequest struct {
		Action string         `json:"action"`
		Body   map[string]any `json:"body"`
	}
	requests := make([]batchRequest, 0, len(objects))
	for _, obj := range objects {
		requests = append(requests, batchRequest{Action: "updateObject", Body: obj})
	}

	endpoint := fmt.Sprintf("%s/1/indexes/%s/batch", s.BaseURL, url.PathEscape(s.Index))
	var out struct {
		TaskID  int64 `json:"taskID"`
		Objects []any `json:"objectIDs"`
	}
	if err := s.post(ctx, endpoint, map[string]any{"requests": requests}, &out); err != nil {
		return err
	}
	return nil
}

// Search envia a consulta e devolve os objectIDs na ordem de relevância
// retornada pelo índice.
func (s *SearchIndexClient) Search(ctx context.Context, query string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/1/indexes/%s/query", s.BaseURL, url.PathEscape(s.Index))

	params := url.Values{}
	params.Set("query", query)

	var out struct {
		Hits []struct {
			ObjectID string `json:"objectID"`
		} `json:"hits"`
	}
	if err := s.post(ctx, endpoint, map[string]any{"params": params.Encode()}, &out); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(out.Hits))
	for _, h := range out.Hits {
		ids = append(ids, h.ObjectID)
	}
	return ids, nil
}

func (s *SearchIndexClient) post(ctx context.Context, endpoint string, payload any, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Algolia-Application-Id", s.AppID)
	req.Header.Set("X-Algolia-API-Key", s.ApiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status=%d body=%s", ErrSearchUnavailable, resp.StatusCode, string(body))
	}
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("search index error: status=%d body=%s", resp.StatusCode, string(body))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrSearchUnavailable, err)
		}
	}
	return nil
}
