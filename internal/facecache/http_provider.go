package facecache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/apperror"
)

const embedTimeout = 15 * time.Second

type httpProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProvider conversa com o serviço externo de embeddings faciais.
// Qualquer falha de rede ou resposta não-200 vira Dependency, o que faz o
// rebuild pular a imagem em vez de abortar.
func NewHTTPProvider(baseURL string) Provider {
	return &httpProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: embedTimeout},
	}
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

func (p *httpProvider) Embed(ctx context.Context, image []byte) ([]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/embed", bytes.NewReader(image))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, apperror.Dependency(err, "face_embedding")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperror.Dependency(fmt.Errorf("status %d", resp.StatusCode), "face_embedding")
	}

	var body embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperror.Dependency(err, "face_embedding")
	}
	return body.Embedding, nil
}
