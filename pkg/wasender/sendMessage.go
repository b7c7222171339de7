package wasender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://www.wasenderapi.com/api"

// Client envia mensagens pela WaSenderAPI.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// WithBaseURL troca o endereco da API, usado em testes.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// SendMessage envia um texto para o numero informado.
func (c *Client) SendMessage(ctx context.Context, number string, message string) error {
	payloadMap := map[string]any{
		"to":   number,
		"text": message,
	}
	return c.post(ctx, "/send-message", payloadMap)
}

// SetWebhook registra a URL que vai receber os eventos de mensagem.
func (c *Client) SetWebhook(ctx context.Context, url string) error {
	return c.post(ctx, "/set-webhook", map[string]any{"url": url})
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("erro ao fazer marshal do payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("erro ao criar requisicao para WaSender: %w", err)
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao enviar requisicao para WaSender: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("WaSender retornou status nao OK: %s. Detalhes: %s", resp.Status, string(bodyBytes))
	}
	return nil
}
