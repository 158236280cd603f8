// Package indicators реализует кеш экономических индикаторов: значения UF
// и доллара запрашиваются у внешнего источника не чаще одного раза за окно
// кеша и используются для пересчёта цен планов в чилийские песо.
package indicators

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// sourceResponse описывает форму ответа внешнего источника индикаторов.
// Отсутствующие поля декодируются в 0.
type sourceResponse struct {
	UF    sourceIndicator `json:"uf"`
	Dolar sourceIndicator `json:"dolar"`
}

type sourceIndicator struct {
	Valor float64 `json:"valor"`
	Fecha string  `json:"fecha"`
}

// Client запрашивает индикаторы у внешнего HTTP-источника.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент источника индикаторов с явным таймаутом запроса.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch выполняет один GET к источнику и разбирает значения uf.valor
// и dolar.valor. Повторных попыток нет: политика отказа решается выше.
func (c *Client) Fetch(ctx context.Context) (float64, float64, error) {
	const op = "indicators.Fetch"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("%s: %w", op, errors.New("unexpected status: "+resp.Status))
	}

	var body sourceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	return body.UF.Valor, body.Dolar.Valor, nil
}
