package erp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/usecase"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/pkg/config"
)

var _ usecase.ERPClient = (*Client)(nil)

// máximo de bytes leídos de un cuerpo de error
const maxErrorBody = 512

// Client cliente HTTP del catálogo del ERP externo.
// Todas las peticiones pasan por un rate limiter compartido.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient construye el cliente desde la configuración ERP.
func NewClient(cfg config.ERPConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	perS := cfg.RatePerS
	if perS <= 0 {
		perS = 5
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(perS), burst),
	}
}

// ListProducts GET {base}/products?page=&limit=.
func (c *Client) ListProducts(ctx context.Context, page, limit int) (*dto.ERPProductListResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("erp: rate limit: %w", err)
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("erp: construir petición: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erp: %w: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("erp: %w: status %d: %s", domain.ErrRemoteUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out dto.ERPProductListResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("erp: decodificar respuesta: %w", err)
	}
	if out.Page == 0 {
		out.Page = page
	}
	if out.Limit == 0 {
		out.Limit = limit
	}
	return &out, nil
}
