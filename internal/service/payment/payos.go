package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const (
	// DefaultEndpoint — базовый адрес API провайдера.
	DefaultEndpoint = "https://api-merchant.payos.vn"

	createOrderPath = "/v2/payment-requests"
	requestTimeout  = 10 * time.Second
)

// Config — учётные данные провайдера. Пустые значения означают, что провайдер
// не сконфигурирован и приложение работает в demo-режиме.
type Config struct {
	ClientID    string
	APIKey      string
	ChecksumKey string
	Endpoint    string
}

// Configured сообщает, достаточно ли учётных данных для боевого режима.
func (c Config) Configured() bool {
	return c.ClientID != "" && c.APIKey != "" && c.ChecksumKey != ""
}

// Client — боевая реализация domain.OrderCreator поверх HTTP API провайдера.
// Запрос выполняется один раз; таймаут транспорта — единственное ограничение.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *log.Entry
}

// NewClient создаёт клиента провайдера.
func NewClient(cfg Config, logger *log.Entry) *Client {
	if logger == nil {
		logger = log.New().WithField("component", "payos-client")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// providerResponse покрывает обе формы успешного ответа провайдера:
// плоскую `{checkoutUrl, qrCode}` и конверт `{code, desc, data:{...}}`.
type providerResponse struct {
	Code        string `json:"code"`
	Desc        string `json:"desc"`
	CheckoutURL string `json:"checkoutUrl"`
	QRCode      string `json:"qrCode"`
	Data        struct {
		CheckoutURL string `json:"checkoutUrl"`
		QRCode      string `json:"qrCode"`
	} `json:"data"`
}

// checkoutURL возвращает checkout URL из любой формы ответа; плоская форма
// имеет приоритет.
func (r providerResponse) checkoutURL() (url, qr string) {
	if r.CheckoutURL != "" {
		return r.CheckoutURL, r.QRCode
	}
	return r.Data.CheckoutURL, r.Data.QRCode
}

// CreateOrder отправляет платёжное поручение провайдеру и возвращает checkout URL.
func (c *Client) CreateOrder(ctx context.Context, req domain.OrderRequest) (domain.CheckoutResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return domain.CheckoutResult{}, fmt.Errorf("marshal order request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+createOrderPath, bytes.NewReader(body))
	if err != nil {
		return domain.CheckoutResult{}, fmt.Errorf("build provider request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-client-id", c.cfg.ClientID)
	httpReq.Header.Set("x-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.WithError(err).WithField("order_code", req.OrderCode).Warn("provider request failed")
		return domain.CheckoutResult{}, fmt.Errorf("call payment provider: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.CheckoutResult{}, fmt.Errorf("read provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.WithFields(log.Fields{
			"order_code": req.OrderCode,
			"status":     resp.StatusCode,
		}).Warn("provider rejected order")
		return domain.CheckoutResult{}, fmt.Errorf("provider returned status %d: %s", resp.StatusCode, payload)
	}

	var parsed providerResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return domain.CheckoutResult{}, fmt.Errorf("decode provider response: %w", err)
	}
	checkoutURL, qrCode := parsed.checkoutURL()
	if checkoutURL == "" {
		return domain.CheckoutResult{}, fmt.Errorf("provider response has no checkout url (code=%s desc=%s)", parsed.Code, parsed.Desc)
	}

	c.logger.WithFields(log.Fields{
		"order_code": req.OrderCode,
		"amount":     req.Amount,
	}).Info("provider order created")

	return domain.CheckoutResult{
		OrderCode:  req.OrderCode,
		PaymentURL: checkoutURL,
		QRCode:     qrCode,
		Mode:       domain.CheckoutModeLive,
	}, nil
}

var _ domain.OrderCreator = (*Client)(nil)
