package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/auth"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/checkout"
	"github.com/vladislavdragonenkov/storefront/internal/service/payment"
	"github.com/vladislavdragonenkov/storefront/internal/service/webhook"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

const testChecksumKey = "test-checksum-key"

type testEnv struct {
	server   *httptest.Server
	products domain.ProductRepository
	payments domain.PaymentRepository
	creator  *payment.MockCreator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := log.New().WithField("test", "http")
	products := memory.NewProductRepository()
	users := memory.NewUserRepository()
	payments := memory.NewPaymentRepository()
	tokens := auth.NewTokenManager("test-secret")
	creator := payment.NewMockCreator()

	orchestrator := checkout.NewOrchestrator(creator, "http://localhost:8080", logger)
	demo := checkout.NewOrchestrator(payment.NewDemoCreator(logger), "http://localhost:8080", logger)
	receiver := webhook.NewReceiver(payments, payment.NewSignatureVerifier(testChecksumKey), logger)

	router := NewRouter(RouterDeps{
		Tokens:   tokens,
		Auth:     NewAuthHandler(users, tokens, logger),
		Products: NewProductHandler(products, logger),
		Cart:     NewCartHandler(products, logger),
		Checkout: NewCheckoutHandler(orchestrator, demo, logger),
		Webhook:  NewWebhookHandler(receiver, logger),
		Logger:   logger,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{server: server, products: products, payments: payments, creator: creator}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, cookie *http.Cookie) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded map[string]interface{}
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &decoded))
	}
	return resp, decoded
}

func (e *testEnv) register(t *testing.T, email string) *http.Cookie {
	t.Helper()

	resp, _ := e.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": "secret123",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == identityCookieName && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("register response has no identity cookie")
	return nil
}

func (e *testEnv) seedProduct(t *testing.T, name string, price float64) domain.Product {
	t.Helper()

	now := time.Now().UTC()
	product := domain.Product{
		ID:          "prod-" + name,
		Name:        name,
		Description: "test product",
		Price:       price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, e.products.Create(context.Background(), product))
	return product
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t)

	cookie := env.register(t, "shopper@example.com")

	// Повторная регистрация того же e-mail конфликтует.
	resp, body := env.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "shopper@example.com",
		"password": "another",
	}, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, "Email already in use", body["error"])

	// Неверный пароль и несуществующий e-mail неразличимы.
	resp, body = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "shopper@example.com",
		"password": "wrong",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "Invalid credentials", body["error"])

	resp, body = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "shopper@example.com",
		"password": "secret123",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, body["user"])

	// /me всегда 200: аутентификация — состояние, а не ошибка.
	resp, body = env.do(t, http.MethodGet, "/api/auth/me", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, false, body["authenticated"])

	resp, body = env.do(t, http.MethodGet, "/api/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["authenticated"])

	resp, _ = env.do(t, http.MethodPost, "/api/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cleared bool
	for _, c := range resp.Cookies() {
		if c.Name == identityCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	require.True(t, cleared, "logout must expire the identity cookie")
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email": "shopper@example.com",
	}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Password is required", body["error"])

	resp, body = env.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"password": "secret123",
	}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Email is required", body["error"])
}

func TestProductEndpoints(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.register(t, "admin@example.com")

	// Каталог открыт на чтение без аутентификации.
	resp, _ := env.do(t, http.MethodGet, "/api/products", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Мутации каталога требуют identity cookie.
	resp, _ = env.do(t, http.MethodPost, "/api/products", map[string]interface{}{
		"name": "x", "description": "y", "price": 1,
	}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, created := env.do(t, http.MethodPost, "/api/products", map[string]interface{}{
		"name":        "Gray Hoodie",
		"description": "Soft and cozy",
		"price":       59.99,
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	resp, got := env.do(t, http.MethodGet, "/api/products/"+id, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Gray Hoodie", got["name"])

	// Частичное обновление: нетронутые поля сохраняются.
	resp, updated := env.do(t, http.MethodPut, "/api/products/"+id, map[string]interface{}{
		"price": 49.99,
	}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 49.99, updated["price"])
	require.Equal(t, "Gray Hoodie", updated["name"])

	resp, body := env.do(t, http.MethodPost, "/api/products", map[string]interface{}{
		"name": "Bad", "description": "negative", "price": -5,
	}, cookie)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotEmpty(t, body["error"])

	resp, _ = env.do(t, http.MethodDelete, "/api/products/"+id, nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, "/api/products/"+id, nil, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCartEndpoints(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.register(t, "shopper@example.com")
	product := env.seedProduct(t, "Sneakers", 129.99)

	resp, _ := env.do(t, http.MethodGet, "/api/cart", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, summary := env.do(t, http.MethodGet, "/api/cart", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, float64(0), summary["total"])

	resp, line := env.do(t, http.MethodPost, "/api/cart", map[string]interface{}{
		"productId": product.ID,
		"quantity":  2,
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	lineID, _ := line["id"].(string)
	require.True(t, strings.HasPrefix(lineID, product.ID+"-"), "line id must embed product id: %s", lineID)
	require.Equal(t, product.Name, line["name"])
	require.Equal(t, product.Price, line["price"])
	require.Equal(t, float64(2), line["quantity"])

	resp, body := env.do(t, http.MethodPost, "/api/cart", map[string]interface{}{
		"productId": "missing",
		"quantity":  1,
	}, cookie)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Product not found", body["error"])

	resp, body = env.do(t, http.MethodPut, "/api/cart/"+product.ID, map[string]interface{}{
		"quantity": 0,
	}, cookie)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Quantity must be at least 1", body["error"])

	resp, _ = env.do(t, http.MethodDelete, "/api/cart/"+product.ID, nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, http.MethodDelete, "/api/cart", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func checkoutBody(product domain.Product, quantity int) map[string]interface{} {
	return map[string]interface{}{
		"items": []map[string]interface{}{{
			"id":        product.ID + "-1",
			"productId": product.ID,
			"name":      product.Name,
			"price":     product.Price,
			"quantity":  quantity,
		}},
		"total": product.Price * float64(quantity),
	}
}

func TestCheckoutEndpoint(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.register(t, "shopper@example.com")
	product := env.seedProduct(t, "Sneakers", 129.99)

	resp, body := env.do(t, http.MethodPost, "/api/payment/create-order", checkoutBody(product, 1), nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "Unauthorized", body["error"])

	resp, body = env.do(t, http.MethodPost, "/api/payment/create-order", map[string]interface{}{
		"items": []interface{}{}, "total": 0,
	}, cookie)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "No items in cart", body["error"])

	resp, body = env.do(t, http.MethodPost, "/api/payment/create-order", checkoutBody(product, 2), cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "https://pay.example.com/checkout/abc", body["paymentUrl"])
	require.NotNil(t, body["orderCode"])
	require.Nil(t, body["demo"])
	require.Equal(t, 1, env.creator.Calls)
	require.Equal(t, int64(260), env.creator.LastReq.Amount)
}

func TestCheckoutProviderFallback(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.register(t, "shopper@example.com")
	product := env.seedProduct(t, "Sneakers", 129.99)
	env.creator.Err = io.ErrUnexpectedEOF

	resp, body := env.do(t, http.MethodPost, "/api/payment/create-order", checkoutBody(product, 1), cookie)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, "Failed to create payment order", body["error"])
	require.Equal(t, true, body["fallback"])
	require.NotEmpty(t, body["details"])
	require.Equal(t, 1, env.creator.Calls, "провайдер вызывается ровно один раз")
}

func TestCheckoutTestEndpoint(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, "Sneakers", 129.99)

	// Тестовый вход не требует аутентификации, но валидирует корзину.
	resp, body := env.do(t, http.MethodPost, "/api/payment/test", map[string]interface{}{
		"items": []interface{}{}, "total": 0,
	}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "No items in cart", body["error"])

	resp, body = env.do(t, http.MethodPost, "/api/payment/test", checkoutBody(product, 1), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["demo"])
	require.Equal(t, payment.DemoPaymentURL, body["paymentUrl"])
	require.Zero(t, env.creator.Calls, "тестовый вход не трогает боевого провайдера")
}

func TestWebhookEndpoint(t *testing.T) {
	env := newTestEnv(t)

	n := domain.PaymentNotification{
		OrderCode:   1234,
		Code:        "00",
		Amount:      110,
		Description: "order payment",
	}
	n.Signature = payment.Sign(testChecksumKey, payment.NotificationFields(n))

	resp, body := env.do(t, http.MethodPost, "/api/payment/webhook", n, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["success"])
	require.Equal(t, "Payment processed successfully", body["message"])

	record, err := env.payments.GetByOrderCode(context.Background(), 1234)
	require.NoError(t, err)
	require.Equal(t, domain.PaymentStatusSucceeded, record.Status)

	// Подделанная подпись: всегда 200, но платёж не записывается.
	n.OrderCode = 555
	resp, body = env.do(t, http.MethodPost, "/api/payment/webhook", n, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, false, body["success"])
	_, err = env.payments.GetByOrderCode(context.Background(), 555)
	require.ErrorIs(t, err, domain.ErrPaymentNotFound)
}

func TestWebhookMalformedPayload(t *testing.T) {
	env := newTestEnv(t)

	req, err := http.NewRequest(http.MethodPost, env.server.URL+"/api/payment/webhook", strings.NewReader("not-json"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := env.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, false, body["success"])
}
