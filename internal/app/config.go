package app

import (
	"github.com/vladislavdragonenkov/storefront/internal/service/payment"
)

// Config описывает настройки запуска приложения. Секреты инъецируются в
// компоненты через конфигурацию, package-level состояния нет.
type Config struct {
	HTTPAddr    string
	MetricsAddr string
	// BaseURL — внешний адрес витрины для return/cancel URL провайдера.
	BaseURL string
	// PostgresDSN пустой — работаем на in-memory хранилище.
	PostgresDSN string
	JWTSecret   string
	PayOS       payment.Config
	// KafkaBrokers — адреса брокеров через запятую; пусто — без Kafka.
	KafkaBrokers string
}

// DefaultConfig возвращает базовые значения для локального запуска.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
		BaseURL:     "http://localhost:8080",
		JWTSecret:   "dev-secret-change-me",
	}
}
