package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Значения-заглушки. Совпадение настройки с заглушкой означает
// "подсистема не настроена" — это распознаваемый режим, а не ошибка:
// соответствующий клиент переключается в офлайн/мок-поведение.
const (
	PlaceholderBackendKey = "your_xata_api_key_here"
	PlaceholderBackendURL = "https://your-workspace-your-database.xata.sh/db/your-database"
	PlaceholderCacheURL   = "https://your-redis-url.upstash.io"
	PlaceholderCacheToken = "your-upstash-token"
	PlaceholderServerKey  = "your-server-key"
	PlaceholderClientKey  = "your-client-key"
)

type HTTP struct {
	Addr              string        `default:":8080" envconfig:"ADDR"`
	GinMode           string        `default:"debug" envconfig:"GIN_MODE"`
	ReadTimeout       time.Duration `default:"10s" envconfig:"READ_TIMEOUT"`
	WriteTimeout      time.Duration `default:"10s" envconfig:"WRITE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `default:"5s" envconfig:"READ_HEADER_TIMEOUT"`
	IdleTimeout       time.Duration `default:"60s" envconfig:"IDLE_TIMEOUT"`
	GracefulTimeout   time.Duration `default:"5s" envconfig:"GRACEFUL_TIMEOUT"`
}

type Logger struct {
	IsProd bool `default:"false" envconfig:"IS_PROD"`
}

// Backend — data API каталога и журнала транзакций (Xata-совместимый REST).
type Backend struct {
	APIKey   string        `envconfig:"API_KEY"`
	BaseURL  string        `envconfig:"BASE_URL"`
	Timeout  time.Duration `default:"5s" envconfig:"TIMEOUT"`
	PageSize int           `default:"100" envconfig:"PAGE_SIZE"`
}

// IsConfigured — backend настроен, если ключ и URL заданы и не равны заглушкам.
func (b Backend) IsConfigured() bool {
	return b.APIKey != "" && b.BaseURL != "" &&
		b.APIKey != PlaceholderBackendKey && b.BaseURL != PlaceholderBackendURL
}

// Cache — удалённый key-value кэш (Upstash REST, bearer-токен).
type Cache struct {
	URL           string        `envconfig:"URL"`
	Token         string        `envconfig:"TOKEN"`
	Timeout       time.Duration `default:"3s" envconfig:"TIMEOUT"`
	SchemaVersion string        `default:"v1" envconfig:"SCHEMA_VERSION"`
}

func (c Cache) IsConfigured() bool {
	return c.URL != "" && c.Token != "" &&
		c.URL != PlaceholderCacheURL && c.Token != PlaceholderCacheToken
}

// Midtrans — платёжный шлюз. Без ключей оркестратор работает в мок-режиме.
type Midtrans struct {
	ServerKey  string        `envconfig:"SERVER_KEY"`
	ClientKey  string        `envconfig:"CLIENT_KEY"`
	Production bool          `default:"false" envconfig:"IS_PRODUCTION"`
	Timeout    time.Duration `default:"10s" envconfig:"TIMEOUT"`
	MockDelay  time.Duration `default:"2s" envconfig:"MOCK_DELAY"`
}

func (m Midtrans) IsConfigured() bool {
	return m.ServerKey != "" && m.ClientKey != "" &&
		m.ServerKey != PlaceholderServerKey && m.ClientKey != PlaceholderClientKey
}

// Loader — параметры предзагрузчика каталога.
type Loader struct {
	FreshFor time.Duration `default:"5m" envconfig:"FRESH_FOR"`
	Watchdog time.Duration `default:"10s" envconfig:"WATCHDOG"`
}

type Tracing struct {
	Enabled     bool    `default:"false" envconfig:"OTEL_ENABLED"`
	ServiceName string  `default:"zhivlux-store" envconfig:"OTEL_SERVICE_NAME"`
	Endpoint    string  `default:"jaeger:4318" envconfig:"OTEL_ENDPOINT"`
	SampleRatio float64 `default:"1" envconfig:"OTEL_SAMPLE_RATIO"`
}

type Config struct {
	HTTP     HTTP
	Logger   Logger
	Backend  Backend
	Cache    Cache
	Midtrans Midtrans
	Loader   Loader
	Tracing  Tracing
}

// Load — конфигурация из окружения с префиксом STORE.
func Load() (Config, error) { return LoadWithPrefix("STORE") }

// LoadWithPrefix — вариант с произвольным префиксом (изоляция в тестах).
func LoadWithPrefix(prefix string) (Config, error) {
	var c Config
	if err := envconfig.Process(prefix, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}
